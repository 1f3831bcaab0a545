// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/hello-auth/internal/logger"
	"github.com/MKhiriev/hello-auth/internal/service"
	"github.com/MKhiriev/hello-auth/internal/store"
	"github.com/MKhiriev/hello-auth/internal/utils"
	"github.com/MKhiriev/hello-auth/models"
)

type errorStatus struct {
	target error
	status int
}

// errorStatusTable is checked in order; the first match wins.
var errorStatusTable = []errorStatus{
	{store.ErrStorageUnavailable, http.StatusServiceUnavailable},
	{service.ErrServiceUnhealthy, http.StatusServiceUnavailable},

	{ErrInvalidJSON, http.StatusBadRequest},
	{ErrRateLimited, http.StatusTooManyRequests},
	{service.ErrInvalidDataProvided, http.StatusBadRequest},
	{service.ErrInvalidEmail, http.StatusBadRequest},
	{service.ErrPasswordTooShort, http.StatusBadRequest},
	{service.ErrPasswordTooLong, http.StatusBadRequest},

	{store.ErrEmailAlreadyExists, http.StatusUnprocessableEntity},

	{service.ErrInvalidEmailOrPassword, http.StatusUnauthorized},
	{service.ErrSessionExpiredOrInvalid, http.StatusUnauthorized},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},

	{service.ErrSessionCreationFailed, http.StatusInternalServerError},
	{service.ErrTokenCreationFailed, http.StatusInternalServerError},
	{store.ErrBuildingSQLQuery, http.StatusInternalServerError},
	{store.ErrExecutingQuery, http.StatusInternalServerError},
	{store.ErrBeginningTransaction, http.StatusInternalServerError},
	{store.ErrCommitingTransaction, http.StatusInternalServerError},
	{store.ErrExecutingStatement, http.StatusInternalServerError},
	{store.ErrScanningRow, http.StatusInternalServerError},
}

// errorResponse returns the status for err and the message safe to show to
// the client. Client errors expose the matched sentinel's text; server
// errors expose only the status text.
func errorResponse(err error) (int, string) {
	for _, e := range errorStatusTable {
		if errors.Is(err, e.target) {
			if e.status >= http.StatusInternalServerError {
				return e.status, http.StatusText(e.status)
			}
			return e.status, e.target.Error()
		}
	}
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := errorResponse(err)
	if status >= http.StatusInternalServerError {
		logger.FromRequest(r).Err(err).Int("status", status).Msg("request failed")
	}

	utils.WriteJSON(w, models.MessageResponse{Message: message}, status)
}

func errorBody(err error) models.MessageResponse {
	_, message := errorResponse(err)
	return models.MessageResponse{Message: message}
}
