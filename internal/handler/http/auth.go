// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/MKhiriev/hello-auth/internal/auth"
	"github.com/MKhiriev/hello-auth/internal/logger"
	"github.com/MKhiriev/hello-auth/internal/service"
	"github.com/MKhiriev/hello-auth/internal/utils"
	"github.com/MKhiriev/hello-auth/models"
)

// authTokenHeader carries the session token on sign-up and sign-in for
// clients that use bearer authentication instead of cookies.
const authTokenHeader = "Set-Auth-Token"

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.SignUpRequest
	if err := decodeJSON(w, r, &req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.writeError(w, r, err)
		return
	}

	result, err := h.services.AuthService.SignUp(ctx, req, clientInfo(r))
	if err != nil {
		log.Err(err).Msg("sign up failed")
		h.writeError(w, r, err)
		return
	}

	h.writeSession(w, result)
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.SignInRequest
	if err := decodeJSON(w, r, &req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.writeError(w, r, err)
		return
	}

	result, err := h.services.AuthService.SignIn(ctx, req, clientInfo(r))
	if err != nil {
		log.Err(err).Msg("sign in failed")
		h.writeError(w, r, err)
		return
	}

	log.Debug().Str("user_id", result.User.ID).Msg("user successfully signed in")
	h.writeSession(w, result)
}

func (h *Handler) signOut(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	token, _, err := auth.SessionTokenFromRequest(r, h.auth.CookieName, h.auth.SecretKey)
	if err != nil {
		log.Err(err).Msg("sign out without a session token")
		h.writeError(w, r, fmt.Errorf("%w: %w", service.ErrSessionExpiredOrInvalid, err))
		return
	}

	if err = h.services.AuthService.SignOut(r.Context(), token); err != nil {
		log.Err(err).Msg("sign out failed")
		h.writeError(w, r, err)
		return
	}

	h.clearSessionCookie(w)
	utils.WriteJSON(w, models.SuccessResponse{Success: true}, http.StatusOK)
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	token, _, err := auth.SessionTokenFromRequest(r, h.auth.CookieName, h.auth.SecretKey)
	if err != nil {
		log.Err(err).Msg("get session without a session token")
		h.writeError(w, r, fmt.Errorf("%w: %w", service.ErrSessionExpiredOrInvalid, err))
		return
	}

	result, err := h.services.AuthService.GetSession(r.Context(), token)
	if err != nil {
		log.Err(err).Msg("get session failed")
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) token(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		h.writeError(w, r, service.ErrSessionExpiredOrInvalid)
		return
	}

	token, err := h.services.AuthService.CreateToken(r.Context(), identity)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.TokenResponse{Token: token.SignedString}, http.StatusOK)
}

func (h *Handler) writeSession(w http.ResponseWriter, result models.SessionWithUser) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.auth.CookieName,
		Value:    utils.SignValue(result.Session.Token, h.auth.SecretKey),
		Path:     "/",
		Expires:  result.Session.ExpiresAt,
		MaxAge:   int(time.Until(result.Session.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   h.auth.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	w.Header().Set(authTokenHeader, result.Session.Token)

	utils.WriteJSON(w, models.AuthResponse{Token: result.Session.Token, User: result.User}, http.StatusOK)
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.auth.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}

func clientInfo(r *http.Request) models.ClientInfo {
	return models.ClientInfo{
		IPAddress: utils.ClientIP(r),
		UserAgent: r.UserAgent(),
	}
}
