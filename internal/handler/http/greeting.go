// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/hello-auth/internal/utils"
)

const greetingMessage = "Hello World!"

func (h *Handler) greeting(w http.ResponseWriter, r *http.Request) {
	utils.WriteText(w, greetingMessage, http.StatusOK)
}
