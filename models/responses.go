// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// AuthResponse is returned by sign-up and sign-in. Token is the session
// token, usable as a bearer credential.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// TokenResponse is returned by GET /api/auth/token.
type TokenResponse struct {
	Token string `json:"token"`
}

// SuccessResponse is returned by operations without a payload.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// MessageResponse is the body of error responses.
type MessageResponse struct {
	Message string `json:"message"`
}
