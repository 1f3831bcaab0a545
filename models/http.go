// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SignUpRequest is the body of POST /api/auth/sign-up/email.
type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInRequest is the body of POST /api/auth/sign-in/email.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ClientInfo describes where a sign-up or sign-in came from. It is stored on
// the created session.
type ClientInfo struct {
	IPAddress string
	UserAgent string
}
