// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

//go:generate mockgen -source=interfaces.go -destination=../mock/auth_mock.go -package=mock

package auth

import (
	"context"
	"net/http"

	"github.com/MKhiriev/hello-auth/models"
)

// Provider authenticates a single request.
//
// Authenticate returns the caller's identity, or an error. A provider that
// finds no credential it understands returns [ErrNoCredentials] so that the
// next provider in a [Chain] can try; any other error is a decision and the
// request is treated as unauthenticated.
type Provider interface {
	Authenticate(ctx context.Context, r *http.Request) (models.Identity, error)
}

// SessionResolver looks up a session by its opaque token.
type SessionResolver interface {
	GetSession(ctx context.Context, sessionToken string) (models.SessionWithUser, error)
}

// TokenParser validates a signed JWT.
type TokenParser interface {
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// ProviderFunc adapts an ordinary function to [Provider].
type ProviderFunc func(ctx context.Context, r *http.Request) (models.Identity, error)

// Authenticate calls f(ctx, r).
func (f ProviderFunc) Authenticate(ctx context.Context, r *http.Request) (models.Identity, error) {
	return f(ctx, r)
}
