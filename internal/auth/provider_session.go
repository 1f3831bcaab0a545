// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/hello-auth/internal/service"
	"github.com/MKhiriev/hello-auth/internal/utils"
	"github.com/MKhiriev/hello-auth/models"
)

// SessionProvider authenticates requests carrying a session token, either
// in the signed session cookie or as "Authorization: Bearer <token>".
//
// The cookie wins when both are present. Bearer values that look like a JWT
// are left to [TokenProvider].
type SessionProvider struct {
	sessions   SessionResolver
	cookieName string
	secret     string
}

// NewSessionProvider returns a SessionProvider. secret verifies the cookie
// signature.
func NewSessionProvider(sessions SessionResolver, cookieName, secret string) *SessionProvider {
	return &SessionProvider{
		sessions:   sessions,
		cookieName: cookieName,
		secret:     secret,
	}
}

// Authenticate implements [Provider].
func (p *SessionProvider) Authenticate(ctx context.Context, r *http.Request) (models.Identity, error) {
	token, kind, err := SessionTokenFromRequest(r, p.cookieName, p.secret)
	if err != nil {
		return models.Identity{}, err
	}

	found, err := p.sessions.GetSession(ctx, token)
	if errors.Is(err, service.ErrSessionExpiredOrInvalid) {
		return models.Identity{}, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}
	if err != nil {
		return models.Identity{}, fmt.Errorf("session lookup failed: %w", err)
	}

	return models.Identity{
		UserID:    found.User.ID,
		Email:     found.User.Email,
		Name:      found.User.Name,
		SessionID: found.Session.ID,
		Kind:      kind,
	}, nil
}

// SessionTokenFromRequest extracts the session token from the signed cookie
// or from a non-JWT bearer header. It returns [ErrNoCredentials] when neither
// is present and [ErrInvalidCredentials] for a bad signature or a malformed
// header.
func SessionTokenFromRequest(r *http.Request, cookieName, secret string) (string, models.CredentialKind, error) {
	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		token, ok := utils.VerifySignedValue(cookie.Value, secret)
		if !ok {
			return "", "", fmt.Errorf("%w: bad session cookie signature", ErrInvalidCredentials)
		}
		return token, models.CredentialSessionCookie, nil
	}

	header := r.Header.Get("Authorization")
	if header == "" {
		return "", "", ErrNoCredentials
	}

	token, err := utils.ParseBearerToken(header)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}
	if utils.LooksLikeJWT(token) {
		return "", "", ErrNoCredentials
	}

	return token, models.CredentialSessionBearer, nil
}
