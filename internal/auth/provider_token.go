// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MKhiriev/hello-auth/internal/utils"
	"github.com/MKhiriev/hello-auth/models"
)

// TokenProvider authenticates "Authorization: Bearer <jwt>" requests. It
// abstains for anything that is not a bearer JWT.
//
// Only the signature and expiry are checked. A JWT stays valid until it
// expires even after the session it was issued for is revoked.
type TokenProvider struct {
	parser TokenParser
}

// NewTokenProvider returns a TokenProvider.
func NewTokenProvider(parser TokenParser) *TokenProvider {
	return &TokenProvider{parser: parser}
}

// Authenticate implements [Provider].
func (p *TokenProvider) Authenticate(ctx context.Context, r *http.Request) (models.Identity, error) {
	raw, err := utils.ParseBearerToken(r.Header.Get("Authorization"))
	if err != nil || !utils.LooksLikeJWT(raw) {
		return models.Identity{}, ErrNoCredentials
	}

	token, err := p.parser.ParseToken(ctx, raw)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}

	return token.Claims.Identity(), nil
}
