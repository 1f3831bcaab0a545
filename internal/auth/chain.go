// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/hello-auth/models"
)

// Chain runs providers in order. The first provider that does not abstain
// decides; when every provider abstains the chain returns [ErrNoCredentials].
type Chain []Provider

// NewChain builds a Chain.
func NewChain(providers ...Provider) Chain {
	return Chain(providers)
}

// Authenticate implements [Provider].
func (c Chain) Authenticate(ctx context.Context, r *http.Request) (models.Identity, error) {
	for _, p := range c {
		identity, err := p.Authenticate(ctx, r)
		if errors.Is(err, ErrNoCredentials) {
			continue
		}
		return identity, err
	}

	return models.Identity{}, ErrNoCredentials
}
