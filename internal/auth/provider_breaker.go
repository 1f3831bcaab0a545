// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/MKhiriev/hello-auth/internal/logger"
	"github.com/MKhiriev/hello-auth/models"
)

// BreakerProvider guards another provider with a circuit breaker. After
// failures consecutive provider failures the breaker opens and requests are
// rejected with [ErrProviderUnavailable] without calling the provider, until
// timeout passes.
//
// Abstaining and rejected credentials are normal outcomes and do not count
// as failures.
type BreakerProvider struct {
	next Provider
	cb   *gobreaker.CircuitBreaker
}

// NewBreakerProvider wraps next.
func NewBreakerProvider(next Provider, failures uint32, timeout time.Duration, log *logger.Logger) *BreakerProvider {
	if failures == 0 {
		failures = 1
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "auth-provider",
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, ErrNoCredentials) ||
				errors.Is(err, ErrInvalidCredentials) ||
				errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	})

	return &BreakerProvider{next: next, cb: cb}
}

// Authenticate implements [Provider].
func (p *BreakerProvider) Authenticate(ctx context.Context, r *http.Request) (models.Identity, error) {
	result, err := p.cb.Execute(func() (interface{}, error) {
		return p.next.Authenticate(ctx, r)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return models.Identity{}, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}
	if err != nil {
		return models.Identity{}, err
	}

	return result.(models.Identity), nil
}

// State reports the breaker state.
func (p *BreakerProvider) State() gobreaker.State {
	return p.cb.State()
}
