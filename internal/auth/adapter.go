// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package auth adapts an authentication provider to the HTTP application.
//
// The [Adapter] resolves every request once, stores the outcome in the
// request context and guards routes registered with app.WithAuth. Providers
// can be composed with [Chain] and protected with [BreakerProvider].
package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/hello-auth/internal/app"
	"github.com/MKhiriev/hello-auth/internal/logger"
	"github.com/MKhiriev/hello-auth/internal/utils"
	"github.com/MKhiriev/hello-auth/models"
)

// MsgUnauthorized is the message of the default unauthorized response.
const MsgUnauthorized = "Unauthorized"

// Adapter connects a [Provider] to the application.
//
// Resolve runs the provider once per request and stores the
// [models.AuthResult] in the request context. Require lets authenticated
// requests through and answers the rest with Unauthorized.
type Adapter struct {
	provider Provider

	// Unauthorized writes the response for unauthenticated requests to
	// protected routes. It defaults to [DefaultUnauthorized].
	Unauthorized http.Handler

	logger *logger.Logger
}

// NewAdapter returns an Adapter with the default unauthorized response.
func NewAdapter(provider Provider, logger *logger.Logger) *Adapter {
	return &Adapter{
		provider:     provider,
		Unauthorized: http.HandlerFunc(DefaultUnauthorized),
		logger:       logger,
	}
}

// Install registers Resolve as global middleware and Require as the
// application's auth guard.
func (a *Adapter) Install(b *app.Builder) error {
	if a.provider == nil {
		return errors.New("auth adapter has no provider")
	}

	b.Use(a.Resolve)
	b.SetGuard(a.Require)
	return nil
}

// Resolve authenticates the request and stores the result in its context.
// It never rejects a request.
func (a *Adapter) Resolve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, resolved := ResultFromContext(r.Context()); resolved {
			next.ServeHTTP(w, r)
			return
		}

		result := a.authenticate(r)
		next.ServeHTTP(w, r.WithContext(utils.WithAuthResult(r.Context(), result)))
	})
}

// Require lets the request through only when it is authenticated. A request
// that has not passed Resolve is authenticated here.
func (a *Adapter) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		result, resolved := ResultFromContext(r.Context())
		if !resolved {
			result = a.authenticate(r)
			r = r.WithContext(utils.WithAuthResult(r.Context(), result))
		}

		if !result.IsAuthenticated() {
			a.unauthorized().ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (a *Adapter) authenticate(r *http.Request) models.AuthResult {
	log := logger.FromRequest(r)

	identity, err := a.provider.Authenticate(r.Context(), r)
	switch {
	case errors.Is(err, ErrNoCredentials):
		return models.Unauthenticated(nil)
	case err != nil:
		log.Debug().Err(err).Str("path", r.URL.Path).Msg("request is not authenticated")
		return models.Unauthenticated(err)
	}

	log.Debug().
		Str("user_id", identity.UserID).
		Str("kind", string(identity.Kind)).
		Msg("request authenticated")
	return models.Authenticated(identity)
}

func (a *Adapter) unauthorized() http.Handler {
	if a.Unauthorized == nil {
		return http.HandlerFunc(DefaultUnauthorized)
	}
	return a.Unauthorized
}

// DefaultUnauthorized answers 401 with a bearer challenge and a JSON body.
func DefaultUnauthorized(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	utils.WriteJSON(w, models.MessageResponse{Message: MsgUnauthorized}, http.StatusUnauthorized)
}

// ResultFromContext returns the authentication result stored by Resolve.
// ok is false while the request is still pending.
func ResultFromContext(ctx context.Context) (result models.AuthResult, ok bool) {
	return utils.GetAuthResultFromContext(ctx)
}

// IdentityFromContext returns the authenticated identity of the request.
func IdentityFromContext(ctx context.Context) (models.Identity, bool) {
	result, ok := ResultFromContext(ctx)
	if !ok {
		return models.Identity{}, false
	}
	return result.Identity()
}
