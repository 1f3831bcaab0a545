// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/hello-auth/internal/app"
	"github.com/MKhiriev/hello-auth/models"
)

const (
	tagDefault = "default"
	tagAuth    = "auth"
	tagOps     = "operations"
)

// Install registers the global middleware chain and every route of the
// package on b.
func (h *Handler) Install(b *app.Builder) error {
	b.Use(
		h.withRealIP,
		h.withTraceID,
		withLogging,
		h.metrics.middleware,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	b.NotFound(notFound)
	b.MethodNotAllowed(notFound)

	b.Get("/", h.greeting,
		app.WithAuth(),
		app.WithTags(tagDefault),
		app.WithSummary("Greeting"),
		app.WithDescription("Returns a greeting to an authenticated caller."),
		app.WithContentType("text/plain"),
	)

	// authentication provider, rate limited per client IP
	b.Handle(http.MethodPost, "/api/auth/sign-up/email", h.limiter.middleware(http.HandlerFunc(h.signUp)),
		app.WithTags(tagAuth),
		app.WithSummary("Sign up with email and password"),
		app.WithRequestBody(models.SignUpRequest{}),
		app.WithResponseBody(models.AuthResponse{}),
	)
	b.Handle(http.MethodPost, "/api/auth/sign-in/email", h.limiter.middleware(http.HandlerFunc(h.signIn)),
		app.WithTags(tagAuth),
		app.WithSummary("Sign in with email and password"),
		app.WithRequestBody(models.SignInRequest{}),
		app.WithResponseBody(models.AuthResponse{}),
	)
	b.Handle(http.MethodPost, "/api/auth/sign-out", h.limiter.middleware(http.HandlerFunc(h.signOut)),
		app.WithAuth(),
		app.WithTags(tagAuth),
		app.WithSummary("Revoke the current session"),
		app.WithResponseBody(models.SuccessResponse{}),
	)
	b.Handle(http.MethodGet, "/api/auth/get-session", h.limiter.middleware(http.HandlerFunc(h.getSession)),
		app.WithAuth(),
		app.WithTags(tagAuth),
		app.WithSummary("Current session and user"),
		app.WithResponseBody(models.SessionWithUser{}),
	)
	b.Handle(http.MethodGet, "/api/auth/token", h.limiter.middleware(http.HandlerFunc(h.token)),
		app.WithAuth(),
		app.WithTags(tagAuth),
		app.WithSummary("Issue a JWT for the current caller"),
		app.WithResponseBody(models.TokenResponse{}),
	)

	b.Get("/api/version", h.getServerVersion,
		app.WithTags(tagOps),
		app.WithSummary("Server build version"),
		app.WithContentType("text/plain"),
	)
	b.Get("/health", h.health,
		app.WithTags(tagOps),
		app.WithSummary("Storage health check"),
		app.WithContentType("text/plain"),
	)
	b.Handle(http.MethodGet, "/metrics", h.metrics.handler(),
		app.WithTags(tagOps),
		app.WithSummary("Prometheus metrics"),
		app.WithContentType("text/plain"),
	)

	return nil
}
