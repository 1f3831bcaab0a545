// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/hello-auth/internal/app"
	"github.com/MKhiriev/hello-auth/internal/auth"
	"github.com/MKhiriev/hello-auth/internal/config"
	"github.com/MKhiriev/hello-auth/internal/logger"
	"github.com/MKhiriev/hello-auth/internal/mock"
	"github.com/MKhiriev/hello-auth/internal/service"
	"github.com/MKhiriev/hello-auth/internal/utils"
	"github.com/MKhiriev/hello-auth/models"
)

const (
	testCookieName = "hello_auth.session_token"
	testSecret     = "secret"
	testToken      = "session-token"
)

type testDeps struct {
	auth *mock.MockAuthService
	info *mock.MockAppInfoService
}

func testAuthConfig() config.Auth {
	return config.Auth{
		SecretKey:  testSecret,
		CookieName: testCookieName,
	}
}

// newTestHandler builds a Handler on top of gomock services.
func newTestHandler(t *testing.T, cfg config.Auth) (*Handler, testDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)

	deps := testDeps{
		auth: mock.NewMockAuthService(ctrl),
		info: mock.NewMockAppInfoService(ctrl),
	}
	services := &service.Services{AuthService: deps.auth, AppInfoService: deps.info}

	return NewHandler(services, cfg, logger.Nop()), deps
}

// buildTestApp composes the handler with the auth adapter the way the
// server binary does. extra runs before Build.
func buildTestApp(t *testing.T, h *Handler, deps testDeps, extra ...func(b *app.Builder)) http.Handler {
	t.Helper()

	provider := auth.NewChain(
		auth.NewTokenProvider(deps.auth),
		auth.NewSessionProvider(deps.auth, testCookieName, testSecret),
	)

	b := app.New()
	b.Install(h, auth.NewAdapter(provider, logger.Nop()))
	for _, f := range extra {
		f(b)
	}

	cfg, err := b.Build()
	require.NoError(t, err)
	return cfg.Handler()
}

func testSession() models.SessionWithUser {
	now := time.Now().UTC()
	return models.SessionWithUser{
		Session: models.Session{
			ID:        "sess-1",
			Token:     testToken,
			UserID:    "user-1",
			ExpiresAt: now.Add(time.Hour),
			CreatedAt: now,
			UpdatedAt: now,
		},
		User: models.User{ID: "user-1", Name: "Ada", Email: "ada@example.com"},
	}
}

func do(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func withBearer(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestHandler_Install_Routes(t *testing.T) {
	h, deps := newTestHandler(t, testAuthConfig())

	provider := auth.NewSessionProvider(deps.auth, testCookieName, testSecret)
	b := app.New()
	b.Install(h, auth.NewAdapter(provider, logger.Nop()))
	cfg, err := b.Build()
	require.NoError(t, err)

	type key struct {
		method, path string
	}
	got := make(map[key]bool)
	for _, r := range cfg.Routes() {
		got[key{r.Method, r.Path}] = r.Auth
	}

	want := map[key]bool{
		{http.MethodGet, "/"}:                        true,
		{http.MethodPost, "/api/auth/sign-up/email"}: false,
		{http.MethodPost, "/api/auth/sign-in/email"}: false,
		{http.MethodPost, "/api/auth/sign-out"}:      true,
		{http.MethodGet, "/api/auth/get-session"}:    true,
		{http.MethodGet, "/api/auth/token"}:          true,
		{http.MethodGet, "/api/version"}:             false,
		{http.MethodGet, "/health"}:                  false,
		{http.MethodGet, "/metrics"}:                 false,
	}
	assert.Equal(t, want, got)
}

func TestHandler_Install_WithoutAuthAdapterFails(t *testing.T) {
	h, _ := newTestHandler(t, testAuthConfig())

	b := app.New()
	b.Install(h)

	_, err := b.Build()
	assert.ErrorIs(t, err, app.ErrNoAuthGuard)
}

func TestGreeting(t *testing.T) {
	tests := []struct {
		name       string
		prepare    func(r *http.Request)
		setup      func(d testDeps)
		wantStatus int
		wantBody   string
	}{
		{
			name:       "no credentials",
			prepare:    func(r *http.Request) {},
			setup:      func(d testDeps) {},
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"message":"Unauthorized"}`,
		},
		{
			name:    "bearer session token",
			prepare: func(r *http.Request) { withBearer(r, testToken) },
			setup: func(d testDeps) {
				d.auth.EXPECT().GetSession(gomock.Any(), testToken).Return(testSession(), nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   "Hello World!",
		},
		{
			name: "signed session cookie",
			prepare: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: testCookieName, Value: utils.SignValue(testToken, testSecret)})
			},
			setup: func(d testDeps) {
				d.auth.EXPECT().GetSession(gomock.Any(), testToken).Return(testSession(), nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   "Hello World!",
		},
		{
			name:    "expired session",
			prepare: func(r *http.Request) { withBearer(r, testToken) },
			setup: func(d testDeps) {
				d.auth.EXPECT().GetSession(gomock.Any(), testToken).Return(models.SessionWithUser{}, service.ErrSessionExpiredOrInvalid)
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"message":"Unauthorized"}`,
		},
		{
			name:    "jwt",
			prepare: func(r *http.Request) { withBearer(r, "a.b.c") },
			setup: func(d testDeps) {
				d.auth.EXPECT().ParseToken(gomock.Any(), "a.b.c").Return(models.Token{
					Claims: models.TokenClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"}},
				}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   "Hello World!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, deps := newTestHandler(t, testAuthConfig())
			tt.setup(deps)
			router := buildTestApp(t, h, deps)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.prepare(req)
			rec := do(t, router, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
			}
			assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
		})
	}
}

func TestFallbacks(t *testing.T) {
	h, deps := newTestHandler(t, testAuthConfig())
	router := buildTestApp(t, h, deps)

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/missing", nil),
		httptest.NewRequest(http.MethodDelete, "/", nil),
	} {
		rec := do(t, router, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"message":"Not Found"}`, rec.Body.String())
	}
}

func TestPanicIsRecovered(t *testing.T) {
	h, deps := newTestHandler(t, testAuthConfig())
	router := buildTestApp(t, h, deps, func(b *app.Builder) {
		b.Get("/panic", func(w http.ResponseWriter, r *http.Request) { panic("boom") })
		b.Get("/after", func(w http.ResponseWriter, r *http.Request) { io.WriteString(w, "still serving") })
	})

	rec := do(t, router, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = do(t, router, httptest.NewRequest(http.MethodGet, "/after", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "still serving", rec.Body.String())
}
