// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/hello-auth/internal/mock"
	"github.com/MKhiriev/hello-auth/internal/service"
	"github.com/MKhiriev/hello-auth/internal/utils"
	"github.com/MKhiriev/hello-auth/models"
)

const (
	testCookie = "hello_auth.session_token"
	testSecret = "secret"
)

var testSessionWithUser = models.SessionWithUser{
	Session: models.Session{ID: "s1", Token: "tok"},
	User:    models.User{ID: "u1", Email: "ada@example.com", Name: "Ada"},
}

func TestSessionProvider_Authenticate(t *testing.T) {
	tests := []struct {
		name     string
		prepare  func(r *http.Request)
		setup    func(m *mock.MockSessionResolver)
		wantKind models.CredentialKind
		wantErr  error
	}{
		{
			name:    "no credentials",
			prepare: func(r *http.Request) {},
			setup:   func(m *mock.MockSessionResolver) {},
			wantErr: ErrNoCredentials,
		},
		{
			name: "signed cookie",
			prepare: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: testCookie, Value: utils.SignValue("tok", testSecret)})
			},
			setup: func(m *mock.MockSessionResolver) {
				m.EXPECT().GetSession(gomock.Any(), "tok").Return(testSessionWithUser, nil)
			},
			wantKind: models.CredentialSessionCookie,
		},
		{
			name: "cookie with bad signature",
			prepare: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: testCookie, Value: utils.SignValue("tok", "other")})
			},
			setup:   func(m *mock.MockSessionResolver) {},
			wantErr: ErrInvalidCredentials,
		},
		{
			name: "cookie wins over bearer",
			prepare: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: testCookie, Value: utils.SignValue("tok", testSecret)})
				r.Header.Set("Authorization", "Bearer other")
			},
			setup: func(m *mock.MockSessionResolver) {
				m.EXPECT().GetSession(gomock.Any(), "tok").Return(testSessionWithUser, nil)
			},
			wantKind: models.CredentialSessionCookie,
		},
		{
			name: "bearer session token",
			prepare: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer tok")
			},
			setup: func(m *mock.MockSessionResolver) {
				m.EXPECT().GetSession(gomock.Any(), "tok").Return(testSessionWithUser, nil)
			},
			wantKind: models.CredentialSessionBearer,
		},
		{
			name: "bearer jwt is left to the token provider",
			prepare: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer a.b.c")
			},
			setup:   func(m *mock.MockSessionResolver) {},
			wantErr: ErrNoCredentials,
		},
		{
			name: "malformed authorization header",
			prepare: func(r *http.Request) {
				r.Header.Set("Authorization", "Basic")
			},
			setup:   func(m *mock.MockSessionResolver) {},
			wantErr: ErrInvalidCredentials,
		},
		{
			name: "unknown session",
			prepare: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer tok")
			},
			setup: func(m *mock.MockSessionResolver) {
				m.EXPECT().GetSession(gomock.Any(), "tok").Return(models.SessionWithUser{}, service.ErrSessionExpiredOrInvalid)
			},
			wantErr: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			resolver := mock.NewMockSessionResolver(ctrl)
			tt.setup(resolver)

			r := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.prepare(r)

			got, err := NewSessionProvider(resolver, testCookie, testSecret).Authenticate(context.Background(), r)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, models.Identity{
				UserID:    "u1",
				Email:     "ada@example.com",
				Name:      "Ada",
				SessionID: "s1",
				Kind:      tt.wantKind,
			}, got)
		})
	}
}

func TestSessionProvider_StorageFailureIsNotInvalidCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver := mock.NewMockSessionResolver(ctrl)
	down := errors.New("db down")
	resolver.EXPECT().GetSession(gomock.Any(), "tok").Return(models.SessionWithUser{}, down)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer tok")

	_, err := NewSessionProvider(resolver, testCookie, testSecret).Authenticate(context.Background(), r)
	assert.ErrorIs(t, err, down)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}
