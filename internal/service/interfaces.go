// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/hello-auth/models"
)

// AuthService is the email/password authentication provider: accounts,
// login sessions and JWTs.
type AuthService interface {
	// SignUp registers a user and opens a session for it.
	SignUp(ctx context.Context, req models.SignUpRequest, client models.ClientInfo) (models.SessionWithUser, error)
	// SignIn checks credentials and opens a session.
	SignIn(ctx context.Context, req models.SignInRequest, client models.ClientInfo) (models.SessionWithUser, error)
	// SignOut revokes the session behind sessionToken.
	SignOut(ctx context.Context, sessionToken string) error
	// GetSession resolves a live session and its user.
	GetSession(ctx context.Context, sessionToken string) (models.SessionWithUser, error)

	CreateToken(ctx context.Context, identity models.Identity) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)

	// DeleteExpiredSessions purges sessions past their expiry.
	DeleteExpiredSessions(ctx context.Context) (int64, error)
}

// AppInfoService reports build metadata and liveness.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	CheckHealth(ctx context.Context) error
}

// IDGenerator issues identifiers for new records.
type IDGenerator interface {
	Generate() string
}
