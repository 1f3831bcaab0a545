// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/MKhiriev/hello-auth/models"
)

// UserRepository persists users together with their credential account.
type UserRepository interface {
	// CreateUser inserts user and account in one transaction.
	CreateUser(ctx context.Context, user models.User, account models.Account) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, id string) (models.User, error)
}

// AccountRepository reads provider accounts.
type AccountRepository interface {
	FindAccount(ctx context.Context, userID, providerID string) (models.Account, error)
}

// SessionRepository persists login sessions keyed by their opaque token.
type SessionRepository interface {
	CreateSession(ctx context.Context, session models.Session) error
	FindSessionByToken(ctx context.Context, token string) (models.Session, error)
	DeleteSessionByToken(ctx context.Context, token string) error
	// DeleteExpiredSessions removes sessions that expired at or before now
	// and returns how many were removed.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

// Pinger reports whether a backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
