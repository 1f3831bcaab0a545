// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

//go:build integration

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	pgmodule "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/MKhiriev/hello-auth/internal/config"
	"github.com/MKhiriev/hello-auth/internal/logger"
	"github.com/MKhiriev/hello-auth/models"
)

// setupPostgres starts a PostgreSQL container and returns migrated storages.
// Tests are skipped when no container runtime is available.
func setupPostgres(t *testing.T) *Storages {
	t.Helper()
	ctx := context.Background()

	container, err := pgmodule.Run(ctx,
		"postgres:16-alpine",
		pgmodule.WithDatabase("hello_auth_test"),
		pgmodule.WithUsername("test"),
		pgmodule.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Skipf("skipping: could not start PostgreSQL container: %v", err)
	}
	t.Cleanup(func() { container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := NewStorages(ctx, config.Storage{DB: config.DB{DSN: dsn}}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

func TestPostgres_UserAndSessionLifecycle(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	user, account := testUser(now)

	_, err := s.UserRepository.CreateUser(ctx, user, account)
	require.NoError(t, err)

	_, err = s.UserRepository.CreateUser(ctx, models.User{ID: "other", Email: user.Email, CreatedAt: now, UpdatedAt: now}, models.Account{ID: "other", UserID: "other", ProviderID: models.CredentialProviderID, PasswordHash: "x", CreatedAt: now, UpdatedAt: now})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	found, err := s.UserRepository.FindUserByEmail(ctx, user.Email)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	session := testSession(now)
	require.NoError(t, s.SessionRepository.CreateSession(ctx, session))

	got, err := s.SessionRepository.FindSessionByToken(ctx, session.Token)
	require.NoError(t, err)
	assert.True(t, session.ExpiresAt.Equal(got.ExpiresAt))

	removed, err := s.SessionRepository.DeleteExpiredSessions(ctx, now.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	assert.NoError(t, s.Ping(ctx))
}
