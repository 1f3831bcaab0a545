// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/hello-auth/internal/logger"
	"github.com/MKhiriev/hello-auth/models"
)

var sessionColumnNames = []string{"id", "token", "user_id", "expires_at", "ip_address", "user_agent", "created_at", "updated_at"}

func testSession(now time.Time) models.Session {
	return models.Session{
		ID:        "session-1",
		Token:     "token-1",
		UserID:    "user-1",
		ExpiresAt: now.Add(time.Hour),
		IPAddress: "127.0.0.1",
		UserAgent: "test",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestSessionRepository_CreateSession(t *testing.T) {
	now := time.Now().UTC()
	s := testSession(now)

	t.Run("success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewSessionRepository(db, logger.Nop())

		mock.ExpectExec(`INSERT INTO sessions \(id,token,user_id,expires_at,ip_address,user_agent,created_at,updated_at\)`).
			WithArgs(s.ID, s.Token, s.UserID, s.ExpiresAt, s.IPAddress, s.UserAgent, s.CreatedAt, s.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.CreateSession(context.Background(), s))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewSessionRepository(db, logger.Nop())

		mock.ExpectExec(`INSERT INTO sessions`).WillReturnError(errors.New("boom"))

		assert.ErrorIs(t, repo.CreateSession(context.Background(), s), ErrExecutingStatement)
	})
}

func TestSessionRepository_FindSessionByToken(t *testing.T) {
	now := time.Now().UTC()
	s := testSession(now)

	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		want    models.Session
		wantErr error
	}{
		{
			name: "found",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM sessions WHERE token = \$1 LIMIT 1`).
					WithArgs("token-1").
					WillReturnRows(sqlmock.NewRows(sessionColumnNames).
						AddRow(s.ID, s.Token, s.UserID, s.ExpiresAt, s.IPAddress, s.UserAgent, s.CreatedAt, s.UpdatedAt))
			},
			want: s,
		},
		{
			name: "not found",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM sessions`).WillReturnRows(sqlmock.NewRows(sessionColumnNames))
			},
			wantErr: ErrSessionNotFound,
		},
		{
			name: "query fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM sessions`).WillReturnError(errors.New("boom"))
			},
			wantErr: ErrExecutingQuery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewSessionRepository(db, logger.Nop())
			tt.setup(mock)

			got, err := repo.FindSessionByToken(context.Background(), "token-1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSessionRepository_DeleteSessionByToken(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "deleted",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM sessions WHERE token = \$1`).
					WithArgs("token-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "nothing to delete",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM sessions`).WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: ErrSessionNotFound,
		},
		{
			name: "exec fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM sessions`).WillReturnError(errors.New("boom"))
			},
			wantErr: ErrExecutingStatement,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewSessionRepository(db, logger.Nop())
			tt.setup(mock)

			err := repo.DeleteSessionByToken(context.Background(), "token-1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSessionRepository_DeleteExpiredSessions(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSessionRepository(db, logger.Nop())

	now := time.Now().UTC()
	mock.ExpectExec(`DELETE FROM sessions WHERE expires_at <= \$1`).
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeleteExpiredSessions(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
