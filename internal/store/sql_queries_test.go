// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/hello-auth/models"
)

func TestDialect_Placeholder(t *testing.T) {
	pg := sq.StatementBuilder.PlaceholderFormat(DialectPostgres.placeholder())
	lite := sq.StatementBuilder.PlaceholderFormat(DialectSQLite.placeholder())

	query, _, err := selectSessionByTokenQuery(pg, "t").ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "token = $1")

	query, _, err = selectSessionByTokenQuery(lite, "t").ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "token = ?")
}

func TestInsertSessionQuery(t *testing.T) {
	b := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s := models.Session{
		ID:        "sess-1",
		Token:     "tok",
		UserID:    "user-1",
		ExpiresAt: now.Add(time.Hour),
		IPAddress: "192.0.2.1",
		UserAgent: "curl",
		CreatedAt: now,
		UpdatedAt: now,
	}

	query, args, err := insertSessionQuery(b, s).ToSql()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(query, "INSERT INTO sessions (id,token,user_id,expires_at,ip_address,user_agent,created_at,updated_at)"), query)
	assert.Contains(t, query, "$8")
	assert.Equal(t, []any{"sess-1", "tok", "user-1", now.Add(time.Hour), "192.0.2.1", "curl", now, now}, args)
}

func TestSelectQueries(t *testing.T) {
	b := sq.StatementBuilder.PlaceholderFormat(sq.Question)

	tests := []struct {
		name     string
		query    sq.Sqlizer
		contains []string
		args     []any
	}{
		{
			name:     "user by email",
			query:    selectUserQuery(b, sq.Eq{"email": "a@b.c"}),
			contains: []string{"FROM users", "WHERE email = ?", "LIMIT 1"},
			args:     []any{"a@b.c"},
		},
		{
			name:     "credential account",
			query:    selectAccountQuery(b, "user-1", models.CredentialProviderID),
			contains: []string{"FROM accounts", "provider_id = ?", "user_id = ?", "LIMIT 1"},
		},
		{
			name:     "delete by token",
			query:    deleteSessionByTokenQuery(b, "tok"),
			contains: []string{"DELETE FROM sessions", "WHERE token = ?"},
			args:     []any{"tok"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := tt.query.ToSql()
			require.NoError(t, err)
			for _, part := range tt.contains {
				assert.Contains(t, query, part)
			}
			if tt.args != nil {
				assert.Equal(t, tt.args, args)
			}
		})
	}
}

func TestDeleteExpiredSessionsQuery(t *testing.T) {
	now := time.Now()

	query, args, err := deleteExpiredSessionsQuery(sq.StatementBuilder, now).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "DELETE FROM sessions WHERE expires_at <= ?", query)
	assert.Equal(t, []any{now}, args)
}
