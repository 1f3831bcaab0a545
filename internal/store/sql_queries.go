// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/hello-auth/models"
)

var (
	userColumns    = []string{"id", "name", "email", "email_verified", "created_at", "updated_at"}
	accountColumns = []string{"id", "user_id", "provider_id", "password_hash", "created_at", "updated_at"}
	sessionColumns = []string{"id", "token", "user_id", "expires_at", "ip_address", "user_agent", "created_at", "updated_at"}
)

// scanner is the common part of *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func insertUserQuery(b sq.StatementBuilderType, user models.User) sq.InsertBuilder {
	return b.Insert(user.TableName()).
		Columns(userColumns...).
		Values(user.ID, user.Name, user.Email, user.EmailVerified, user.CreatedAt, user.UpdatedAt)
}

func selectUserQuery(b sq.StatementBuilderType, where sq.Eq) sq.SelectBuilder {
	return b.Select(userColumns...).From(models.User{}.TableName()).Where(where).Limit(1)
}

func scanUser(row scanner) (models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.EmailVerified, &user.CreatedAt, &user.UpdatedAt)
	return user, err
}

func insertAccountQuery(b sq.StatementBuilderType, account models.Account) sq.InsertBuilder {
	return b.Insert(account.TableName()).
		Columns(accountColumns...).
		Values(account.ID, account.UserID, account.ProviderID, account.PasswordHash, account.CreatedAt, account.UpdatedAt)
}

func selectAccountQuery(b sq.StatementBuilderType, userID, providerID string) sq.SelectBuilder {
	return b.Select(accountColumns...).
		From(models.Account{}.TableName()).
		Where(sq.Eq{"user_id": userID, "provider_id": providerID}).
		Limit(1)
}

func scanAccount(row scanner) (models.Account, error) {
	var account models.Account
	err := row.Scan(&account.ID, &account.UserID, &account.ProviderID, &account.PasswordHash, &account.CreatedAt, &account.UpdatedAt)
	return account, err
}

func insertSessionQuery(b sq.StatementBuilderType, s models.Session) sq.InsertBuilder {
	return b.Insert(s.TableName()).
		Columns(sessionColumns...).
		Values(s.ID, s.Token, s.UserID, s.ExpiresAt, s.IPAddress, s.UserAgent, s.CreatedAt, s.UpdatedAt)
}

func selectSessionByTokenQuery(b sq.StatementBuilderType, token string) sq.SelectBuilder {
	return b.Select(sessionColumns...).
		From(models.Session{}.TableName()).
		Where(sq.Eq{"token": token}).
		Limit(1)
}

func scanSession(row scanner) (models.Session, error) {
	var s models.Session
	err := row.Scan(&s.ID, &s.Token, &s.UserID, &s.ExpiresAt, &s.IPAddress, &s.UserAgent, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func deleteSessionByTokenQuery(b sq.StatementBuilderType, token string) sq.DeleteBuilder {
	return b.Delete(models.Session{}.TableName()).Where(sq.Eq{"token": token})
}

func deleteExpiredSessionsQuery(b sq.StatementBuilderType, now time.Time) sq.DeleteBuilder {
	return b.Delete(models.Session{}.TableName()).Where(sq.LtOrEq{"expires_at": now})
}
