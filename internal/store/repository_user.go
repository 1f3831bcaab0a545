// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/hello-auth/internal/logger"
	"github.com/MKhiriev/hello-auth/models"
)

// userRepository is the SQL implementation of [UserRepository].
// It handles user creation and lookup against the "users" and "accounts"
// tables.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user and its credential account atomically.
//
// Error handling:
//   - unique violation on users.email → [ErrEmailAlreadyExists].
//   - connection failures → [ErrStorageUnavailable].
//   - anything else → wrapped [ErrExecutingStatement].
func (r *userRepository) CreateUser(ctx context.Context, user models.User, account models.Account) (models.User, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error beginning transaction")
		return models.User{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, classifyError(err))
	}
	defer tx.Rollback()

	if _, err = insertUserQuery(r.db.builder(), user).RunWith(tx).ExecContext(ctx); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Str("email", user.Email).Msg("error inserting user")
		return models.User{}, userInsertError(err)
	}

	if _, err = insertAccountQuery(r.db.builder(), account).RunWith(tx).ExecContext(ctx); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Str("user_id", user.ID).Msg("error inserting account")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, classifyError(err))
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error committing transaction")
		return models.User{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, classifyError(err))
	}

	return user, nil
}

// FindUserByEmail retrieves the user registered with email.
// [ErrNoUserWasFound] is returned when there is none.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findUser(ctx, sq.Eq{"email": email})
}

// FindUserByID retrieves the user with the given id.
// [ErrNoUserWasFound] is returned when there is none.
func (r *userRepository) FindUserByID(ctx context.Context, id string) (models.User, error) {
	return r.findUser(ctx, sq.Eq{"id": id})
}

func (r *userRepository) findUser(ctx context.Context, where sq.Eq) (models.User, error) {
	log := logger.FromContext(ctx)

	row := selectUserQuery(r.db.builder(), where).RunWith(r.db.DB).QueryRowContext(ctx)

	user, err := scanUser(row)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.User{}, ErrNoUserWasFound
	case err != nil:
		log.Err(err).Str("func", "*userRepository.findUser").Any("where", where).Msg("error selecting user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, classifyError(err))
	}

	return user, nil
}

func userInsertError(err error) error {
	err = classifyError(err)
	if errors.Is(err, errUniqueViolation) {
		return ErrEmailAlreadyExists
	}
	return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
}
