// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/hello-auth/internal/logger"
	"github.com/MKhiriev/hello-auth/models"
)

type accountRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewAccountRepository(db *DB, logger *logger.Logger) AccountRepository {
	logger.Debug().Msg("creating account repository")
	return &accountRepository{
		db:     db,
		logger: logger,
	}
}

// FindAccount returns the account linking userID to providerID, or
// [ErrAccountNotFound].
func (r *accountRepository) FindAccount(ctx context.Context, userID, providerID string) (models.Account, error) {
	log := logger.FromContext(ctx)

	row := selectAccountQuery(r.db.builder(), userID, providerID).RunWith(r.db.DB).QueryRowContext(ctx)

	account, err := scanAccount(row)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Account{}, ErrAccountNotFound
	case err != nil:
		log.Err(err).
			Str("func", "*accountRepository.FindAccount").
			Str("user_id", userID).
			Str("provider_id", providerID).
			Msg("error selecting account")
		return models.Account{}, fmt.Errorf("%w: %w", ErrExecutingQuery, classifyError(err))
	}

	return account, nil
}
