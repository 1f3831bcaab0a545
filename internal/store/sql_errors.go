// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// errUniqueViolation is the driver independent form of a unique constraint
// failure; repositories translate it into their domain error.
var errUniqueViolation = errors.New("unique constraint violation")

// classifyError maps driver errors of both backends onto store errors:
//   - unique constraint violations (pg 23505, sqlite UNIQUE) → errUniqueViolation;
//   - connection failures (pg class 08, 57P03, sqlite CANTOPEN, BUSY) → [ErrStorageUnavailable];
//   - [sql.ErrNoRows] is left as is;
//   - anything else is returned unchanged.
//
// The original error stays in the chain.
func classifyError(err error) error {
	if err == nil || errors.Is(err, sql.ErrNoRows) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgerrcode.UniqueViolation:
			return fmt.Errorf("%w: %w", errUniqueViolation, err)
		case pgerrcode.IsConnectionException(pgErr.Code), pgErr.Code == pgerrcode.CannotConnectNow:
			return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
		}
		return err
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		switch {
		case liteErr.ExtendedCode == sqlite3.ErrConstraintUnique, liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%w: %w", errUniqueViolation, err)
		case liteErr.Code == sqlite3.ErrCantOpen, liteErr.Code == sqlite3.ErrBusy:
			return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
		}
		return err
	}

	if errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	return err
}
