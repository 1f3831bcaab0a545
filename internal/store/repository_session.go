// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/hello-auth/internal/logger"
	"github.com/MKhiriev/hello-auth/models"
)

// sessionRepository keeps sessions in the "sessions" table.
type sessionRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("creating session repository")
	return &sessionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *sessionRepository) CreateSession(ctx context.Context, session models.Session) error {
	log := logger.FromContext(ctx)

	if _, err := insertSessionQuery(r.db.builder(), session).RunWith(r.db.DB).ExecContext(ctx); err != nil {
		log.Err(err).
			Str("func", "*sessionRepository.CreateSession").
			Str("user_id", session.UserID).
			Msg("error inserting session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, classifyError(err))
	}

	return nil
}

// FindSessionByToken returns the session for token whether or not it has
// expired; callers decide with [models.Session.IsExpired].
func (r *sessionRepository) FindSessionByToken(ctx context.Context, token string) (models.Session, error) {
	log := logger.FromContext(ctx)

	row := selectSessionByTokenQuery(r.db.builder(), token).RunWith(r.db.DB).QueryRowContext(ctx)

	session, err := scanSession(row)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Session{}, ErrSessionNotFound
	case err != nil:
		log.Err(err).Str("func", "*sessionRepository.FindSessionByToken").Msg("error selecting session")
		return models.Session{}, fmt.Errorf("%w: %w", ErrExecutingQuery, classifyError(err))
	}

	return session, nil
}

// DeleteSessionByToken removes the session. Deleting a missing session
// returns [ErrSessionNotFound].
func (r *sessionRepository) DeleteSessionByToken(ctx context.Context, token string) error {
	log := logger.FromContext(ctx)

	res, err := deleteSessionByTokenQuery(r.db.builder(), token).RunWith(r.db.DB).ExecContext(ctx)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.DeleteSessionByToken").Msg("error deleting session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, classifyError(err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

func (r *sessionRepository) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	res, err := deleteExpiredSessionsQuery(r.db.builder(), now).RunWith(r.db.DB).ExecContext(ctx)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.DeleteExpiredSessions").Msg("error deleting expired sessions")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, classifyError(err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected, nil
}
