// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/hello-auth/internal/config"
	"github.com/MKhiriev/hello-auth/internal/logger"
)

// Storages bundles every repository the authentication provider needs.
type Storages struct {
	UserRepository    UserRepository
	AccountRepository AccountRepository
	SessionRepository SessionRepository

	pingers []Pinger
	closers []func() error
}

// NewStorages connects to the configured backends, applies the schema
// migrations and builds the repositories. Sessions go to redis when
// cfg.Redis.Address is set and to the SQL database otherwise.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnect(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}
	log.Info().Str("dialect", string(db.Dialect())).Msg("database schema is up to date")

	storages := &Storages{
		UserRepository:    NewUserRepository(db, log),
		AccountRepository: NewAccountRepository(db, log),
		SessionRepository: NewSessionRepository(db, log),
		pingers:           []Pinger{db},
		closers:           []func() error{db.Close},
	}

	if cfg.Redis.Address != "" {
		sessions, err := NewRedisSessionRepository(ctx, cfg.Redis, log)
		if err != nil {
			storages.Close()
			return nil, fmt.Errorf("error connecting to redis: %w", err)
		}

		storages.SessionRepository = sessions
		storages.pingers = append(storages.pingers, sessions)
		storages.closers = append(storages.closers, sessions.Close)
	}

	return storages, nil
}

// Ping checks every backend.
func (s *Storages) Ping(ctx context.Context) error {
	for _, p := range s.pingers {
		if err := p.Ping(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Close releases every backend connection.
func (s *Storages) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i]())
	}
	return errors.Join(errs...)
}
