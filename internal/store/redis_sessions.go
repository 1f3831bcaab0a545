// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/hello-auth/internal/config"
	"github.com/MKhiriev/hello-auth/internal/logger"
	"github.com/MKhiriev/hello-auth/models"
)

const redisSessionKeyPrefix = "hello-auth:session:"

// sessionKV is the subset of redis used for sessions. It is implemented by
// the real go-redis client (through redisKV) and by test doubles.
type sessionKV interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Get returns redis.Nil when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// Del returns the number of keys removed.
	Del(ctx context.Context, key string) (int64, error)
	Ping(ctx context.Context) error
	Close() error
}

// redisKV adapts *redis.Client to sessionKV.
type redisKV struct {
	client *redis.Client
}

func (r *redisKV) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisKV) Get(ctx context.Context, key string) ([]byte, error) {
	return r.client.Get(ctx, key).Bytes()
}

func (r *redisKV) Del(ctx context.Context, key string) (int64, error) {
	return r.client.Del(ctx, key).Result()
}

func (r *redisKV) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *redisKV) Close() error {
	return r.client.Close()
}

// redisSessionRepository keeps sessions in redis as JSON values that expire
// together with the session.
type redisSessionRepository struct {
	kv     sessionKV
	logger *logger.Logger
}

// NewRedisSessionRepository connects to redis and checks it with a PING.
func NewRedisSessionRepository(ctx context.Context, cfg config.Redis, log *logger.Logger) (*redisSessionRepository, error) {
	kv := &redisKV{client: redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})}

	if err := kv.Ping(ctx); err != nil {
		log.Err(err).Str("func", "NewRedisSessionRepository").Str("address", cfg.Address).Msg("error connecting redis (ping)")
		kv.Close()
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	log.Info().Str("func", "NewRedisSessionRepository").Msg("connected to redis successfully")

	return newRedisSessionRepository(kv, log), nil
}

func newRedisSessionRepository(kv sessionKV, log *logger.Logger) *redisSessionRepository {
	return &redisSessionRepository{kv: kv, logger: log}
}

func (r *redisSessionRepository) CreateSession(ctx context.Context, session models.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("%w: expires at %s", ErrSessionAlreadyExpired, session.ExpiresAt.Format(time.RFC3339))
	}

	value, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("error encoding session: %w", err)
	}

	if err = r.kv.Set(ctx, redisSessionKeyPrefix+session.Token, value, ttl); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*redisSessionRepository.CreateSession").Msg("error storing session")
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	return nil
}

func (r *redisSessionRepository) FindSessionByToken(ctx context.Context, token string) (models.Session, error) {
	value, err := r.kv.Get(ctx, redisSessionKeyPrefix+token)
	switch {
	case errors.Is(err, redis.Nil):
		return models.Session{}, ErrSessionNotFound
	case err != nil:
		logger.FromContext(ctx).Err(err).Str("func", "*redisSessionRepository.FindSessionByToken").Msg("error reading session")
		return models.Session{}, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	var session models.Session
	if err = json.Unmarshal(value, &session); err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return session, nil
}

func (r *redisSessionRepository) DeleteSessionByToken(ctx context.Context, token string) error {
	removed, err := r.kv.Del(ctx, redisSessionKeyPrefix+token)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*redisSessionRepository.DeleteSessionByToken").Msg("error deleting session")
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	if removed == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// DeleteExpiredSessions is a no-op: redis expires the keys itself.
func (r *redisSessionRepository) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

func (r *redisSessionRepository) Ping(ctx context.Context) error {
	if err := r.kv.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return nil
}

func (r *redisSessionRepository) Close() error {
	return r.kv.Close()
}
