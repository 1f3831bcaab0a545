// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/hello-auth/internal/logger"
)

// SessionCleanup periodically purges expired sessions. A failed pass is
// logged and retried on the next tick.
type SessionCleanup struct {
	sessions ExpiredSessionsPurger
	interval time.Duration
	logger   *logger.Logger
}

func NewSessionCleanup(sessions ExpiredSessionsPurger, interval time.Duration, logger *logger.Logger) *SessionCleanup {
	return &SessionCleanup{
		sessions: sessions,
		interval: interval,
		logger:   logger,
	}
}

// Run implements [Worker]. A non-positive interval disables the worker.
func (c *SessionCleanup) Run(ctx context.Context) error {
	if c.interval <= 0 {
		c.logger.Info().Msg("session cleanup is disabled")
		return nil
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			c.cleanup(ctx)
		}
	}
}

func (c *SessionCleanup) cleanup(ctx context.Context) {
	deleted, err := c.sessions.DeleteExpiredSessions(ctx)
	if err != nil {
		if ctx.Err() == nil {
			c.logger.Err(err).Msg("error deleting expired sessions")
		}
		return
	}

	if deleted > 0 {
		c.logger.Info().Int64("deleted", deleted).Msg("expired sessions deleted")
	}
}
