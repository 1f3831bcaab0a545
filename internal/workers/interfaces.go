// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers provides the background workers that run next to the
// HTTP server and the Workers aggregate that runs them together.
package workers

import "context"

// Worker is a long running background job.
//
// Run blocks until ctx is cancelled and returns nil in that case. A non-nil
// error stops every other worker and the server.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) error {
//	    <-ctx.Done()
//	    return nil
//	}
type Worker interface {
	Run(ctx context.Context) error
}

// ExpiredSessionsPurger deletes sessions whose expiry has passed and
// reports how many were removed.
type ExpiredSessionsPurger interface {
	DeleteExpiredSessions(ctx context.Context) (int64, error)
}
