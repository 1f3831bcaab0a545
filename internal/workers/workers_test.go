// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingWorker records that it ran and blocks until its context ends.
type blockingWorker struct {
	mu      sync.Mutex
	started bool
}

func (w *blockingWorker) Run(ctx context.Context) error {
	w.mu.Lock()
	w.started = true
	w.mu.Unlock()

	<-ctx.Done()
	return nil
}

func (w *blockingWorker) wasStarted() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.started
}

type failingWorker struct {
	err error
}

func (w failingWorker) Run(context.Context) error {
	return w.err
}

func TestWorkers_Run_AllWorkersRunUntilCancelled(t *testing.T) {
	w1, w2, w3 := &blockingWorker{}, &blockingWorker{}, &blockingWorker{}
	ws := NewWorkers(w1, w2, w3)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ws.Run(ctx) }()

	require.Eventually(t, func() bool {
		return w1.wasStarted() && w2.wasStarted() && w3.wasStarted()
	}, time.Second, 5*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("workers did not stop after cancellation")
	}
}

func TestWorkers_Run_ErrorStopsOthers(t *testing.T) {
	boom := errors.New("boom")
	blocking := &blockingWorker{}
	ws := NewWorkers(blocking, failingWorker{err: boom})

	err := ws.Run(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestWorkers_Run_Empty(t *testing.T) {
	assert.NoError(t, NewWorkers().Run(context.Background()))
	assert.NoError(t, (&Workers{}).Run(context.Background()))
}
