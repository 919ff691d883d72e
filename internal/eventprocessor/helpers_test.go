// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package eventprocessor

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/meridian/internal/logging"
	"github.com/tomtom215/meridian/internal/models"
	"github.com/tomtom215/meridian/internal/recommend"
)

const waitTimeout = 5 * time.Second

// fakeUpdater records calls and answers through fn.
type fakeUpdater struct {
	mu     sync.Mutex
	calls  []string
	fn     func(call int) (*recommend.UpdateResult, error)
	called chan string
}

func newFakeUpdater(fn func(call int) (*recommend.UpdateResult, error)) *fakeUpdater {
	return &fakeUpdater{fn: fn, called: make(chan string, 16)}
}

func (f *fakeUpdater) UpdateRecommendations(_ context.Context, userID string, itemType models.ItemType) (*recommend.UpdateResult, error) {
	f.mu.Lock()
	key := userID + "/" + string(itemType)
	f.calls = append(f.calls, key)
	n := len(f.calls)
	f.mu.Unlock()

	defer func() {
		select {
		case f.called <- key:
		default:
		}
	}()
	if f.fn == nil {
		return &recommend.UpdateResult{Updated: true, Reranked: 3}, nil
	}
	return f.fn(n)
}

func (f *fakeUpdater) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.RatePerSecond = 0
	cfg.RetryMaxRetries = 1
	cfg.RetryInitialInterval = time.Millisecond
	cfg.RetryMaxInterval = 5 * time.Millisecond
	cfg.TaskTimeout = time.Second
	cfg.CloseTimeout = time.Second
	return cfg
}

func newTestHandler(u Updater) (*AnalysisHandler, chan error) {
	errs := make(chan error, 8)
	return &AnalysisHandler{
		updater: u,
		limiter: newLimiter(0, 0),
		timeout: time.Second,
		log:     logging.NewTaskLogger(zerolog.Nop()),
		errs:    &errorSink{ch: errs, logger: zerolog.Nop()},
	}, errs
}

func testTask(userID string) recommend.AnalysisTask {
	return recommend.AnalysisTask{
		UserID:        userID,
		ItemType:      models.ItemTypeJob,
		RequestedAt:   time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC),
		CorrelationID: "corr1234",
	}
}

// startProcessor runs p until the test ends.
func startProcessor(t *testing.T, p *Processor) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(waitTimeout):
			t.Error("processor did not stop")
		}
		_ = p.Close()
	})

	waitRunning(t, p)
}

func waitRunning(t *testing.T, p *Processor) {
	t.Helper()
	deadline := time.Now().Add(waitTimeout)
	for !p.IsRunning() {
		if time.Now().After(deadline) {
			t.Fatal("processor did not start")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func waitError(t *testing.T, p *Processor) error {
	t.Helper()
	select {
	case err := <-p.Errors():
		return err
	case <-time.After(waitTimeout):
		t.Fatal("no error delivered")
		return nil
	}
}
