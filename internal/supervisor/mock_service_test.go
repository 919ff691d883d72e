// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package supervisor

import (
	"context"
	"errors"
	"sync/atomic"
)

// mockService fails a set number of times, then runs until cancelled.
type mockService struct {
	name       string
	startCount atomic.Int32
	failsLeft  atomic.Int32
}

func newMockService(name string) *mockService {
	return &mockService{name: name}
}

func (m *mockService) Serve(ctx context.Context) error {
	m.startCount.Add(1)
	if m.failsLeft.Load() > 0 {
		m.failsLeft.Add(-1)
		return errors.New("simulated failure")
	}
	<-ctx.Done()
	return ctx.Err()
}

func (m *mockService) String() string { return m.name }
