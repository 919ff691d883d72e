// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package eventprocessor

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/tomtom215/meridian/internal/recommend"
)

// Scheduler publishes analysis tasks. It implements recommend.AnalysisScheduler.
type Scheduler struct {
	publisher message.Publisher
	topic     string
	running   *atomic.Bool
}

var _ recommend.AnalysisScheduler = (*Scheduler)(nil)

// ScheduleAnalysis publishes task and returns without waiting for the
// analysis. It fails with ErrNotRunning while no router consumes the topic.
func (s *Scheduler) ScheduleAnalysis(_ context.Context, task recommend.AnalysisTask) error {
	if !s.running.Load() {
		return ErrNotRunning
	}

	msg, err := NewTaskMessage(&task)
	if err != nil {
		return err
	}
	if err := s.publisher.Publish(s.topic, msg); err != nil {
		return fmt.Errorf("publish analysis task: %w", err)
	}
	return nil
}
