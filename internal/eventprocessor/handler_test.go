// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package eventprocessor

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/meridian/internal/metrics"
	"github.com/tomtom215/meridian/internal/recommend"
)

func taskMessage(t *testing.T, userID string) *message.Message {
	t.Helper()
	task := testTask(userID)
	msg, err := NewTaskMessage(&task)
	if err != nil {
		t.Fatalf("NewTaskMessage() error = %v", err)
	}
	return msg
}

func TestAnalysisHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		result     *recommend.UpdateResult
		err        error
		wantReturn bool
		wantReport error
	}{
		{"updated", &recommend.UpdateResult{Updated: true, Reranked: 4}, nil, false, nil},
		{"insufficient data", &recommend.UpdateResult{}, nil, false, nil},
		{"nil result", nil, nil, false, nil},
		{"validation is permanent", nil, fmt.Errorf("%w: user id is required", recommend.ErrValidation), false, recommend.ErrValidation},
		{"store failure retries", nil, fmt.Errorf("list: %w", recommend.ErrStoreUnavailable), true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			u := newFakeUpdater(func(int) (*recommend.UpdateResult, error) { return tt.result, tt.err })
			h, errs := newTestHandler(u)

			err := h.Handle(taskMessage(t, "u1"))
			if (err != nil) != tt.wantReturn {
				t.Fatalf("Handle() error = %v, want returned error %v", err, tt.wantReturn)
			}
			if tt.wantReturn && !errors.Is(err, tt.err) {
				t.Errorf("returned error %v should wrap %v", err, tt.err)
			}
			if u.callCount() != 1 {
				t.Errorf("updater calls = %d, want 1", u.callCount())
			}

			select {
			case reported := <-errs:
				if tt.wantReport == nil {
					t.Errorf("unexpected reported error %v", reported)
				} else if !errors.Is(reported, tt.wantReport) {
					t.Errorf("reported %v, want %v", reported, tt.wantReport)
				}
			default:
				if tt.wantReport != nil {
					t.Error("expected a reported error")
				}
			}
		})
	}
}

func TestAnalysisHandlerMalformed(t *testing.T) {
	t.Parallel()

	u := newFakeUpdater(nil)
	h, errs := newTestHandler(u)

	if err := h.Handle(message.NewMessage(watermill.NewUUID(), []byte("not json"))); err != nil {
		t.Fatalf("malformed payload should be acked, got %v", err)
	}
	if u.callCount() != 0 {
		t.Error("updater should not run for a malformed task")
	}
	if err := <-errs; !errors.Is(err, ErrMalformedTask) {
		t.Errorf("reported %v, want ErrMalformedTask", err)
	}
}

func TestHandlePoisoned(t *testing.T) {
	t.Parallel()

	h, errs := newTestHandler(newFakeUpdater(nil))
	msg := taskMessage(t, "u9")
	msg.Metadata.Set(middleware.ReasonForPoisonedKey, "store unavailable")

	if err := h.HandlePoisoned(msg); err != nil {
		t.Fatalf("HandlePoisoned() error = %v", err)
	}
	err := <-errs
	if !errors.Is(err, ErrTaskPoisoned) {
		t.Fatalf("reported %v, want ErrTaskPoisoned", err)
	}
	if !strings.Contains(err.Error(), "u9/job") || !strings.Contains(err.Error(), "store unavailable") {
		t.Errorf("error should name the task and reason: %v", err)
	}
}

func TestErrorSinkDropsWhenFull(t *testing.T) {
	t.Parallel()

	h, errs := newTestHandler(newFakeUpdater(nil))
	for i := 0; i < cap(errs)+3; i++ {
		h.errs.report(errors.New("boom"))
	}
	if len(errs) != cap(errs) {
		t.Errorf("buffered = %d, want %d", len(errs), cap(errs))
	}
}

// Not parallel: reads shared counters.
func TestAnalysisHandlerMetrics(t *testing.T) {
	completed := metrics.AnalysisTasks.WithLabelValues(metrics.TaskCompleted)
	failed := metrics.AnalysisTasks.WithLabelValues(metrics.TaskFailed)
	beforeCompleted := testutil.ToFloat64(completed)
	beforeFailed := testutil.ToFloat64(failed)

	h, _ := newTestHandler(newFakeUpdater(nil))
	if err := h.Handle(taskMessage(t, "u1")); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	_ = h.Handle(message.NewMessage(watermill.NewUUID(), []byte("{")))

	if got := testutil.ToFloat64(completed) - beforeCompleted; got != 1 {
		t.Errorf("completed delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(failed) - beforeFailed; got != 1 {
		t.Errorf("failed delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.AnalysisTasksInflight); got != 0 {
		t.Errorf("inflight = %v, want 0", got)
	}
}
