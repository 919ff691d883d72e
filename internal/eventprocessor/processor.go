// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package eventprocessor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/rs/zerolog"

	"github.com/tomtom215/meridian/internal/logging"
	"github.com/tomtom215/meridian/internal/metrics"
)

const (
	taskHandlerName   = "analysis-worker"
	poisonHandlerName = "analysis-poison"
)

// Processor owns the task pub/sub, the scheduler and the worker router.
// Run may be called again after it returns, which lets a supervisor restart
// the worker without rebuilding the scheduler handed to the engine.
type Processor struct {
	cfg       Config
	pubsub    *gochannel.GoChannel
	scheduler *Scheduler
	handler   *AnalysisHandler
	wmLogger  watermill.LoggerAdapter
	taskLog   *logging.TaskLogger
	logger    zerolog.Logger
	errs      chan error

	running   atomic.Bool
	ready     chan struct{}
	readyOnce sync.Once
	closed    atomic.Bool

	mu     sync.Mutex
	router *Router
}

// New builds a processor around updater. Call Run to start consuming.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(cfg Config, updater Updater, logger zerolog.Logger) (*Processor, error) {
	if updater == nil {
		return nil, fmt.Errorf("%w: updater is required", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger = logger.With().Str("component", "eventprocessor").Logger()
	wmLogger := watermill.NewSlogLogger(logging.NewSlogLoggerFrom(logger))

	pubsub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: cfg.BufferSize,
	}, wmLogger)

	errs := make(chan error, cfg.ErrorBuffer)
	taskLog := logging.NewTaskLogger(logger)

	p := &Processor{
		cfg:      cfg,
		pubsub:   pubsub,
		wmLogger: wmLogger,
		taskLog:  taskLog,
		logger:   logger,
		errs:     errs,
		ready:    make(chan struct{}),
		handler: &AnalysisHandler{
			updater: updater,
			limiter: newLimiter(cfg.RatePerSecond, cfg.Burst),
			timeout: cfg.TaskTimeout,
			log:     taskLog,
			errs:    &errorSink{ch: errs, logger: logger},
		},
	}
	p.scheduler = &Scheduler{publisher: pubsub, topic: cfg.Topic, running: &p.running}
	return p, nil
}

// Scheduler returns the scheduler to hand to the engine.
func (p *Processor) Scheduler() *Scheduler {
	return p.scheduler
}

// Errors delivers permanent and poisoned task failures. The channel is never
// closed. Errors are dropped when it is full.
func (p *Processor) Errors() <-chan error {
	return p.errs
}

// Ready is closed the first time the worker is subscribed and accepting tasks.
func (p *Processor) Ready() <-chan struct{} {
	return p.ready
}

// IsRunning reports whether tasks are currently accepted.
func (p *Processor) IsRunning() bool {
	return p.running.Load()
}

// Run consumes tasks until ctx is cancelled.
func (p *Processor) Run(ctx context.Context) error {
	if p.closed.Load() {
		return errors.New("analysis processor closed")
	}

	router, err := NewRouter(&p.cfg, p.pubsub, p.wmLogger, func(retryNum int, delay time.Duration) {
		metrics.RecordTask(metrics.TaskRetried)
		p.logger.Debug().Int("retry", retryNum).Dur("delay", delay).Msg("retrying analysis task")
	})
	if err != nil {
		return err
	}
	router.AddConsumerHandler(taskHandlerName, p.cfg.Topic, p.pubsub, p.handler.Handle)
	router.AddConsumerHandler(poisonHandlerName, p.cfg.PoisonTopic, p.pubsub, p.handler.HandlePoisoned)

	p.mu.Lock()
	if p.closed.Load() {
		p.mu.Unlock()
		return errors.New("analysis processor closed")
	}
	p.router = router
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		if p.router == router {
			p.router = nil
		}
		p.mu.Unlock()
	}()

	var mu sync.Mutex
	stopped := false
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-router.Running():
			mu.Lock()
			defer mu.Unlock()
			if stopped {
				return
			}
			p.running.Store(true)
			p.readyOnce.Do(func() { close(p.ready) })
			p.taskLog.RouterStarted(p.cfg.Topic)
		case <-done:
		}
	}()

	err = router.Run(ctx)

	mu.Lock()
	stopped = true
	p.running.Store(false)
	mu.Unlock()
	p.taskLog.RouterStopped(p.cfg.Topic)
	if err != nil {
		return fmt.Errorf("analysis router: %w", err)
	}
	return nil
}

// Close stops accepting tasks, closes a running router, waiting up to
// CloseTimeout for in-flight tasks, then closes the pub/sub.
func (p *Processor) Close() error {
	p.mu.Lock()
	if p.closed.Swap(true) {
		p.mu.Unlock()
		return nil
	}
	router := p.router
	p.mu.Unlock()

	p.running.Store(false)

	var errs []error
	if router != nil {
		if err := router.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close analysis router: %w", err))
		}
	}
	if err := p.pubsub.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close analysis pubsub: %w", err))
	}
	return errors.Join(errs...)
}
