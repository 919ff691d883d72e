// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package eventprocessor

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

// Router wraps a Watermill router with the task middleware stack.
//
// Middleware order, outermost first:
//  1. PoisonQueue - republish tasks that still fail after retries
//  2. Retry - exponential backoff for transient failures
//  3. Recoverer - turn handler panics into errors so they are retried
type Router struct {
	router *message.Router
}

// NewRouter builds a router. onRetry may be nil.
func NewRouter(
	cfg *Config,
	poisonPublisher message.Publisher,
	logger watermill.LoggerAdapter,
	onRetry func(retryNum int, delay time.Duration),
) (*Router, error) {
	if logger == nil {
		logger = watermill.NopLogger{}
	}

	wmRouter, err := message.NewRouter(message.RouterConfig{CloseTimeout: cfg.CloseTimeout}, logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill router: %w", err)
	}

	if poisonPublisher != nil {
		poisonQueue, err := middleware.PoisonQueue(poisonPublisher, cfg.PoisonTopic)
		if err != nil {
			return nil, fmt.Errorf("create poison queue middleware: %w", err)
		}
		wmRouter.AddMiddleware(poisonQueue)
	}

	retry := middleware.Retry{
		MaxRetries:      cfg.RetryMaxRetries,
		InitialInterval: cfg.RetryInitialInterval,
		MaxInterval:     cfg.RetryMaxInterval,
		Multiplier:      cfg.RetryMultiplier,
		OnRetryHook:     onRetry,
		Logger:          logger,
	}
	wmRouter.AddMiddleware(retry.Middleware, middleware.Recoverer)

	return &Router{router: wmRouter}, nil
}

// AddConsumerHandler registers a handler that produces no messages.
func (r *Router) AddConsumerHandler(
	name string,
	topic string,
	subscriber message.Subscriber,
	handler message.NoPublishHandlerFunc,
) *message.Handler {
	return r.router.AddConsumerHandler(name, topic, subscriber, handler)
}

// Run blocks until ctx is cancelled or Close is called.
func (r *Router) Run(ctx context.Context) error {
	return r.router.Run(ctx)
}

// Running returns a channel closed once all handlers are subscribed.
func (r *Router) Running() chan struct{} {
	return r.router.Running()
}

// Close stops the router, waiting up to CloseTimeout for in-flight tasks.
func (r *Router) Close() error {
	return r.router.Close()
}
