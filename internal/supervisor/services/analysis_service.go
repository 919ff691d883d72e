// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// AnalysisWorker is the background analysis processor.
// *eventprocessor.Processor implements it.
type AnalysisWorker interface {
	Run(ctx context.Context) error
	Errors() <-chan error
	Ready() <-chan struct{}
}

// AnalysisService supervises the analysis worker and drains its error channel.
type AnalysisService struct {
	worker  AnalysisWorker
	onError func(error)
	logger  zerolog.Logger
	name    string
}

// NewAnalysisService wraps worker. Abandoned task errors are logged.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewAnalysisService(worker AnalysisWorker, logger zerolog.Logger) *AnalysisService {
	s := &AnalysisService{
		worker: worker,
		logger: logger.With().Str("service", "analysis").Logger(),
		name:   "analysis-worker",
	}
	s.onError = func(err error) {
		s.logger.Warn().Err(err).Msg("analysis task abandoned")
	}
	return s
}

// Serve implements suture.Service.
func (s *AnalysisService) Serve(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- s.worker.Run(runCtx) }()

	errs := s.worker.Errors()
	ready := s.worker.Ready()
	for {
		select {
		case <-ready:
			s.logger.Info().Msg("analysis worker accepting tasks")
			ready = nil
		case err := <-errs:
			s.onError(err)
		case err := <-done:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if err != nil {
				return fmt.Errorf("analysis worker: %w", err)
			}
			return errors.New("analysis worker stopped unexpectedly")
		}
	}
}

func (s *AnalysisService) String() string {
	return s.name
}
