// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/meridian/internal/metrics"
	"github.com/tomtom215/meridian/internal/recommend"
)

const storeName = "badger"

// Config configures the BadgerDB store.
type Config struct {
	// Path is the BadgerDB directory. Ignored when InMemory is set.
	Path string

	// InMemory keeps all data in memory. Used by tests.
	InMemory bool

	// SyncWrites fsyncs every write.
	SyncWrites bool

	// BreakerFailures is how many consecutive failures open the breaker.
	BreakerFailures uint32

	// BreakerTimeout is how long the breaker stays open before probing.
	BreakerTimeout time.Duration

	// ConflictRetries is how many times a read-write transaction is rerun
	// after badger.ErrConflict. Default: 10
	ConflictRetries int

	// Clock defaults to time.Now. Expiry checks use it.
	Clock func() time.Time
}

// DefaultConfig returns production defaults for path.
func DefaultConfig(path string) Config {
	return Config{
		Path:            path,
		SyncWrites:      true,
		BreakerFailures: 5,
		BreakerTimeout:  30 * time.Second,
		ConflictRetries: 10,
	}
}

var (
	_ recommend.RecommendationStore = (*Store)(nil)
	_ recommend.PreferenceStore     = (*Store)(nil)
)

// Store implements recommend.RecommendationStore and recommend.PreferenceStore.
type Store struct {
	db     *badger.DB
	cb     *gobreaker.CircuitBreaker[interface{}]
	logger zerolog.Logger
	now    func() time.Time

	conflictRetries int
}

// Open opens (or creates) the BadgerDB database described by cfg.
func Open(cfg Config, logger zerolog.Logger) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("store path is required")
	}

	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.SyncWrites = cfg.SyncWrites
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	s := New(db, cfg, logger)
	s.logger.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Msg("recommendation store opened")
	return s, nil
}

// New wraps an already opened database.
func New(db *badger.DB, cfg Config, logger zerolog.Logger) *Store {
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = 5
	}
	if cfg.BreakerTimeout <= 0 {
		cfg.BreakerTimeout = 30 * time.Second
	}
	if cfg.ConflictRetries <= 0 {
		cfg.ConflictRetries = 10
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	s := &Store{
		db:              db,
		logger:          logger.With().Str("component", "recommend_store").Logger(),
		now:             cfg.Clock,
		conflictRetries: cfg.ConflictRetries,
	}
	s.cb = newBreaker(cfg, s.logger)
	return s
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks that the database accepts reads.
func (s *Store) Ping() error {
	return s.execute("ping", func() error {
		return s.db.View(func(*badger.Txn) error { return nil })
	})
}

func newBreaker(cfg Config, logger zerolog.Logger) *gobreaker.CircuitBreaker[interface{}] {
	metrics.StoreBreakerState.WithLabelValues(storeName).Set(0)

	return gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        storeName,
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, recommend.ErrNotFound) ||
				errors.Is(err, badger.ErrConflict)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("store circuit breaker state changed")
			metrics.StoreBreakerState.WithLabelValues(name).Set(stateValue(to))
		},
	})
}

func stateValue(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// execute runs fn through the breaker and records the operation.
func (s *Store) execute(operation string, fn func() error) error {
	start := time.Now()
	_, err := s.cb.Execute(func() (interface{}, error) {
		return nil, fn()
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		err = fmt.Errorf("%s: %w", operation, recommend.ErrStoreUnavailable)
	}

	recorded := err
	if errors.Is(err, recommend.ErrNotFound) {
		recorded = nil
	}
	metrics.RecordStoreOperation(storeName, operation, time.Since(start), recorded)
	return err
}

// update runs fn in a read-write transaction through the breaker. On
// badger.ErrConflict the whole transaction, reads included, is run again.
func (s *Store) update(ctx context.Context, operation string, fn func(txn *badger.Txn) error) error {
	return s.execute(operation, func() error {
		var err error
		for attempt := 0; attempt <= s.conflictRetries; attempt++ {
			if attempt > 0 {
				metrics.StoreConflictRetries.WithLabelValues(storeName, operation).Inc()
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(conflictBackoff(attempt)):
				}
			}
			err = s.db.Update(fn)
			if !errors.Is(err, badger.ErrConflict) {
				return err
			}
		}
		s.logger.Warn().
			Str("operation", operation).
			Int("attempts", s.conflictRetries+1).
			Msg("store transaction still conflicting after retries")
		return err
	})
}

// conflictBackoff grows linearly from 1ms and is capped at 20ms.
func conflictBackoff(attempt int) time.Duration {
	d := time.Duration(attempt) * time.Millisecond
	if d > 20*time.Millisecond {
		d = 20 * time.Millisecond
	}
	return d
}
