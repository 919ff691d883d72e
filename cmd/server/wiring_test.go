// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

package main

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/tomtom215/meridian/internal/config"
	"github.com/tomtom215/meridian/internal/database"
	"github.com/tomtom215/meridian/internal/eventprocessor"
	"github.com/tomtom215/meridian/internal/models"
	"github.com/tomtom215/meridian/internal/recommend"
	"github.com/tomtom215/meridian/internal/recommend/storage"
)

func loadDefaults(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv(config.ConfigPathEnvVar, filepath.Join(t.TempDir(), "absent.yaml"))
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load() error: %v", err)
	}
	return cfg
}

func TestLateUpdater(t *testing.T) {
	u := &lateUpdater{}

	_, err := u.UpdateRecommendations(context.Background(), "u1", models.ItemTypeJob)
	if !errors.Is(err, errEngineNotBound) {
		t.Fatalf("unbound error = %v, want %v", err, errEngineNotBound)
	}

	e := &recommend.Engine{}
	u.bind(e)
	if got := u.engine.Load(); got != e {
		t.Errorf("bound engine = %p, want %p", got, e)
	}
}

func TestEngineConfigMatchesDefaults(t *testing.T) {
	cfg := loadDefaults(t)

	got := engineConfig(&cfg.Recommend)
	if err := got.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if want := recommend.DefaultConfig(); !reflect.DeepEqual(got, want) {
		t.Errorf("engineConfig() = %+v, want %+v", got, want)
	}
}

func TestQueueConfigMatchesDefaults(t *testing.T) {
	cfg := loadDefaults(t)

	got := queueConfig(&cfg.Queue)
	if err := got.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if want := eventprocessor.DefaultConfig(); !reflect.DeepEqual(got, want) {
		t.Errorf("queueConfig() = %+v, want %+v", got, want)
	}
}

func TestStoreConfig(t *testing.T) {
	tests := []struct {
		name         string
		in           config.StoreConfig
		wantFailures uint32
		wantTimeout  time.Duration
	}{
		{
			name:         "zero breaker settings keep defaults",
			in:           config.StoreConfig{Path: "/tmp/recs"},
			wantFailures: 5,
			wantTimeout:  30 * time.Second,
		},
		{
			name:         "explicit breaker settings",
			in:           config.StoreConfig{Path: "/tmp/recs", BreakerFailures: 2, BreakerTimeout: time.Second},
			wantFailures: 2,
			wantTimeout:  time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := storeConfig(&tt.in)
			if got.Path != tt.in.Path {
				t.Errorf("Path = %q, want %q", got.Path, tt.in.Path)
			}
			if got.BreakerFailures != tt.wantFailures {
				t.Errorf("BreakerFailures = %d, want %d", got.BreakerFailures, tt.wantFailures)
			}
			if got.BreakerTimeout != tt.wantTimeout {
				t.Errorf("BreakerTimeout = %v, want %v", got.BreakerTimeout, tt.wantTimeout)
			}
		})
	}
}

func TestCleanupAndRouterConfig(t *testing.T) {
	cfg := loadDefaults(t)

	cleanup := cleanupConfig(&cfg.Cleanup)
	if cleanup.Interval != 24*time.Hour || cleanup.RetentionDays != 365 {
		t.Errorf("cleanupConfig() = %+v", cleanup)
	}

	router := routerConfig(&cfg.Server)
	if router.RateLimitRequests != cfg.Server.MetricsRateLimit {
		t.Errorf("RateLimitRequests = %d, want %d", router.RateLimitRequests, cfg.Server.MetricsRateLimit)
	}
	if router.Version != version {
		t.Errorf("Version = %q, want %q", router.Version, version)
	}
}

type fakeRunner struct {
	running bool
}

func (f *fakeRunner) IsRunning() bool { return f.running }

func TestHealthChecksAndItemDirectory(t *testing.T) {
	db, err := database.New(&config.DatabaseConfig{Path: ":memory:", MaxMemory: "512MB", Threads: 2}, zerolog.Nop())
	if err != nil {
		t.Fatalf("database.New() error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store, err := storage.Open(storage.Config{InMemory: true}, zerolog.Nop())
	if err != nil {
		t.Fatalf("storage.Open() error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	worker := &fakeRunner{running: true}
	for _, check := range healthChecks(db, store, worker) {
		if err := check.Check(context.Background()); err != nil {
			t.Errorf("%s check error: %v", check.Name, err)
		}
	}

	worker.running = false
	for _, check := range healthChecks(db, store, worker) {
		if check.Name != "analysis" {
			continue
		}
		if err := check.Check(context.Background()); !errors.Is(err, errAnalysisStopped) {
			t.Errorf("stopped analysis check error = %v, want %v", err, errAnalysisStopped)
		}
	}

	dir := itemDirectory(db.Items())
	if got := dir.Types(); len(got) != len(models.ItemTypes) {
		t.Errorf("registered types = %v, want %v", got, models.ItemTypes)
	}
}
