// Meridian - Interaction-Driven Recommendation Learning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/meridian

/*
Package supervisor runs Meridian's long-lived services under suture v4.

The tree has three layers so that a failing layer restarts without touching
the others:

	RootSupervisor ("meridian")
	├── MaintenanceSupervisor ("maintenance")
	│   └── CleanupService           (if CLEANUP_ENABLED)
	├── WorkerSupervisor ("workers")
	│   └── AnalysisService          (Watermill analysis router)
	└── OpsSupervisor ("ops")
	    └── HTTPServerService        (/metrics, /healthz)

Supervisor events (restarts, backoff, timeouts) are logged through
thejerf/sutureslog backed by the zerolog slog bridge.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
	    ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddWorkerService(services.NewAnalysisService(processor, logger))
	tree.AddOpsService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = tree.Serve(ctx)
*/
package supervisor
