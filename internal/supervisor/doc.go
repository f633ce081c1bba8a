// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

/*
Package supervisor runs the long-lived parts of PelisMatch under a suture v4
supervisor tree.

# Layout

	pelismatch
	├── data-layer
	│   └── model-loader      (loads and hot-reloads the embedding model)
	├── messaging-layer
	│   └── events-consumer   (if events.enabled)
	└── api-layer
	    └── http-server

Each layer counts failures on its own, so a model artifact that fails to
parse backs off the loader without restarting the HTTP server. Until the
first model loads the API answers recommendation requests with 503.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewModelLoaderService(rec, cfg.Model, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

Supervisor events (service start, panic, backoff) are logged through the
sutureslog adapter onto the process slog logger, which itself is bridged to
zerolog by the logging package.
*/
package supervisor
