package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/metricsgate/internal/audit"
	"git.home.luguber.info/inful/metricsgate/internal/capability"
	"git.home.luguber.info/inful/metricsgate/internal/config"
	"git.home.luguber.info/inful/metricsgate/internal/events"
	"git.home.luguber.info/inful/metricsgate/internal/metrics"
)

// runServe wires the metrics host together and blocks until a signal arrives.
// Plugins are handed the composed (capability-enforcing) registry by the
// owning system; host self-metrics bypass the decorator since the host is
// trusted.
func runServe(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Event mirror
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Events.Enabled {
		p, err := events.NewNATSPublisher(cfg.Events.URL, cfg.Events.SubjectPrefix)
		if err != nil {
			return err
		}
		publisher = p
		defer func() {
			if err := publisher.Close(); err != nil {
				slog.Warn("Failed to drain event publisher", "error", err)
			}
		}()
		slog.Info("Event mirror enabled", "url", cfg.Events.URL, "subject_prefix", cfg.Events.SubjectPrefix)
	}

	// Backend registry (real or no-op, per configuration)
	backend, err := metrics.New(cfg, metrics.WithPublisher(publisher))
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Shutdown(); err != nil {
			slog.Warn("Registry shutdown failed", "error", err)
		}
	}()

	// Capability enforcement
	registry, cleanup, err := composeRegistry(ctx, cfg, backend)
	if err != nil {
		return err
	}
	defer cleanup()

	slog.Info("metricsgate ready", "registry", registry.RegistryName())

	if err := startHeartbeat(ctx, backend); err != nil {
		slog.Warn("Failed to start heartbeat metrics", "error", err)
	}

	<-ctx.Done()
	slog.Info("Shutting down")
	return nil
}

// composeRegistry wraps the backend in the capability decorator when
// enforcement is on, wiring the grants source, the grants watcher, and the
// denial audit trail.
func composeRegistry(ctx context.Context, cfg *config.Config, backend metrics.Registry) (metrics.Registry, func(), error) {
	cleanup := func() {}
	if !cfg.Capabilities.Enforce {
		return backend, cleanup, nil
	}

	var cleanups []func()
	runCleanups := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	var checker capability.Checker
	if cfg.Capabilities.GrantsFile != "" {
		fc, err := capability.NewFileChecker(cfg.Capabilities.GrantsFile)
		if err != nil {
			return nil, cleanup, err
		}
		checker = fc

		if cfg.Capabilities.WatchGrants {
			watcher, err := capability.NewGrantsWatcher(fc)
			if err != nil {
				return nil, cleanup, err
			}
			if err := watcher.Start(ctx); err != nil {
				_ = watcher.Stop()
				return nil, cleanup, err
			}
			cleanups = append(cleanups, func() {
				if err := watcher.Stop(); err != nil {
					slog.Warn("Grants watcher stop failed", "error", err)
				}
			})
		}
	} else {
		checker = capability.NewStaticChecker(cfg.Capabilities.Grants)
	}

	var opts []metrics.CapabilityOption
	if cfg.Audit.Enabled {
		store, err := audit.NewSQLiteStore(cfg.Audit.DBPath)
		if err != nil {
			runCleanups()
			return nil, cleanup, err
		}
		cleanups = append(cleanups, func() {
			if err := store.Close(); err != nil {
				slog.Warn("Audit store close failed", "error", err)
			}
		})

		retention := time.Duration(cfg.Audit.RetentionDays) * 24 * time.Hour
		pruner, err := audit.NewPruner(store, retention)
		if err != nil {
			runCleanups()
			return nil, cleanup, err
		}
		if err := pruner.Start(); err != nil {
			runCleanups()
			return nil, cleanup, err
		}
		cleanups = append(cleanups, func() {
			if err := pruner.Stop(); err != nil {
				slog.Warn("Audit pruner stop failed", "error", err)
			}
		})

		opts = append(opts, metrics.WithDenialRecorder(audit.NewRecorder(store)))
	}

	return metrics.NewCapabilityRegistry(backend, checker, opts...), runCleanups, nil
}

// startHeartbeat publishes host liveness through the backend registry.
func startHeartbeat(ctx context.Context, backend metrics.Registry) error {
	uptime, err := backend.Gauge(ctx, "uptime_seconds", "Host uptime in seconds", nil)
	if err != nil {
		return err
	}
	heartbeats, err := backend.Counter(ctx, "heartbeats_total", "Host heartbeat ticks", nil)
	if err != nil {
		return err
	}

	start := time.Now()
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := uptime.Set(time.Since(start).Seconds()); err != nil {
					slog.Debug("Heartbeat gauge update failed", "error", err)
				}
				if err := heartbeats.Inc(1); err != nil {
					slog.Debug("Heartbeat counter update failed", "error", err)
				}
			}
		}
	}()
	return nil
}
