package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Pruner periodically deletes denial records past the retention window.
type Pruner struct {
	scheduler gocron.Scheduler
	store     Store
	retention time.Duration
}

// NewPruner creates a pruner that keeps records for retention.
func NewPruner(store Store, retention time.Duration) (*Pruner, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	return &Pruner{
		scheduler: s,
		store:     store,
		retention: retention,
	}, nil
}

// Start schedules the daily prune job and begins the scheduler.
func (p *Pruner) Start() error {
	_, err := p.scheduler.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(p.prune),
		gocron.WithName("audit-prune"),
	)
	if err != nil {
		return fmt.Errorf("failed to create prune job: %w", err)
	}

	slog.Info("Starting audit pruner", "retention", p.retention)
	p.scheduler.Start()
	return nil
}

// Stop gracefully shuts down the scheduler.
func (p *Pruner) Stop() error {
	slog.Info("Stopping audit pruner")
	return p.scheduler.Shutdown()
}

func (p *Pruner) prune() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().Add(-p.retention)
	removed, err := p.store.Prune(ctx, cutoff)
	if err != nil {
		slog.Error("Audit prune failed", "error", err)
		return
	}
	if removed > 0 {
		slog.Info("Pruned audit records", "removed", removed, "cutoff", cutoff)
	}
}
