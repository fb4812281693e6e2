package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/metricsgate/internal/execctx"
	"git.home.luguber.info/inful/metricsgate/internal/logfields"
)

// Recorder adapts a Store to the metrics layer's denial-recording hook.
// Recording is best effort: store failures are logged, never surfaced to the
// denied caller.
type Recorder struct {
	store Store
}

// NewRecorder creates a Recorder over store.
func NewRecorder(store Store) *Recorder {
	return &Recorder{store: store}
}

// RecordDenial persists one capability denial.
func (r *Recorder) RecordDenial(ctx context.Context, identity, capabilityName, metric string) {
	d := Denial{
		ID:         uuid.NewString(),
		Identity:   identity,
		Capability: capabilityName,
		Metric:     metric,
		OccurredAt: time.Now(),
	}
	if ec, ok := execctx.FromContext(ctx); ok {
		d.TenantID = ec.TenantID
	}

	if err := r.store.Append(ctx, d); err != nil {
		slog.Error("Failed to record capability denial",
			logfields.Identity(identity), logfields.Metric(metric), logfields.Error(err))
	}
}
