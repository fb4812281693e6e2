package metrics

import (
	"context"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/metricsgate/internal/capability"
	mgerrors "git.home.luguber.info/inful/metricsgate/internal/errors"
	"git.home.luguber.info/inful/metricsgate/internal/execctx"
	"git.home.luguber.info/inful/metricsgate/internal/logfields"
)

// DenialRecorder receives capability denials for auditing. Implementations
// must not block; recording failures are their own concern.
type DenialRecorder interface {
	RecordDenial(ctx context.Context, identity, capabilityName, metric string)
}

// CapabilityRegistry decorates any Registry with a capability check on every
// handle creation. The check resolves the caller identity from the execution
// context and fails closed: on denial or checker failure the inner registry is
// never touched. Mutations on handles that were already issued are not
// re-checked; revocation affects future creations only.
type CapabilityRegistry struct {
	inner   Registry
	checker capability.Checker
	denials DenialRecorder
}

// CapabilityOption configures a CapabilityRegistry.
type CapabilityOption func(*CapabilityRegistry)

// WithDenialRecorder records every denial for auditing.
func WithDenialRecorder(r DenialRecorder) CapabilityOption {
	return func(cr *CapabilityRegistry) { cr.denials = r }
}

// NewCapabilityRegistry wraps inner with capability enforcement.
func NewCapabilityRegistry(inner Registry, checker capability.Checker, opts ...CapabilityOption) *CapabilityRegistry {
	cr := &CapabilityRegistry{inner: inner, checker: checker}
	for _, opt := range opts {
		opt(cr)
	}
	return cr
}

func (r *CapabilityRegistry) RegistryName() string {
	return fmt.Sprintf("capability_registry(%s)", r.inner.RegistryName())
}

func (r *CapabilityRegistry) Counter(ctx context.Context, name, description string, labels map[string]string) (Counter, error) {
	if err := r.authorize(ctx, name); err != nil {
		return nil, err
	}
	return r.inner.Counter(ctx, name, description, labels)
}

func (r *CapabilityRegistry) Gauge(ctx context.Context, name, description string, labels map[string]string) (Gauge, error) {
	if err := r.authorize(ctx, name); err != nil {
		return nil, err
	}
	return r.inner.Gauge(ctx, name, description, labels)
}

func (r *CapabilityRegistry) Histogram(ctx context.Context, name, description string, labels map[string]string) (Histogram, error) {
	if err := r.authorize(ctx, name); err != nil {
		return nil, err
	}
	return r.inner.Histogram(ctx, name, description, labels)
}

// Shutdown delegates without a check; shutdown is administrative, not a
// per-caller resource request.
func (r *CapabilityRegistry) Shutdown() error {
	return r.inner.Shutdown()
}

func (r *CapabilityRegistry) authorize(ctx context.Context, metric string) error {
	identity := execctx.Identity(ctx)

	held, err := r.checker.Check(identity, capability.CapabilityMetrics)
	if err != nil {
		return mgerrors.CapabilityCheckFailed(identity, err)
	}
	if !held {
		slog.Debug("Metric creation denied",
			logfields.Identity(identity), logfields.Metric(metric))
		if r.denials != nil {
			r.denials.RecordDenial(ctx, identity, string(capability.CapabilityMetrics), metric)
		}
		return mgerrors.CapabilityDenied(identity, string(capability.CapabilityMetrics))
	}
	return nil
}
