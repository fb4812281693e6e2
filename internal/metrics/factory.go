package metrics

import (
	"git.home.luguber.info/inful/metricsgate/internal/config"
)

// New selects the backend from configuration: metrics disabled yields the
// no-op registry, otherwise the Prometheus backend (which itself skips the
// export listener when only prometheus_enabled is off).
//
// Composition with the capability decorator is the owning system's job, not
// this factory's.
func New(cfg *config.Config, opts ...Option) (Registry, error) {
	if cfg == nil || !cfg.Metrics.Enabled {
		return NewNoopRegistry(), nil
	}
	return NewPrometheusRegistry(cfg.Metrics, opts...)
}
