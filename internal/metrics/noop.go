package metrics

import "context"

// noopRegistry is the backend used when metrics collection is disabled. Every
// create call succeeds; every mutation is accepted and discarded. Callers need
// no branching at call sites.
type noopRegistry struct{}

// NewNoopRegistry returns a registry that records nothing.
func NewNoopRegistry() Registry {
	return noopRegistry{}
}

func (noopRegistry) RegistryName() string { return "noop" }

func (noopRegistry) Counter(_ context.Context, name, description string, labels map[string]string) (Counter, error) {
	return noopCounter{newIdentity(name, description, MetricTypeCounter, labels)}, nil
}

func (noopRegistry) Gauge(_ context.Context, name, description string, labels map[string]string) (Gauge, error) {
	return noopGauge{newIdentity(name, description, MetricTypeGauge, labels)}, nil
}

func (noopRegistry) Histogram(_ context.Context, name, description string, labels map[string]string) (Histogram, error) {
	return noopHistogram{newIdentity(name, description, MetricTypeHistogram, labels)}, nil
}

func (noopRegistry) Shutdown() error { return nil }

type noopCounter struct{ metricIdentity }

func (noopCounter) Inc(uint64) error { return nil }
func (noopCounter) Value() uint64    { return 0 }

type noopGauge struct{ metricIdentity }

func (noopGauge) Set(float64) error { return nil }
func (noopGauge) Inc(float64) error { return nil }
func (noopGauge) Dec(float64) error { return nil }
func (noopGauge) Value() float64    { return 0 }

type noopHistogram struct{ metricIdentity }

func (noopHistogram) Record(float64) error { return nil }

// StartTimer still measures elapsed wall time; recording it is a no-op.
func (h noopHistogram) StartTimer() *Timer { return newTimer(h) }
