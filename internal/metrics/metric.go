package metrics

import (
	"context"
	"maps"
)

// MetricType identifies the kind of a metric instance. It is fixed at creation.
type MetricType string

const (
	MetricTypeCounter   MetricType = "counter"
	MetricTypeGauge     MetricType = "gauge"
	MetricTypeHistogram MetricType = "histogram"
)

// Metric is the identity contract shared by all metric kinds. Accessors never
// fail and are safe for concurrent use.
type Metric interface {
	// Name is the uniqueness key within a registry.
	Name() string
	// Description is the human-readable help text.
	Description() string
	// Type reports the metric kind.
	Type() MetricType
	// Labels returns a copy of the label set bound at creation time.
	Labels() map[string]string
}

// Counter is a metric whose value only increases.
type Counter interface {
	Metric

	// Inc adds delta to the counter. A zero delta is a legal no-op.
	Inc(delta uint64) error
	// Value returns the locally tracked sum of all increments.
	Value() uint64
}

// Gauge is a metric whose value can move in either direction.
type Gauge interface {
	Metric

	Set(value float64) error
	Inc(delta float64) error
	Dec(delta float64) error
	// Value returns the locally tracked current value.
	Value() float64
}

// Histogram records a distribution of observed values. It keeps no local
// distribution state; observations go straight to the backend.
type Histogram interface {
	Metric

	// Record observes a single value.
	Record(value float64) error
	// StartTimer begins a scoped duration measurement that records into this
	// histogram exactly once, on Stop or on deferred ObserveDuration.
	StartTimer() *Timer
}

// Registry creates and looks up metric handles by identity. One handle per
// distinct name is expected per backend; concurrent creators for the same name
// may receive independent handle objects that feed the same exported series.
//
// The context carries the caller's execution metadata (execctx); it is read at
// creation time for capability checks and default-label injection and is never
// retained.
type Registry interface {
	// RegistryName identifies the registry variant, for logs and diagnostics.
	RegistryName() string

	Counter(ctx context.Context, name, description string, labels map[string]string) (Counter, error)
	Gauge(ctx context.Context, name, description string, labels map[string]string) (Gauge, error)
	Histogram(ctx context.Context, name, description string, labels map[string]string) (Histogram, error)

	// Shutdown releases registry resources. Idempotent and safe to call from
	// any goroutine.
	Shutdown() error
}

// metricIdentity carries the immutable identity shared by every metric
// implementation in this package.
type metricIdentity struct {
	name        string
	description string
	typ         MetricType
	labels      map[string]string
}

func newIdentity(name, description string, typ MetricType, labels map[string]string) metricIdentity {
	return metricIdentity{
		name:        name,
		description: description,
		typ:         typ,
		labels:      maps.Clone(labels),
	}
}

func (m metricIdentity) Name() string        { return m.name }
func (m metricIdentity) Description() string { return m.description }
func (m metricIdentity) Type() MetricType    { return m.typ }

func (m metricIdentity) Labels() map[string]string {
	if m.labels == nil {
		return map[string]string{}
	}
	return maps.Clone(m.labels)
}
