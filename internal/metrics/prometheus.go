package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/metricsgate/internal/config"
	mgerrors "git.home.luguber.info/inful/metricsgate/internal/errors"
	"git.home.luguber.info/inful/metricsgate/internal/events"
	"git.home.luguber.info/inful/metricsgate/internal/server"
)

// sinkInstalled guards the process-wide export listener. The listener is
// installed at most once per process and never re-installed; later registry
// constructions skip the install.
var sinkInstalled atomic.Bool

// PrometheusRegistry is the real backend. Handles track a local snapshot value
// for synchronous reads and forward every update to the Prometheus collectors
// registered in the export sink. Labels are bound to the metric identity at
// creation (ConstLabels), never re-threaded per mutation.
type PrometheusRegistry struct {
	cfg        config.MetricsConfig
	registry   *prom.Registry
	publisher  events.Publisher
	instanceID string

	// exporter is non-nil only on the registry that installed the sink.
	exporter *server.Exporter

	shutdownOnce sync.Once
	shutdownErr  error
}

// Option configures a PrometheusRegistry.
type Option func(*PrometheusRegistry)

// WithPublisher mirrors every metric update to p. The caller owns p's
// lifecycle.
func WithPublisher(p events.Publisher) Option {
	return func(r *PrometheusRegistry) {
		if p != nil {
			r.publisher = p
		}
	}
}

// WithPrometheusRegistry substitutes the underlying collector registry.
func WithPrometheusRegistry(reg *prom.Registry) Option {
	return func(r *PrometheusRegistry) {
		if reg != nil {
			r.registry = reg
		}
	}
}

// NewPrometheusRegistry constructs the real backend. When prometheus export is
// enabled, the endpoint is validated and the HTTP export listener is installed
// exactly once per process; a malformed endpoint or a failed bind is fatal to
// this construction call.
func NewPrometheusRegistry(cfg config.MetricsConfig, opts ...Option) (*PrometheusRegistry, error) {
	r := &PrometheusRegistry{
		cfg:       cfg,
		registry:  prom.NewRegistry(),
		publisher: events.NopPublisher{},
	}
	if cfg.IncludeInstanceID {
		r.instanceID = uuid.NewString()
	}
	for _, opt := range opts {
		opt(r)
	}

	if cfg.PrometheusEnabled {
		if cfg.PrometheusEndpoint == "" {
			return nil, mgerrors.ConfigRequired("metrics.prometheus_endpoint")
		}
		if _, _, err := net.SplitHostPort(cfg.PrometheusEndpoint); err != nil {
			return nil, mgerrors.InvalidEndpoint(cfg.PrometheusEndpoint, err)
		}

		if sinkInstalled.CompareAndSwap(false, true) {
			exporter := server.NewExporter(cfg.PrometheusEndpoint, cfg.PrometheusPath, r.registry)
			if err := exporter.Start(); err != nil {
				// Release the flag so a corrected configuration can retry.
				sinkInstalled.Store(false)
				return nil, mgerrors.BackendInstall(err)
			}
			r.exporter = exporter
		}
	}

	return r, nil
}

func (r *PrometheusRegistry) RegistryName() string { return "prometheus" }

// ExporterAddr returns the bound export listener address, or "" if this
// registry did not install the sink.
func (r *PrometheusRegistry) ExporterAddr() string {
	if r.exporter == nil {
		return ""
	}
	return r.exporter.Addr()
}

func (r *PrometheusRegistry) Counter(ctx context.Context, name, description string, labels map[string]string) (Counter, error) {
	merged := r.mergeLabels(ctx, labels)
	c := prom.NewCounter(prom.CounterOpts{
		Namespace:   r.cfg.Namespace,
		Name:        name,
		Help:        description,
		ConstLabels: prom.Labels(merged),
	})
	collector, err := r.register(name, c)
	if err != nil {
		return nil, err
	}
	counter, ok := collector.(prom.Counter)
	if !ok {
		return nil, mgerrors.BackendRegister(name,
			fmt.Errorf("name already registered as a different metric kind"))
	}
	return &promCounter{
		metricIdentity: newIdentity(name, description, MetricTypeCounter, merged),
		prom:           counter,
		publisher:      r.publisher,
	}, nil
}

func (r *PrometheusRegistry) Gauge(ctx context.Context, name, description string, labels map[string]string) (Gauge, error) {
	merged := r.mergeLabels(ctx, labels)
	g := prom.NewGauge(prom.GaugeOpts{
		Namespace:   r.cfg.Namespace,
		Name:        name,
		Help:        description,
		ConstLabels: prom.Labels(merged),
	})
	collector, err := r.register(name, g)
	if err != nil {
		return nil, err
	}
	gauge, ok := collector.(prom.Gauge)
	if !ok {
		return nil, mgerrors.BackendRegister(name,
			fmt.Errorf("name already registered as a different metric kind"))
	}
	return &promGauge{
		metricIdentity: newIdentity(name, description, MetricTypeGauge, merged),
		prom:           gauge,
		publisher:      r.publisher,
	}, nil
}

func (r *PrometheusRegistry) Histogram(ctx context.Context, name, description string, labels map[string]string) (Histogram, error) {
	merged := r.mergeLabels(ctx, labels)
	h := prom.NewHistogram(prom.HistogramOpts{
		Namespace:   r.cfg.Namespace,
		Name:        name,
		Help:        description,
		ConstLabels: prom.Labels(merged),
		Buckets:     prom.DefBuckets,
	})
	collector, err := r.register(name, h)
	if err != nil {
		return nil, err
	}
	histogram, ok := collector.(prom.Histogram)
	if !ok {
		return nil, mgerrors.BackendRegister(name,
			fmt.Errorf("name already registered as a different metric kind"))
	}
	return &promHistogram{
		metricIdentity: newIdentity(name, description, MetricTypeHistogram, merged),
		prom:           histogram,
		publisher:      r.publisher,
	}, nil
}

// Shutdown stops the export listener if this registry installed it. Idempotent
// and safe from any goroutine. The process-wide install flag stays set;
// re-installation is not supported.
func (r *PrometheusRegistry) Shutdown() error {
	r.shutdownOnce.Do(func() {
		if r.exporter != nil {
			r.shutdownErr = r.exporter.Stop()
		}
	})
	return r.shutdownErr
}

func (r *PrometheusRegistry) mergeLabels(ctx context.Context, caller map[string]string) map[string]string {
	return mergeLabels(ctx, caller, r.cfg.DefaultLabels, r.cfg.IncludePluginID, r.instanceID)
}

// register adds c to the export sink. A collector already registered under the
// same fully-qualified name and label set is reused, so repeated creations for
// one name feed a single exported series. A conflicting registration (same
// name, different description or labels) is a backend error.
func (r *PrometheusRegistry) register(name string, c prom.Collector) (prom.Collector, error) {
	if err := r.registry.Register(c); err != nil {
		var are prom.AlreadyRegisteredError
		if errors.As(err, &are) {
			return are.ExistingCollector, nil
		}
		return nil, mgerrors.BackendRegister(name, err)
	}
	return c, nil
}

// promCounter tracks a lock-free local sum alongside the exported collector.
type promCounter struct {
	metricIdentity
	local     atomic.Uint64
	prom      prom.Counter
	publisher events.Publisher
}

func (c *promCounter) Inc(delta uint64) error {
	// Local state first: a downstream publish failure must not desynchronize
	// the snapshot from what the caller requested.
	c.local.Add(delta)
	c.prom.Add(float64(delta))
	if err := c.publisher.CounterInc(c.name, c.labels, delta); err != nil {
		return mgerrors.BackendPublish(c.name, err)
	}
	return nil
}

func (c *promCounter) Value() uint64 { return c.local.Load() }

// promGauge serializes read-modify-write updates so concurrent increments
// never lose an update.
type promGauge struct {
	metricIdentity
	mu        sync.RWMutex
	local     float64
	prom      prom.Gauge
	publisher events.Publisher
}

func (g *promGauge) Set(value float64) error { return g.apply(func(float64) float64 { return value }) }
func (g *promGauge) Inc(delta float64) error { return g.apply(func(v float64) float64 { return v + delta }) }
func (g *promGauge) Dec(delta float64) error { return g.apply(func(v float64) float64 { return v - delta }) }

func (g *promGauge) apply(f func(float64) float64) error {
	g.mu.Lock()
	g.local = f(g.local)
	value := g.local
	g.prom.Set(value)
	g.mu.Unlock()

	if err := g.publisher.GaugeSet(g.name, g.labels, value); err != nil {
		return mgerrors.BackendPublish(g.name, err)
	}
	return nil
}

func (g *promGauge) Value() float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.local
}

// promHistogram keeps no local distribution; observations go straight to the
// collector, which handles its own aggregation safety.
type promHistogram struct {
	metricIdentity
	prom      prom.Histogram
	publisher events.Publisher
}

func (h *promHistogram) Record(value float64) error {
	h.prom.Observe(value)
	if err := h.publisher.HistogramRecord(h.name, h.labels, value); err != nil {
		return mgerrors.BackendPublish(h.name, err)
	}
	return nil
}

func (h *promHistogram) StartTimer() *Timer { return newTimer(h) }
