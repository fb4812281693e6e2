package metrics

import (
	"context"
	"testing"
)

func TestNoopCounterStaysZero(t *testing.T) {
	reg := NewNoopRegistry()
	c, err := reg.Counter(context.Background(), "builds_total", "Builds", nil)
	if err != nil {
		t.Fatalf("Counter() error: %v", err)
	}

	for i := 0; i < 10; i++ {
		if err := c.Inc(5); err != nil {
			t.Fatalf("Inc() error: %v", err)
		}
	}
	if got := c.Value(); got != 0 {
		t.Errorf("Value() = %d, want 0", got)
	}
}

func TestNoopGaugeStaysZero(t *testing.T) {
	reg := NewNoopRegistry()
	g, err := reg.Gauge(context.Background(), "queue_depth", "Queue depth", nil)
	if err != nil {
		t.Fatalf("Gauge() error: %v", err)
	}

	_ = g.Set(42)
	_ = g.Inc(7)
	_ = g.Dec(3)

	if got := g.Value(); got != 0.0 {
		t.Errorf("Value() = %v, want 0.0", got)
	}
}

func TestNoopHistogramAcceptsRecordAndTimer(t *testing.T) {
	reg := NewNoopRegistry()
	h, err := reg.Histogram(context.Background(), "render_seconds", "Render time", nil)
	if err != nil {
		t.Fatalf("Histogram() error: %v", err)
	}

	if err := h.Record(1.5); err != nil {
		t.Errorf("Record() error: %v", err)
	}

	timer := h.StartTimer()
	elapsed, err := timer.Stop()
	if err != nil {
		t.Errorf("Stop() error: %v", err)
	}
	if elapsed < 0 {
		t.Errorf("elapsed = %v, want >= 0", elapsed)
	}
}

func TestNoopIdentityPreserved(t *testing.T) {
	reg := NewNoopRegistry()
	c, _ := reg.Counter(context.Background(), "x_total", "things", map[string]string{"k": "v"})

	if c.Name() != "x_total" || c.Description() != "things" || c.Type() != MetricTypeCounter {
		t.Errorf("identity mismatch: %s %s %s", c.Name(), c.Description(), c.Type())
	}
	if c.Labels()["k"] != "v" {
		t.Errorf("Labels() = %v, want k=v", c.Labels())
	}
}

func TestNoopRegistryNameAndShutdown(t *testing.T) {
	reg := NewNoopRegistry()
	if reg.RegistryName() != "noop" {
		t.Errorf("RegistryName() = %q, want noop", reg.RegistryName())
	}
	if err := reg.Shutdown(); err != nil {
		t.Errorf("Shutdown() error: %v", err)
	}
	if err := reg.Shutdown(); err != nil {
		t.Errorf("second Shutdown() error: %v", err)
	}
}
