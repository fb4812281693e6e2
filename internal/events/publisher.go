// Package events mirrors metric updates to an external event stream. The real
// backend forwards every mutation as a named, labeled event; the surrounding
// system decides what to do with them (dashboards, alerting pipelines, replay).
package events

import "time"

// Publisher accepts metric update events. Implementations must be safe for
// concurrent use. Publish failures are reported to the caller but must leave
// the publisher usable for subsequent events.
//
// The stream is best effort: events from concurrent mutations of one metric
// may arrive out of order. Consumers needing the authoritative current value
// should read the export sink, not replay gauge_set events.
type Publisher interface {
	CounterInc(metric string, labels map[string]string, delta uint64) error
	GaugeSet(metric string, labels map[string]string, value float64) error
	HistogramRecord(metric string, labels map[string]string, value float64) error
	Close() error
}

// Event is the wire form of a single metric update.
type Event struct {
	Metric    string            `json:"metric"`
	Kind      string            `json:"kind"` // counter_inc, gauge_set, histogram_record
	Labels    map[string]string `json:"labels,omitempty"`
	Delta     uint64            `json:"delta,omitempty"`
	Value     float64           `json:"value,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

const (
	kindCounterInc      = "counter_inc"
	kindGaugeSet        = "gauge_set"
	kindHistogramRecord = "histogram_record"
)

// NopPublisher discards all events.
type NopPublisher struct{}

func (NopPublisher) CounterInc(string, map[string]string, uint64) error       { return nil }
func (NopPublisher) GaugeSet(string, map[string]string, float64) error        { return nil }
func (NopPublisher) HistogramRecord(string, map[string]string, float64) error { return nil }
func (NopPublisher) Close() error                                             { return nil }
