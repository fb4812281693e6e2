package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// natsConn is the subset of *nats.Conn this publisher needs; tests substitute
// a recording fake.
type natsConn interface {
	Publish(subject string, data []byte) error
	Drain() error
}

// NATSPublisher publishes metric update events as JSON to NATS subjects of the
// form "<prefix>.<kind>".
type NATSPublisher struct {
	conn          natsConn
	subjectPrefix string
}

// NewNATSPublisher connects to the NATS server at url.
func NewNATSPublisher(url, subjectPrefix string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("metricsgate"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats %s: %w", url, err)
	}
	return &NATSPublisher{conn: conn, subjectPrefix: subjectPrefix}, nil
}

func (p *NATSPublisher) CounterInc(metric string, labels map[string]string, delta uint64) error {
	return p.publish(Event{Metric: metric, Kind: kindCounterInc, Labels: labels, Delta: delta})
}

func (p *NATSPublisher) GaugeSet(metric string, labels map[string]string, value float64) error {
	return p.publish(Event{Metric: metric, Kind: kindGaugeSet, Labels: labels, Value: value})
}

func (p *NATSPublisher) HistogramRecord(metric string, labels map[string]string, value float64) error {
	return p.publish(Event{Metric: metric, Kind: kindHistogramRecord, Labels: labels, Value: value})
}

// Close flushes pending events and closes the connection.
func (p *NATSPublisher) Close() error {
	return p.conn.Drain()
}

func (p *NATSPublisher) publish(ev Event) error {
	ev.Timestamp = time.Now().UTC()
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	subject := p.subjectPrefix + "." + ev.Kind
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	return nil
}
