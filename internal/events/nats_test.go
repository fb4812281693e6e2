package events

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	subjects []string
	payloads [][]byte
	err      error
	drained  bool
}

func (f *fakeConn) Publish(subject string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.subjects = append(f.subjects, subject)
	f.payloads = append(f.payloads, data)
	return nil
}

func (f *fakeConn) Drain() error {
	f.drained = true
	return nil
}

func TestNATSPublisherSubjectsAndPayloads(t *testing.T) {
	conn := &fakeConn{}
	p := &NATSPublisher{conn: conn, subjectPrefix: "metricsgate.events"}

	require.NoError(t, p.CounterInc("pages_rendered_total", map[string]string{"plugin_id": "themes"}, 3))
	require.NoError(t, p.GaugeSet("queue_depth", nil, 12.5))
	require.NoError(t, p.HistogramRecord("render_seconds", nil, 0.25))

	require.Equal(t, []string{
		"metricsgate.events.counter_inc",
		"metricsgate.events.gauge_set",
		"metricsgate.events.histogram_record",
	}, conn.subjects)

	var ev Event
	require.NoError(t, json.Unmarshal(conn.payloads[0], &ev))
	assert.Equal(t, "pages_rendered_total", ev.Metric)
	assert.Equal(t, "counter_inc", ev.Kind)
	assert.Equal(t, uint64(3), ev.Delta)
	assert.Equal(t, "themes", ev.Labels["plugin_id"])
	assert.False(t, ev.Timestamp.IsZero())
}

func TestNATSPublisherPropagatesPublishError(t *testing.T) {
	conn := &fakeConn{err: errors.New("connection closed")}
	p := &NATSPublisher{conn: conn, subjectPrefix: "metricsgate.events"}

	err := p.GaugeSet("queue_depth", nil, 1)
	require.Error(t, err)
}

func TestNATSPublisherCloseDrains(t *testing.T) {
	conn := &fakeConn{}
	p := &NATSPublisher{conn: conn, subjectPrefix: "x"}
	require.NoError(t, p.Close())
	assert.True(t, conn.drained)
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.CounterInc("a", nil, 1))
	assert.NoError(t, p.GaugeSet("b", nil, 2))
	assert.NoError(t, p.HistogramRecord("c", nil, 3))
	assert.NoError(t, p.Close())
}
