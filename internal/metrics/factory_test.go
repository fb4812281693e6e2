package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/metricsgate/internal/config"
)

func TestFactoryDisabledYieldsNoop(t *testing.T) {
	cfg := config.Default()
	cfg.Metrics.Enabled = false

	reg, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, "noop", reg.RegistryName())

	c, err := reg.Counter(context.Background(), "a_total", "a", nil)
	require.NoError(t, err)
	_ = c.Inc(10)
	assert.Zero(t, c.Value())
}

func TestFactoryNilConfigYieldsNoop(t *testing.T) {
	reg, err := New(nil)
	require.NoError(t, err)
	assert.Equal(t, "noop", reg.RegistryName())
}

func TestFactoryEnabledYieldsPrometheus(t *testing.T) {
	cfg := config.Default()
	cfg.Metrics.Enabled = true
	// prometheus_enabled stays off: real backend without export listener.

	reg, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, "prometheus", reg.RegistryName())

	c, err := reg.Counter(context.Background(), "a_total", "a", nil)
	require.NoError(t, err)
	require.NoError(t, c.Inc(2))
	assert.Equal(t, uint64(2), c.Value())
}
