package config

import (
	"net"

	mgerrors "git.home.luguber.info/inful/metricsgate/internal/errors"
)

// Validate checks structural configuration invariants. Endpoint reachability
// is not checked here; the backend verifies the listener at install time.
func (c *Config) Validate() error {
	if err := c.validateMetrics(); err != nil {
		return err
	}
	if err := c.validateCapabilities(); err != nil {
		return err
	}
	if err := c.validateAudit(); err != nil {
		return err
	}
	return c.validateEvents()
}

func (c *Config) validateMetrics() error {
	if !c.Metrics.Enabled || !c.Metrics.PrometheusEnabled {
		return nil
	}
	if c.Metrics.PrometheusEndpoint == "" {
		return mgerrors.ConfigRequired("metrics.prometheus_endpoint")
	}
	if _, _, err := net.SplitHostPort(c.Metrics.PrometheusEndpoint); err != nil {
		return mgerrors.InvalidEndpoint(c.Metrics.PrometheusEndpoint, err)
	}
	return nil
}

func (c *Config) validateCapabilities() error {
	if !c.Capabilities.Enforce {
		return nil
	}
	if c.Capabilities.GrantsFile == "" && len(c.Capabilities.Grants) == 0 {
		return mgerrors.ConfigRequired("capabilities.grants or capabilities.grants_file")
	}
	if c.Capabilities.WatchGrants && c.Capabilities.GrantsFile == "" {
		return mgerrors.ConfigRequired("capabilities.grants_file")
	}
	return nil
}

func (c *Config) validateAudit() error {
	if !c.Audit.Enabled {
		return nil
	}
	if c.Audit.DBPath == "" {
		return mgerrors.ConfigRequired("audit.db_path")
	}
	if c.Audit.RetentionDays < 0 {
		return mgerrors.New(mgerrors.CategoryConfig, mgerrors.SeverityFatal,
			"audit retention must not be negative").
			WithContext("retention_days", c.Audit.RetentionDays)
	}
	return nil
}

func (c *Config) validateEvents() error {
	if !c.Events.Enabled {
		return nil
	}
	if c.Events.URL == "" {
		return mgerrors.ConfigRequired("events.url")
	}
	return nil
}
