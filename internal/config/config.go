// Package config loads and validates the metricsgate configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	mgerrors "git.home.luguber.info/inful/metricsgate/internal/errors"
)

// Config represents the application configuration
type Config struct {
	Metrics      MetricsConfig    `yaml:"metrics"`
	Capabilities CapabilityConfig `yaml:"capabilities"`
	Audit        AuditConfig      `yaml:"audit"`
	Events       EventsConfig     `yaml:"events"`
	Logging      LoggingConfig    `yaml:"logging"`
}

// MetricsConfig controls the metrics backend selection and export behavior.
type MetricsConfig struct {
	// Enabled selects the real backend; when false every registry call is a no-op.
	Enabled bool `yaml:"enabled"`

	// PrometheusEnabled starts the HTTP export listener on PrometheusEndpoint.
	PrometheusEnabled  bool   `yaml:"prometheus_enabled"`
	PrometheusEndpoint string `yaml:"prometheus_endpoint"` // host:port
	PrometheusPath     string `yaml:"prometheus_path,omitempty"`

	// Namespace prefixes every exported metric name.
	Namespace string `yaml:"namespace,omitempty"`

	// DefaultLabels are merged into every metric's label set; caller-supplied
	// keys always win.
	DefaultLabels map[string]string `yaml:"default_labels,omitempty"`

	// IncludePluginID injects the calling plugin's id as a "plugin_id" label
	// when the execution context carries one.
	IncludePluginID bool `yaml:"include_plugin_id"`

	// IncludeInstanceID injects a per-process "instance_id" label.
	IncludeInstanceID bool `yaml:"include_instance_id"`
}

// CapabilityConfig controls capability enforcement for metric creation.
type CapabilityConfig struct {
	// Enforce wraps the registry in the capability decorator.
	Enforce bool `yaml:"enforce"`

	// Grants maps caller identities to granted capability names.
	Grants map[string][]string `yaml:"grants,omitempty"`

	// GrantsFile points to a YAML grants file; takes precedence over Grants.
	GrantsFile string `yaml:"grants_file,omitempty"`

	// WatchGrants reloads GrantsFile on filesystem changes.
	WatchGrants bool `yaml:"watch_grants"`
}

// AuditConfig controls the capability-denial audit trail.
type AuditConfig struct {
	Enabled bool   `yaml:"enabled"`
	DBPath  string `yaml:"db_path,omitempty"`

	// RetentionDays bounds how long denial records are kept; the pruner runs daily.
	RetentionDays int `yaml:"retention_days,omitempty"`
}

// EventsConfig controls the optional NATS event mirror for metric updates.
type EventsConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url,omitempty"`
	SubjectPrefix string `yaml:"subject_prefix,omitempty"`
}

// LoggingConfig controls structured logging output.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"` // debug, info, warn, error
}

// Load loads configuration from the specified file
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists; missing files are fine.
	loadEnvFiles()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, mgerrors.ConfigNotFound(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Default returns a configuration with metrics disabled and defaults applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Metrics.PrometheusPath == "" {
		c.Metrics.PrometheusPath = "/metrics"
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = "metricsgate"
	}
	if c.Audit.DBPath == "" {
		c.Audit.DBPath = "./metricsgate-audit.db"
	}
	if c.Audit.RetentionDays == 0 {
		c.Audit.RetentionDays = 30
	}
	if c.Events.SubjectPrefix == "" {
		c.Events.SubjectPrefix = "metricsgate.events"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}
