// Package logfields provides canonical structured log field helpers.
package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPluginID   = "plugin_id"
	KeyTenantID   = "tenant_id"
	KeyIdentity   = "identity"
	KeyCapability = "capability"
	KeyMetric     = "metric"
	KeyMetricType = "metric_type"
	KeyRegistry   = "registry"
	KeyEndpoint   = "endpoint"
	KeySubject    = "subject"
	KeyPath       = "path"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func PluginID(id string) slog.Attr   { return slog.String(KeyPluginID, id) }
func TenantID(id string) slog.Attr   { return slog.String(KeyTenantID, id) }
func Identity(id string) slog.Attr   { return slog.String(KeyIdentity, id) }
func Capability(c string) slog.Attr  { return slog.String(KeyCapability, c) }
func Metric(name string) slog.Attr   { return slog.String(KeyMetric, name) }
func MetricType(t string) slog.Attr  { return slog.String(KeyMetricType, t) }
func Registry(name string) slog.Attr { return slog.String(KeyRegistry, name) }
func Endpoint(addr string) slog.Attr { return slog.String(KeyEndpoint, addr) }
func Subject(s string) slog.Attr     { return slog.String(KeySubject, s) }
func Path(p string) slog.Attr        { return slog.String(KeyPath, p) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
