package logfields

import (
	"errors"
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"PluginID", KeyPluginID, "themes", PluginID("themes")},
		{"TenantID", KeyTenantID, "acme", TenantID("acme")},
		{"Identity", KeyIdentity, "rogue", Identity("rogue")},
		{"Capability", KeyCapability, "metrics", Capability("metrics")},
		{"Metric", KeyMetric, "builds_total", Metric("builds_total")},
		{"MetricType", KeyMetricType, "counter", MetricType("counter")},
		{"Registry", KeyRegistry, "prometheus", Registry("prometheus")},
		{"Endpoint", KeyEndpoint, "127.0.0.1:9464", Endpoint("127.0.0.1:9464")},
		{"Subject", KeySubject, "metricsgate.events.gauge_set", Subject("metricsgate.events.gauge_set")},
		{"Path", KeyPath, "/metrics", Path("/metrics")},
	}

	for _, tc := range cases {
		if tc.attr.Key != tc.attrKey {
			// Key drift would break log ingestion schemas.
			t.Fatalf("%s: expected key %s, got %s", tc.name, tc.attrKey, tc.attr.Key)
		}
		if got := tc.attr.Value.String(); got != tc.attrVal {
			t.Fatalf("%s: expected value %s, got %v", tc.name, tc.attrVal, got)
		}
	}
}

func TestErrorAttr(t *testing.T) {
	if got := Error(nil).Value.String(); got != "" {
		t.Errorf("Error(nil) = %q, want empty", got)
	}
	if got := Error(errors.New("boom")).Value.String(); got != "boom" {
		t.Errorf("Error(boom) = %q, want boom", got)
	}
}
