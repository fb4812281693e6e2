package metrics

import (
	"context"
	"maps"

	"git.home.luguber.info/inful/metricsgate/internal/execctx"
)

// Label keys injected from the environment rather than the caller.
const (
	labelPluginID   = "plugin_id"
	labelInstanceID = "instance_id"
)

// mergeLabels combines caller-supplied labels with configuration defaults and
// context-derived labels. Precedence is first-write-wins: caller keys are
// never overwritten, then config defaults fill gaps, then plugin_id (when
// enabled and present in the execution context), then instance_id.
//
// The result is a fresh map; neither input is mutated.
func mergeLabels(
	ctx context.Context,
	caller map[string]string,
	defaults map[string]string,
	includePluginID bool,
	instanceID string,
) map[string]string {
	merged := make(map[string]string, len(caller)+len(defaults)+2)
	maps.Copy(merged, caller)

	for k, v := range defaults {
		if _, exists := merged[k]; !exists {
			merged[k] = v
		}
	}

	if includePluginID {
		if pluginID, ok := execctx.PluginID(ctx); ok {
			if _, exists := merged[labelPluginID]; !exists {
				merged[labelPluginID] = pluginID
			}
		}
	}

	if instanceID != "" {
		if _, exists := merged[labelInstanceID]; !exists {
			merged[labelInstanceID] = instanceID
		}
	}

	return merged
}
