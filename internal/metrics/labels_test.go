package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"git.home.luguber.info/inful/metricsgate/internal/execctx"
)

func TestMergeLabelsCallerWins(t *testing.T) {
	ctx := execctx.WithPlugin(context.Background(), "themes")

	caller := map[string]string{"service": "caller", "plugin_id": "caller-pinned"}
	defaults := map[string]string{"service": "default", "region": "eu"}

	merged := mergeLabels(ctx, caller, defaults, true, "")

	assert.Equal(t, "caller", merged["service"], "caller-supplied keys must never be overwritten")
	assert.Equal(t, "caller-pinned", merged["plugin_id"], "plugin_id injection must not overwrite caller key")
	assert.Equal(t, "eu", merged["region"], "missing keys are filled from defaults")
}

func TestMergeLabelsInjectsPluginID(t *testing.T) {
	ctx := execctx.WithPlugin(context.Background(), "frontmatter")

	merged := mergeLabels(ctx, nil, nil, true, "")
	assert.Equal(t, "frontmatter", merged["plugin_id"])

	// Disabled injection leaves the key out even when context has a plugin.
	merged = mergeLabels(ctx, nil, nil, false, "")
	_, exists := merged["plugin_id"]
	assert.False(t, exists)

	// No context identity, nothing to inject.
	merged = mergeLabels(context.Background(), nil, nil, true, "")
	_, exists = merged["plugin_id"]
	assert.False(t, exists)
}

func TestMergeLabelsInstanceID(t *testing.T) {
	merged := mergeLabels(context.Background(), nil, nil, false, "abc-123")
	assert.Equal(t, "abc-123", merged["instance_id"])

	merged = mergeLabels(context.Background(), map[string]string{"instance_id": "pinned"}, nil, false, "abc-123")
	assert.Equal(t, "pinned", merged["instance_id"])
}

func TestMergeLabelsDoesNotMutateInputs(t *testing.T) {
	caller := map[string]string{"a": "1"}
	defaults := map[string]string{"b": "2"}

	merged := mergeLabels(context.Background(), caller, defaults, false, "")
	merged["c"] = "3"

	assert.Equal(t, map[string]string{"a": "1"}, caller)
	assert.Equal(t, map[string]string{"b": "2"}, defaults)
}

func TestMergeLabelsDeterministic(t *testing.T) {
	ctx := execctx.WithPlugin(context.Background(), "themes")
	caller := map[string]string{"k": "v"}
	defaults := map[string]string{"d": "x"}

	first := mergeLabels(ctx, caller, defaults, true, "id")
	second := mergeLabels(ctx, caller, defaults, true, "id")
	assert.Equal(t, first, second)
}
