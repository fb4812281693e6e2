// Package execctx carries per-call execution metadata (the calling plugin and
// its tenant) through context.Context. The metrics layer reads it to resolve
// caller identity for capability checks and default-label injection; it never
// writes it.
package execctx

import (
	"context"
)

// IdentityUnknown is reported when no execution context is present or the
// context carries no plugin id.
const IdentityUnknown = "unknown"

// ExecContext describes the ambient caller of an operation.
type ExecContext struct {
	PluginID string
	TenantID string
}

// Context key for storing the execution context
type contextKey string

const execContextKey contextKey = "execctx"

// WithPlugin stores the calling plugin id in the context.
func WithPlugin(ctx context.Context, pluginID string) context.Context {
	ec := extract(ctx)
	ec.PluginID = pluginID
	return context.WithValue(ctx, execContextKey, ec)
}

// WithTenant stores the tenant id in the context.
func WithTenant(ctx context.Context, tenantID string) context.Context {
	ec := extract(ctx)
	ec.TenantID = tenantID
	return context.WithValue(ctx, execContextKey, ec)
}

// FromContext retrieves the execution context, reporting whether one was set.
func FromContext(ctx context.Context) (ExecContext, bool) {
	if ctx == nil {
		return ExecContext{}, false
	}
	ec, ok := ctx.Value(execContextKey).(ExecContext)
	return ec, ok
}

// PluginID returns the calling plugin id, reporting whether one was set.
func PluginID(ctx context.Context) (string, bool) {
	ec, ok := FromContext(ctx)
	if !ok || ec.PluginID == "" {
		return "", false
	}
	return ec.PluginID, true
}

// Identity resolves the caller identity for authorization purposes, falling
// back to IdentityUnknown when the context carries no plugin id.
func Identity(ctx context.Context) string {
	if id, ok := PluginID(ctx); ok {
		return id
	}
	return IdentityUnknown
}

func extract(ctx context.Context) ExecContext {
	if ec, ok := FromContext(ctx); ok {
		return ec
	}
	return ExecContext{}
}
