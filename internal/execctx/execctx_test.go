package execctx

import (
	"context"
	"testing"
)

func TestIdentityFallsBackToUnknown(t *testing.T) {
	if got := Identity(context.Background()); got != IdentityUnknown {
		t.Errorf("Identity() = %q, want %q", got, IdentityUnknown)
	}
}

func TestWithPlugin(t *testing.T) {
	ctx := WithPlugin(context.Background(), "frontmatter")

	id, ok := PluginID(ctx)
	if !ok {
		t.Fatal("expected plugin id to be set")
	}
	if id != "frontmatter" {
		t.Errorf("PluginID() = %q, want %q", id, "frontmatter")
	}
	if got := Identity(ctx); got != "frontmatter" {
		t.Errorf("Identity() = %q, want %q", got, "frontmatter")
	}
}

func TestWithTenantPreservesPlugin(t *testing.T) {
	ctx := WithPlugin(context.Background(), "themes")
	ctx = WithTenant(ctx, "acme")

	ec, ok := FromContext(ctx)
	if !ok {
		t.Fatal("expected execution context")
	}
	if ec.PluginID != "themes" || ec.TenantID != "acme" {
		t.Errorf("ExecContext = %+v, want plugin=themes tenant=acme", ec)
	}
}

func TestEmptyPluginIDIsNotSet(t *testing.T) {
	ctx := WithPlugin(context.Background(), "")
	if _, ok := PluginID(ctx); ok {
		t.Error("empty plugin id should not count as set")
	}
	if got := Identity(ctx); got != IdentityUnknown {
		t.Errorf("Identity() = %q, want %q", got, IdentityUnknown)
	}
}
