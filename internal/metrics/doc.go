// Package metrics provides the capability-gated metrics registry that sandboxed
// plugins record through.
//
// # Design Philosophy
//
// This package implements the Null Object pattern to enable metrics collection
// without requiring explicit nil checks or branching at call sites. When metrics
// are disabled, the factory hands out a no-op registry whose handles accept every
// mutation and report zero values.
//
// # Architecture
//
// The metrics system has three registry variants behind one contract:
//
//  1. Registry interface - Creates Counter/Gauge/Histogram handles by identity
//  2. Noop registry - Default implementation that records nothing
//  3. Prometheus registry - Real backend with local snapshot values and an
//     HTTP export listener installed at most once per process
//
// A fourth variant, CapabilityRegistry, decorates any of the above and inserts
// a capability check before every handle creation. The check resolves the
// caller identity from the ambient execution context (execctx) and fails
// closed: on denial the inner registry is never touched.
//
// # Usage Pattern
//
// The owning system composes registries once at startup:
//
//	inner, err := metrics.New(cfg)
//	if err != nil { ... }
//	reg := metrics.NewCapabilityRegistry(inner, checker)
//
// Plugins receive the composed Registry and create handles with their own
// execution context:
//
//	c, err := reg.Counter(ctx, "pages_rendered_total", "Pages rendered", nil)
//	if err != nil { ... } // capability denial lands here
//	_ = c.Inc(1)
//
// Capability is checked at handle creation only; mutations on an issued handle
// are never re-checked.
package metrics
