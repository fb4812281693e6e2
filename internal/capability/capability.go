// Package capability defines the permissions callers must hold to use gated
// host services, and the checkers that answer "does this identity hold that
// capability". Enforcement points (the metrics capability registry) consume
// the Checker interface only.
package capability

import (
	"sort"
	"sync"
)

// Capability is a named permission a caller identity can hold.
type Capability string

const (
	// CapabilityMetrics gates creation of metric handles.
	CapabilityMetrics Capability = "metrics"
)

// Checker answers capability queries for caller identities.
// Implementations must be safe for concurrent use.
type Checker interface {
	// Check reports whether identity holds cap. An error means the check
	// itself could not be performed and must not be treated as a grant.
	Check(identity string, cap Capability) (bool, error)
}

// StaticChecker is a Checker over a fixed in-memory grant set.
type StaticChecker struct {
	mu     sync.RWMutex
	grants map[string]map[Capability]struct{}
}

// NewStaticChecker creates a checker from an identity -> capability-names map,
// as found in the main configuration file.
func NewStaticChecker(grants map[string][]string) *StaticChecker {
	sc := &StaticChecker{}
	sc.replace(grants)
	return sc
}

// Check reports whether identity holds cap. Never fails.
func (sc *StaticChecker) Check(identity string, cap Capability) (bool, error) {
	sc.mu.RLock()
	defer sc.mu.RUnlock()

	caps, ok := sc.grants[identity]
	if !ok {
		return false, nil
	}
	_, held := caps[cap]
	return held, nil
}

// Grants returns a sorted snapshot of the grant set for display.
func (sc *StaticChecker) Grants() map[string][]string {
	sc.mu.RLock()
	defer sc.mu.RUnlock()

	out := make(map[string][]string, len(sc.grants))
	for identity, caps := range sc.grants {
		names := make([]string, 0, len(caps))
		for c := range caps {
			names = append(names, string(c))
		}
		sort.Strings(names)
		out[identity] = names
	}
	return out
}

func (sc *StaticChecker) replace(grants map[string][]string) {
	next := make(map[string]map[Capability]struct{}, len(grants))
	for identity, names := range grants {
		caps := make(map[Capability]struct{}, len(names))
		for _, name := range names {
			caps[Capability(name)] = struct{}{}
		}
		next[identity] = caps
	}

	sc.mu.Lock()
	sc.grants = next
	sc.mu.Unlock()
}
