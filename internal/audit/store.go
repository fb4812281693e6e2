// Package audit persists capability denials so operators can see which
// plugins attempted to use gated services without a grant.
package audit

import (
	"context"
	"time"
)

// Denial is one recorded capability denial.
type Denial struct {
	ID         string
	Identity   string
	Capability string
	Metric     string
	TenantID   string
	OccurredAt time.Time
}

// Store persists denial records.
type Store interface {
	Append(ctx context.Context, d Denial) error
	Recent(ctx context.Context, limit int) ([]Denial, error)
	// Prune deletes records older than cutoff, returning the number removed.
	Prune(ctx context.Context, cutoff time.Time) (int64, error)
	Close() error
}
