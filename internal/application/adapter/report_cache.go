package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ReportCache caches computed finance aggregates per dealer. Keys must be
// derived from the fully resolved date interval, never from the range token,
// so custom ranges with different bounds cannot collide.
type ReportCache interface {
	// Get returns the cached payload for the key, with ok=false on a miss.
	Get(ctx context.Context, dealerID uuid.UUID, key string) ([]byte, bool, error)

	// Set stores the payload under the key with the given TTL.
	Set(ctx context.Context, dealerID uuid.UUID, key string, payload []byte, ttl time.Duration) error

	// Invalidate drops every cached entry for the dealer. Called after any
	// mutation of the underlying transaction set.
	Invalidate(ctx context.Context, dealerID uuid.UUID) error
}
