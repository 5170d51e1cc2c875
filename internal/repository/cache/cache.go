package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores serialized calculation responses keyed by request digest. The
// engine is deterministic, so a repeated request can be answered from here
// without recomputing.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

// RequestKey derives a stable cache key from the canonical request bytes.
func RequestKey(payload []byte) string {
	sum := sha256.Sum256(payload)
	return "schedule:" + hex.EncodeToString(sum[:])
}
