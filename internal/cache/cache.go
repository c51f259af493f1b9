package cache

import (
	"context"
	"time"
)

// Cache is the JSON read-through layer in front of Mongo session lookups and
// generated feedback reports. A (false, nil) return from GetJSON is a plain
// miss; callers fall through to the source of truth.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}
