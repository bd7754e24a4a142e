// Package ratelimit limits OTP starts with sliding windows kept in Redis or
// in process memory.
package ratelimit

import (
	"context"
	"time"
)

// windowStore keeps one sliding window log per key.
type windowStore interface {
	// hit records an entry under key when fewer than limit entries fall
	// inside window. It returns the entry's member so it can be undone.
	hit(ctx context.Context, key string, limit int, window time.Duration) (member string, allowed bool, err error)

	// undo removes a previously recorded entry.
	undo(ctx context.Context, key, member string) error
}
