package service

import "context"

// Reservation is a set of recorded rate limit hits that can be undone.
type Reservation interface {
	// Rollback removes the hits so the attempt does not count.
	Rollback(ctx context.Context) error
}

// OtpRateLimiter limits how often codes may be requested.
type OtpRateLimiter interface {
	// Allow records one hit for the identifier and one for the source when
	// both are under their limits. A denied call records nothing.
	Allow(ctx context.Context, identifier, sourceKey string) (Reservation, bool, error)
}
