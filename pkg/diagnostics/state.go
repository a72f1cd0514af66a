package diagnostics

import "time"

// CancelledAt is written to expires_at when a request is cancelled. It is
// always in the past, so a cancelled request reads as expired.
var CancelledAt = time.Unix(0, 0).UTC()

// RequestState is the derived lifecycle state of a request.
type RequestState string

const (
	// StatePending means the request may still trigger a capture.
	StatePending RequestState = "pending"
	// StateCompleted means a trace was captured.
	StateCompleted RequestState = "completed"
	// StateExpired covers both natural expiry and cancellation.
	StateExpired RequestState = "expired"
)

// IsExpired reports whether expiresAt is set and not after now.
func IsExpired(expiresAt *time.Time, now time.Time) bool {
	return expiresAt != nil && !expiresAt.After(now)
}

// IsPending reports whether the request is neither completed nor expired.
// The coordinator evaluates the same predicate in SQL for conflict checks,
// cancellation and stats; the two must agree.
func IsPending(r *Request, now time.Time) bool {
	return !r.Completed && !IsExpired(r.ExpiresAt, now)
}

// IsActive reports whether the request belongs in a listing: it has not
// expired, or it completed before it did. The coordinator evaluates the same
// predicate in SQL when listing; the two must agree.
func IsActive(r *Request, now time.Time) bool {
	return r.Completed || !IsExpired(r.ExpiresAt, now)
}

// IsCancelled reports whether expires_at holds the cancellation sentinel.
// A request that expired naturally is not reported as cancelled.
func IsCancelled(r *Request) bool {
	return !r.Completed && r.ExpiresAt != nil && r.ExpiresAt.Equal(CancelledAt)
}

// State returns the derived state of r at now.
func State(r *Request, now time.Time) RequestState {
	switch {
	case r.Completed:
		return StateCompleted
	case IsExpired(r.ExpiresAt, now):
		return StateExpired
	default:
		return StatePending
	}
}
