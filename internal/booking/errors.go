package booking

import (
	"fmt"
	"time"
)

// ValidationError reports malformed input or a request the rules reject.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// ConflictError reports that the requested interval overlaps an active
// reservation or a maintenance block on the same court.
type ConflictError struct {
	CourtID int64
	Start   time.Time
	End     time.Time
	Blocked bool
}

func (e ConflictError) Error() string {
	return "slot unavailable"
}

type NotFoundError struct {
	Resource string
	ID       int64
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// AuthorizationError carries a reason for logs only. Callers must not echo it
// to the client.
type AuthorizationError struct {
	Reason string
}

func (e AuthorizationError) Error() string {
	return "not authorized: " + e.Reason
}

// BatchError wraps the failure of one item in a batch booking.
type BatchError struct {
	Item int
	Err  error
}

func (e BatchError) Error() string {
	return fmt.Sprintf("slot %d: %v", e.Item+1, e.Err)
}

func (e BatchError) Unwrap() error {
	return e.Err
}
