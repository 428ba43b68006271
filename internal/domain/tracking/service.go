package tracking

import (
	"context"
	"time"
)

// TrackingService drives the per-user clock-in state machine:
// ClockedOut -> ClockedIn -> (OnBreak <-> ClockedIn) -> ClockedOut.
// Transitions are guarded by optimistic state checks; client-supplied
// ordering is never trusted.
type TrackingService interface {
	// ClockIn opens a session. Coordinates are captured best-effort.
	ClockIn(ctx context.Context, userID, studioID string, req ActionRequest) (SessionResponse, error)

	// StartBreak opens a break under the user's open session
	StartBreak(ctx context.Context, userID string, req ActionRequest) (SessionResponse, error)

	// EndBreak closes the open break and computes its duration
	EndBreak(ctx context.Context, userID string) (SessionResponse, error)

	// ClockOut closes the session, implicitly ending any open break, and
	// computes total worked time net of breaks (clamped to zero)
	ClockOut(ctx context.Context, userID string) (SessionResponse, error)

	// CheckLocation runs the stateless geofence decision for the user's
	// reported position and force-closes the session when a student-role
	// user is out of range. Missing studio settings fail open.
	CheckLocation(ctx context.Context, userID string, req CheckLocationRequest) (LocationCheckResponse, error)

	// ListSessions returns the user's session history within [from, to]
	ListSessions(ctx context.Context, userID string, from, to time.Time) ([]SessionResponse, error)
}
