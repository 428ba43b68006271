package tracking

import (
	"context"
	"time"
)

// SessionRepository defines data access for time tracking sessions and
// their break sub-sessions.
type SessionRepository interface {
	// CreateSession creates a new open session
	CreateSession(ctx context.Context, session Session) (Session, error)

	// GetSessionByID retrieves a session (with breaks) by ID
	GetSessionByID(ctx context.Context, id string) (Session, error)

	// GetOpenSession retrieves the open session for a user, or nil when the
	// user is clocked out
	GetOpenSession(ctx context.Context, userID string) (*Session, error)

	// CloseSession stamps clock-out time and total on an open session
	CloseSession(ctx context.Context, id string, clockOut time.Time, totalMinutes int) error

	// UpdateSessionLocation replaces a session's last reported coordinates
	UpdateSessionLocation(ctx context.Context, id string, lat, lng float64) error

	// ListSessions retrieves a user's sessions with clock-in inside [from, to]
	ListSessions(ctx context.Context, userID string, from, to time.Time) ([]Session, error)

	// ListOpenSessions retrieves every open session. Used by the periodic
	// geofence sweep.
	ListOpenSessions(ctx context.Context) ([]Session, error)

	// CreateBreak creates a new open break under a session
	CreateBreak(ctx context.Context, brk BreakSession) (BreakSession, error)

	// GetOpenBreak retrieves the open break for a session, or nil
	GetOpenBreak(ctx context.Context, sessionID string) (*BreakSession, error)

	// CloseBreak stamps end time and duration on an open break
	CloseBreak(ctx context.Context, id string, endTime time.Time, durationMinutes int) error

	// ListBreaks retrieves all breaks of a session, oldest first
	ListBreaks(ctx context.Context, sessionID string) ([]BreakSession, error)
}
