package tracking

import "errors"

// Time tracking domain errors
var (
	// State machine violations
	ErrSessionAlreadyOpen = errors.New("a session is already open for this user")
	ErrNoOpenSession      = errors.New("no open session for this user")
	ErrSessionClosed      = errors.New("session is already closed")
	ErrBreakAlreadyOpen   = errors.New("a break is already open for this session")
	ErrNoOpenBreak        = errors.New("no open break for this session")

	// General errors
	ErrSessionNotFound = errors.New("session not found")
)
