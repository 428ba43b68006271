package tracking

import "time"

// Session is one clock-in/clock-out cycle for a user. A session is mutable
// while ClockOut is nil and immutable once closed. At most one session per
// user may be open at a time.
type Session struct {
	ID           string
	UserID       string
	StudioID     string
	ClockIn      time.Time
	ClockOut     *time.Time
	TotalMinutes *int
	Location     *string
	Latitude     *float64
	Longitude    *float64
	Notes        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Breaks []BreakSession
}

// BreakSession is a sub-interval of exactly one Session. At most one break
// per session may be open at a time; sequential breaks are allowed.
type BreakSession struct {
	ID              string
	SessionID       string
	StartTime       time.Time
	EndTime         *time.Time
	DurationMinutes *int
	Reason          *string
}

// TotalHours converts the stored minute total to hours.
func (s Session) TotalHours() *float64 {
	if s.TotalMinutes == nil {
		return nil
	}
	hours := float64(*s.TotalMinutes) / 60.0
	return &hours
}

// IsOpen reports whether the session has not been closed yet.
func (s Session) IsOpen() bool {
	return s.ClockOut == nil
}
