package commission

import "time"

// Transaction is one commission accrual for a staff member, created when a
// service completes at checkout. Only the owner's batch settlement mutates
// it afterwards.
type Transaction struct {
	ID               string
	StudioID         string
	StaffID          string
	Amount           float64
	CommissionRate   float64
	CommissionAmount float64
	Status           Status
	PaidAt           *time.Time
	PaidMethod       *string
	Notes            string
	CreatedAt        time.Time
}

type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

// Range scopes aggregation queries.
type Range string

const (
	RangeWeek  Range = "week"  // trailing 7 days
	RangeMonth Range = "month" // trailing 30 days
	RangeAll   Range = "all"
)

var RangeValues = []string{
	string(RangeWeek),
	string(RangeMonth),
	string(RangeAll),
}

// Since returns the inclusive lower bound of the range relative to now, or
// nil for the unbounded range.
func (r Range) Since(now time.Time) *time.Time {
	switch r {
	case RangeWeek:
		t := now.AddDate(0, 0, -7)
		return &t
	case RangeMonth:
		t := now.AddDate(0, 0, -30)
		return &t
	default:
		return nil
	}
}
