package timeblock

import "time"

// TimeBlock is a blocked interval on one user's calendar. Recurring blocks
// are stored once and expanded into concrete dates at query time; per-day
// rows are never materialized.
type TimeBlock struct {
	ID               string
	OwnerID          string
	Date             time.Time // calendar date, midnight UTC
	StartTime        string    // "HH:MM" wall clock
	EndTime          string    // "HH:MM" wall clock
	Type             BlockType
	Title            string
	Notes            *string
	IsRecurring      bool
	RecurringPattern *RecurringPattern
	RecurringEndDate *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type BlockType string

const (
	BlockTypeUnavailable BlockType = "unavailable"
	BlockTypeBreak       BlockType = "break"
	BlockTypePersonal    BlockType = "personal"
	BlockTypeAppointment BlockType = "appointment"
	BlockTypeMeeting     BlockType = "meeting"
)

var BlockTypeValues = []string{
	string(BlockTypeUnavailable),
	string(BlockTypeBreak),
	string(BlockTypePersonal),
	string(BlockTypeAppointment),
	string(BlockTypeMeeting),
}

type RecurringPattern string

const (
	RecurringDaily   RecurringPattern = "daily"
	RecurringWeekly  RecurringPattern = "weekly"
	RecurringMonthly RecurringPattern = "monthly"
)

var RecurringPatternValues = []string{
	string(RecurringDaily),
	string(RecurringWeekly),
	string(RecurringMonthly),
}

// Occurrence is one concrete expanded instance of a block.
type Occurrence struct {
	BlockID   string
	Date      time.Time
	StartTime string
	EndTime   string
	Type      BlockType
	Title     string
}
