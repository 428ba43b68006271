package tracking

import (
	"time"

	"github.com/inkstudio/studio-backend-go/internal/pkg/validator"
)

// ========================================
// TIME TRACKING DTOs
// ========================================

type Action string

const (
	ActionClockIn    Action = "clockIn"
	ActionStartBreak Action = "startBreak"
	ActionEndBreak   Action = "endBreak"
	ActionClockOut   Action = "clockOut"
)

var ActionValues = []string{
	string(ActionClockIn),
	string(ActionStartBreak),
	string(ActionEndBreak),
	string(ActionClockOut),
}

type ActionRequest struct {
	Action    string   `json:"action"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Location  *string  `json:"location,omitempty"`
	Reason    *string  `json:"reason,omitempty"`
	Notes     *string  `json:"notes,omitempty"`
}

func (r *ActionRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Action, ActionValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "action must be one of: clockIn, startBreak, endBreak, clockOut",
		})
	}

	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckLocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (r *CheckLocationRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Latitude < -90 || r.Latitude > 90 {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude < -180 || r.Longitude > 180 {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BreakResponse struct {
	ID              string  `json:"id"`
	StartTime       string  `json:"start_time"`
	EndTime         *string `json:"end_time,omitempty"`
	DurationMinutes *int    `json:"duration_minutes,omitempty"`
	Reason          *string `json:"reason,omitempty"`
}

type SessionResponse struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id"`
	ClockIn    string          `json:"clock_in"`
	ClockOut   *string         `json:"clock_out,omitempty"`
	TotalHours *float64        `json:"total_hours,omitempty"`
	Location   *string         `json:"location,omitempty"`
	Latitude   *float64        `json:"latitude,omitempty"`
	Longitude  *float64        `json:"longitude,omitempty"`
	Notes      *string         `json:"notes,omitempty"`
	Breaks     []BreakResponse `json:"breaks"`
}

type LocationCheckResponse struct {
	WithinRange    bool     `json:"within_range"`
	DistanceMeters *float64 `json:"distance_meters,omitempty"`
	AutoClockOut   bool     `json:"auto_clock_out"`
}

func ToBreakResponse(b BreakSession) BreakResponse {
	resp := BreakResponse{
		ID:              b.ID,
		StartTime:       b.StartTime.Format(time.RFC3339),
		DurationMinutes: b.DurationMinutes,
		Reason:          b.Reason,
	}
	if b.EndTime != nil {
		end := b.EndTime.Format(time.RFC3339)
		resp.EndTime = &end
	}
	return resp
}

func ToSessionResponse(s Session) SessionResponse {
	resp := SessionResponse{
		ID:         s.ID,
		UserID:     s.UserID,
		ClockIn:    s.ClockIn.Format(time.RFC3339),
		TotalHours: s.TotalHours(),
		Location:   s.Location,
		Latitude:   s.Latitude,
		Longitude:  s.Longitude,
		Notes:      s.Notes,
		Breaks:     make([]BreakResponse, 0, len(s.Breaks)),
	}
	if s.ClockOut != nil {
		out := s.ClockOut.Format(time.RFC3339)
		resp.ClockOut = &out
	}
	for _, b := range s.Breaks {
		resp.Breaks = append(resp.Breaks, ToBreakResponse(b))
	}
	return resp
}
