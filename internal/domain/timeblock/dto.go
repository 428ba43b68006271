package timeblock

import (
	"errors"
	"time"

	"github.com/inkstudio/studio-backend-go/internal/pkg/validator"
)

// ========================================
// TIME BLOCK DTOs
// ========================================

type CreateTimeBlockRequest struct {
	Date             string  `json:"date"`
	StartTime        string  `json:"start_time"`
	EndTime          string  `json:"end_time"`
	Type             string  `json:"type"`
	Title            string  `json:"title"`
	Notes            *string `json:"notes,omitempty"`
	IsRecurring      bool    `json:"is_recurring"`
	RecurringPattern *string `json:"recurring_pattern,omitempty"`
	RecurringEndDate *string `json:"recurring_end_date,omitempty"`
}

func (r *CreateTimeBlockRequest) Validate() error {
	var errs validator.ValidationErrors

	date, dateOK := validator.IsValidDate(r.Date)
	if !dateOK {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	startMinutes, startOK := validator.ParseTimeOfDay(r.StartTime)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:MM format",
		})
	}

	endMinutes, endOK := validator.ParseTimeOfDay(r.EndTime)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:MM format",
		})
	}

	if startOK && endOK && startMinutes >= endMinutes {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be before end_time",
		})
	}

	if !validator.IsInSlice(r.Type, BlockTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: unavailable, break, personal, appointment, meeting",
		})
	}

	if r.IsRecurring {
		if r.RecurringPattern == nil || !validator.IsInSlice(*r.RecurringPattern, RecurringPatternValues) {
			errs = append(errs, validator.ValidationError{
				Field:   "recurring_pattern",
				Message: "recurring_pattern must be one of: daily, weekly, monthly",
			})
		}
		if r.RecurringEndDate != nil {
			recEnd, ok := validator.IsValidDate(*r.RecurringEndDate)
			if !ok {
				errs = append(errs, validator.ValidationError{
					Field:   "recurring_end_date",
					Message: "recurring_end_date must be in YYYY-MM-DD format",
				})
			} else if dateOK && recEnd.Before(date) {
				errs = append(errs, validator.ValidationError{
					Field:   "recurring_end_date",
					Message: "recurring_end_date must be on or after date",
				})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ToEntity converts a validated request into a TimeBlock. Call Validate first.
func (r *CreateTimeBlockRequest) ToEntity(ownerID string) TimeBlock {
	date, _ := validator.IsValidDate(r.Date)

	block := TimeBlock{
		OwnerID:     ownerID,
		Date:        date,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Type:        BlockType(r.Type),
		Title:       r.Title,
		Notes:       r.Notes,
		IsRecurring: r.IsRecurring,
	}

	if r.IsRecurring && r.RecurringPattern != nil {
		pattern := RecurringPattern(*r.RecurringPattern)
		block.RecurringPattern = &pattern
		if r.RecurringEndDate != nil {
			recEnd, _ := validator.IsValidDate(*r.RecurringEndDate)
			block.RecurringEndDate = &recEnd
		}
	}

	return block
}

type UpdateTimeBlockRequest struct {
	CreateTimeBlockRequest
	ID string `json:"-"`
}

func (r *UpdateTimeBlockRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if err := r.CreateTimeBlockRequest.Validate(); err != nil {
		var inner validator.ValidationErrors
		if errors.As(err, &inner) {
			errs = append(errs, inner...)
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TimeBlockResponse struct {
	ID               string  `json:"id"`
	OwnerID          string  `json:"owner_id"`
	Date             string  `json:"date"`
	StartTime        string  `json:"start_time"`
	EndTime          string  `json:"end_time"`
	Type             string  `json:"type"`
	Title            string  `json:"title"`
	Notes            *string `json:"notes,omitempty"`
	IsRecurring      bool    `json:"is_recurring"`
	RecurringPattern *string `json:"recurring_pattern,omitempty"`
	RecurringEndDate *string `json:"recurring_end_date,omitempty"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}

func ToResponse(block TimeBlock) TimeBlockResponse {
	resp := TimeBlockResponse{
		ID:          block.ID,
		OwnerID:     block.OwnerID,
		Date:        block.Date.Format("2006-01-02"),
		StartTime:   block.StartTime,
		EndTime:     block.EndTime,
		Type:        string(block.Type),
		Title:       block.Title,
		Notes:       block.Notes,
		IsRecurring: block.IsRecurring,
		CreatedAt:   block.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   block.UpdatedAt.Format(time.RFC3339),
	}

	if block.RecurringPattern != nil {
		pattern := string(*block.RecurringPattern)
		resp.RecurringPattern = &pattern
	}
	if block.RecurringEndDate != nil {
		recEnd := block.RecurringEndDate.Format("2006-01-02")
		resp.RecurringEndDate = &recEnd
	}

	return resp
}

type OccurrenceResponse struct {
	BlockID   string `json:"block_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Type      string `json:"type"`
	Title     string `json:"title"`
}

func ToOccurrenceResponse(occ Occurrence) OccurrenceResponse {
	return OccurrenceResponse{
		BlockID:   occ.BlockID,
		Date:      occ.Date.Format("2006-01-02"),
		StartTime: occ.StartTime,
		EndTime:   occ.EndTime,
		Type:      string(occ.Type),
		Title:     occ.Title,
	}
}
