package timeblock

import (
	"errors"
	"testing"

	"github.com/inkstudio/studio-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateRequest() CreateTimeBlockRequest {
	return CreateTimeBlockRequest{
		Date:      "2024-05-01",
		StartTime: "10:00",
		EndTime:   "11:30",
		Type:      "unavailable",
		Title:     "Dentist",
	}
}

func TestCreateTimeBlockRequestValid(t *testing.T) {
	req := validCreateRequest()
	assert.NoError(t, req.Validate())
}

func TestCreateTimeBlockRequestStartAfterEnd(t *testing.T) {
	req := validCreateRequest()
	req.StartTime = "12:00"
	req.EndTime = "11:00"

	err := req.Validate()
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.True(t, errors.As(err, &errs))
	assert.Contains(t, errs.ToMap(), "start_time")
}

func TestCreateTimeBlockRequestStartEqualsEnd(t *testing.T) {
	req := validCreateRequest()
	req.StartTime = "11:00"
	req.EndTime = "11:00"
	assert.Error(t, req.Validate())
}

func TestCreateTimeBlockRequestCollectsAllViolations(t *testing.T) {
	req := CreateTimeBlockRequest{
		Date:      "05/01/2024",
		StartTime: "10am",
		EndTime:   "noon",
		Type:      "vacation",
	}

	err := req.Validate()
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.True(t, errors.As(err, &errs))
	m := errs.ToMap()
	assert.Contains(t, m, "date")
	assert.Contains(t, m, "start_time")
	assert.Contains(t, m, "end_time")
	assert.Contains(t, m, "type")
}

func TestCreateTimeBlockRequestRecurring(t *testing.T) {
	pattern := "weekly"
	recEnd := "2024-06-01"
	req := validCreateRequest()
	req.IsRecurring = true
	req.RecurringPattern = &pattern
	req.RecurringEndDate = &recEnd
	assert.NoError(t, req.Validate())

	bad := "yearly"
	req.RecurringPattern = &bad
	assert.Error(t, req.Validate())

	req.RecurringPattern = &pattern
	early := "2024-04-01"
	req.RecurringEndDate = &early
	err := req.Validate()
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.True(t, errors.As(err, &errs))
	assert.Contains(t, errs.ToMap(), "recurring_end_date")
}

func TestCreateTimeBlockRequestRecurringWithoutPattern(t *testing.T) {
	req := validCreateRequest()
	req.IsRecurring = true
	err := req.Validate()
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.True(t, errors.As(err, &errs))
	assert.Contains(t, errs.ToMap(), "recurring_pattern")
}
