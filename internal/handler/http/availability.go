package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/inkstudio/studio-backend-go/internal/handler/http/response"
	"github.com/inkstudio/studio-backend-go/internal/pkg/jwt"
	"github.com/inkstudio/studio-backend-go/internal/pkg/validator"
	"github.com/inkstudio/studio-backend-go/internal/service/availability"
)

const defaultGranularityMinutes = 30

type AvailabilityHandler interface {
	Resolve(w http.ResponseWriter, r *http.Request)
}

type availabilityHandlerImpl struct {
	availabilityService availability.Service
}

func NewAvailabilityHandler(availabilityService availability.Service) AvailabilityHandler {
	return &availabilityHandlerImpl{
		availabilityService: availabilityService,
	}
}

// Resolve returns the open booking slots for an artist on a given date.
// artist_id defaults to the caller, so artists can check their own calendar
// without extra parameters.
func (h *availabilityHandlerImpl) Resolve(w http.ResponseWriter, r *http.Request) {
	identity, err := jwt.IdentityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	artistID := r.URL.Query().Get("artist_id")
	if artistID == "" {
		artistID = identity.UserID
	}

	var errs validator.ValidationErrors

	rawDate := r.URL.Query().Get("date")
	if rawDate == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	}
	date, dateErr := time.Parse("2006-01-02", rawDate)
	if rawDate != "" && dateErr != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	granularity := defaultGranularityMinutes
	if raw := r.URL.Query().Get("granularity"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "granularity",
				Message: "granularity must be a number of minutes",
			})
		} else {
			granularity = parsed
		}
	}

	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	slots, err := h.availabilityService.Resolve(r.Context(), identity.StudioID, artistID, date, granularity)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"artist_id": artistID,
		"date":      rawDate,
		"slots":     slots,
	})
}
