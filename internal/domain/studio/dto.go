package studio

import (
	"github.com/inkstudio/studio-backend-go/internal/pkg/validator"
)

type UpdateGeolocationSettingsRequest struct {
	Address      string  `json:"address"`
	RadiusMeters int     `json:"radius_meters"`
	OpenTime     *string `json:"open_time,omitempty"`
	CloseTime    *string `json:"close_time,omitempty"`
}

func (r *UpdateGeolocationSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Address) {
		errs = append(errs, validator.ValidationError{
			Field:   "address",
			Message: "address is required",
		})
	}

	if r.RadiusMeters <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "radius_meters",
			Message: "radius_meters must be positive",
		})
	}

	var openMinutes, closeMinutes int
	openOK, closeOK := true, true
	if r.OpenTime != nil {
		openMinutes, openOK = validator.ParseTimeOfDay(*r.OpenTime)
		if !openOK {
			errs = append(errs, validator.ValidationError{
				Field:   "open_time",
				Message: "open_time must be in HH:MM format",
			})
		}
	}
	if r.CloseTime != nil {
		closeMinutes, closeOK = validator.ParseTimeOfDay(*r.CloseTime)
		if !closeOK {
			errs = append(errs, validator.ValidationError{
				Field:   "close_time",
				Message: "close_time must be in HH:MM format",
			})
		}
	}
	if r.OpenTime != nil && r.CloseTime != nil && openOK && closeOK && openMinutes >= closeMinutes {
		errs = append(errs, validator.ValidationError{
			Field:   "open_time",
			Message: "open_time must be before close_time",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type GeolocationSettingsResponse struct {
	StudioID     string  `json:"studio_id"`
	Address      string  `json:"address"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters int     `json:"radius_meters"`
	OpenTime     string  `json:"open_time"`
	CloseTime    string  `json:"close_time"`
	IsConfigured bool    `json:"is_configured"`
}

func ToResponse(s GeolocationSettings) GeolocationSettingsResponse {
	return GeolocationSettingsResponse{
		StudioID:     s.StudioID,
		Address:      s.Address,
		Latitude:     s.Latitude,
		Longitude:    s.Longitude,
		RadiusMeters: s.RadiusMeters,
		OpenTime:     s.OpenTime,
		CloseTime:    s.CloseTime,
		IsConfigured: s.IsConfigured,
	}
}
