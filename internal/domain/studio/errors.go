package studio

import "errors"

// Studio domain errors
var (
	ErrSettingsNotFound = errors.New("geolocation settings not configured")
	ErrGeocodingFailed  = errors.New("failed to geocode studio address")
)
