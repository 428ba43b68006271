package studio

import "time"

// GeolocationSettings is the studio's geofence and working-hours
// configuration. One row per studio. IsConfigured only becomes true after
// the address geocodes successfully.
type GeolocationSettings struct {
	StudioID     string
	Address      string
	Latitude     float64
	Longitude    float64
	RadiusMeters int
	OpenTime     string // "HH:MM"
	CloseTime    string // "HH:MM"
	IsConfigured bool
	UpdatedAt    time.Time
}

const (
	DefaultOpenTime     = "09:00"
	DefaultCloseTime    = "17:00"
	DefaultRadiusMeters = 100
)
