package studio

import "context"

// SettingsRepository defines data access for studio geolocation settings.
type SettingsRepository interface {
	// Get retrieves the settings row for a studio. Returns
	// ErrSettingsNotFound when the studio has never been configured.
	Get(ctx context.Context, studioID string) (GeolocationSettings, error)

	// Upsert inserts or replaces the settings row for a studio
	Upsert(ctx context.Context, settings GeolocationSettings) (GeolocationSettings, error)
}

// SettingsService defines business logic for studio settings.
type SettingsService interface {
	// Get returns the studio's settings
	Get(ctx context.Context, studioID string) (GeolocationSettingsResponse, error)

	// Update geocodes the address and stores the settings. A geocoding
	// failure leaves IsConfigured false and is surfaced for retry.
	Update(ctx context.Context, studioID string, req UpdateGeolocationSettingsRequest) (GeolocationSettingsResponse, error)
}
