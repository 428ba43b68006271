package studio

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/inkstudio/studio-backend-go/internal/domain/studio"
	"github.com/inkstudio/studio-backend-go/internal/pkg/database"
	"github.com/inkstudio/studio-backend-go/internal/pkg/geocoding"
)

type SettingsServiceImpl struct {
	db           *database.DB
	settingsRepo studio.SettingsRepository
	geocoder     geocoding.Service
}

func NewSettingsService(db *database.DB, settingsRepo studio.SettingsRepository, geocoder geocoding.Service) studio.SettingsService {
	return &SettingsServiceImpl{
		db:           db,
		settingsRepo: settingsRepo,
		geocoder:     geocoder,
	}
}

// Get implements studio.SettingsService.
func (s *SettingsServiceImpl) Get(ctx context.Context, studioID string) (studio.GeolocationSettingsResponse, error) {
	settings, err := s.settingsRepo.Get(ctx, studioID)
	if err != nil {
		return studio.GeolocationSettingsResponse{}, err
	}
	return studio.ToResponse(settings), nil
}

// Update implements studio.SettingsService. The address is geocoded before
// anything is persisted; on geocoding failure the row is stored with
// IsConfigured false and zeroed coordinates so the geofence never runs
// against stale data, and the error is surfaced to the owner for retry.
func (s *SettingsServiceImpl) Update(ctx context.Context, studioID string, req studio.UpdateGeolocationSettingsRequest) (studio.GeolocationSettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return studio.GeolocationSettingsResponse{}, err
	}

	settings := studio.GeolocationSettings{
		StudioID:     studioID,
		Address:      req.Address,
		RadiusMeters: req.RadiusMeters,
		OpenTime:     studio.DefaultOpenTime,
		CloseTime:    studio.DefaultCloseTime,
	}
	if req.OpenTime != nil {
		settings.OpenTime = *req.OpenTime
	}
	if req.CloseTime != nil {
		settings.CloseTime = *req.CloseTime
	}

	lat, lng, geocodeErr := s.geocoder.Geocode(ctx, req.Address)
	if geocodeErr != nil {
		slog.Warn("Geocoding failed for studio address", "studio_id", studioID, "error", geocodeErr)
		settings.IsConfigured = false
		if _, err := s.settingsRepo.Upsert(ctx, settings); err != nil {
			return studio.GeolocationSettingsResponse{}, err
		}
		return studio.GeolocationSettingsResponse{}, fmt.Errorf("%w: %w", studio.ErrGeocodingFailed, geocodeErr)
	}

	settings.Latitude = lat
	settings.Longitude = lng
	settings.IsConfigured = true

	saved, err := s.settingsRepo.Upsert(ctx, settings)
	if err != nil {
		return studio.GeolocationSettingsResponse{}, err
	}

	return studio.ToResponse(saved), nil
}
