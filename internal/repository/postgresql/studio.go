package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/inkstudio/studio-backend-go/internal/domain/studio"
	"github.com/inkstudio/studio-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type settingsRepository struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) studio.SettingsRepository {
	return &settingsRepository{db: db}
}

// Get implements studio.SettingsRepository.
func (r *settingsRepository) Get(ctx context.Context, studioID string) (studio.GeolocationSettings, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT studio_id, address, latitude, longitude, radius_meters,
		       open_time, close_time, is_configured, updated_at
		FROM studio_geolocation_settings
		WHERE studio_id = $1
	`

	var s studio.GeolocationSettings
	err := q.QueryRow(ctx, query, studioID).Scan(
		&s.StudioID, &s.Address, &s.Latitude, &s.Longitude, &s.RadiusMeters,
		&s.OpenTime, &s.CloseTime, &s.IsConfigured, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return studio.GeolocationSettings{}, studio.ErrSettingsNotFound
		}
		return studio.GeolocationSettings{}, fmt.Errorf("failed to get geolocation settings: %w", err)
	}

	return s, nil
}

// Upsert implements studio.SettingsRepository.
func (r *settingsRepository) Upsert(ctx context.Context, settings studio.GeolocationSettings) (studio.GeolocationSettings, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		INSERT INTO studio_geolocation_settings (
			studio_id, address, latitude, longitude, radius_meters,
			open_time, close_time, is_configured, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, NOW()
		)
		ON CONFLICT (studio_id) DO UPDATE SET
			address = EXCLUDED.address,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			radius_meters = EXCLUDED.radius_meters,
			open_time = EXCLUDED.open_time,
			close_time = EXCLUDED.close_time,
			is_configured = EXCLUDED.is_configured,
			updated_at = NOW()
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		settings.StudioID,
		settings.Address,
		settings.Latitude,
		settings.Longitude,
		settings.RadiusMeters,
		settings.OpenTime,
		settings.CloseTime,
		settings.IsConfigured,
	).Scan(&settings.UpdatedAt)

	if err != nil {
		return studio.GeolocationSettings{}, fmt.Errorf("failed to upsert geolocation settings: %w", err)
	}

	return settings, nil
}
