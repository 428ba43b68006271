package studio

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkstudio/studio-backend-go/internal/domain/studio"
	"github.com/inkstudio/studio-backend-go/internal/pkg/validator"
)

type fakeSettingsRepo struct {
	settings *studio.GeolocationSettings
}

func (f *fakeSettingsRepo) Get(ctx context.Context, studioID string) (studio.GeolocationSettings, error) {
	if f.settings == nil {
		return studio.GeolocationSettings{}, studio.ErrSettingsNotFound
	}
	return *f.settings, nil
}

func (f *fakeSettingsRepo) Upsert(ctx context.Context, settings studio.GeolocationSettings) (studio.GeolocationSettings, error) {
	f.settings = &settings
	return settings, nil
}

type fakeGeocoder struct {
	lat float64
	lng float64
	err error
}

func (f *fakeGeocoder) Geocode(ctx context.Context, address string) (float64, float64, error) {
	if f.err != nil {
		return 0, 0, f.err
	}
	return f.lat, f.lng, nil
}

func TestUpdateGeocodesAndStores(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := NewSettingsService(nil, repo, &fakeGeocoder{lat: 40.0, lng: -75.0})

	resp, err := svc.Update(context.Background(), "studio-1", studio.UpdateGeolocationSettingsRequest{
		Address:      "12 Needle St, Philadelphia",
		RadiusMeters: 150,
	})
	require.NoError(t, err)

	assert.True(t, resp.IsConfigured)
	assert.Equal(t, 40.0, resp.Latitude)
	assert.Equal(t, -75.0, resp.Longitude)
	assert.Equal(t, 150, resp.RadiusMeters)
	assert.Equal(t, studio.DefaultOpenTime, resp.OpenTime)
	assert.Equal(t, studio.DefaultCloseTime, resp.CloseTime)
}

func TestUpdateGeocodingFailureLeavesUnconfigured(t *testing.T) {
	repo := &fakeSettingsRepo{}
	geocodeErr := errors.New("no results for address")
	svc := NewSettingsService(nil, repo, &fakeGeocoder{err: geocodeErr})

	_, err := svc.Update(context.Background(), "studio-1", studio.UpdateGeolocationSettingsRequest{
		Address:      "nowhere at all",
		RadiusMeters: 100,
	})
	require.ErrorIs(t, err, studio.ErrGeocodingFailed)

	// the row is stored without coordinates so the geofence stays off
	require.NotNil(t, repo.settings)
	assert.False(t, repo.settings.IsConfigured)
	assert.Zero(t, repo.settings.Latitude)
	assert.Zero(t, repo.settings.Longitude)
}

func TestUpdateValidatesRequest(t *testing.T) {
	svc := NewSettingsService(nil, &fakeSettingsRepo{}, &fakeGeocoder{})

	badOpen := "25:99"
	_, err := svc.Update(context.Background(), "studio-1", studio.UpdateGeolocationSettingsRequest{
		Address:      "",
		RadiusMeters: -1,
		OpenTime:     &badOpen,
	})
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	details := errs.ToMap()
	assert.Contains(t, details, "address")
	assert.Contains(t, details, "radius_meters")
	assert.Contains(t, details, "open_time")
}

func TestGetUnconfiguredStudio(t *testing.T) {
	svc := NewSettingsService(nil, &fakeSettingsRepo{}, &fakeGeocoder{})

	_, err := svc.Get(context.Background(), "studio-1")
	assert.ErrorIs(t, err, studio.ErrSettingsNotFound)
}

func TestUpdateHonorsCustomHours(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := NewSettingsService(nil, repo, &fakeGeocoder{lat: 40.0, lng: -75.0})

	openTime, closeTime := "10:00", "20:00"
	resp, err := svc.Update(context.Background(), "studio-1", studio.UpdateGeolocationSettingsRequest{
		Address:      "12 Needle St",
		RadiusMeters: 100,
		OpenTime:     &openTime,
		CloseTime:    &closeTime,
	})
	require.NoError(t, err)

	assert.Equal(t, "10:00", resp.OpenTime)
	assert.Equal(t, "20:00", resp.CloseTime)
}
