package geocoding

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeocodeParsesFirstResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "12 Needle St", r.URL.Query().Get("q"))
		assert.Equal(t, "studio-backend-test", r.Header.Get("User-Agent"))
		w.Write([]byte(`[{"lat":"40.0","lon":"-75.0"},{"lat":"1.0","lon":"2.0"}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "studio-backend-test")
	lat, lng, err := client.Geocode(context.Background(), "12 Needle St")
	require.NoError(t, err)
	assert.Equal(t, 40.0, lat)
	assert.Equal(t, -75.0, lng)
}

func TestGeocodeNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "studio-backend-test")
	_, _, err := client.Geocode(context.Background(), "nowhere")
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestGeocodeUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, "studio-backend-test")
	_, _, err := client.Geocode(context.Background(), "12 Needle St")
	require.Error(t, err)
}

func TestGeocodeMalformedCoordinates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"lat":"not-a-float","lon":"-75.0"}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "studio-backend-test")
	_, _, err := client.Geocode(context.Background(), "12 Needle St")
	require.Error(t, err)
}
