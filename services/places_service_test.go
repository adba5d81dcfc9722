package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sehatmand-backend/config"
)

func newTestPlaces(mirrors ...string) *PlacesService {
	cfg := &config.Config{}
	cfg.Places.MaxResults = 20
	cfg.Places.Timeout = 2 * time.Second

	svc := NewPlacesService(cfg)
	svc.mirrors = mirrors
	return svc
}

const overpassFixture = `{
  "elements": [
    {"type": "node", "id": 1, "lat": 24.87, "lon": 67.03,
     "tags": {"name": "Aga Khan Hospital", "amenity": "hospital",
              "addr:street": "Stadium Road", "addr:city": "Karachi", "phone": "021-111"}},
    {"type": "way", "id": 2, "center": {"lat": 24.8601, "lon": 67.0011},
     "tags": {"name": "Civil Hospital", "amenity": "hospital"}},
    {"type": "node", "id": 3, "lat": 24.861, "lon": 67.002,
     "tags": {"name": "civil hospital", "amenity": "clinic"}},
    {"type": "node", "id": 4, "lat": 24.86, "lon": 67.0,
     "tags": {"amenity": "clinic"}}
  ]
}`

func TestFindNearby(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(overpassFixture))
	}))
	defer server.Close()

	svc := newTestPlaces(server.URL)
	places, err := svc.FindNearby(context.Background(), 24.8607, 67.0011, 5000)
	require.NoError(t, err)

	// The unnamed element is skipped and "civil hospital" deduplicates
	// against "Civil Hospital".
	require.Len(t, places, 2)

	// Sorted ascending by distance: Civil Hospital sits at the query point.
	assert.Equal(t, "Civil Hospital", places[0].Name)
	assert.Equal(t, "Aga Khan Hospital", places[1].Name)
	assert.LessOrEqual(t, places[0].DistanceKm, places[1].DistanceKm)

	assert.Equal(t, "Stadium Road, Karachi", places[1].Vicinity)
	assert.Equal(t, "021-111", places[1].Phone)
	assert.Nil(t, places[1].OpeningHours.OpenNow)
}

func TestFindNearbyMirrorFallback(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGatewayTimeout)
	}))
	defer broken.Close()

	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(overpassFixture))
	}))
	defer healthy.Close()

	svc := newTestPlaces(broken.URL, healthy.URL)
	places, err := svc.FindNearby(context.Background(), 24.8607, 67.0011, 5000)
	require.NoError(t, err)
	assert.NotEmpty(t, places)
}

func TestFindNearbyAllMirrorsFail(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer broken.Close()

	svc := newTestPlaces(broken.URL)
	_, err := svc.FindNearby(context.Background(), 24.8607, 67.0011, 5000)
	assert.ErrorIs(t, err, ErrAllMirrorsFailed)
}

func TestHaversineKm(t *testing.T) {
	// Karachi to Lahore is roughly 1020-1040 km great-circle.
	d := haversineKm(24.8607, 67.0011, 31.5204, 74.3587)
	assert.InDelta(t, 1030, d, 30)

	assert.Zero(t, haversineKm(24.8607, 67.0011, 24.8607, 67.0011))
}

func TestBuildOverpassQuery(t *testing.T) {
	q := buildOverpassQuery(24.8607, 67.0011, 5000)

	assert.Contains(t, q, "[out:json][timeout:25];")
	assert.Contains(t, q, `node["amenity"="hospital"]`)
	assert.Contains(t, q, `way["amenity"="health_post"]`)
	assert.Contains(t, q, `node["healthcare"]`)
	assert.Contains(t, q, "out center tags;")
}
