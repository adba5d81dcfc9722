package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"sort"
	"strings"

	"sehatmand-backend/config"
	"sehatmand-backend/models"
)

// ErrAllMirrorsFailed is returned when no Overpass mirror answered; the
// controller maps it to a gateway timeout.
var ErrAllMirrorsFailed = errors.New("all OpenStreetMap mirrors failed")

// overpassMirrors are tried in order; public Overpass instances go down
// regularly so one mirror is never trusted alone.
var overpassMirrors = []string{
	"https://overpass-api.de/api/interpreter",
	"https://overpass.kumi.systems/api/interpreter",
	"https://maps.mail.ru/osm/tools/overpass/api/interpreter",
}

// PlacesService finds nearby healthcare facilities through the free
// OpenStreetMap Overpass API. No API key, no billing.
type PlacesService struct {
	mirrors    []string
	maxResults int
	httpClient *http.Client
}

func NewPlacesService(cfg *config.Config) *PlacesService {
	return &PlacesService{
		mirrors:    overpassMirrors,
		maxResults: cfg.Places.MaxResults,
		httpClient: &http.Client{
			Timeout: cfg.Places.Timeout,
		},
	}
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    float64           `json:"lat"`
	Lon    float64           `json:"lon"`
	Center *overpassCenter   `json:"center,omitempty"`
	Tags   map[string]string `json:"tags"`
}

type overpassCenter struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// FindNearby returns named healthcare facilities within radius metres of the
// point, deduplicated by name, sorted by distance and capped. An empty
// result is a normal outcome, not an error.
func (s *PlacesService) FindNearby(ctx context.Context, lat, lng, radius float64) ([]models.Place, error) {
	log.Printf("[OSM] searching facilities near (%.4f, %.4f) r=%.0fm", lat, lng, radius)

	raw, err := s.query(ctx, buildOverpassQuery(lat, lng, radius))
	if err != nil {
		return nil, err
	}

	results := make([]models.Place, 0, s.maxResults)
	seen := make(map[string]bool)

	for _, el := range raw.Elements {
		name := el.Tags["name"]
		if name == "" {
			name = el.Tags["name:en"]
		}
		if name == "" {
			name = el.Tags["name:ur"]
		}
		if name == "" {
			continue // skip unnamed places
		}

		key := strings.ToLower(strings.TrimSpace(name))
		if seen[key] {
			continue
		}
		seen[key] = true

		elLat, elLng := lat, lng
		if el.Type == "node" {
			elLat, elLng = el.Lat, el.Lon
		} else if el.Center != nil {
			elLat, elLng = el.Center.Lat, el.Center.Lon
		}

		phone := el.Tags["phone"]
		if phone == "" {
			phone = el.Tags["contact:phone"]
		}

		results = append(results, models.Place{
			PlaceID:    fmt.Sprintf("%d", el.ID),
			Name:       name,
			Vicinity:   buildAddress(el.Tags),
			Phone:      phone,
			Geometry:   models.PlaceGeometry{Location: models.PlaceLocation{Lat: elLat, Lng: elLng}},
			DistanceKm: math.Round(haversineKm(lat, lng, elLat, elLng)*100) / 100,
			// OSM rarely carries opening hours, so open_now stays null.
			OpeningHours: models.OpeningHours{OpenNow: nil},
			Rating:       nil,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].DistanceKm < results[j].DistanceKm
	})
	if len(results) > s.maxResults {
		results = results[:s.maxResults]
	}

	log.Printf("[OSM] returning %d facilities", len(results))
	return results, nil
}

func (s *PlacesService) query(ctx context.Context, overpassQL string) (*overpassResponse, error) {
	var lastErr error

	for _, mirror := range s.mirrors {
		log.Printf("[OSM] trying mirror: %s", mirror)

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, mirror, strings.NewReader(overpassQL))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := s.httpClient.Do(req)
		if err != nil {
			log.Printf("[OSM] mirror %s failed: %v", mirror, err)
			lastErr = err
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			continue
		}
		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("mirror %s returned HTTP %d", mirror, resp.StatusCode)
			log.Printf("[OSM] %v", lastErr)
			continue
		}

		var parsed overpassResponse
		if err := json.Unmarshal(body, &parsed); err != nil {
			lastErr = fmt.Errorf("invalid response from %s: %w", mirror, err)
			log.Printf("[OSM] %v", lastErr)
			continue
		}

		log.Printf("[OSM] success from %s, %d raw elements", mirror, len(parsed.Elements))
		return &parsed, nil
	}

	return nil, fmt.Errorf("%w: %v", ErrAllMirrorsFailed, lastErr)
}

// buildOverpassQuery asks for every healthcare-tagged node and way around
// the point. Kept regex-free: regex queries routinely time out on the public
// mirrors.
func buildOverpassQuery(lat, lng, radius float64) string {
	var b strings.Builder
	b.WriteString("[out:json][timeout:25];(")
	for _, amenity := range []string{"hospital", "clinic", "doctors", "health_post"} {
		fmt.Fprintf(&b, `node["amenity"=%q](around:%f,%f,%f);`, amenity, radius, lat, lng)
		fmt.Fprintf(&b, `way["amenity"=%q](around:%f,%f,%f);`, amenity, radius, lat, lng)
	}
	fmt.Fprintf(&b, `node["healthcare"](around:%f,%f,%f);`, radius, lat, lng)
	fmt.Fprintf(&b, `way["healthcare"](around:%f,%f,%f);`, radius, lat, lng)
	b.WriteString(");out center tags;")
	return b.String()
}

func buildAddress(tags map[string]string) string {
	var parts []string
	for _, key := range []string{"addr:street", "addr:suburb", "addr:city"} {
		if v := tags[key]; v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return tags["addr:full"]
	}
	return strings.Join(parts, ", ")
}

// haversineKm is the great-circle distance between two coordinates.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371

	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
