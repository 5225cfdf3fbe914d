package osm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const (
	orsMatrixURL = "https://api.openrouteservice.org/v2/matrix/driving-car"

	earthRadiusKm    = 6371
	fallbackSpeedKmh = 50
)

// RouteEstimator computes travel distance and duration from one origin
// to many destinations. With an OpenRouteService key it calls the matrix
// API; without one it falls back to great-circle distance with a 50 km/h
// average speed. A failed matrix call yields zeroed legs rather than an
// error.
type RouteEstimator struct {
	key     string
	baseURL string
	http    *retryablehttp.Client
}

func NewRouteEstimator(apiKey string) *RouteEstimator {
	return &RouteEstimator{
		key:     apiKey,
		baseURL: orsMatrixURL,
		http:    newRetryClient(10 * time.Second),
	}
}

func (e *RouteEstimator) Estimate(ctx context.Context, origin LatLng, dests []LatLng) []RouteLeg {
	if len(dests) == 0 {
		return nil
	}
	if e.key == "" {
		return haversineLegs(origin, dests)
	}
	legs, err := e.matrix(ctx, origin, dests)
	if err != nil {
		log.Printf("[WARN] ors matrix failed, returning zeroed estimates: %v", err)
		return make([]RouteLeg, len(dests))
	}
	return legs
}

func (e *RouteEstimator) matrix(ctx context.Context, origin LatLng, dests []LatLng) ([]RouteLeg, error) {
	locations := make([][2]float64, 0, len(dests)+1)
	locations = append(locations, [2]float64{origin.Lng, origin.Lat})
	destIdx := make([]int, len(dests))
	for i, d := range dests {
		locations = append(locations, [2]float64{d.Lng, d.Lat})
		destIdx[i] = i + 1
	}

	payload, err := json.Marshal(map[string]any{
		"locations":    locations,
		"metrics":      []string{"distance", "duration"},
		"sources":      []int{0},
		"destinations": destIdx,
	})
	if err != nil {
		return nil, err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, e.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", e.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("ors error %d", resp.StatusCode)
	}

	var root struct {
		Distances [][]float64 `json:"distances"`
		Durations [][]float64 `json:"durations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&root); err != nil {
		return nil, err
	}
	if len(root.Distances) == 0 || len(root.Durations) == 0 ||
		len(root.Distances[0]) < len(dests) || len(root.Durations[0]) < len(dests) {
		return nil, fmt.Errorf("ors matrix shape mismatch")
	}

	legs := make([]RouteLeg, len(dests))
	for i := range dests {
		legs[i] = RouteLeg{
			DistanceM: int(math.Round(root.Distances[0][i])),
			DurationS: int(math.Round(root.Durations[0][i])),
		}
	}
	return legs, nil
}

func haversineLegs(origin LatLng, dests []LatLng) []RouteLeg {
	legs := make([]RouteLeg, len(dests))
	for i, d := range dests {
		km := haversineKm(origin, d)
		legs[i] = RouteLeg{
			DistanceM: int(math.Round(km * 1000)),
			DurationS: int(math.Round(km / fallbackSpeedKmh * 3600)),
		}
	}
	return legs
}

func haversineKm(a, b LatLng) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Lat*math.Pi/180)*math.Cos(b.Lat*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}
