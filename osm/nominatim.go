package osm

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	nominatimURL = "https://nominatim.openstreetmap.org/search"
	userAgent    = "Property-Search/1.0"

	// geocoding is restricted to one country; listings carry Indian
	// postal addresses.
	countrySuffix = "India"
)

// Geocoder resolves a city/state/pincode triple to coordinates via the
// public Nominatim instance. Calls are paced at one per second per the
// Nominatim usage policy. No request timeout is applied; the caller's
// context still propagates.
type Geocoder struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

func NewGeocoder() *Geocoder {
	return &Geocoder{
		baseURL: nominatimURL,
		client:  &http.Client{},
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// Geocode returns the best match for the address, or nil when Nominatim
// has no result. Upstream failures also surface as nil with a non-nil
// error so callers can log the distinction; both read as "no match".
func (g *Geocoder) Geocode(ctx context.Context, city, state, pincode string) (*LatLng, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", fmt.Sprintf("%s, %s, %s, %s", city, state, pincode, countrySuffix))
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim error %d", resp.StatusCode)
	}

	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		log.Printf("[WARN] nominatim returned unparseable latitude %q", results[0].Lat)
		return nil, nil
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		log.Printf("[WARN] nominatim returned unparseable longitude %q", results[0].Lon)
		return nil, nil
	}
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return nil, nil
	}
	return &LatLng{Lat: lat, Lng: lng}, nil
}
