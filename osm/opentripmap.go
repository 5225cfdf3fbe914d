package osm

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const openTripMapURL = "https://dev.opentripmap.org/0.1/en/places"

// TripMapClient looks up points of interest through the OpenTripMap
// API. Unlike the Overpass client these calls carry a bounded wait.
type TripMapClient struct {
	key     string
	baseURL string
	http    *retryablehttp.Client
}

func NewTripMapClient(apiKey string) *TripMapClient {
	return &TripMapClient{
		key:     apiKey,
		baseURL: openTripMapURL,
		http:    newRetryClient(10 * time.Second),
	}
}

// NearbyPlaces returns places within radius meters of the coordinate,
// filtered by the comma-separated kinds expression.
func (c *TripMapClient) NearbyPlaces(ctx context.Context, lat, lon float64, kinds string, radius, limit int) ([]POI, error) {
	q := url.Values{}
	q.Set("radius", strconv.Itoa(radius))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("kinds", kinds)
	q.Set("format", "json")
	q.Set("limit", strconv.Itoa(limit))
	q.Set("apikey", c.key)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/radius?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("opentripmap error %d", resp.StatusCode)
	}
	body, err := readAllLimit(resp.Body, 4<<20)
	if err != nil {
		return nil, err
	}

	var places []struct {
		XID   string  `json:"xid"`
		Name  string  `json:"name"`
		Dist  float64 `json:"dist"`
		Kinds string  `json:"kinds"`
		Point struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"point"`
	}
	if err := json.Unmarshal(body, &places); err != nil {
		return nil, err
	}

	out := make([]POI, 0, len(places))
	for _, p := range places {
		out = append(out, POI{
			XID:   p.XID,
			Name:  p.Name,
			Kinds: p.Kinds,
			DistM: int(math.Round(p.Dist)),
			Lat:   p.Point.Lat,
			Lon:   p.Point.Lon,
		})
	}
	return out, nil
}

// PlaceDetails returns the raw detail payload for a place id.
func (c *TripMapClient) PlaceDetails(ctx context.Context, xid string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("apikey", c.key)

	u := c.baseURL + "/xid/" + url.PathEscape(xid) + "?" + q.Encode()
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("opentripmap error %d", resp.StatusCode)
	}
	return readAllLimit(resp.Body, 1<<20)
}
