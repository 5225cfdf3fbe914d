package osm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
)

const overpassURL = "https://overpass-api.de/api/interpreter"

// OverpassClient fetches amenity nodes around a coordinate from the
// public Overpass API.
type OverpassClient struct {
	baseURL string
	http    *retryablehttp.Client
}

func NewOverpassClient() *OverpassClient {
	return &OverpassClient{
		baseURL: overpassURL,
		http:    newRetryClient(0),
	}
}

// NearbyAmenities queries one node clause per requested amenity type and
// merges the results. Unnamed nodes keep the "Unnamed" placeholder so
// the response shape stays stable for consumers.
func (c *OverpassClient) NearbyAmenities(ctx context.Context, lat, lng float64, radius int, types []string) ([]Amenity, error) {
	var b strings.Builder
	b.WriteString("[out:json];\n(\n")
	for _, t := range types {
		fmt.Fprintf(&b, "node[\"amenity\"=%q](around:%d,%s,%s);\n",
			t, radius,
			strconv.FormatFloat(lat, 'f', -1, 64),
			strconv.FormatFloat(lng, 'f', -1, 64))
	}
	b.WriteString(");\nout center;")

	u := c.baseURL + "?data=" + url.QueryEscape(b.String())
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
		return nil, fmt.Errorf("overpass error %d", resp.StatusCode)
	}
	body, err := readAllLimit(resp.Body, 4<<20) // 4MB guard
	if err != nil {
		return nil, err
	}

	var root struct {
		Elements []struct {
			ID   int64             `json:"id"`
			Lat  float64           `json:"lat"`
			Lon  float64           `json:"lon"`
			Tags map[string]string `json:"tags"`
		} `json:"elements"`
	}
	if err := json.Unmarshal(body, &root); err != nil {
		return nil, err
	}

	out := make([]Amenity, 0, len(root.Elements))
	for _, el := range root.Elements {
		name := el.Tags["name"]
		if name == "" {
			name = "Unnamed"
		}
		kind := el.Tags["amenity"]
		if kind == "" {
			kind = "unknown"
		}
		out = append(out, Amenity{
			ID:   el.ID,
			Name: name,
			Type: kind,
			Lat:  el.Lat,
			Lng:  el.Lon,
		})
	}
	return out, nil
}
