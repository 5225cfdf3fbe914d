package osm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNearbyAmenitiesQueryAndMapping(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("data")
		w.Write([]byte(`{"elements":[
			{"id":101,"lat":28.61,"lon":77.21,"tags":{"name":"City School","amenity":"school"}},
			{"id":102,"lat":28.62,"lon":77.22,"tags":{"amenity":"hospital"}},
			{"id":103,"lat":28.63,"lon":77.23}
		]}`))
	}))
	defer srv.Close()

	c := NewOverpassClient()
	c.baseURL = srv.URL
	amenities, err := c.NearbyAmenities(context.Background(), 28.61, 77.21, 1500, []string{"school", "hospital"})
	if err != nil {
		t.Fatalf("nearby amenities: %v", err)
	}

	if !strings.Contains(gotQuery, `node["amenity"="school"](around:1500,28.61,77.21);`) {
		t.Fatalf("school clause missing from query:\n%s", gotQuery)
	}
	if !strings.Contains(gotQuery, `node["amenity"="hospital"](around:1500,28.61,77.21);`) {
		t.Fatalf("hospital clause missing from query:\n%s", gotQuery)
	}
	if !strings.HasPrefix(gotQuery, "[out:json];") || !strings.HasSuffix(gotQuery, "out center;") {
		t.Fatalf("query framing wrong:\n%s", gotQuery)
	}

	if len(amenities) != 3 {
		t.Fatalf("expected 3 amenities, got %d", len(amenities))
	}
	if amenities[0].Name != "City School" || amenities[0].Type != "school" || amenities[0].ID != 101 {
		t.Fatalf("unexpected first amenity: %+v", amenities[0])
	}
	if amenities[1].Name != "Unnamed" {
		t.Fatalf("nameless node should default to Unnamed, got %q", amenities[1].Name)
	}
	if amenities[2].Type != "unknown" {
		t.Fatalf("tagless node should default to unknown, got %q", amenities[2].Type)
	}
}

func TestNearbyAmenitiesUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewOverpassClient()
	c.baseURL = srv.URL
	if _, err := c.NearbyAmenities(context.Background(), 0, 0, 100, []string{"school"}); err == nil {
		t.Fatal("expected an error")
	}
}

func TestNearbyAmenitiesEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"elements":[]}`))
	}))
	defer srv.Close()

	c := NewOverpassClient()
	c.baseURL = srv.URL
	amenities, err := c.NearbyAmenities(context.Background(), 0, 0, 100, []string{"school"})
	if err != nil {
		t.Fatalf("nearby amenities: %v", err)
	}
	if len(amenities) != 0 {
		t.Fatalf("expected no amenities, got %v", amenities)
	}
}
