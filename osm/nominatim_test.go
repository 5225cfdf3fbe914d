package osm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGeocodeFirstResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != userAgent {
			t.Errorf("missing user agent, got %q", r.Header.Get("User-Agent"))
		}
		q := r.URL.Query()
		if q.Get("format") != "json" || q.Get("limit") != "1" {
			t.Errorf("unexpected params: %v", q)
		}
		if q.Get("q") != "Delhi, Delhi, 110001, India" {
			t.Errorf("unexpected query: %q", q.Get("q"))
		}
		w.Write([]byte(`[{"lat":"28.6139","lon":"77.2090"}]`))
	}))
	defer srv.Close()

	g := NewGeocoder()
	g.baseURL = srv.URL
	coords, err := g.Geocode(context.Background(), "Delhi", "Delhi", "110001")
	if err != nil {
		t.Fatalf("geocode: %v", err)
	}
	if coords == nil || coords.Lat != 28.6139 || coords.Lng != 77.2090 {
		t.Fatalf("unexpected coords: %+v", coords)
	}
}

func TestGeocodeNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	g := NewGeocoder()
	g.baseURL = srv.URL
	coords, err := g.Geocode(context.Background(), "Nowhere", "XX", "000000")
	if err != nil {
		t.Fatalf("geocode: %v", err)
	}
	if coords != nil {
		t.Fatalf("expected no match, got %+v", coords)
	}
}

func TestGeocodeUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	g := NewGeocoder()
	g.baseURL = srv.URL
	coords, err := g.Geocode(context.Background(), "Delhi", "Delhi", "110001")
	if err == nil {
		t.Fatal("expected an error for upstream failure")
	}
	if coords != nil {
		t.Fatalf("expected nil coords on failure, got %+v", coords)
	}
}

func TestGeocodeUnparseableCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"lat":"not-a-number","lon":"77.2"}]`))
	}))
	defer srv.Close()

	g := NewGeocoder()
	g.baseURL = srv.URL
	coords, err := g.Geocode(context.Background(), "Delhi", "Delhi", "110001")
	if err != nil {
		t.Fatalf("geocode: %v", err)
	}
	if coords != nil {
		t.Fatalf("bad coordinates should read as no match, got %+v", coords)
	}
}
