package httpapi

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/SakshamGarg16/Property-Search/internal/cache"
	"github.com/SakshamGarg16/Property-Search/internal/refresh"
	"github.com/SakshamGarg16/Property-Search/internal/store"
	"github.com/SakshamGarg16/Property-Search/osm"
)

const defaultAmenityRadius = 1000

type ListingReader interface {
	GetByID(ctx context.Context, id string) (*store.Listing, error)
}

type AmenityFinder interface {
	NearbyAmenities(ctx context.Context, lat, lng float64, radius int, types []string) ([]osm.Amenity, error)
}

type RouteEstimator interface {
	Estimate(ctx context.Context, origin osm.LatLng, dests []osm.LatLng) []osm.RouteLeg
}

type AmenitiesDeps struct {
	Store     ListingReader
	Cache     *cache.Cache
	Amenities AmenityFinder
	Routes    RouteEstimator      // optional
	Refresh   *refresh.Refresher  // optional, enables stale-while-revalidate

	TTL        time.Duration // cache entry lifetime, default 1h
	StaleAfter time.Duration // soft staleness window, default 45m
}

func (d AmenitiesDeps) ttl() time.Duration {
	if d.TTL > 0 {
		return d.TTL
	}
	return cache.DefaultTTL
}

func (d AmenitiesDeps) staleAfter() time.Duration {
	if d.StaleAfter > 0 {
		return d.StaleAfter
	}
	return 45 * time.Minute
}

// amenityEnvelope is what gets cached: the results plus when they were
// fetched, so stale entries can be refreshed in the background.
type amenityEnvelope struct {
	Amenities []osm.Amenity `json:"amenities"`
	FetchedAt time.Time     `json:"fetched_at"`
}

func RegisterAmenities(r chi.Router, d AmenitiesDeps) {
	r.Get("/api/properties/{id}/nearby-amenities", d.handleNearby)
	// alias kept for older frontend builds
	r.Get("/api/properties/{id}/nearby", d.handleNearby)
}

func (d AmenitiesDeps) handleNearby(w http.ResponseWriter, req *http.Request) {
	id := chi.URLParam(req, "id")

	radius := defaultAmenityRadius
	if v := req.URL.Query().Get("radius"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			radius = n
		}
	}
	types := splitTypes(req.URL.Query().Get("types"))

	listing, err := d.Store.GetByID(req.Context(), id)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Printf("[WARN] listing lookup failed for %s: %v", id, err)
		render.Status(req, http.StatusInternalServerError)
		render.JSON(w, req, map[string]any{"message": "Server error"})
		return
	}
	if errors.Is(err, store.ErrNotFound) || listing.Coordinates == nil {
		render.Status(req, http.StatusNotFound)
		render.JSON(w, req, map[string]any{"message": "Property not found or missing coordinates"})
		return
	}
	if len(types) == 0 {
		render.Status(req, http.StatusBadRequest)
		render.JSON(w, req, map[string]any{"message": "No amenity types provided"})
		return
	}

	origin := osm.LatLng{Lat: listing.Coordinates.Lat, Lng: listing.Coordinates.Lng}
	key := amenityCacheKey(id, radius, types)

	var env amenityEnvelope
	if ok, err := d.Cache.Get(req.Context(), key, &env); err == nil && ok {
		if d.Refresh != nil && time.Since(env.FetchedAt) > d.staleAfter() {
			d.Refresh.Enqueue(refresh.Job{CacheKey: key, Run: func(ctx context.Context) {
				if _, err := d.fetchAndCache(ctx, key, origin, radius, types); err != nil {
					log.Printf("[WARN] amenity refresh failed for %s: %v", key, err)
				}
			}})
		}
		render.JSON(w, req, map[string]any{"amenities": env.Amenities})
		return
	} else if err != nil {
		log.Printf("[WARN] amenity cache read failed: %v", err)
	}

	amenities, err := d.fetchAndCache(req.Context(), key, origin, radius, types)
	if err != nil {
		log.Printf("[WARN] amenity fetch failed for %s: %v", id, err)
		render.Status(req, http.StatusInternalServerError)
		render.JSON(w, req, map[string]any{"message": "Failed to fetch nearby amenities"})
		return
	}
	render.JSON(w, req, map[string]any{"amenities": amenities})
}

func (d AmenitiesDeps) fetchAndCache(ctx context.Context, key string, origin osm.LatLng, radius int, types []string) ([]osm.Amenity, error) {
	amenities, err := d.Amenities.NearbyAmenities(ctx, origin.Lat, origin.Lng, radius, types)
	if err != nil {
		return nil, err
	}
	if amenities == nil {
		amenities = []osm.Amenity{}
	}
	if d.Routes != nil && len(amenities) > 0 {
		dests := make([]osm.LatLng, len(amenities))
		for i, a := range amenities {
			dests[i] = osm.LatLng{Lat: a.Lat, Lng: a.Lng}
		}
		legs := d.Routes.Estimate(ctx, origin, dests)
		for i := range amenities {
			if i < len(legs) {
				amenities[i].DistanceM = legs[i].DistanceM
				amenities[i].DurationS = legs[i].DurationS
			}
		}
	}
	env := amenityEnvelope{Amenities: amenities, FetchedAt: time.Now()}
	if err := d.Cache.Set(ctx, key, env, d.ttl()); err != nil {
		log.Printf("[WARN] amenity cache write failed: %v", err)
	}
	return amenities, nil
}

// PrimeAmenities warms the cache for a listing; used by the
// listing.created warmer. Errors are logged, never surfaced.
func PrimeAmenities(ctx context.Context, d AmenitiesDeps, listingID string, origin osm.LatLng, radius int, types []string) {
	if len(types) == 0 {
		return
	}
	key := amenityCacheKey(listingID, radius, types)
	if _, err := d.fetchAndCache(ctx, key, origin, radius, types); err != nil {
		log.Printf("[WARN] amenity warmup failed for %s: %v", listingID, err)
	}
}

func amenityCacheKey(id string, radius int, types []string) string {
	return cache.Key("amenities", map[string]string{
		"id":     id,
		"radius": strconv.Itoa(radius),
		"types":  strings.Join(types, ","),
	})
}

func splitTypes(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
