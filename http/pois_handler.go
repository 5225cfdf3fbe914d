package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/SakshamGarg16/Property-Search/internal/store"
	"github.com/SakshamGarg16/Property-Search/osm"
)

const (
	defaultPOIKinds  = "education"
	defaultPOIRadius = 5000
	defaultPOILimit  = 50
)

type POIFinder interface {
	NearbyPlaces(ctx context.Context, lat, lon float64, kinds string, radius, limit int) ([]osm.POI, error)
	PlaceDetails(ctx context.Context, xid string) (json.RawMessage, error)
}

type POIDeps struct {
	Store  ListingReader
	Places POIFinder
}

func RegisterPOIs(r chi.Router, d POIDeps) {
	r.Get("/api/properties/{id}/pois", func(w http.ResponseWriter, req *http.Request) {
		id := chi.URLParam(req, "id")

		kinds := req.URL.Query().Get("kinds")
		if kinds == "" {
			kinds = defaultPOIKinds
		}
		radius := defaultPOIRadius
		if v := req.URL.Query().Get("radius"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				radius = n
			}
		}
		limit := defaultPOILimit
		if v := req.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				limit = n
			}
		}

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

		pois, err := d.Places.NearbyPlaces(req.Context(), listing.Coordinates.Lat, listing.Coordinates.Lng, kinds, radius, limit)
		if err != nil {
			log.Printf("[WARN] poi fetch failed for %s: %v", id, err)
			render.Status(req, http.StatusInternalServerError)
			render.JSON(w, req, map[string]any{"message": "Failed to fetch points of interest"})
			return
		}
		if pois == nil {
			pois = []osm.POI{}
		}
		render.JSON(w, req, map[string]any{"pois": pois})
	})

	r.Get("/api/places/{xid}", func(w http.ResponseWriter, req *http.Request) {
		xid := chi.URLParam(req, "xid")
		detail, err := d.Places.PlaceDetails(req.Context(), xid)
		if err != nil {
			log.Printf("[WARN] place detail fetch failed for %s: %v", xid, err)
			render.Status(req, http.StatusInternalServerError)
			render.JSON(w, req, map[string]any{"message": "Failed to fetch place details"})
			return
		}
		render.JSON(w, req, detail)
	})
}
