package httpapi

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/SakshamGarg16/Property-Search/internal/events"
	"github.com/SakshamGarg16/Property-Search/internal/store"
	"github.com/SakshamGarg16/Property-Search/osm"
)

type ListingWriter interface {
	Insert(ctx context.Context, l *store.Listing) error
}

type Geocoder interface {
	Geocode(ctx context.Context, city, state, pincode string) (*osm.LatLng, error)
}

type CreateDeps struct {
	Store   ListingWriter
	Geocode Geocoder
	Pub     events.Publisher // optional
}

type createRequest struct {
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Price        float64        `json:"price"`
	Location     store.Location `json:"location"`
	PropertyType string         `json:"propertyType"`
	Bedrooms     int            `json:"bedrooms"`
	Bathrooms    int            `json:"bathrooms"`
	Area         float64        `json:"area"`
	Amenities    []string       `json:"amenities"`
	Images       []string       `json:"images"`
	ListedDate   *time.Time     `json:"listedDate"`
	Status       string         `json:"status"`
}

func RegisterCreate(r chi.Router, d CreateDeps) {
	r.Post("/api/properties/add", func(w http.ResponseWriter, req *http.Request) {
		var body createRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			render.Status(req, http.StatusBadRequest)
			render.JSON(w, req, map[string]any{"message": "Invalid request body"})
			return
		}
		if body.Location.City == "" || body.Location.State == "" || body.Location.Pincode == "" {
			render.Status(req, http.StatusBadRequest)
			render.JSON(w, req, map[string]any{"message": "City, state, and pincode are required"})
			return
		}
		if body.Title == "" || body.Price <= 0 {
			render.Status(req, http.StatusBadRequest)
			render.JSON(w, req, map[string]any{"message": "Title and a positive price are required"})
			return
		}

		coords, err := d.Geocode.Geocode(req.Context(), body.Location.City, body.Location.State, body.Location.Pincode)
		if err != nil {
			// service failure and "no match" read the same to the
			// client; keep the distinction in the server log.
			log.Printf("[WARN] geocoding failed for %s/%s/%s: %v",
				body.Location.City, body.Location.State, body.Location.Pincode, err)
			coords = nil
		}
		if coords == nil {
			render.Status(req, http.StatusBadRequest)
			render.JSON(w, req, map[string]any{"message": "Could not find coordinates for given location"})
			return
		}

		listing := store.Listing{
			Title:        body.Title,
			Description:  body.Description,
			Price:        body.Price,
			Location:     body.Location,
			PropertyType: body.PropertyType,
			Bedrooms:     body.Bedrooms,
			Bathrooms:    body.Bathrooms,
			Area:         body.Area,
			Amenities:    body.Amenities,
			Images:       body.Images,
			ListedDate:   time.Now(),
			Status:       "available",
			Coordinates:  &store.Coordinates{Lat: coords.Lat, Lng: coords.Lng},
		}
		if body.ListedDate != nil {
			listing.ListedDate = *body.ListedDate
		}
		if body.Status != "" {
			listing.Status = body.Status
		}

		if err := d.Store.Insert(req.Context(), &listing); err != nil {
			log.Printf("[WARN] listing insert failed: %v", err)
			render.Status(req, http.StatusInternalServerError)
			render.JSON(w, req, map[string]any{"message": "Server error"})
			return
		}

		if d.Pub != nil {
			d.Pub.PublishListingCreated(req.Context(), events.ListingCreated{
				ListingID: listing.ID.Hex(),
				Lat:       coords.Lat,
				Lng:       coords.Lng,
			})
		}

		render.Status(req, http.StatusCreated)
		render.JSON(w, req, listing)
	})
}
