package httpapi

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/SakshamGarg16/Property-Search/internal/query"
	"github.com/SakshamGarg16/Property-Search/internal/store"
)

type SearchStore interface {
	Search(ctx context.Context, filter bson.M, sort bson.D, skip, limit int64) ([]store.Listing, int64, error)
}

type SearchDeps struct {
	Store SearchStore
}

func RegisterSearch(r chi.Router, d SearchDeps) {
	r.Get("/api/properties/search", func(w http.ResponseWriter, req *http.Request) {
		p := query.ParseSearchParams(req.URL.Query())
		filter := query.BuildFilter(p)
		sort := query.SortFor(p.SortBy)
		skip := int64((p.Page - 1) * p.Limit)

		results, total, err := d.Store.Search(req.Context(), filter, sort, skip, int64(p.Limit))
		if err != nil {
			log.Printf("[WARN] property search failed: %v", err)
			render.Status(req, http.StatusInternalServerError)
			render.JSON(w, req, map[string]any{"message": "Server error"})
			return
		}
		totalPages := (total + int64(p.Limit) - 1) / int64(p.Limit)

		render.JSON(w, req, map[string]any{
			"results":      results,
			"page":         p.Page,
			"limit":        p.Limit,
			"totalPages":   totalPages,
			"totalResults": total,
		})
	})
}
