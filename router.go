package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-chi/render"

	httpapi "github.com/SakshamGarg16/Property-Search/http"
)

type appDeps struct {
	search    httpapi.SearchDeps
	create    httpapi.CreateDeps
	amenities httpapi.AmenitiesDeps
	pois      httpapi.POIDeps
}

func BuildRouter(d appDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(httprate.LimitByIP(100, 1*time.Minute)) // protect upstream quota
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"ok":true}`)) })

	httpapi.RegisterSearch(r, d.search)
	httpapi.RegisterCreate(r, d.create)
	httpapi.RegisterAmenities(r, d.amenities)
	httpapi.RegisterPOIs(r, d.pois)

	return r
}
