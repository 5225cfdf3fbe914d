package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	httpapi "github.com/SakshamGarg16/Property-Search/http"
	"github.com/SakshamGarg16/Property-Search/internal/cache"
	"github.com/SakshamGarg16/Property-Search/internal/env"
	"github.com/SakshamGarg16/Property-Search/internal/events"
	"github.com/SakshamGarg16/Property-Search/internal/logger"
	"github.com/SakshamGarg16/Property-Search/internal/refresh"
	"github.com/SakshamGarg16/Property-Search/internal/store"
	"github.com/SakshamGarg16/Property-Search/internal/warmer"
	"github.com/SakshamGarg16/Property-Search/osm"
)

// warmTypes is the category set primed for newly created listings.
var warmTypes = []string{"school", "hospital", "restaurant"}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	port := env.GetInt("PORT", 8080)
	mongoURI := env.Must("MONGO_URI")
	dbName := env.Get("MONGO_DB", "property_search")

	ctx := context.Background()
	st, err := store.Open(ctx, mongoURI, dbName)
	if err != nil {
		log.Fatalf("store open error: %v", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	if err := st.Ping(pingCtx); err != nil {
		cancel()
		log.Fatalf("mongodb ping error: %v", err)
	}
	if err := st.EnsureIndexes(pingCtx); err != nil {
		log.Printf("[WARN] index creation failed: %v", err)
	}
	cancel()

	c := cache.New(ctx, os.Getenv("REDIS_URL"))

	geocoder := osm.NewGeocoder()
	overpass := osm.NewOverpassClient()
	routes := osm.NewRouteEstimator(os.Getenv("OPENROUTESERVICE_API_KEY"))
	places := osm.NewTripMapClient(os.Getenv("OPENTRIPMAP_API_KEY"))

	bus := events.NewInMemory(256)

	amenities := httpapi.AmenitiesDeps{
		Store:      st,
		Cache:      c,
		Amenities:  overpass,
		Routes:     routes,
		Refresh:    refresh.New(env.GetInt("REFRESH_CAPACITY", 256), env.GetInt("REFRESH_WORKERS", 2)),
		TTL:        env.GetDuration("AMENITY_CACHE_TTL", cache.DefaultTTL),
		StaleAfter: env.GetDuration("AMENITY_STALE_AFTER", 45*time.Minute),
	}

	wm := &warmer.Warmer{
		Pub: bus,
		Prime: func(wctx context.Context, evt events.ListingCreated) {
			origin := osm.LatLng{Lat: evt.Lat, Lng: evt.Lng}
			httpapi.PrimeAmenities(wctx, amenities, evt.ListingID, origin, 1000, warmTypes)
		},
	}
	go wm.Run(ctx)

	router := BuildRouter(appDeps{
		search:    httpapi.SearchDeps{Store: st},
		create:    httpapi.CreateDeps{Store: st, Geocode: geocoder, Pub: bus},
		amenities: amenities,
		pois:      httpapi.POIDeps{Store: st, Places: places},
	})

	appLog := logger.New(env.Get("APP_ENV", "production"))
	log.Printf("property api listening on :%d", port)
	if err := http.ListenAndServe(fmt.Sprintf(":%d", port), logger.Middleware(appLog, router)); err != nil {
		log.Fatal(err)
	}
}
