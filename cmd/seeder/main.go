// Command seeder bulk-imports listings from a JSON file, geocoding any
// record that arrives without coordinates. Records that cannot be
// geocoded are skipped, matching the create endpoint's rule that a
// listing is only persisted with a resolvable address or explicit
// coordinates.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/SakshamGarg16/Property-Search/internal/env"
	"github.com/SakshamGarg16/Property-Search/internal/store"
	"github.com/SakshamGarg16/Property-Search/osm"
)

func main() {
	filePtr := flag.String("file", "seed.json", "Path to the JSON file of listings to import")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	mongoURI := env.Must("MONGO_URI")
	dbName := env.Get("MONGO_DB", "property_search")

	data, err := os.ReadFile(*filePtr)
	if err != nil {
		log.Fatalf("read seed file: %v", err)
	}
	var listings []store.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		log.Fatalf("parse seed file: %v", err)
	}

	ctx := context.Background()
	st, err := store.Open(ctx, mongoURI, dbName)
	if err != nil {
		log.Fatalf("store open error: %v", err)
	}
	defer st.Close(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	if err := st.Ping(pingCtx); err != nil {
		cancel()
		log.Fatalf("mongodb ping error: %v", err)
	}
	if err := st.EnsureIndexes(pingCtx); err != nil {
		log.Printf("[WARN] index creation failed: %v", err)
	}
	cancel()

	geocoder := osm.NewGeocoder()

	inserted, skipped := 0, 0
	for i := range listings {
		l := &listings[i]
		if l.Title == "" || l.Price <= 0 {
			log.Printf("skipping record %d: missing title or price", i)
			skipped++
			continue
		}
		if l.ListedDate.IsZero() {
			l.ListedDate = time.Now()
		}
		if l.Status == "" {
			l.Status = "available"
		}

		if l.Coordinates == nil {
			if l.Location.City == "" || l.Location.State == "" || l.Location.Pincode == "" {
				log.Printf("skipping record %d: no coordinates and incomplete address", i)
				skipped++
				continue
			}
			coords, err := geocoder.Geocode(ctx, l.Location.City, l.Location.State, l.Location.Pincode)
			if err != nil {
				log.Printf("skipping record %d: geocode failed: %v", i, err)
				skipped++
				continue
			}
			if coords == nil {
				log.Printf("skipping record %d: no geocode result for %s/%s/%s",
					i, l.Location.City, l.Location.State, l.Location.Pincode)
				skipped++
				continue
			}
			l.Coordinates = &store.Coordinates{Lat: coords.Lat, Lng: coords.Lng}
		}

		if err := st.Insert(ctx, l); err != nil {
			log.Printf("skipping record %d: insert failed: %v", i, err)
			skipped++
			continue
		}
		inserted++
	}

	log.Printf("seed complete: %d inserted, %d skipped", inserted, skipped)
}
