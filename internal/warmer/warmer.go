package warmer

import (
	"context"
	"log"
	"time"

	"github.com/SakshamGarg16/Property-Search/internal/events"
)

// Warmer consumes listing.created events and primes the amenity cache
// around each new listing so the first map view is warm. Best effort:
// failures are logged and dropped.
type Warmer struct {
	Pub   events.Publisher
	Prime func(ctx context.Context, evt events.ListingCreated)
}

func (w *Warmer) Run(ctx context.Context) {
	sub := w.Pub.SubscribeListingCreated()
	for {
		select {
		case <-ctx.Done():
			return
		case evt := <-sub:
			wctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			w.Prime(wctx, evt)
			cancel()
			log.Printf("warmer: primed amenities for listing %s", evt.ListingID)
		}
	}
}
