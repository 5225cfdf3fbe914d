package events

import (
	"context"
)

type ListingCreated struct {
	ListingID string
	Lat       float64
	Lng       float64
}

type Publisher interface {
	PublishListingCreated(ctx context.Context, evt ListingCreated)
	SubscribeListingCreated() <-chan ListingCreated
}

type inMemory struct{ ch chan ListingCreated }

func NewInMemory(buffer int) Publisher {
	if buffer <= 0 {
		buffer = 256
	}
	return &inMemory{ch: make(chan ListingCreated, buffer)}
}

func (m *inMemory) PublishListingCreated(_ context.Context, evt ListingCreated) {
	select {
	case m.ch <- evt:
	default:
	}
}

func (m *inMemory) SubscribeListingCreated() <-chan ListingCreated { return m.ch }
