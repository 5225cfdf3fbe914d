package store

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Location struct {
	City    string `bson:"city" json:"city"`
	State   string `bson:"state" json:"state"`
	Pincode string `bson:"pincode" json:"pincode"`
}

type Coordinates struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// Listing is a persisted property record. Coordinates are present only
// when geocoding succeeded at creation time; consumers must treat them
// as optional.
type Listing struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	Price        float64            `bson:"price" json:"price"`
	Location     Location           `bson:"location" json:"location"`
	PropertyType string             `bson:"propertyType" json:"propertyType"`
	Bedrooms     int                `bson:"bedrooms" json:"bedrooms"`
	Bathrooms    int                `bson:"bathrooms" json:"bathrooms"`
	Area         float64            `bson:"area" json:"area"`
	Amenities    []string           `bson:"amenities" json:"amenities"`
	Images       []string           `bson:"images" json:"images"`
	ListedDate   time.Time          `bson:"listedDate" json:"listedDate"`
	Status       string             `bson:"status" json:"status"`
	Coordinates  *Coordinates       `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
}
