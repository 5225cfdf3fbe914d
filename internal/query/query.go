// Package query turns loosely-typed search parameters into a validated
// parameter struct and a Mongo filter document.
package query

import (
	"math"
	"net/url"
	"regexp"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// SearchParams is the request-scoped, already-clamped search input.
// Nil pointer fields impose no constraint.
type SearchParams struct {
	City         string
	MinPrice     *float64
	MaxPrice     *float64
	PropertyType string
	MinBedrooms  *int
	SortBy       string
	Page         int
	Limit        int
}

// ParseSearchParams reads query values into SearchParams. Malformed or
// non-finite numerics coerce to unset; page clamps to >=1 and limit to
// [1,100].
func ParseSearchParams(q url.Values) SearchParams {
	p := SearchParams{
		City:         q.Get("city"),
		PropertyType: q.Get("propertyType"),
		SortBy:       q.Get("sortBy"),
		Page:         DefaultPage,
		Limit:        DefaultLimit,
	}
	if f, ok := parseFloat(q.Get("minPrice")); ok {
		p.MinPrice = &f
	}
	if f, ok := parseFloat(q.Get("maxPrice")); ok {
		p.MaxPrice = &f
	}
	if v := q.Get("minBedrooms"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			p.MinBedrooms = &n
		}
	}
	if v := q.Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			if n < 1 {
				n = 1
			}
			p.Page = n
		}
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			if n < 1 {
				n = 1
			}
			if n > MaxLimit {
				n = MaxLimit
			}
			p.Limit = n
		}
	}
	return p
}

func parseFloat(v string) (float64, bool) {
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// BuildFilter derives the Mongo predicate. City matches are anchored and
// case-insensitive; the user text is quoted so it cannot act as a
// pattern.
func BuildFilter(p SearchParams) bson.M {
	filter := bson.M{}
	if p.City != "" {
		filter["location.city"] = bson.M{
			"$regex":   "^" + regexp.QuoteMeta(p.City) + "$",
			"$options": "i",
		}
	}
	if p.PropertyType != "" {
		filter["propertyType"] = p.PropertyType
	}
	if p.MinBedrooms != nil {
		filter["bedrooms"] = bson.M{"$gte": *p.MinBedrooms}
	}
	if p.MinPrice != nil || p.MaxPrice != nil {
		price := bson.M{}
		if p.MinPrice != nil {
			price["$gte"] = *p.MinPrice
		}
		if p.MaxPrice != nil {
			price["$lte"] = *p.MaxPrice
		}
		filter["price"] = price
	}
	return filter
}

// SortFor maps the sort key to a Mongo sort document. Unknown keys fall
// back to newest-first.
func SortFor(sortBy string) bson.D {
	switch sortBy {
	case "price":
		return bson.D{{Key: "price", Value: 1}}
	case "price_desc":
		return bson.D{{Key: "price", Value: -1}}
	case "listedDate_asc":
		return bson.D{{Key: "listedDate", Value: 1}}
	default:
		return bson.D{{Key: "listedDate", Value: -1}}
	}
}
