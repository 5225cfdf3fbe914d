package query

import (
	"net/url"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestParseSearchParamsDefaults(t *testing.T) {
	p := ParseSearchParams(url.Values{})
	if p.Page != 1 || p.Limit != 10 {
		t.Fatalf("expected defaults page=1 limit=10, got %d/%d", p.Page, p.Limit)
	}
	if p.MinPrice != nil || p.MaxPrice != nil || p.MinBedrooms != nil {
		t.Fatalf("expected no numeric constraints: %+v", p)
	}
}

func TestParseSearchParamsClamping(t *testing.T) {
	cases := []struct {
		page, limit         string
		wantPage, wantLimit int
	}{
		{"0", "0", 1, 1},
		{"-3", "-5", 1, 1},
		{"abc", "xyz", 1, 10},
		{"2", "1000", 2, 100},
		{"", "50", 1, 50},
	}
	for _, c := range cases {
		q := url.Values{}
		if c.page != "" {
			q.Set("page", c.page)
		}
		if c.limit != "" {
			q.Set("limit", c.limit)
		}
		p := ParseSearchParams(q)
		if p.Page != c.wantPage || p.Limit != c.wantLimit {
			t.Fatalf("page=%q limit=%q: got %d/%d, want %d/%d",
				c.page, c.limit, p.Page, p.Limit, c.wantPage, c.wantLimit)
		}
	}
}

func TestParseSearchParamsMalformedNumericsUnset(t *testing.T) {
	q := url.Values{}
	q.Set("minPrice", "abc")
	q.Set("maxPrice", "NaN")
	q.Set("minBedrooms", "two")
	p := ParseSearchParams(q)
	if p.MinPrice != nil {
		t.Fatalf("malformed minPrice should be unset, got %v", *p.MinPrice)
	}
	if p.MaxPrice != nil {
		t.Fatalf("NaN maxPrice should be unset, got %v", *p.MaxPrice)
	}
	if p.MinBedrooms != nil {
		t.Fatalf("malformed minBedrooms should be unset, got %v", *p.MinBedrooms)
	}
}

func TestBuildFilterEmpty(t *testing.T) {
	f := BuildFilter(SearchParams{})
	if len(f) != 0 {
		t.Fatalf("expected match-all filter, got %v", f)
	}
}

func TestBuildFilterCityAnchoredCaseInsensitive(t *testing.T) {
	f := BuildFilter(SearchParams{City: "delhi"})
	city, ok := f["location.city"].(bson.M)
	if !ok {
		t.Fatalf("expected city clause, got %v", f)
	}
	if city["$regex"] != "^delhi$" {
		t.Fatalf("expected anchored pattern, got %v", city["$regex"])
	}
	if city["$options"] != "i" {
		t.Fatalf("expected case-insensitive option, got %v", city["$options"])
	}
}

func TestBuildFilterQuotesRegexMeta(t *testing.T) {
	f := BuildFilter(SearchParams{City: "a.b"})
	city := f["location.city"].(bson.M)
	if city["$regex"] != `^a\.b$` {
		t.Fatalf("city text must be quoted, got %v", city["$regex"])
	}
}

func TestBuildFilterPriceRange(t *testing.T) {
	min, max := 100.0, 500.0

	f := BuildFilter(SearchParams{MinPrice: &min, MaxPrice: &max})
	price := f["price"].(bson.M)
	if price["$gte"] != 100.0 || price["$lte"] != 500.0 {
		t.Fatalf("unexpected price clause: %v", price)
	}

	f = BuildFilter(SearchParams{MinPrice: &min})
	price = f["price"].(bson.M)
	if _, ok := price["$lte"]; ok {
		t.Fatalf("max bound should be absent: %v", price)
	}
	if price["$gte"] != 100.0 {
		t.Fatalf("unexpected min bound: %v", price)
	}
}

func TestBuildFilterBedroomsAndType(t *testing.T) {
	beds := 3
	f := BuildFilter(SearchParams{PropertyType: "villa", MinBedrooms: &beds})
	if f["propertyType"] != "villa" {
		t.Fatalf("unexpected propertyType clause: %v", f)
	}
	bedsClause := f["bedrooms"].(bson.M)
	if bedsClause["$gte"] != 3 {
		t.Fatalf("unexpected bedrooms clause: %v", bedsClause)
	}
}

func TestSortFor(t *testing.T) {
	cases := []struct {
		key   string
		field string
		dir   int
	}{
		{"price", "price", 1},
		{"price_desc", "price", -1},
		{"listedDate_asc", "listedDate", 1},
		{"listedDate", "listedDate", -1},
		{"", "listedDate", -1},
		{"bogus", "listedDate", -1},
	}
	for _, c := range cases {
		s := SortFor(c.key)
		if len(s) != 1 || s[0].Key != c.field || s[0].Value != c.dir {
			t.Fatalf("SortFor(%q) = %v, want %s/%d", c.key, s, c.field, c.dir)
		}
	}
}
