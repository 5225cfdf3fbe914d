package osm

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Amenity is a point of interest returned by the Overpass lookup.
// DistanceM/DurationS are filled in by the route estimator relative to
// the listing the lookup was made for.
type Amenity struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	DistanceM int     `json:"distance_m,omitempty"`
	DurationS int     `json:"duration_s,omitempty"`
}

// POI is a place returned by the OpenTripMap radius search.
type POI struct {
	XID   string  `json:"xid"`
	Name  string  `json:"name"`
	Kinds string  `json:"kinds"`
	DistM int     `json:"dist_m"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
}

// RouteLeg is the travel estimate from an origin to one destination.
type RouteLeg struct {
	DistanceM int `json:"distance_m"`
	DurationS int `json:"duration_s"`
}
