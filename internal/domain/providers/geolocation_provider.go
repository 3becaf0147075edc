package providers

import "context"

// Coordinates is a WGS84 point.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// RegionInfo is the administrative region of a point, used to drive
// region/district upstream filters from a device location.
type RegionInfo struct {
	Region       string `json:"region"`
	District     string `json:"district"`
	Neighborhood string `json:"neighborhood"`
}

// Place is one place-search hit.
type Place struct {
	Name        string      `json:"name"`
	Address     string      `json:"address"`
	Phone       string      `json:"phone,omitempty"`
	Coordinates Coordinates `json:"coordinates"`
}

// GeolocationProvider wraps the third-party places API used for geocoding
// and keyword search.
type GeolocationProvider interface {
	// Geocode resolves an address string to coordinates.
	Geocode(ctx context.Context, address string) (*Coordinates, error)

	// ReverseRegion resolves coordinates to an administrative region.
	ReverseRegion(ctx context.Context, lat, lng float64) (*RegionInfo, error)

	// SearchPlaces runs a keyword search around a point.
	SearchPlaces(ctx context.Context, keyword string, lat, lng float64, radiusMeters int) ([]Place, error)
}
