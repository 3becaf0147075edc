package geolocation

import (
	"context"
	"strings"

	"github.com/Jin-yujin/doctorpay-backend/internal/domain/providers"
)

// MockGeolocationProvider implements a mock geolocation provider for testing
type MockGeolocationProvider struct{}

// NewMockGeolocationProvider creates a new mock geolocation provider
func NewMockGeolocationProvider() providers.GeolocationProvider {
	return &MockGeolocationProvider{}
}

// Geocode converts an address to coordinates (mock implementation)
func (m *MockGeolocationProvider) Geocode(ctx context.Context, address string) (*providers.Coordinates, error) {
	mockCoordinates := map[string]providers.Coordinates{
		"서울": {Latitude: 37.5662952, Longitude: 126.9779692},
		"부산": {Latitude: 35.1795543, Longitude: 129.0756416},
		"대구": {Latitude: 35.8714354, Longitude: 128.601445},
		"인천": {Latitude: 37.4562557, Longitude: 126.7052062},
		"광주": {Latitude: 35.1595454, Longitude: 126.8526012},
	}

	for city, coords := range mockCoordinates {
		if strings.Contains(address, city) {
			return &coords, nil
		}
	}

	// City hall of Seoul as the default
	return &providers.Coordinates{Latitude: 37.5662952, Longitude: 126.9779692}, nil
}

// ReverseRegion converts coordinates to a region (mock implementation)
func (m *MockGeolocationProvider) ReverseRegion(ctx context.Context, lat, lng float64) (*providers.RegionInfo, error) {
	return &providers.RegionInfo{
		Region:       "서울특별시",
		District:     "중구",
		Neighborhood: "명동",
	}, nil
}

// SearchPlaces finds places near a point (mock implementation)
func (m *MockGeolocationProvider) SearchPlaces(ctx context.Context, keyword string, lat, lng float64, radiusMeters int) ([]providers.Place, error) {
	return []providers.Place{
		{
			Name:        keyword + " 1호점",
			Address:     "서울특별시 중구 세종대로 110",
			Coordinates: providers.Coordinates{Latitude: lat + 0.01, Longitude: lng + 0.01},
		},
		{
			Name:        keyword + " 2호점",
			Address:     "서울특별시 중구 을지로 100",
			Coordinates: providers.Coordinates{Latitude: lat - 0.01, Longitude: lng - 0.01},
		},
	}, nil
}
