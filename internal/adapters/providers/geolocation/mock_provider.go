package geolocation

import (
	"context"
	"fmt"
	"strings"

	"github.com/devtrails/bootcamp-directory/internal/domain/providers"
	apperrors "github.com/devtrails/bootcamp-directory/pkg/errors"
)

// MockProvider implements a fixed-table geocoder for development and tests.
type MockProvider struct{}

// NewMockProvider creates a new mock geocoding provider
func NewMockProvider() providers.GeolocationProvider {
	return &MockProvider{}
}

var mockLocations = map[string]providers.GeocodedAddress{
	"33125": {FormattedAddress: "Miami, FL 33125", City: "Miami", Zipcode: "33125", Latitude: 25.76, Longitude: -80.19},
	"02118": {FormattedAddress: "Boston, MA 02118", City: "Boston", Zipcode: "02118", Latitude: 42.34, Longitude: -71.07},
	"94102": {FormattedAddress: "San Francisco, CA 94102", City: "San Francisco", Zipcode: "94102", Latitude: 37.78, Longitude: -122.42},
	"10001": {FormattedAddress: "New York, NY 10001", City: "New York", Zipcode: "10001", Latitude: 40.75, Longitude: -73.99},
}

// Geocode resolves a handful of known zipcodes; anything else fails the way
// the real provider does on zero results.
func (m *MockProvider) Geocode(ctx context.Context, address string) (*providers.GeocodedAddress, error) {
	token := strings.TrimSpace(address)
	if token == "" {
		return nil, apperrors.NewValidationError("address is required")
	}

	for zip, addr := range mockLocations {
		if strings.Contains(token, zip) {
			result := addr
			return &result, nil
		}
	}

	return nil, apperrors.NewExternalError(fmt.Sprintf("no geocoding results for %q", token), nil)
}
