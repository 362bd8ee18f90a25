package providers

import (
	"context"
)

// GeolocationProvider defines the interface for geocoding services
type GeolocationProvider interface {
	// Geocode resolves a postal code or address token to coordinates. It
	// returns the first match; zero matches or provider failure is an error,
	// never a silent (0, 0).
	Geocode(ctx context.Context, address string) (*GeocodedAddress, error)
}

// GeocodedAddress represents a geocoded address
type GeocodedAddress struct {
	FormattedAddress string  `json:"formatted_address"`
	City             string  `json:"city"`
	Zipcode          string  `json:"zipcode"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
}
