package geo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/devtrails/bootcamp-directory/internal/domain/geo"
)

var miami = geo.Point{Longitude: -80.19, Latitude: 25.76}

func TestAngularRadius(t *testing.T) {
	assert.InDelta(t, 10.0/3963.0, geo.AngularRadius(10), 1e-12)
	assert.Equal(t, 0.0, geo.AngularRadius(0))
}

func TestWithinRadius_CenterAlwaysIncluded(t *testing.T) {
	assert.True(t, geo.WithinRadius(miami, miami, geo.AngularRadius(10)))
	assert.True(t, geo.WithinRadius(miami, miami, 0))
}

func TestWithinRadius_NearbyPoint(t *testing.T) {
	// Roughly 5 miles north of the center.
	nearby := geo.Point{Longitude: -80.19, Latitude: 25.8323}
	assert.True(t, geo.WithinRadius(miami, nearby, geo.AngularRadius(10)))
	assert.False(t, geo.WithinRadius(miami, nearby, geo.AngularRadius(1)))
}

func TestWithinRadius_FarPointNeverIncluded(t *testing.T) {
	// London, ~4400 miles from Miami.
	london := geo.Point{Longitude: -0.1276, Latitude: 51.5072}
	assert.False(t, geo.WithinRadius(miami, london, geo.AngularRadius(10)))
	assert.Greater(t, geo.DistanceMiles(miami, london), 4000.0)
}

func TestWithinRadius_MatchesDistance(t *testing.T) {
	points := []geo.Point{
		{Longitude: -80.13, Latitude: 25.79}, // Miami Beach
		{Longitude: -80.32, Latitude: 25.76}, // ~8 miles west
		{Longitude: -81.38, Latitude: 28.54}, // Orlando, ~200 miles
		{Longitude: 151.21, Latitude: -33.87}, // Sydney, antipodal-ish
	}

	radius := geo.AngularRadius(10)
	for _, p := range points {
		want := geo.DistanceMiles(miami, p) <= 10
		assert.Equal(t, want, geo.WithinRadius(miami, p, radius), "point %+v", p)
	}
}

func TestCentralAngle_Symmetric(t *testing.T) {
	p := geo.Point{Longitude: 3.3792, Latitude: 6.5244}
	assert.InDelta(t, geo.CentralAngle(miami, p), geo.CentralAngle(p, miami), 1e-12)
}
