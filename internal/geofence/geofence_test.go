package geofence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitansu1aapt/employeetrack-agent/internal/models"
)

// A roughly rectangular site around (12.97, 77.59)
var testBoundary = []models.LatLng{
	{Lat: 12.960, Lng: 77.580},
	{Lat: 12.960, Lng: 77.600},
	{Lat: 12.980, Lng: 77.600},
	{Lat: 12.980, Lng: 77.580},
}

func TestContains_Inside(t *testing.T) {
	assert.True(t, Contains(models.LatLng{Lat: 12.970, Lng: 77.590}, testBoundary))
	assert.True(t, Contains(models.LatLng{Lat: 12.961, Lng: 77.581}, testBoundary))
	assert.True(t, Contains(models.LatLng{Lat: 12.979, Lng: 77.599}, testBoundary))
}

func TestContains_Outside(t *testing.T) {
	// Far outside the bounding box in every direction.
	assert.False(t, Contains(models.LatLng{Lat: 13.5, Lng: 77.590}, testBoundary))
	assert.False(t, Contains(models.LatLng{Lat: 12.0, Lng: 77.590}, testBoundary))
	assert.False(t, Contains(models.LatLng{Lat: 12.970, Lng: 78.5}, testBoundary))
	assert.False(t, Contains(models.LatLng{Lat: 12.970, Lng: 76.5}, testBoundary))
	assert.False(t, Contains(models.LatLng{Lat: -12.970, Lng: -77.590}, testBoundary))
}

func TestContains_ConcavePolygon(t *testing.T) {
	// A U-shape: the notch between the arms is outside.
	u := []models.LatLng{
		{Lat: 0, Lng: 0},
		{Lat: 0, Lng: 3},
		{Lat: 3, Lng: 3},
		{Lat: 3, Lng: 2},
		{Lat: 1, Lng: 2},
		{Lat: 1, Lng: 1},
		{Lat: 3, Lng: 1},
		{Lat: 3, Lng: 0},
	}

	assert.True(t, Contains(models.LatLng{Lat: 0.5, Lng: 1.5}, u), "base of the U")
	assert.True(t, Contains(models.LatLng{Lat: 2, Lng: 0.5}, u), "left arm")
	assert.False(t, Contains(models.LatLng{Lat: 2, Lng: 1.5}, u), "notch between arms")
}

func TestContains_DegeneratePolygon(t *testing.T) {
	p := models.LatLng{Lat: 12.970, Lng: 77.590}

	assert.False(t, Contains(p, nil))
	assert.False(t, Contains(p, []models.LatLng{{Lat: 1, Lng: 1}}))
	assert.False(t, Contains(p, []models.LatLng{{Lat: 1, Lng: 1}, {Lat: 2, Lng: 2}}))
}

func TestDistance(t *testing.T) {
	// One degree of latitude is about 111 km.
	d := Distance(models.LatLng{Lat: 12.0, Lng: 77.0}, models.LatLng{Lat: 13.0, Lng: 77.0})
	assert.InDelta(t, 111000, d, 1000)

	assert.Zero(t, Distance(models.LatLng{Lat: 12.0, Lng: 77.0}, models.LatLng{Lat: 12.0, Lng: 77.0}))
}

func TestCentroid(t *testing.T) {
	c := Centroid(testBoundary)
	assert.InDelta(t, 12.970, c.Lat, 1e-9)
	assert.InDelta(t, 77.590, c.Lng, 1e-9)

	assert.Equal(t, models.LatLng{}, Centroid(nil))
}

func TestEvaluate(t *testing.T) {
	res := Evaluate(models.LatLng{Lat: 12.970, Lng: 77.590}, testBoundary)
	require.True(t, res.Inside)
	assert.InDelta(t, 0, res.DistanceMeters, 1)

	res = Evaluate(models.LatLng{Lat: 13.5, Lng: 77.590}, testBoundary)
	require.False(t, res.Inside)
	assert.Greater(t, res.DistanceMeters, 50000.0)

	// No usable boundary: outside, zero distance, no panic.
	res = Evaluate(models.LatLng{Lat: 12.970, Lng: 77.590}, nil)
	assert.False(t, res.Inside)
	assert.Zero(t, res.DistanceMeters)
}
