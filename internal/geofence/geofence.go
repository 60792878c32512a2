package geofence

import (
	"github.com/golang/geo/s2"

	"github.com/sitansu1aapt/employeetrack-agent/internal/models"
)

// EarthRadiusMeters is Earth's mean radius
const EarthRadiusMeters = 6371000.0

// Contains reports whether a point lies inside a boundary polygon using
// the even-odd ray-casting rule. The polygon is an ordered vertex list,
// implicitly closed; the first vertex does not need to be repeated.
//
// A degenerate polygon (fewer than 3 vertices) never contains anything.
// Points exactly on an edge may land on either side; callers must not
// rely on a particular outcome for boundary-exact points.
func Contains(point models.LatLng, polygon []models.LatLng) bool {
	if len(polygon) < 3 {
		return false
	}

	inside := false
	j := len(polygon) - 1

	for i := 0; i < len(polygon); i++ {
		if ((polygon[i].Lat > point.Lat) != (polygon[j].Lat > point.Lat)) &&
			(point.Lng < (polygon[j].Lng-polygon[i].Lng)*(point.Lat-polygon[i].Lat)/(polygon[j].Lat-polygon[i].Lat)+polygon[i].Lng) {
			inside = !inside
		}
		j = i
	}

	return inside
}

// Distance returns the great-circle distance between two points in meters
func Distance(a, b models.LatLng) float64 {
	p1 := s2.LatLngFromDegrees(a.Lat, a.Lng)
	p2 := s2.LatLngFromDegrees(b.Lat, b.Lng)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// Centroid returns the arithmetic centroid of a vertex list
func Centroid(points []models.LatLng) models.LatLng {
	if len(points) == 0 {
		return models.LatLng{}
	}

	var sumLat, sumLng float64
	for _, p := range points {
		sumLat += p.Lat
		sumLng += p.Lng
	}

	return models.LatLng{
		Lat: sumLat / float64(len(points)),
		Lng: sumLng / float64(len(points)),
	}
}

// Result is a geofence evaluation for one location fix
type Result struct {
	Inside bool
	// DistanceMeters is the distance from the point to the boundary
	// centroid, reported on check-ins for supervisor review.
	DistanceMeters float64
}

// Evaluate tests a point against a site boundary. A site without a
// usable boundary evaluates as outside with zero distance.
func Evaluate(point models.LatLng, boundary []models.LatLng) Result {
	if len(boundary) < 3 {
		return Result{}
	}
	return Result{
		Inside:         Contains(point, boundary),
		DistanceMeters: Distance(point, Centroid(boundary)),
	}
}
