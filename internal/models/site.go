package models

// LatLng is a single geographic coordinate pair
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// SiteAssignment is the caller's active site, including the geofence
// boundary used for the check-in location step. Fetched once at flow
// start and treated as read-only reference data.
type SiteAssignment struct {
	AssignmentID string   `json:"assignment_id"`
	SiteID       string   `json:"site_id"`
	SiteName     string   `json:"site_name"`
	GeofenceID   string   `json:"geofence_id"`
	Boundary     []LatLng `json:"boundary"` // ordered vertices, implicitly closed
}
