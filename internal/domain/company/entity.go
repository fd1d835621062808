package company

import "time"

// Company registers the office coordinates used for geofenced clock events.
// The QR code placed at an office encodes exactly these coordinates.
type Company struct {
	ID           string
	Name         string
	Address      string
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
