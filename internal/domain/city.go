package domain

import (
	"math"

	"github.com/google/uuid"
)

// Region tags the part of the map a city belongs to.
type Region string

const (
	RegionEurope   Region = "europe"
	RegionWestAsia Region = "west_asia"
)

// Coordinates is a geographic point in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// City is a station on the map. Immutable once the match is created.
type City struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Country     string      `json:"country"`
	Coordinates Coordinates `json:"coordinates"`
	Region      Region      `json:"region"`
}

const earthRadiusKm = 6371.0

// Distance returns the great-circle distance in kilometers between two
// coordinates (haversine formula).
func Distance(a, b Coordinates) float64 {
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180.0
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180.0

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Latitude*math.Pi/180.0)*math.Cos(b.Latitude*math.Pi/180.0)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}
