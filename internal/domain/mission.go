package domain

import "github.com/google/uuid"

// Mission is a point-to-point objective. A completed mission stays attached
// to its player's mission list as a permanent record.
type Mission struct {
	ID       uuid.UUID `json:"id"`
	FromCity uuid.UUID `json:"from_city"`
	ToCity   uuid.UUID `json:"to_city"`
	Points   int       `json:"points"`

	Completed   bool       `json:"completed"`
	CompletedBy *uuid.UUID `json:"completed_by,omitempty"`
}

// PointsForDistance maps a great-circle distance in kilometers to a mission
// point value via a fixed step function.
func PointsForDistance(distanceKm float64) int {
	switch {
	case distanceKm < 500:
		return 5
	case distanceKm < 1000:
		return 8
	case distanceKm < 1500:
		return 11
	case distanceKm < 2000:
		return 14
	case distanceKm < 2500:
		return 17
	default:
		return 20
	}
}

// DrawMission removes and returns the front mission of the deck. ok is false
// when the deck is empty. Missions are never returned to the deck, so there
// is no reshuffle counterpart.
func DrawMission(deck []Mission) (mission Mission, remaining []Mission, ok bool) {
	if len(deck) == 0 {
		return Mission{}, deck, false
	}
	return deck[0], deck[1:], true
}
