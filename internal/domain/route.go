package domain

import "github.com/google/uuid"

// Route is a railroad segment between two cities. Endpoints are stored as an
// ordered pair but carry no direction for gameplay; multiple routes may link
// the same two cities and each counts as a distinct edge.
type Route struct {
	ID       uuid.UUID `json:"id"`
	FromCity uuid.UUID `json:"from_city"`
	ToCity   uuid.UUID `json:"to_city"`
	// Length is the number of matching cards required to claim the route.
	Length int `json:"length"`
	// RequiredColor restricts the claim to one true color; nil means any
	// single color (or all wildcards) may be used.
	RequiredColor *CardColor `json:"required_color,omitempty"`
	// Owner is the claiming player, nil while unclaimed. Once set it never
	// changes or clears for the rest of the match.
	Owner *uuid.UUID `json:"owner,omitempty"`
	// CardsUsed records the cards consumed at claim time.
	CardsUsed []Card `json:"cards_used,omitempty"`
}

// Claimed reports whether the route has an owner.
func (r *Route) Claimed() bool {
	return r.Owner != nil
}

// OwnedBy reports whether the route is owned by the given player.
func (r *Route) OwnedBy(playerID uuid.UUID) bool {
	return r.Owner != nil && *r.Owner == playerID
}

// OtherEnd returns the endpoint opposite to the given city id. ok is false
// when the city is not an endpoint of this route.
func (r *Route) OtherEnd(cityID uuid.UUID) (uuid.UUID, bool) {
	switch cityID {
	case r.FromCity:
		return r.ToCity, true
	case r.ToCity:
		return r.FromCity, true
	}
	return uuid.Nil, false
}
