package domain

import "github.com/google/uuid"

// Game is the authoritative state for a single match. It is mutated only
// through the app service operations; each match is an independent value with
// no shared globals.
type Game struct {
	ID uuid.UUID `json:"id"`

	Players            []Player `json:"players"`
	CurrentPlayerIndex int      `json:"current_player_index"`

	CardDeck    []Card    `json:"card_deck"`
	MissionDeck []Mission `json:"mission_deck"`
	Routes      []Route   `json:"routes"`
	Cities      []City    `json:"cities"`

	Status GameStatus `json:"status"`
	Winner *uuid.UUID `json:"winner,omitempty"`
}

// CurrentPlayer returns the player whose turn it is, or nil when the index is
// out of range (empty roster).
func (g *Game) CurrentPlayer() *Player {
	if g.CurrentPlayerIndex < 0 || g.CurrentPlayerIndex >= len(g.Players) {
		return nil
	}
	return &g.Players[g.CurrentPlayerIndex]
}

// FindPlayer returns the player with the given id, or nil.
func (g *Game) FindPlayer(playerID uuid.UUID) *Player {
	for i := range g.Players {
		if g.Players[i].ID == playerID {
			return &g.Players[i]
		}
	}
	return nil
}

// FindRoute returns the route with the given id, or nil.
func (g *Game) FindRoute(routeID uuid.UUID) *Route {
	for i := range g.Routes {
		if g.Routes[i].ID == routeID {
			return &g.Routes[i]
		}
	}
	return nil
}

// FindCity returns the city with the given id, or nil.
func (g *Game) FindCity(cityID uuid.UUID) *City {
	for i := range g.Cities {
		if g.Cities[i].ID == cityID {
			return &g.Cities[i]
		}
	}
	return nil
}

// UnclaimedRoutes returns the routes that have no owner yet.
func (g *Game) UnclaimedRoutes() []Route {
	var out []Route
	for _, r := range g.Routes {
		if !r.Claimed() {
			out = append(out, r)
		}
	}
	return out
}

// TotalCardCount counts every train card in the match: deck plus hands. It
// must equal DeckSize at all times; cards spent on claims go back into the
// deck, so the supply is never created or destroyed mid-match. Route
// CardsUsed is a claim record, not a card location.
func (g *Game) TotalCardCount() int {
	n := len(g.CardDeck)
	for i := range g.Players {
		n += len(g.Players[i].Hand)
	}
	return n
}
