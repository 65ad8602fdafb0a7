package bot

import (
	"math/rand"

	"traindepot/internal/domain"
)

// StandardBot is the scripted CPU strategy. Decision order per turn:
// maybe top up missions, otherwise try to claim any affordable route in
// randomized order, otherwise draw a card, otherwise do nothing. One action
// per invocation; the caller ends the turn afterwards.
type StandardBot struct {
	Rng    *rand.Rand
	Tuning Tuning
}

// NewStandardBot builds the default strategy around the given rng. Replaying
// the same seed against the same state reproduces the same decision.
func NewStandardBot(rng *rand.Rand) *StandardBot {
	return &StandardBot{Rng: rng, Tuning: DefaultTuning}
}

func (b *StandardBot) CalculateMove(game *domain.Game, player *domain.Player) (Move, error) {
	if !player.AtMissionLimit() && len(game.MissionDeck) > 0 {
		if b.Rng.Float64() < b.Tuning.MissionDrawChance {
			return Move{Kind: ActionDrawMission}, nil
		}
	}

	if move, ok := b.tryClaimRoute(game, player); ok {
		return move, nil
	}

	if !player.HandFull() && len(game.CardDeck) > 0 {
		return Move{Kind: ActionDrawCard}, nil
	}

	return Move{Kind: ActionNone}, nil
}

// tryClaimRoute scans the unclaimed routes in randomized order and picks the
// first one the player's hand can pay for, using the same matching rule the
// engine applies.
func (b *StandardBot) tryClaimRoute(game *domain.Game, player *domain.Player) (Move, bool) {
	available := game.UnclaimedRoutes()
	b.Rng.Shuffle(len(available), func(i, j int) {
		available[i], available[j] = available[j], available[i]
	})

	for i := range available {
		if _, ok := domain.SelectCardsForRoute(player.Hand, &available[i]); ok {
			return Move{Kind: ActionClaimRoute, RouteID: available[i].ID}, true
		}
	}
	return Move{}, false
}
