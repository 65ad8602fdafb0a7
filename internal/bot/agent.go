package bot

import (
	"github.com/google/uuid"

	"traindepot/internal/domain"
)

// Agent is an autonomous CPU participant bound to a player id.
type Agent struct {
	ID       uuid.UUID
	Name     string
	Avatar   string
	Strategy Brain
}

// Play asks the agent to pick its single action for the current turn. Agents
// go through the same public engine operations as humans; an agent that is
// not part of the game simply does nothing.
func (a *Agent) Play(game *domain.Game) (Move, error) {
	player := game.FindPlayer(a.ID)
	if player == nil {
		return Move{Kind: ActionNone}, nil
	}
	return a.Strategy.CalculateMove(game, player)
}
