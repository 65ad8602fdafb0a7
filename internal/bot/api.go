package bot

import (
	"github.com/google/uuid"

	"traindepot/internal/domain"
)

// ActionKind is the single action a CPU player picks for its turn.
type ActionKind int

const (
	// ActionNone ends the turn without acting (nothing else was possible).
	ActionNone ActionKind = iota
	ActionDrawCard
	ActionDrawMission
	ActionClaimRoute
)

// Move is the decision produced by a Brain for one turn.
type Move struct {
	Kind    ActionKind
	RouteID uuid.UUID // set when Kind is ActionClaimRoute
}

// Brain is the interface all CPU strategies implement. Implementations are
// pure decision procedures over the game state: they pick, they do not apply.
type Brain interface {
	CalculateMove(game *domain.Game, player *domain.Player) (Move, error)
}
