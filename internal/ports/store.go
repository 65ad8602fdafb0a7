package ports

import (
	"context"

	"traindepot/internal/domain"
)

// GameStore persists match state opaquely between sessions. Implementations
// may use any format as long as a save/load round trip preserves every field:
// deck contents and order, ownership, flags.
type GameStore interface {
	// SaveGame stores the full match state for the given match id.
	SaveGame(ctx context.Context, matchID string, game *domain.Game) error
	// LoadGame returns the stored match state, or found=false when none exists.
	LoadGame(ctx context.Context, matchID string) (game *domain.Game, found bool, err error)
	// DeleteGame removes the stored match state, if any.
	DeleteGame(ctx context.Context, matchID string) error
}
