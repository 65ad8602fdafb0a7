package nakama

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/heroiclabs/nakama-common/runtime"

	"traindepot/internal/domain"
	"traindepot/internal/ports"
)

const savedGameCollection = "saved_games"

// StorageAdapter implements ports.GameStore on Nakama's storage engine. The
// match state is stored as one JSON object per match, system-owned.
type StorageAdapter struct {
	nk runtime.NakamaModule
}

var _ ports.GameStore = (*StorageAdapter)(nil)

// NewStorageAdapter wraps the Nakama module as a GameStore.
func NewStorageAdapter(nk runtime.NakamaModule) *StorageAdapter {
	return &StorageAdapter{nk: nk}
}

func (a *StorageAdapter) SaveGame(ctx context.Context, matchID string, game *domain.Game) error {
	value, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("failed to marshal game state: %w", err)
	}
	_, err = a.nk.StorageWrite(ctx, []*runtime.StorageWrite{{
		Collection:      savedGameCollection,
		Key:             matchID,
		Value:           string(value),
		PermissionRead:  0,
		PermissionWrite: 0,
	}})
	if err != nil {
		return fmt.Errorf("failed to write game state: %w", err)
	}
	return nil
}

func (a *StorageAdapter) LoadGame(ctx context.Context, matchID string) (*domain.Game, bool, error) {
	objects, err := a.nk.StorageRead(ctx, []*runtime.StorageRead{{
		Collection: savedGameCollection,
		Key:        matchID,
	}})
	if err != nil {
		return nil, false, fmt.Errorf("failed to read game state: %w", err)
	}
	if len(objects) == 0 {
		return nil, false, nil
	}

	var game domain.Game
	if err := json.Unmarshal([]byte(objects[0].GetValue()), &game); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal game state: %w", err)
	}
	return &game, true, nil
}

func (a *StorageAdapter) DeleteGame(ctx context.Context, matchID string) error {
	err := a.nk.StorageDelete(ctx, []*runtime.StorageDelete{{
		Collection: savedGameCollection,
		Key:        matchID,
	}})
	if err != nil {
		return fmt.Errorf("failed to delete game state: %w", err)
	}
	return nil
}
