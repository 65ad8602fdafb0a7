package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/heroiclabs/nakama-common/runtime"
)

// RpcQuickMatch is the registered name of the lobby-finder RPC.
const RpcQuickMatch = "quickmatch"

// QuickMatchResponse is returned to clients requesting a joinable match.
type QuickMatchResponse struct {
	MatchID string `json:"match_id"`
	IsNew   bool   `json:"is_new"`
}

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	return initializer.RegisterRpc(RpcQuickMatch, rpcQuickMatch)
}

// rpcQuickMatch returns an open waiting match, creating one when none exists.
// Seat and owner assignment happen server-side in MatchJoin.
func rpcQuickMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	query := "+label.open:T label.game:" + MatchModuleName + " label.phase:waiting"

	limit := 10
	authoritative := true
	minSize := 1
	maxSize := MaxSeats - 1

	matches, err := nk.MatchList(ctx, limit, authoritative, "", &minSize, &maxSize, query)
	if err != nil {
		logger.Error("rpcQuickMatch: match list failed: %v", err)
		return "", err
	}

	if len(matches) > 0 {
		b, _ := json.Marshal(QuickMatchResponse{MatchID: matches[0].MatchId})
		return string(b), nil
	}

	matchID, err := nk.MatchCreate(ctx, MatchModuleName, map[string]interface{}{})
	if err != nil {
		logger.Error("rpcQuickMatch: match create failed: %v", err)
		return "", err
	}

	b, _ := json.Marshal(QuickMatchResponse{MatchID: matchID, IsNew: true})
	return string(b), nil
}
