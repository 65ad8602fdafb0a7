package nakama

import (
	"github.com/google/uuid"

	"traindepot/internal/app"
	"traindepot/internal/domain"
)

// Label is the match label advertised for quick-match queries.
type Label struct {
	Open  bool   `json:"open"`
	Game  string `json:"game"`
	Phase string `json:"phase"`
}

// ClaimRouteMessage is the client payload for OpClaimRoute.
type ClaimRouteMessage struct {
	RouteID uuid.UUID `json:"route_id"`
}

// ActionRejectedMessage carries the error tag for the presentation layer to
// display transiently.
type ActionRejectedMessage struct {
	OpCode int64  `json:"op_code"`
	Reason string `json:"reason"`
}

// PlayerSnapshot is the per-player view included in a state sync. Opponents
// see hand and mission counts, not contents.
type PlayerSnapshot struct {
	ID                uuid.UUID        `json:"id"`
	Username          string           `json:"username"`
	Avatar            string           `json:"avatar"`
	IsCPU             bool             `json:"is_cpu"`
	IsActive          bool             `json:"is_active"`
	HasUsedTurnAction bool             `json:"has_used_turn_action"`
	Score             int              `json:"score"`
	CompletedMissions int              `json:"completed_missions"`
	HandSize          int              `json:"hand_size"`
	MissionCount      int              `json:"mission_count"`
	Hand              []domain.Card    `json:"hand,omitempty"`     // viewer only
	Missions          []domain.Mission `json:"missions,omitempty"` // viewer only
}

// StateSnapshot is the full board view sent to one client.
type StateSnapshot struct {
	GameID             uuid.UUID         `json:"game_id"`
	Status             domain.GameStatus `json:"status"`
	CurrentPlayerIndex int               `json:"current_player_index"`
	Players            []PlayerSnapshot  `json:"players"`
	Routes             []domain.Route    `json:"routes"`
	Cities             []domain.City     `json:"cities"`
	DeckSize           int               `json:"deck_size"`
	MissionDeckSize    int               `json:"mission_deck_size"`
	Winner             *uuid.UUID        `json:"winner,omitempty"`
}

// snapshotFor builds the board view for the given viewer, redacting other
// players' hands and missions down to counts.
func snapshotFor(game *domain.Game, viewer uuid.UUID) StateSnapshot {
	snap := StateSnapshot{
		GameID:             game.ID,
		Status:             game.Status,
		CurrentPlayerIndex: game.CurrentPlayerIndex,
		Routes:             game.Routes,
		Cities:             game.Cities,
		DeckSize:           len(game.CardDeck),
		MissionDeckSize:    len(game.MissionDeck),
		Winner:             game.Winner,
	}
	for i := range game.Players {
		p := &game.Players[i]
		ps := PlayerSnapshot{
			ID:                p.ID,
			Username:          p.Username,
			Avatar:            p.Avatar,
			IsCPU:             p.IsCPU,
			IsActive:          p.IsActive,
			HasUsedTurnAction: p.HasUsedTurnAction,
			Score:             p.Score,
			CompletedMissions: p.CompletedMissions,
			HandSize:          len(p.Hand),
			MissionCount:      len(p.Missions),
		}
		if p.ID == viewer {
			ps.Hand = p.Hand
			ps.Missions = p.Missions
		}
		snap.Players = append(snap.Players, ps)
	}
	return snap
}

// eventOpCode maps an engine event to its wire opcode.
func eventOpCode(kind app.EventKind) int64 {
	switch kind {
	case app.EventGameStarted:
		return OpGameStarted
	case app.EventCardDrawn:
		return OpCardDrawn
	case app.EventMissionDrawn:
		return OpMissionDrawn
	case app.EventRouteClaimed:
		return OpRouteClaimed
	case app.EventMissionCompleted:
		return OpMissionCompleted
	case app.EventTurnChanged:
		return OpTurnChanged
	case app.EventPlayerLeft:
		return OpPlayerLeft
	case app.EventGameEnded:
		return OpGameEnded
	}
	return 0
}
