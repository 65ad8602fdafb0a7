package domain

import "github.com/google/uuid"

// Player holds the per-player state for a match.
type Player struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`

	Hand     []Card    `json:"hand"`
	Missions []Mission `json:"missions"`

	CompletedMissions int  `json:"completed_missions"`
	Score             int  `json:"score"`
	IsActive          bool `json:"is_active"`
	// HasUsedTurnAction is set after the player performs their single action
	// for the turn and cleared when their next turn starts.
	HasUsedTurnAction bool `json:"has_used_turn_action"`

	IsCPU  bool   `json:"is_cpu"`
	Avatar string `json:"avatar"`
}

// HandFull reports whether the player is at the hand limit.
func (p *Player) HandFull() bool {
	return len(p.Hand) >= HandLimit
}

// AtMissionLimit reports whether the player already holds the full mission count.
func (p *Player) AtMissionLimit() bool {
	return len(p.Missions) >= MissionLimit
}
