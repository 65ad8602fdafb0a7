package app

import (
	"github.com/google/uuid"

	"traindepot/internal/domain"
)

// EventKind identifies emitted engine events for boundary dispatch. Audio,
// notification, and persistence collaborators subscribe to these instead of
// being called from inside the rules.
type EventKind string

const (
	EventGameStarted      EventKind = "game_started"
	EventCardDrawn        EventKind = "card_drawn"
	EventMissionDrawn     EventKind = "mission_drawn"
	EventRouteClaimed     EventKind = "route_claimed"
	EventMissionCompleted EventKind = "mission_completed"
	EventTurnChanged      EventKind = "turn_changed"
	EventPlayerLeft       EventKind = "player_left"
	EventGameEnded        EventKind = "game_ended"
)

// Event is an engine event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []uuid.UUID // player ids; empty means broadcast
}

type GameStartedPayload struct {
	GameID        uuid.UUID
	FirstPlayerID uuid.UUID
}

type CardDrawnPayload struct {
	PlayerID uuid.UUID
	Card     domain.Card
	DeckSize int
}

type MissionDrawnPayload struct {
	PlayerID uuid.UUID
	Mission  domain.Mission
}

type RouteClaimedPayload struct {
	PlayerID  uuid.UUID
	RouteID   uuid.UUID
	CardsUsed []domain.Card
}

type MissionCompletedPayload struct {
	PlayerID  uuid.UUID
	MissionID uuid.UUID
	Points    int
}

type TurnChangedPayload struct {
	PlayerID uuid.UUID
	IsCPU    bool
}

type PlayerLeftPayload struct {
	PlayerID uuid.UUID
}

type GameEndedPayload struct {
	WinnerID *uuid.UUID // nil when the game ended without a victor
}
