package app

import "errors"

// Every rejected action leaves the match untouched; these are user-facing
// conditions for the presentation layer to display, never corruption.
var (
	ErrGameNotInProgress   = errors.New("game is not in progress")
	ErrNotYourTurn         = errors.New("not your turn")
	ErrActionAlreadyUsed   = errors.New("turn action already used")
	ErrHandFull            = errors.New("hand is full")
	ErrMissionLimitReached = errors.New("mission limit reached")
	ErrEmptyDeck           = errors.New("card deck is empty")
	ErrNoMissionsLeft      = errors.New("no missions left")
	ErrRouteNotFound       = errors.New("route not found")
	ErrAlreadyOwned        = errors.New("route already owned")
	ErrInsufficientCards   = errors.New("not enough matching cards")
	ErrUnknownPlayer       = errors.New("player not found")
	ErrTooFewPlayers       = errors.New("not enough players to start")
)
