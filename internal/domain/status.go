package domain

// GameStatus represents the lifecycle stage of a match.
type GameStatus string

const (
	// StatusWaiting indicates the match has been created but not started.
	StatusWaiting GameStatus = "waiting"
	// StatusInProgress indicates the match is actively being played.
	StatusInProgress GameStatus = "in_progress"
	// StatusFinished indicates the match has concluded.
	StatusFinished GameStatus = "finished"
)

const (
	// HandLimit is the maximum number of train cards a player may hold.
	HandLimit = 6
	// MissionLimit is the number of missions a player maintains.
	MissionLimit = 2
	// MissionsToWin is the completed-mission count that ends the game.
	MissionsToWin = 5
	// CardsPerColor is the number of cards of each true color in the deck.
	CardsPerColor = 12
	// WildcardCount is the number of wildcard cards in the deck.
	WildcardCount = 14
	// DeckSize is the total train card count: 5 true colors plus wildcards.
	DeckSize = 5*CardsPerColor + WildcardCount
	// MissionBatchSize is the number of missions generated for a fresh match.
	MissionBatchSize = 25
)
