package nakama

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame   int64 = 1
	OpDrawCard    int64 = 2
	OpDrawMission int64 = 3
	OpClaimRoute  int64 = 4
	OpEndTurn     int64 = 5

	// Server -> Client events
	OpPlayerJoined     int64 = 101
	OpPlayerLeft       int64 = 102
	OpGameStarted      int64 = 103
	OpCardDrawn        int64 = 104 // sent privately
	OpMissionDrawn     int64 = 105 // sent privately
	OpRouteClaimed     int64 = 106
	OpMissionCompleted int64 = 107
	OpTurnChanged      int64 = 108
	OpGameEnded        int64 = 109
	OpStateSync        int64 = 110
	OpActionRejected   int64 = 111 // sent privately to the rejected actor
)

const (
	// MatchModuleName is the registered Nakama match handler name.
	MatchModuleName = "traindepot"
	// MaxSeats bounds the lobby size.
	MaxSeats = 4
)
