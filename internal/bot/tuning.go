package bot

// Tuning holds the adjustable parameters of the standard strategy.
type Tuning struct {
	// MissionDrawChance is the probability of drawing a mission when the
	// player is below the mission limit and the mission deck has cards.
	MissionDrawChance float64
}

// DefaultTuning mirrors the shipped CPU behavior.
var DefaultTuning = Tuning{
	MissionDrawChance: 0.7,
}
