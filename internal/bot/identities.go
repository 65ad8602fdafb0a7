package bot

import (
	"math/rand"

	"github.com/google/uuid"

	"traindepot/internal/domain"
)

// Identity is a display profile for a CPU seat.
type Identity struct {
	Name   string
	Avatar string
}

var identityPool = []Identity{
	{"Conductor Leo", "lion"},
	{"Stoker Ella", "elephant"},
	{"Brakeman Zed", "zebra"},
	{"Engineer Momo", "monkey"},
	{"Dispatcher Hugo", "hippo"},
	{"Signaler Rex", "crocodile"},
	{"Fireman Chet", "cheetah"},
	{"Yardmaster Tilly", "tiger"},
	{"Porter Bruno", "bear"},
	{"Stationmaster Pan", "panda"},
}

// PickIdentity returns the profile for the given seat. Seat-indexed so no
// two seats in a lobby share a profile.
func PickIdentity(seat int) Identity {
	return identityPool[seat%len(identityPool)]
}

// NewAgent creates a fresh CPU agent and its matching domain player. The rng
// seeds the agent's strategy; tuning sets its policy knobs.
func NewAgent(seat int, rng *rand.Rand, tuning Tuning) (*Agent, domain.Player) {
	identity := PickIdentity(seat)
	id := uuid.New()

	agent := &Agent{
		ID:       id,
		Name:     identity.Name,
		Avatar:   identity.Avatar,
		Strategy: &StandardBot{Rng: rng, Tuning: tuning},
	}
	player := domain.Player{
		ID:       id,
		Username: identity.Name,
		IsCPU:    true,
		Avatar:   identity.Avatar,
	}
	return agent, player
}

// AgentFor rebuilds the agent for a CPU player restored from a save, keeping
// the persisted identity and id.
func AgentFor(player domain.Player, rng *rand.Rand, tuning Tuning) *Agent {
	return &Agent{
		ID:       player.ID,
		Name:     player.Username,
		Avatar:   player.Avatar,
		Strategy: &StandardBot{Rng: rng, Tuning: tuning},
	}
}
