// Command depotsim runs CPU-only matches offline and reports outcome
// statistics. Useful for smoke-testing rule changes and eyeballing how
// policy tuning shifts game length and scores.
package main

import (
	"flag"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	xrand "golang.org/x/exp/rand"

	"traindepot/internal/app"
	"traindepot/internal/bot"
	"traindepot/internal/domain"
)

const maxTurnsPerGame = 2000

func main() {
	games := flag.Int("games", 20, "number of matches to simulate")
	players := flag.Int("players", 2, "CPU players per match (2-4)")
	seed := flag.Uint64("seed", 0, "master seed; 0 uses the current time")
	missionChance := flag.Float64("mission-chance", bot.DefaultTuning.MissionDrawChance, "CPU mission draw probability")
	verbose := flag.Bool("v", false, "log every turn")
	flag.Parse()

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	if !*verbose {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if *players < 2 || *players > 4 {
		log.Fatal().Int("players", *players).Msg("players must be between 2 and 4")
	}
	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}

	// One seed stream drives the per-game seeds so a whole batch replays
	// from a single -seed value.
	seeds := xrand.New(xrand.NewSource(*seed))

	log.Info().Uint64("seed", *seed).Int("games", *games).Int("players", *players).Msg("starting simulation")

	wins := make(map[string]int)
	finished := 0
	totalTurns := 0

	for i := 0; i < *games; i++ {
		gameSeed := int64(seeds.Uint64())
		winner, turns, err := runGame(gameSeed, *players, *missionChance)
		if err != nil {
			log.Error().Err(err).Int("game", i+1).Msg("match aborted")
			continue
		}
		totalTurns += turns
		if winner != "" {
			wins[winner]++
			finished++
		}
		log.Debug().Int("game", i+1).Str("winner", winner).Int("turns", turns).Msg("match done")
	}

	log.Info().Int("decided", finished).Int("avg_turns", avg(totalTurns, *games)).Msg("simulation complete")
	for name, n := range wins {
		log.Info().Str("player", name).Int("wins", n).Msg("result")
	}
}

// runGame plays a full CPU match and returns the winner's name ("" when the
// game hit the turn cap) and the number of turns played.
func runGame(seed int64, playerCount int, missionChance float64) (string, int, error) {
	rng := rand.New(rand.NewSource(seed))
	service := app.NewService(rng, app.Options{})

	agents := make(map[string]*bot.Agent, playerCount)
	players := make([]domain.Player, 0, playerCount)
	for seat := 0; seat < playerCount; seat++ {
		agent, player := bot.NewAgent(seat, rng, bot.Tuning{MissionDrawChance: missionChance})
		agents[player.ID.String()] = agent
		players = append(players, player)
	}

	game, _, err := service.Initialize(players)
	if err != nil {
		return "", 0, err
	}

	turns := 0
	for game.Status == domain.StatusInProgress && turns < maxTurnsPerGame {
		current := game.CurrentPlayer()
		agent := agents[current.ID.String()]

		move, err := agent.Play(game)
		if err != nil {
			return "", turns, err
		}

		switch move.Kind {
		case bot.ActionDrawCard:
			_, err = service.DrawCard(game, current.ID)
		case bot.ActionDrawMission:
			_, err = service.DrawMission(game, current.ID)
		case bot.ActionClaimRoute:
			_, err = service.ClaimRoute(game, current.ID, move.RouteID)
		case bot.ActionNone:
			// nothing possible this turn
		}
		if err != nil {
			log.Debug().Err(err).Str("player", current.Username).Msg("move rejected")
		}

		if game.Status == domain.StatusInProgress {
			if _, err := service.EndTurn(game); err != nil {
				return "", turns, err
			}
		}
		turns++
	}

	if game.Winner == nil {
		return "", turns, nil
	}
	return game.FindPlayer(*game.Winner).Username, turns, nil
}

func avg(total, n int) int {
	if n == 0 {
		return 0
	}
	return total / n
}
