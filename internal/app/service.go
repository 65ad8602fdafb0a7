package app

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"traindepot/internal/domain"
	"traindepot/internal/mapdata"
)

// Options carries engine policy knobs that have no single right answer.
type Options struct {
	// ForfeitAwardsWin declares the last remaining player the winner when
	// everyone else leaves. Off by default: a forfeited game ends with no
	// victor.
	ForfeitAwardsWin bool
}

// Service contains the match use-cases operating on domain state. All
// mutating operations are atomic: a validation failure returns an error and
// leaves the game unchanged. Callers running a match from multiple
// goroutines must serialize access per match (the Nakama match loop already
// does this).
type Service struct {
	rng  *rand.Rand
	opts Options
}

// NewService constructs a Service with the provided rng or a time-seeded
// default.
func NewService(rng *rand.Rand, opts Options) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng, opts: opts}
}

// Initialize builds a fresh in-progress match for the given players: a
// shuffled 74-card deck, a generated mission batch with two missions dealt to
// every player, the full geography copied into the match, and the first
// player active.
func (s *Service) Initialize(players []domain.Player) (*domain.Game, []Event, error) {
	if len(players) < 2 {
		return nil, nil, ErrTooFewPlayers
	}

	cities := mapdata.BuildCities()
	routes, err := mapdata.BuildRoutes(cities)
	if err != nil {
		return nil, nil, err
	}
	missions := mapdata.GenerateMissions(cities, domain.MissionBatchSize, s.rng)

	deck := domain.NewDeck()
	domain.ShuffleDeck(deck, s.rng)

	gamePlayers := make([]domain.Player, len(players))
	copy(gamePlayers, players)
	for i := range gamePlayers {
		p := &gamePlayers[i]
		p.Hand = nil
		p.Missions = nil
		p.CompletedMissions = 0
		p.Score = 0
		p.IsActive = false
		p.HasUsedTurnAction = false
		for j := 0; j < domain.MissionLimit && len(missions) > 0; j++ {
			var m domain.Mission
			m, missions, _ = domain.DrawMission(missions)
			p.Missions = append(p.Missions, m)
		}
	}
	gamePlayers[0].IsActive = true

	game := &domain.Game{
		ID:          uuid.New(),
		Players:     gamePlayers,
		CardDeck:    deck,
		MissionDeck: missions,
		Routes:      routes,
		Cities:      cities,
		Status:      domain.StatusInProgress,
	}

	events := []Event{{
		Kind: EventGameStarted,
		Payload: GameStartedPayload{
			GameID:        game.ID,
			FirstPlayerID: gamePlayers[0].ID,
		},
	}}
	return game, events, nil
}

// DrawCard moves one card from the deck to the acting player's hand and
// consumes their turn action.
func (s *Service) DrawCard(game *domain.Game, playerID uuid.UUID) ([]Event, error) {
	player, err := s.actingPlayer(game, playerID)
	if err != nil {
		return nil, err
	}
	if player.HasUsedTurnAction {
		return nil, ErrActionAlreadyUsed
	}
	if player.HandFull() {
		return nil, ErrHandFull
	}

	card, remaining, ok := domain.DrawCard(game.CardDeck)
	if !ok {
		return nil, ErrEmptyDeck
	}
	game.CardDeck = remaining
	player.Hand = append(player.Hand, card)
	player.HasUsedTurnAction = true

	return []Event{{
		Kind: EventCardDrawn,
		Payload: CardDrawnPayload{
			PlayerID: playerID,
			Card:     card,
			DeckSize: len(game.CardDeck),
		},
		Recipients: []uuid.UUID{playerID},
	}}, nil
}

// DrawMission moves one mission from the mission deck to the acting player's
// mission list and consumes their turn action.
func (s *Service) DrawMission(game *domain.Game, playerID uuid.UUID) ([]Event, error) {
	player, err := s.actingPlayer(game, playerID)
	if err != nil {
		return nil, err
	}
	if player.HasUsedTurnAction {
		return nil, ErrActionAlreadyUsed
	}
	if player.AtMissionLimit() {
		return nil, ErrMissionLimitReached
	}

	mission, remaining, ok := domain.DrawMission(game.MissionDeck)
	if !ok {
		return nil, ErrNoMissionsLeft
	}
	game.MissionDeck = remaining
	player.Missions = append(player.Missions, mission)
	player.HasUsedTurnAction = true

	return []Event{{
		Kind: EventMissionDrawn,
		Payload: MissionDrawnPayload{
			PlayerID: playerID,
			Mission:  mission,
		},
		Recipients: []uuid.UUID{playerID},
	}}, nil
}

// ClaimRoute spends matching cards from the acting player's hand to take
// ownership of an unclaimed route, returns the spent cards to the deck with a
// reshuffle, consumes the turn action, and then runs the mission-completion
// check for the player.
func (s *Service) ClaimRoute(game *domain.Game, playerID, routeID uuid.UUID) ([]Event, error) {
	player, err := s.actingPlayer(game, playerID)
	if err != nil {
		return nil, err
	}
	if player.HasUsedTurnAction {
		return nil, ErrActionAlreadyUsed
	}

	route := game.FindRoute(routeID)
	if route == nil {
		return nil, ErrRouteNotFound
	}
	if route.Claimed() {
		return nil, ErrAlreadyOwned
	}

	cards, ok := domain.SelectCardsForRoute(player.Hand, route)
	if !ok {
		return nil, ErrInsufficientCards
	}

	player.Hand = domain.RemoveCards(player.Hand, cards)
	game.CardDeck = domain.ReturnAndReshuffle(game.CardDeck, cards, s.rng)

	owner := playerID
	route.Owner = &owner
	route.CardsUsed = cards
	player.HasUsedTurnAction = true

	events := []Event{{
		Kind: EventRouteClaimed,
		Payload: RouteClaimedPayload{
			PlayerID:  playerID,
			RouteID:   routeID,
			CardsUsed: cards,
		},
	}}
	events = append(events, s.checkMissionCompletion(game, player)...)
	return events, nil
}

// EndTurn deactivates the current player and activates the next one in
// circular order with a fresh turn action. Safe no-op when the game is not in
// progress.
func (s *Service) EndTurn(game *domain.Game) ([]Event, error) {
	if game.Status != domain.StatusInProgress {
		return nil, ErrGameNotInProgress
	}

	current := game.CurrentPlayer()
	current.IsActive = false
	current.HasUsedTurnAction = false

	game.CurrentPlayerIndex = (game.CurrentPlayerIndex + 1) % len(game.Players)
	next := game.CurrentPlayer()
	next.IsActive = true
	next.HasUsedTurnAction = false

	return []Event{{
		Kind: EventTurnChanged,
		Payload: TurnChangedPayload{
			PlayerID: next.ID,
			IsCPU:    next.IsCPU,
		},
	}}, nil
}

// HandlePlayerLeaving removes the player from the roster. When fewer than two
// players remain the game finishes; whether the survivor is declared winner
// depends on Options.ForfeitAwardsWin.
func (s *Service) HandlePlayerLeaving(game *domain.Game, playerID uuid.UUID) ([]Event, error) {
	idx := -1
	for i := range game.Players {
		if game.Players[i].ID == playerID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrUnknownPlayer
	}

	wasBeforeCurrent := idx < game.CurrentPlayerIndex
	leaverWasCurrent := idx == game.CurrentPlayerIndex

	game.Players = append(game.Players[:idx], game.Players[idx+1:]...)
	events := []Event{{
		Kind:    EventPlayerLeft,
		Payload: PlayerLeftPayload{PlayerID: playerID},
	}}

	if len(game.Players) < 2 {
		game.Status = domain.StatusFinished
		if s.opts.ForfeitAwardsWin && len(game.Players) == 1 {
			winner := game.Players[0].ID
			game.Winner = &winner
		}
		events = append(events, Event{
			Kind:    EventGameEnded,
			Payload: GameEndedPayload{WinnerID: game.Winner},
		})
		return events, nil
	}

	// Keep the turn pointer on the same player, or hand the departed
	// player's turn to their successor.
	if wasBeforeCurrent {
		game.CurrentPlayerIndex--
	} else if leaverWasCurrent {
		game.CurrentPlayerIndex %= len(game.Players)
		next := game.CurrentPlayer()
		next.IsActive = true
		next.HasUsedTurnAction = false
		events = append(events, Event{
			Kind: EventTurnChanged,
			Payload: TurnChangedPayload{
				PlayerID: next.ID,
				IsCPU:    next.IsCPU,
			},
		})
	}
	return events, nil
}

// checkMissionCompletion scans the player's open missions against the routes
// they now own. Every newly connected mission completes in the same pass, and
// reaching the win threshold finishes the game immediately.
func (s *Service) checkMissionCompletion(game *domain.Game, player *domain.Player) []Event {
	var events []Event
	for i := range player.Missions {
		m := &player.Missions[i]
		if m.Completed {
			continue
		}
		if !domain.Connected(m.FromCity, m.ToCity, player.ID, game.Routes) {
			continue
		}
		m.Completed = true
		completedBy := player.ID
		m.CompletedBy = &completedBy
		player.CompletedMissions++
		player.Score += m.Points

		events = append(events, Event{
			Kind: EventMissionCompleted,
			Payload: MissionCompletedPayload{
				PlayerID:  player.ID,
				MissionID: m.ID,
				Points:    m.Points,
			},
		})
	}

	if player.CompletedMissions >= domain.MissionsToWin {
		game.Status = domain.StatusFinished
		winner := player.ID
		game.Winner = &winner
		events = append(events, Event{
			Kind:    EventGameEnded,
			Payload: GameEndedPayload{WinnerID: game.Winner},
		})
	}
	return events
}

// actingPlayer validates the common preconditions shared by the three turn
// actions: the game is running and the caller is the current player.
func (s *Service) actingPlayer(game *domain.Game, playerID uuid.UUID) (*domain.Player, error) {
	if game.Status != domain.StatusInProgress {
		return nil, ErrGameNotInProgress
	}
	player := game.FindPlayer(playerID)
	if player == nil {
		return nil, ErrUnknownPlayer
	}
	current := game.CurrentPlayer()
	if current == nil || current.ID != playerID {
		return nil, ErrNotYourTurn
	}
	return player, nil
}
