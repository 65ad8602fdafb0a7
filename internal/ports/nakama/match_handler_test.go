package nakama

import (
	"context"
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/heroiclabs/nakama-common/runtime"

	"traindepot/internal/app"
	"traindepot/internal/bot"
	"traindepot/internal/config"
	"traindepot/internal/domain"
)

// noopLogger implements runtime.Logger for tests that only need to satisfy the interface.
type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) WithField(string, interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) WithFields(map[string]interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) Fields() map[string]interface{} {
	return nil
}

// mockDispatcher records match dispatcher calls for assertions.
type mockDispatcher struct {
	broadcastCount int
	labelUpdates   int
	lastOpCode     int64
	lastData       []byte
	opCodes        []int64
}

func (md *mockDispatcher) BroadcastMessage(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	md.broadcastCount++
	md.lastOpCode = opCode
	md.lastData = append([]byte(nil), data...)
	md.opCodes = append(md.opCodes, opCode)
	return nil
}

func (md *mockDispatcher) BroadcastMessageDeferred(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	return nil
}

func (md *mockDispatcher) MatchKick(presences []runtime.Presence) error {
	return nil
}

func (md *mockDispatcher) MatchLabelUpdate(label string) error {
	md.labelUpdates++
	return nil
}

func (md *mockDispatcher) sent(opCode int64) bool {
	for _, op := range md.opCodes {
		if op == opCode {
			return true
		}
	}
	return false
}

type fakePresence struct {
	userID   string
	username string
}

func (p fakePresence) GetUserId() string                 { return p.userID }
func (p fakePresence) GetSessionId() string              { return "session-" + p.userID }
func (p fakePresence) GetNodeId() string                 { return "node" }
func (p fakePresence) GetHidden() bool                   { return false }
func (p fakePresence) GetPersistence() bool              { return true }
func (p fakePresence) GetUsername() string               { return p.username }
func (p fakePresence) GetStatus() string                 { return "" }
func (p fakePresence) GetReason() runtime.PresenceReason { return runtime.PresenceReasonUnknown }

type fakeMatchData struct {
	fakePresence
	opCode int64
	data   []byte
}

func (m fakeMatchData) GetOpCode() int64      { return m.opCode }
func (m fakeMatchData) GetData() []byte       { return m.data }
func (m fakeMatchData) GetReliable() bool     { return true }
func (m fakeMatchData) GetReceiveTime() int64 { return 0 }

// mockStore is an in-memory GameStore.
type mockStore struct {
	games   map[string]*domain.Game
	saves   int
	deletes int
}

func newMockStore() *mockStore {
	return &mockStore{games: make(map[string]*domain.Game)}
}

func (ms *mockStore) SaveGame(ctx context.Context, matchID string, game *domain.Game) error {
	ms.saves++
	ms.games[matchID] = game
	return nil
}

func (ms *mockStore) LoadGame(ctx context.Context, matchID string) (*domain.Game, bool, error) {
	g, ok := ms.games[matchID]
	return g, ok, nil
}

func (ms *mockStore) DeleteGame(ctx context.Context, matchID string) error {
	ms.deletes++
	delete(ms.games, matchID)
	return nil
}

type mockNotifier struct {
	notified []string
}

func (mn *mockNotifier) Notify(ctx context.Context, userID, title, body string) {
	mn.notified = append(mn.notified, userID)
}

func msg(userID string, opCode int64, data []byte) runtime.MatchData {
	return fakeMatchData{
		fakePresence: fakePresence{userID: userID, username: userID},
		opCode:       opCode,
		data:         data,
	}
}

// testState builds a lobby MatchState with the given human seats occupied.
func testState(users ...string) *MatchState {
	rng := rand.New(rand.NewSource(1))
	state := &MatchState{
		OwnerSeat: -1,
		Presences: make(map[string]runtime.Presence),
		App:       app.NewService(rng, app.Options{}),
		Bots:      make(map[uuid.UUID]*bot.Agent),
		BotTuning: bot.DefaultTuning,
		Rng:       rng,
		Store:     newMockStore(),
		Notifier:  &mockNotifier{},
	}
	for i, u := range users {
		state.Seats[i] = u
		state.Presences[u] = fakePresence{userID: u, username: u}
	}
	if len(users) > 0 {
		state.OwnerSeat = 0
	}
	return state
}

func matchCtx() context.Context {
	return context.WithValue(context.Background(), runtime.RUNTIME_CTX_MATCH_ID, "match-1")
}

func startGame(t *testing.T, handler *matchHandler, state *MatchState, dispatcher *mockDispatcher) {
	t.Helper()
	handler.handleStartGame(matchCtx(), state, dispatcher, noopLogger{},
		msg(state.Seats[state.OwnerSeat], OpStartGame, nil))
	if state.Game == nil {
		t.Fatalf("expected game to start")
	}
}

func TestPlayerIDStable(t *testing.T) {
	if playerID("user-1") != playerID("user-1") {
		t.Fatalf("playerID must be stable for the same user")
	}
	if playerID("user-1") == playerID("user-2") {
		t.Fatalf("playerID must differ across users")
	}
	raw := uuid.New()
	if playerID(raw.String()) != raw {
		t.Fatalf("uuid user ids must map to themselves")
	}
}

func TestSeatHelpers(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	agent, player := bot.NewAgent(0, rng, bot.DefaultTuning)

	tests := []struct {
		name       string
		seats      [MaxSeats]string
		wantOpen   int
		wantHumans int
		wantFirst  int
	}{
		{
			name:       "Empty",
			seats:      [MaxSeats]string{"", "", "", ""},
			wantOpen:   4,
			wantHumans: 0,
			wantFirst:  -1,
		},
		{
			name:       "BotThenHuman",
			seats:      [MaxSeats]string{player.ID.String(), "user-1", "", ""},
			wantOpen:   2,
			wantHumans: 1,
			wantFirst:  1,
		},
		{
			name:       "HumansOnly",
			seats:      [MaxSeats]string{"user-1", "user-2", "", ""},
			wantOpen:   2,
			wantHumans: 2,
			wantFirst:  0,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			state := &MatchState{
				Seats: test.seats,
				Bots:  map[uuid.UUID]*bot.Agent{agent.ID: agent},
			}
			if got := state.openSeatCount(); got != test.wantOpen {
				t.Errorf("openSeatCount() = %d, want %d", got, test.wantOpen)
			}
			if got := state.humanCount(); got != test.wantHumans {
				t.Errorf("humanCount() = %d, want %d", got, test.wantHumans)
			}
			if got := state.firstHumanSeat(); got != test.wantFirst {
				t.Errorf("firstHumanSeat() = %d, want %d", got, test.wantFirst)
			}
		})
	}
}

func TestMatchInit(t *testing.T) {
	handler := &matchHandler{}
	state, tickRate, label := handler.MatchInit(context.Background(), noopLogger{}, nil, nil, nil)

	ms, ok := state.(*MatchState)
	if !ok {
		t.Fatalf("MatchInit returned %T, want *MatchState", state)
	}
	if tickRate != 1 {
		t.Fatalf("tickRate = %d, want 1", tickRate)
	}
	if ms.OwnerSeat != -1 {
		t.Fatalf("OwnerSeat = %d, want -1", ms.OwnerSeat)
	}
	if !ms.BotsEnabled {
		t.Fatalf("bots should default to enabled")
	}

	var parsed Label
	if err := json.Unmarshal([]byte(label), &parsed); err != nil {
		t.Fatalf("label is not valid JSON: %v", err)
	}
	if !parsed.Open || parsed.Game != MatchModuleName || parsed.Phase != string(domain.StatusWaiting) {
		t.Fatalf("unexpected label %+v", parsed)
	}
}

func TestMatchInitCarriesBotTuning(t *testing.T) {
	handler := &matchHandler{}
	state, _, _ := handler.MatchInit(context.Background(), noopLogger{}, nil, nil, nil)

	want := config.GetGameConfig().CPUMissionDrawChance
	got := state.(*MatchState).BotTuning.MissionDrawChance
	if got != want {
		t.Fatalf("BotTuning.MissionDrawChance = %v, want %v from config", got, want)
	}
}

func TestMatchInitBotsDisabledByEnv(t *testing.T) {
	handler := &matchHandler{}
	ctx := context.WithValue(context.Background(), runtime.RUNTIME_CTX_ENV,
		map[string]string{"traindepot_bots_enabled": "false"})

	state, _, _ := handler.MatchInit(ctx, noopLogger{}, nil, nil, nil)
	if state.(*MatchState).BotsEnabled {
		t.Fatalf("env override should disable bots")
	}
}

func TestMatchJoinAttempt(t *testing.T) {
	handler := &matchHandler{}

	t.Run("OpenLobby", func(t *testing.T) {
		state := testState("user-1")
		_, allowed, _ := handler.MatchJoinAttempt(context.Background(), noopLogger{}, nil, nil, nil, 0,
			state, fakePresence{userID: "user-2"}, nil)
		if !allowed {
			t.Fatalf("join into open lobby should be allowed")
		}
	})

	t.Run("FullLobby", func(t *testing.T) {
		state := testState("user-1", "user-2", "user-3", "user-4")
		_, allowed, reason := handler.MatchJoinAttempt(context.Background(), noopLogger{}, nil, nil, nil, 0,
			state, fakePresence{userID: "user-5"}, nil)
		if allowed {
			t.Fatalf("join into full lobby should be rejected")
		}
		if reason != "match_full" {
			t.Fatalf("reason = %q, want match_full", reason)
		}
	})

	t.Run("FullLobbyWithReplaceableBot", func(t *testing.T) {
		state := testState("user-1", "user-2", "user-3")
		agent, player := bot.NewAgent(3, state.Rng, state.BotTuning)
		state.Bots[agent.ID] = agent
		state.Seats[3] = player.ID.String()

		_, allowed, _ := handler.MatchJoinAttempt(context.Background(), noopLogger{}, nil, nil, nil, 0,
			state, fakePresence{userID: "user-5"}, nil)
		if !allowed {
			t.Fatalf("a lobby bot seat is replaceable")
		}
	})

	t.Run("MidGameNewcomerRejected", func(t *testing.T) {
		state := testState("user-1", "user-2")
		dispatcher := &mockDispatcher{}
		startGame(t, handler, state, dispatcher)

		_, allowed, reason := handler.MatchJoinAttempt(context.Background(), noopLogger{}, nil, nil, nil, 0,
			state, fakePresence{userID: "user-3"}, nil)
		if allowed {
			t.Fatalf("newcomers must not join mid-game")
		}
		if reason != "match_in_progress" {
			t.Fatalf("reason = %q, want match_in_progress", reason)
		}
	})

	t.Run("MidGameRejoinAllowed", func(t *testing.T) {
		state := testState("user-1", "user-2")
		dispatcher := &mockDispatcher{}
		startGame(t, handler, state, dispatcher)

		_, allowed, _ := handler.MatchJoinAttempt(context.Background(), noopLogger{}, nil, nil, nil, 0,
			state, fakePresence{userID: "user-2"}, nil)
		if !allowed {
			t.Fatalf("a seated player may always rejoin")
		}
	})
}

func TestMatchJoinSeatsAndOwner(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := testState()

	result := handler.MatchJoin(context.Background(), noopLogger{}, nil, nil, dispatcher, 0, state,
		[]runtime.Presence{
			fakePresence{userID: "user-1", username: "alice"},
			fakePresence{userID: "user-2", username: "bob"},
		})

	ms := result.(*MatchState)
	if ms.Seats[0] != "user-1" || ms.Seats[1] != "user-2" {
		t.Fatalf("unexpected seating %v", ms.Seats)
	}
	if ms.OwnerSeat != 0 {
		t.Fatalf("OwnerSeat = %d, want 0", ms.OwnerSeat)
	}
	if !dispatcher.sent(OpPlayerJoined) {
		t.Fatalf("expected player-joined broadcasts")
	}
	if dispatcher.labelUpdates == 0 {
		t.Fatalf("expected a label update after join")
	}
}

func TestMatchJoinReplacesLobbyBot(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := testState("user-1", "user-2", "user-3")
	agent, player := bot.NewAgent(3, state.Rng, state.BotTuning)
	state.Bots[agent.ID] = agent
	state.Seats[3] = player.ID.String()

	handler.MatchJoin(context.Background(), noopLogger{}, nil, nil, dispatcher, 0, state,
		[]runtime.Presence{fakePresence{userID: "user-4", username: "dave"}})

	if state.Seats[3] != "user-4" {
		t.Fatalf("bot seat should be handed to the human, got %q", state.Seats[3])
	}
	if len(state.Bots) != 0 {
		t.Fatalf("replaced bot must be dropped from the roster")
	}
}

func TestHandleStartGame(t *testing.T) {
	handler := &matchHandler{}

	t.Run("OwnerStarts", func(t *testing.T) {
		state := testState("user-1", "user-2")
		dispatcher := &mockDispatcher{}

		handler.handleStartGame(matchCtx(), state, dispatcher, noopLogger{}, msg("user-1", OpStartGame, nil))

		if state.Game == nil {
			t.Fatalf("owner start should create the game")
		}
		if got := len(state.Game.Players); got != 2 {
			t.Fatalf("player count = %d, want 2", got)
		}
		if !dispatcher.sent(OpGameStarted) {
			t.Fatalf("expected game-started broadcast")
		}
		if !dispatcher.sent(OpStateSync) {
			t.Fatalf("expected state sync after start")
		}
		if state.Store.(*mockStore).saves == 0 {
			t.Fatalf("expected the started game to be persisted")
		}
	})

	t.Run("NonOwnerRejected", func(t *testing.T) {
		state := testState("user-1", "user-2")
		dispatcher := &mockDispatcher{}

		handler.handleStartGame(matchCtx(), state, dispatcher, noopLogger{}, msg("user-2", OpStartGame, nil))

		if state.Game != nil {
			t.Fatalf("non-owner must not start the game")
		}
		if dispatcher.lastOpCode != OpActionRejected {
			t.Fatalf("lastOpCode = %d, want OpActionRejected", dispatcher.lastOpCode)
		}
	})

	t.Run("UnseatedRejected", func(t *testing.T) {
		state := testState("user-1", "user-2")
		state.Presences["user-9"] = fakePresence{userID: "user-9"}
		dispatcher := &mockDispatcher{}

		handler.handleStartGame(matchCtx(), state, dispatcher, noopLogger{}, msg("user-9", OpStartGame, nil))

		if state.Game != nil {
			t.Fatalf("unseated user must not start the game")
		}
	})

	t.Run("DoubleStartRejected", func(t *testing.T) {
		state := testState("user-1", "user-2")
		dispatcher := &mockDispatcher{}
		startGame(t, handler, state, dispatcher)
		started := state.Game

		handler.handleStartGame(matchCtx(), state, dispatcher, noopLogger{}, msg("user-1", OpStartGame, nil))

		if state.Game != started {
			t.Fatalf("second start must not replace the game")
		}
	})
}

func TestMatchLoopTurnActions(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := testState("user-1", "user-2")
	state.BotsEnabled = false
	startGame(t, handler, state, dispatcher)

	current := state.Game.CurrentPlayer()
	if current.ID != playerID("user-1") {
		t.Fatalf("seat order should make user-1 the first player")
	}

	// Out-of-turn action is rejected privately.
	handler.MatchLoop(matchCtx(), noopLogger{}, nil, nil, dispatcher, 1, state,
		[]runtime.MatchData{msg("user-2", OpDrawCard, nil)})
	if dispatcher.lastOpCode != OpActionRejected {
		t.Fatalf("out-of-turn draw should be rejected, lastOpCode = %d", dispatcher.lastOpCode)
	}
	if len(state.Game.FindPlayer(playerID("user-2")).Hand) != 0 {
		t.Fatalf("rejected draw must not change the hand")
	}

	// In-turn draw succeeds and is sent privately.
	handler.MatchLoop(matchCtx(), noopLogger{}, nil, nil, dispatcher, 2, state,
		[]runtime.MatchData{msg("user-1", OpDrawCard, nil)})
	if got := len(current.Hand); got != 1 {
		t.Fatalf("hand size = %d, want 1", got)
	}
	if !dispatcher.sent(OpCardDrawn) {
		t.Fatalf("expected card-drawn message")
	}

	// End turn hands over to user-2 and notifies them.
	handler.MatchLoop(matchCtx(), noopLogger{}, nil, nil, dispatcher, 3, state,
		[]runtime.MatchData{msg("user-1", OpEndTurn, nil)})
	if got := state.Game.CurrentPlayer().ID; got != playerID("user-2") {
		t.Fatalf("turn should pass to user-2, got %s", got)
	}
	notifier := state.Notifier.(*mockNotifier)
	if len(notifier.notified) != 1 || notifier.notified[0] != "user-2" {
		t.Fatalf("expected a turn notification for user-2, got %v", notifier.notified)
	}
}

func TestMatchLoopMalformedClaimPayload(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := testState("user-1", "user-2")
	state.BotsEnabled = false
	startGame(t, handler, state, dispatcher)

	handler.MatchLoop(matchCtx(), noopLogger{}, nil, nil, dispatcher, 1, state,
		[]runtime.MatchData{msg("user-1", OpClaimRoute, []byte("not json"))})

	if dispatcher.lastOpCode != OpActionRejected {
		t.Fatalf("malformed claim payload should be rejected")
	}
}

func TestMatchLeave(t *testing.T) {
	handler := &matchHandler{}

	t.Run("MidGameForfeitEndsMatch", func(t *testing.T) {
		state := testState("user-1", "user-2")
		dispatcher := &mockDispatcher{}
		startGame(t, handler, state, dispatcher)
		store := state.Store.(*mockStore)

		result := handler.MatchLeave(matchCtx(), noopLogger{}, nil, nil, dispatcher, 5, state,
			[]runtime.Presence{fakePresence{userID: "user-2"}})

		if result == nil {
			t.Fatalf("match should stay up while a human remains")
		}
		if state.Game.Status != domain.StatusFinished {
			t.Fatalf("roster below two must finish the game")
		}
		if !dispatcher.sent(OpGameEnded) {
			t.Fatalf("expected game-ended broadcast")
		}
		if store.deletes == 0 {
			t.Fatalf("finished game should drop its save")
		}
	})

	t.Run("LastHumanTerminates", func(t *testing.T) {
		state := testState("user-1")
		dispatcher := &mockDispatcher{}

		result := handler.MatchLeave(matchCtx(), noopLogger{}, nil, nil, dispatcher, 5, state,
			[]runtime.Presence{fakePresence{userID: "user-1"}})

		if result != nil {
			t.Fatalf("match with no humans should terminate")
		}
	})

	t.Run("OwnerReassignedOnLeave", func(t *testing.T) {
		state := testState("user-1", "user-2")
		dispatcher := &mockDispatcher{}

		handler.MatchLeave(matchCtx(), noopLogger{}, nil, nil, dispatcher, 5, state,
			[]runtime.Presence{fakePresence{userID: "user-1"}})

		if state.OwnerSeat != 1 {
			t.Fatalf("OwnerSeat = %d, want 1", state.OwnerSeat)
		}
	})
}

func TestRestoreSavedGame(t *testing.T) {
	handler := &matchHandler{}

	// An interrupted two-player match: one human, one CPU, mid-game.
	build := func() (*MatchState, *domain.Game, uuid.UUID) {
		state := testState()
		state.BotTuning = bot.Tuning{MissionDrawChance: 0.25}
		human := playerID("user-1")
		cpu := uuid.New()
		saved := &domain.Game{
			ID: uuid.New(),
			Players: []domain.Player{
				{ID: human, Username: "alice", IsActive: true},
				{ID: cpu, Username: "Stoker Ella", Avatar: "elephant", IsCPU: true},
			},
			CardDeck: []domain.Card{{ID: uuid.New(), Color: domain.ColorRed}},
			Status:   domain.StatusInProgress,
		}
		state.Store.(*mockStore).games["match-1"] = saved
		return state, saved, cpu
	}

	t.Run("ResumesInProgressSave", func(t *testing.T) {
		state, saved, cpu := build()

		handler.restoreSavedGame(matchCtx(), state, noopLogger{})

		if state.Game != saved {
			t.Fatalf("expected the saved game to be adopted")
		}
		if state.Seats[0] != playerID("user-1").String() || state.Seats[1] != cpu.String() {
			t.Fatalf("saved players should reclaim their seats, got %v", state.Seats)
		}
		if state.OwnerSeat != 0 {
			t.Fatalf("OwnerSeat = %d, want the first human seat", state.OwnerSeat)
		}

		agent, ok := state.Bots[cpu]
		if !ok {
			t.Fatalf("expected the CPU player's agent to be rebuilt")
		}
		if agent.Name != "Stoker Ella" || agent.Avatar != "elephant" {
			t.Fatalf("rebuilt agent lost its identity: %q/%q", agent.Name, agent.Avatar)
		}
		sb, ok := agent.Strategy.(*bot.StandardBot)
		if !ok || sb.Tuning.MissionDrawChance != 0.25 {
			t.Fatalf("rebuilt agent should carry the match tuning")
		}
	})

	t.Run("RejoinAfterRestore", func(t *testing.T) {
		state, _, _ := build()
		handler.restoreSavedGame(matchCtx(), state, noopLogger{})

		_, allowed, _ := handler.MatchJoinAttempt(context.Background(), noopLogger{}, nil, nil, nil, 0,
			state, fakePresence{userID: playerID("user-1").String()}, nil)
		if !allowed {
			t.Fatalf("a saved player must be able to rejoin the restored match")
		}
	})

	t.Run("IgnoresFinishedSave", func(t *testing.T) {
		state, saved, _ := build()
		saved.Status = domain.StatusFinished

		handler.restoreSavedGame(matchCtx(), state, noopLogger{})

		if state.Game != nil {
			t.Fatalf("finished saves must not be resumed")
		}
	})

	t.Run("NoSaveIsNoop", func(t *testing.T) {
		state := testState()

		handler.restoreSavedGame(matchCtx(), state, noopLogger{})

		if state.Game != nil || state.Seats[0] != "" {
			t.Fatalf("missing save must leave the lobby untouched")
		}
	})
}

func TestProcessBotsAutoFillsSoloLobby(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := testState("user-1")
	state.BotsEnabled = true
	state.BotTuning = bot.Tuning{MissionDrawChance: 0.25}
	state.BotAutoFillDelay = 2
	state.LastSinglePlayerTick = 8
	state.Tick = 10

	handler.processBots(context.Background(), state, dispatcher, noopLogger{})

	botCount := 0
	for _, seat := range state.Seats {
		if seat != "" && state.isBotSeat(seat) {
			botCount++
		}
	}
	if botCount != 3 {
		t.Fatalf("expected 3 CPU seats, got %d", botCount)
	}
	for _, agent := range state.Bots {
		sb, ok := agent.Strategy.(*bot.StandardBot)
		if !ok {
			t.Fatalf("auto-filled agent has strategy %T, want *bot.StandardBot", agent.Strategy)
		}
		if sb.Tuning.MissionDrawChance != 0.25 {
			t.Fatalf("agent mission chance = %v, want the configured 0.25", sb.Tuning.MissionDrawChance)
		}
	}
	if state.openSeatCount() != 0 {
		t.Fatalf("expected a full lobby after auto-fill")
	}
	if state.LastSinglePlayerTick != 0 {
		t.Fatalf("expected the auto-fill timer to reset")
	}
	if dispatcher.broadcastCount == 0 || dispatcher.labelUpdates == 0 {
		t.Fatalf("expected state broadcast and label update after auto-fill")
	}
}

func TestProcessBotsWaitsForDelay(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := testState("user-1")
	state.BotsEnabled = true
	state.BotAutoFillDelay = 5
	state.Tick = 1

	handler.processBots(context.Background(), state, dispatcher, noopLogger{})
	if state.LastSinglePlayerTick != 1 {
		t.Fatalf("first solo tick should arm the timer")
	}

	state.Tick = 3
	handler.processBots(context.Background(), state, dispatcher, noopLogger{})
	for _, seat := range state.Seats[1:] {
		if seat != "" {
			t.Fatalf("bots must not be added before the delay elapses")
		}
	}
}

func TestProcessBotsPlaysCPUTurn(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := testState("user-1")
	state.BotsEnabled = true

	agent, cpu := bot.NewAgent(1, state.Rng, state.BotTuning)
	state.Bots[agent.ID] = agent
	state.Seats[1] = cpu.ID.String()

	startGame(t, handler, state, dispatcher)

	// Hand the turn to the CPU.
	state.Game.CurrentPlayerIndex = 1
	state.Game.Players[0].IsActive = false
	state.Game.Players[1].IsActive = true

	state.Tick = 5
	handler.processBots(matchCtx(), state, dispatcher, noopLogger{})
	if state.BotWaitUntil == 0 {
		t.Fatalf("first CPU tick should arm the think delay")
	}

	state.Tick = state.BotWaitUntil
	handler.processBots(matchCtx(), state, dispatcher, noopLogger{})

	if state.BotWaitUntil != 0 {
		t.Fatalf("think delay should reset after the move")
	}
	if got := state.Game.CurrentPlayer().ID; got != playerID("user-1") {
		t.Fatalf("CPU turn should end with the human active, got %s", got)
	}
	cpuPlayer := state.Game.FindPlayer(agent.ID)
	acted := len(cpuPlayer.Hand) > 0 || len(cpuPlayer.Missions) > 2
	for i := range state.Game.Routes {
		if state.Game.Routes[i].OwnedBy(agent.ID) {
			acted = true
		}
	}
	if !acted {
		t.Fatalf("CPU should have taken an action before ending its turn")
	}
}

func TestProcessBotsIdleOnHumanTurn(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := testState("user-1", "user-2")
	state.BotsEnabled = true
	startGame(t, handler, state, dispatcher)

	state.BotWaitUntil = 42
	state.Tick = 50
	handler.processBots(matchCtx(), state, dispatcher, noopLogger{})

	if state.BotWaitUntil != 0 {
		t.Fatalf("human turn should clear any pending CPU delay")
	}
}
