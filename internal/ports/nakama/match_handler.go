package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/heroiclabs/nakama-common/runtime"

	"traindepot/internal/app"
	"traindepot/internal/bot"
	"traindepot/internal/config"
	"traindepot/internal/domain"
	"traindepot/internal/ports"
)

// MatchState holds the authoritative runtime state for the match handler.
type MatchState struct {
	Seats     [MaxSeats]string            // Nakama user ids, "" for empty
	OwnerSeat int                         // seat index of the match owner, -1 when unset
	Tick      int64                       // current match tick
	Presences map[string]runtime.Presence // user id -> presence for targeted sends

	App  *app.Service
	Game *domain.Game // nil while in the lobby

	Bots        map[uuid.UUID]*bot.Agent
	BotsEnabled bool
	BotTuning   bot.Tuning
	// Bot pacing, in ticks (tick rate is 1/s).
	BotMinDelay          int64
	BotMaxDelay          int64
	BotAutoFillDelay     int64
	BotWaitUntil         int64
	LastSinglePlayerTick int64

	Rng      *rand.Rand
	Store    ports.GameStore
	Notifier ports.Notifier
}

// playerID derives the domain player id for a Nakama user id. Nakama user
// ids are UUIDs already; anything else (tests, bots seeded by name) gets a
// stable derived id.
func playerID(userID string) uuid.UUID {
	if id, err := uuid.Parse(userID); err == nil {
		return id
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(userID))
}

func (ms *MatchState) openSeatCount() int {
	n := 0
	for _, s := range ms.Seats {
		if s == "" {
			n++
		}
	}
	return n
}

func (ms *MatchState) humanCount() int {
	n := 0
	for _, s := range ms.Seats {
		if s != "" && !ms.isBotSeat(s) {
			n++
		}
	}
	return n
}

func (ms *MatchState) isBotSeat(userID string) bool {
	_, ok := ms.Bots[playerID(userID)]
	return ok
}

func (ms *MatchState) firstHumanSeat() int {
	for i, s := range ms.Seats {
		if s != "" && !ms.isBotSeat(s) {
			return i
		}
	}
	return -1
}

// NewMatch is the factory function registered with Nakama.
func NewMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return &matchHandler{}, nil
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	cfg := config.GetGameConfig()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	state := &MatchState{
		OwnerSeat: -1,
		Presences: make(map[string]runtime.Presence),
		App: app.NewService(rng, app.Options{
			ForfeitAwardsWin: cfg.ForfeitAwardsWin,
		}),
		Bots:             make(map[uuid.UUID]*bot.Agent),
		BotsEnabled:      true,
		BotTuning:        bot.Tuning{MissionDrawChance: cfg.CPUMissionDrawChance},
		BotMinDelay:      int64(cfg.BotMinDelaySeconds),
		BotMaxDelay:      int64(cfg.BotMaxDelaySeconds),
		BotAutoFillDelay: int64(cfg.BotAutoFillDelaySeconds),
		Rng:              rng,
		Store:            NewStorageAdapter(nk),
		Notifier:         NewNotifyAdapter(nk, logger),
	}

	if env, ok := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string); ok {
		if v, ok := env["traindepot_bots_enabled"]; ok {
			state.BotsEnabled = v == "true"
		}
	}

	// A match recreated with the id of an interrupted one resumes its save.
	mh.restoreSavedGame(ctx, state, logger)

	phase := domain.StatusWaiting
	if state.Game != nil {
		phase = state.Game.Status
	}
	labelBytes, err := json.Marshal(Label{Open: state.Game == nil, Game: MatchModuleName, Phase: string(phase)})
	if err != nil {
		logger.Error("MatchInit: failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1
	return state, tickRate, string(labelBytes)
}

// MatchJoinAttempt validates whether a presence may join.
func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	ms, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// Rejoin is always allowed, including mid-game.
	for _, s := range ms.Seats {
		if s == presence.GetUserId() {
			return ms, true, ""
		}
	}
	if ms.Game != nil {
		return ms, false, "match_in_progress"
	}
	if ms.openSeatCount() == 0 && !mh.hasReplaceableBot(ms) {
		return ms, false, "match_full"
	}
	return ms, true, ""
}

func (mh *matchHandler) hasReplaceableBot(ms *MatchState) bool {
	for _, s := range ms.Seats {
		if s != "" && ms.isBotSeat(s) {
			return true
		}
	}
	return false
}

// MatchJoin seats joining presences, replacing a lobby bot when full.
func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	ms, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		ms.Presences[p.GetUserId()] = p

		if mh.seatOf(ms, p.GetUserId()) >= 0 {
			continue // rejoin, seat kept
		}

		assigned := false
		for i, s := range ms.Seats {
			if s == "" {
				ms.Seats[i] = p.GetUserId()
				assigned = true
				break
			}
		}
		if !assigned && ms.Game == nil {
			for i, s := range ms.Seats {
				if ms.isBotSeat(s) {
					logger.Info("MatchJoin: replacing bot %s with %s in seat %d", s, p.GetUserId(), i)
					delete(ms.Bots, playerID(s))
					ms.Seats[i] = p.GetUserId()
					assigned = true
					break
				}
			}
		}
		if !assigned {
			logger.Warn("MatchJoin: user %s joined but no seat was available", p.GetUserId())
			continue
		}

		mh.sendTo(ms, dispatcher, logger, OpPlayerJoined,
			map[string]any{"user_id": p.GetUserId(), "username": p.GetUsername()}, nil)
	}

	if ms.OwnerSeat < 0 || ms.Seats[ms.OwnerSeat] == "" || ms.isBotSeat(ms.Seats[ms.OwnerSeat]) {
		ms.OwnerSeat = ms.firstHumanSeat()
	}

	mh.updateLabel(ms, dispatcher, logger)
	mh.syncState(ms, dispatcher, logger)
	return ms
}

// MatchLeave frees seats and, mid-game, forwards the departure to the engine.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	ms, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(ms.Presences, p.GetUserId())
		seat := mh.seatOf(ms, p.GetUserId())
		if seat < 0 {
			continue
		}
		ms.Seats[seat] = ""

		if ms.Game != nil && ms.Game.Status == domain.StatusInProgress {
			events, err := ms.App.HandlePlayerLeaving(ms.Game, playerID(p.GetUserId()))
			if err != nil {
				logger.Error("MatchLeave: departure rejected by engine: %v", err)
				continue
			}
			mh.dispatchEvents(ctx, ms, dispatcher, logger, events)
			mh.persist(ctx, ms, logger)
		}
	}

	if ms.OwnerSeat >= 0 && ms.Seats[ms.OwnerSeat] == "" {
		ms.OwnerSeat = ms.firstHumanSeat()
	}

	if ms.firstHumanSeat() == -1 {
		logger.Info("MatchLeave: terminating match with no humans")
		mh.deleteSave(ctx, ms, logger)
		return nil
	}

	mh.updateLabel(ms, dispatcher, logger)
	mh.syncState(ms, dispatcher, logger)
	return ms
}

// MatchLoop processes client messages and drives CPU turns.
func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	ms, ok := state.(*MatchState)
	if !ok {
		return state
	}
	ms.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartGame:
			mh.handleStartGame(ctx, ms, dispatcher, logger, msg)
		case OpDrawCard:
			mh.handleAction(ctx, ms, dispatcher, logger, msg, func(actor uuid.UUID) ([]app.Event, error) {
				return ms.App.DrawCard(ms.Game, actor)
			})
		case OpDrawMission:
			mh.handleAction(ctx, ms, dispatcher, logger, msg, func(actor uuid.UUID) ([]app.Event, error) {
				return ms.App.DrawMission(ms.Game, actor)
			})
		case OpClaimRoute:
			var payload ClaimRouteMessage
			if err := json.Unmarshal(msg.GetData(), &payload); err != nil {
				mh.rejectAction(ms, dispatcher, logger, msg.GetUserId(), msg.GetOpCode(), "malformed payload")
				continue
			}
			mh.handleAction(ctx, ms, dispatcher, logger, msg, func(actor uuid.UUID) ([]app.Event, error) {
				return ms.App.ClaimRoute(ms.Game, actor, payload.RouteID)
			})
		case OpEndTurn:
			mh.handleEndTurn(ctx, ms, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: unknown opcode %d", msg.GetOpCode())
		}
	}

	if ms.BotsEnabled {
		mh.processBots(ctx, ms, dispatcher, logger)
	}
	return ms
}

// MatchTerminate is called when the server shuts the match down.
func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	if ms, ok := state.(*MatchState); ok {
		// Keep the save so an interrupted match can resume.
		mh.persist(ctx, ms, logger)
	}
	return state
}

// MatchSignal is unused; it exists to satisfy runtime.Match.
func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}

func (mh *matchHandler) handleStartGame(ctx context.Context, ms *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	if ms.Game != nil {
		mh.rejectAction(ms, dispatcher, logger, msg.GetUserId(), msg.GetOpCode(), "game already started")
		return
	}
	if seat := mh.seatOf(ms, msg.GetUserId()); seat < 0 || seat != ms.OwnerSeat {
		mh.rejectAction(ms, dispatcher, logger, msg.GetUserId(), msg.GetOpCode(), "only the owner can start")
		return
	}

	var players []domain.Player
	for _, s := range ms.Seats {
		if s == "" {
			continue
		}
		pid := playerID(s)
		if agent, ok := ms.Bots[pid]; ok {
			players = append(players, domain.Player{ID: pid, Username: agent.Name, Avatar: agent.Avatar, IsCPU: true})
			continue
		}
		username := s
		if p, ok := ms.Presences[s]; ok {
			username = p.GetUsername()
		}
		players = append(players, domain.Player{ID: pid, Username: username})
	}

	game, events, err := ms.App.Initialize(players)
	if err != nil {
		mh.rejectAction(ms, dispatcher, logger, msg.GetUserId(), msg.GetOpCode(), err.Error())
		return
	}
	ms.Game = game

	mh.dispatchEvents(ctx, ms, dispatcher, logger, events)
	mh.updateLabel(ms, dispatcher, logger)
	mh.syncState(ms, dispatcher, logger)
	mh.persist(ctx, ms, logger)
}

// handleAction runs one turn action for the sending user and reports the
// outcome: events on success, a private rejection message on failure.
func (mh *matchHandler) handleAction(ctx context.Context, ms *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData, op func(actor uuid.UUID) ([]app.Event, error)) {
	if ms.Game == nil {
		mh.rejectAction(ms, dispatcher, logger, msg.GetUserId(), msg.GetOpCode(), app.ErrGameNotInProgress.Error())
		return
	}
	events, err := op(playerID(msg.GetUserId()))
	if err != nil {
		mh.rejectAction(ms, dispatcher, logger, msg.GetUserId(), msg.GetOpCode(), err.Error())
		return
	}
	mh.dispatchEvents(ctx, ms, dispatcher, logger, events)
	mh.syncState(ms, dispatcher, logger)
	mh.persist(ctx, ms, logger)
}

func (mh *matchHandler) handleEndTurn(ctx context.Context, ms *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	if ms.Game == nil {
		mh.rejectAction(ms, dispatcher, logger, msg.GetUserId(), msg.GetOpCode(), app.ErrGameNotInProgress.Error())
		return
	}
	current := ms.Game.CurrentPlayer()
	if current == nil || current.ID != playerID(msg.GetUserId()) {
		mh.rejectAction(ms, dispatcher, logger, msg.GetUserId(), msg.GetOpCode(), app.ErrNotYourTurn.Error())
		return
	}
	events, err := ms.App.EndTurn(ms.Game)
	if err != nil {
		mh.rejectAction(ms, dispatcher, logger, msg.GetUserId(), msg.GetOpCode(), err.Error())
		return
	}
	mh.dispatchEvents(ctx, ms, dispatcher, logger, events)
	mh.syncState(ms, dispatcher, logger)
	mh.persist(ctx, ms, logger)
}

// processBots fills a lonely lobby with CPU seats and plays CPU turns after a
// short think delay. A CPU acts only once EndTurn has activated it; that
// ordering comes free from the single-threaded match loop.
func (mh *matchHandler) processBots(ctx context.Context, ms *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if ms.Game == nil {
		mh.autoFillLobby(ms, dispatcher, logger)
		return
	}
	if ms.Game.Status != domain.StatusInProgress {
		return
	}

	current := ms.Game.CurrentPlayer()
	if current == nil || !current.IsCPU {
		ms.BotWaitUntil = 0
		return
	}

	if ms.BotWaitUntil == 0 {
		span := ms.BotMaxDelay - ms.BotMinDelay + 1
		if span < 1 {
			span = 1
		}
		ms.BotWaitUntil = ms.Tick + ms.BotMinDelay + ms.Rng.Int63n(span)
		return
	}
	if ms.Tick < ms.BotWaitUntil {
		return
	}
	ms.BotWaitUntil = 0

	agent, ok := ms.Bots[current.ID]
	if !ok {
		logger.Error("processBots: no agent for CPU player %s", current.ID)
		return
	}

	move, err := agent.Play(ms.Game)
	if err != nil {
		logger.Error("processBots: agent %s failed to choose: %v", agent.Name, err)
		move = bot.Move{Kind: bot.ActionNone}
	}

	var events []app.Event
	switch move.Kind {
	case bot.ActionDrawCard:
		events, err = ms.App.DrawCard(ms.Game, current.ID)
	case bot.ActionDrawMission:
		events, err = ms.App.DrawMission(ms.Game, current.ID)
	case bot.ActionClaimRoute:
		events, err = ms.App.ClaimRoute(ms.Game, current.ID, move.RouteID)
	case bot.ActionNone:
		// fall through to end turn
	}
	if err != nil {
		logger.Warn("processBots: agent %s move rejected: %v", agent.Name, err)
	}
	mh.dispatchEvents(ctx, ms, dispatcher, logger, events)

	if ms.Game.Status == domain.StatusInProgress {
		endEvents, endErr := ms.App.EndTurn(ms.Game)
		if endErr != nil {
			logger.Error("processBots: end turn failed: %v", endErr)
		}
		mh.dispatchEvents(ctx, ms, dispatcher, logger, endEvents)
	}
	mh.syncState(ms, dispatcher, logger)
	mh.persist(ctx, ms, logger)
}

func (mh *matchHandler) autoFillLobby(ms *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if ms.humanCount() != 1 {
		ms.LastSinglePlayerTick = 0
		return
	}
	if ms.LastSinglePlayerTick == 0 {
		ms.LastSinglePlayerTick = ms.Tick
		return
	}
	if ms.Tick-ms.LastSinglePlayerTick < ms.BotAutoFillDelay {
		return
	}

	added := false
	for i, s := range ms.Seats {
		if s != "" {
			continue
		}
		agent, player := bot.NewAgent(i, ms.Rng, ms.BotTuning)
		ms.Bots[player.ID] = agent
		ms.Seats[i] = player.ID.String()
		logger.Info("autoFillLobby: added CPU %s to seat %d", agent.Name, i)
		added = true
	}
	ms.LastSinglePlayerTick = 0

	if added {
		mh.updateLabel(ms, dispatcher, logger)
		mh.syncState(ms, dispatcher, logger)
	}
}

// dispatchEvents fans engine events out to clients and side-effect
// collaborators (turn notifications, save cleanup).
func (mh *matchHandler) dispatchEvents(ctx context.Context, ms *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		op := eventOpCode(ev.Kind)
		if op == 0 {
			continue
		}
		mh.sendTo(ms, dispatcher, logger, op, ev.Payload, ev.Recipients)

		switch ev.Kind {
		case app.EventTurnChanged:
			if payload, ok := ev.Payload.(app.TurnChangedPayload); ok && !payload.IsCPU {
				if userID, ok := mh.userFor(ms, payload.PlayerID); ok {
					ms.Notifier.Notify(ctx, userID, "Your Turn!", "It's your move on the rails.")
				}
			}
		case app.EventGameEnded:
			mh.deleteSave(ctx, ms, logger)
			mh.updateLabel(ms, dispatcher, logger)
		}
	}
}

// sendTo broadcasts a payload, or targets it when recipients are given.
func (mh *matchHandler) sendTo(ms *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, opCode int64, payload any, recipients []uuid.UUID) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Error("sendTo: marshal failed for opcode %d: %v", opCode, err)
		return
	}

	var targets []runtime.Presence
	if len(recipients) > 0 {
		for _, r := range recipients {
			userID, ok := mh.userFor(ms, r)
			if !ok {
				continue // CPU recipient, nothing to send
			}
			if p, ok := ms.Presences[userID]; ok {
				targets = append(targets, p)
			}
		}
		if len(targets) == 0 {
			return
		}
	}
	if err := dispatcher.BroadcastMessage(opCode, data, targets, nil, true); err != nil {
		logger.Error("sendTo: broadcast failed for opcode %d: %v", opCode, err)
	}
}

// syncState sends every connected client its own redacted board view.
func (mh *matchHandler) syncState(ms *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if ms.Game == nil {
		return
	}
	for userID, presence := range ms.Presences {
		snap := snapshotFor(ms.Game, playerID(userID))
		data, err := json.Marshal(snap)
		if err != nil {
			logger.Error("syncState: marshal failed: %v", err)
			return
		}
		if err := dispatcher.BroadcastMessage(OpStateSync, data, []runtime.Presence{presence}, nil, true); err != nil {
			logger.Error("syncState: send failed: %v", err)
		}
	}
}

func (mh *matchHandler) rejectAction(ms *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, opCode int64, reason string) {
	p, ok := ms.Presences[userID]
	if !ok {
		return
	}
	data, err := json.Marshal(ActionRejectedMessage{OpCode: opCode, Reason: reason})
	if err != nil {
		logger.Error("rejectAction: marshal failed: %v", err)
		return
	}
	if err := dispatcher.BroadcastMessage(OpActionRejected, data, []runtime.Presence{p}, nil, true); err != nil {
		logger.Error("rejectAction: send failed: %v", err)
	}
}

func (mh *matchHandler) updateLabel(ms *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	phase := domain.StatusWaiting
	if ms.Game != nil {
		phase = ms.Game.Status
	}
	open := ms.Game == nil && ms.openSeatCount() > 0
	data, err := json.Marshal(Label{Open: open, Game: MatchModuleName, Phase: string(phase)})
	if err != nil {
		logger.Error("updateLabel: marshal failed: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(data)); err != nil {
		logger.Error("updateLabel: label update failed: %v", err)
	}
}

// restoreSavedGame adopts a persisted in-progress game when the match comes
// up with the id of an interrupted one (MatchTerminate keeps the save for
// this). Saved player ids double as seat assignments since humans' Nakama
// user ids are their player UUIDs; CPU seats get their agents rebuilt.
func (mh *matchHandler) restoreSavedGame(ctx context.Context, ms *MatchState, logger runtime.Logger) {
	matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)
	if matchID == "" {
		return
	}
	game, found, err := ms.Store.LoadGame(ctx, matchID)
	if err != nil {
		logger.Error("restoreSavedGame: load failed: %v", err)
		return
	}
	if !found || game.Status != domain.StatusInProgress {
		return
	}

	ms.Game = game
	for i := range game.Players {
		if i >= MaxSeats {
			break
		}
		p := &game.Players[i]
		ms.Seats[i] = p.ID.String()
		if p.IsCPU {
			ms.Bots[p.ID] = bot.AgentFor(*p, ms.Rng, ms.BotTuning)
		}
	}
	ms.OwnerSeat = ms.firstHumanSeat()
	logger.Info("restoreSavedGame: resumed match %s with %d players", matchID, len(game.Players))
}

func (mh *matchHandler) persist(ctx context.Context, ms *MatchState, logger runtime.Logger) {
	if ms.Game == nil || ms.Game.Status != domain.StatusInProgress {
		return
	}
	matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)
	if matchID == "" {
		return
	}
	if err := ms.Store.SaveGame(ctx, matchID, ms.Game); err != nil {
		logger.Error("persist: save failed: %v", err)
	}
}

func (mh *matchHandler) deleteSave(ctx context.Context, ms *MatchState, logger runtime.Logger) {
	matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)
	if matchID == "" {
		return
	}
	if err := ms.Store.DeleteGame(ctx, matchID); err != nil {
		logger.Error("deleteSave: delete failed: %v", err)
	}
}

func (mh *matchHandler) seatOf(ms *MatchState, userID string) int {
	for i, s := range ms.Seats {
		if s == userID {
			return i
		}
	}
	return -1
}

// userFor maps a domain player id back to a Nakama user id.
func (mh *matchHandler) userFor(ms *MatchState, id uuid.UUID) (string, bool) {
	for _, s := range ms.Seats {
		if s != "" && playerID(s) == id {
			if ms.isBotSeat(s) {
				return "", false
			}
			return s, true
		}
	}
	return "", false
}
