package agent

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nstehr/vimy/arena-core/ipc"
	"github.com/nstehr/vimy/arena-core/model"
	"github.com/nstehr/vimy/arena-core/pathing"
	"github.com/nstehr/vimy/arena-core/rules"
)

// maxRecentEvents bounds the event history kept for the match summary.
const maxRecentEvents = 20

// Agent owns the decision-making for a single match session.
type Agent struct {
	Conn    *ipc.Connection
	Player  string
	Arena   string
	MatchID string
	Engine  *rules.Engine
	State   *rules.MatchState

	logger *zap.Logger
	prev   *stateSnapshot
	events []Event
}

func New(conn *ipc.Connection, engine *rules.Engine, logger *zap.Logger) *Agent {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Agent{
		Conn:    conn,
		Engine:  engine,
		State:   rules.NewMatchState(),
		MatchID: uuid.NewString(),
		logger:  logger,
	}
}

// HandleHello completes the handshake so the host knows the sidecar is
// ready. A hello always starts a fresh match: state, history and match ID
// are reset.
func (a *Agent) HandleHello(env ipc.Envelope) (*ipc.Envelope, error) {
	var hello ipc.HelloMessage
	if err := json.Unmarshal(env.Data, &hello); err != nil {
		return nil, fmt.Errorf("unmarshal hello: %w", err)
	}

	a.Player = hello.Player
	a.Arena = hello.Arena
	a.MatchID = uuid.NewString()
	a.State = rules.NewMatchState()
	a.prev = nil
	a.events = nil
	if a.Conn != nil {
		a.Conn.Player = hello.Player
	}

	grid := model.NewOpenGrid(100, 100)
	if hello.Terrain != nil {
		grid = hello.Terrain.Grid()
	}
	a.Engine.SetFinder(pathing.NewSearcher(grid))

	a.logger.Info("player identified",
		zap.String("player", a.Player),
		zap.String("arena", a.Arena),
		zap.String("matchId", a.MatchID),
		zap.Bool("terrain", hello.Terrain != nil),
		zap.String("tactics", a.Engine.Tactics().Name),
	)

	ack, err := ipc.NewEnvelope(ipc.TypeAck, ipc.AckMessage{Status: "ok", MatchID: a.MatchID})
	if err != nil {
		return nil, err
	}
	return &ack, nil
}

// HandleTick runs one decision pass and replies with every command issued
// for it.
func (a *Agent) HandleTick(env ipc.Envelope) (*ipc.Envelope, error) {
	var gs model.GameState
	if err := json.Unmarshal(env.Data, &gs); err != nil {
		return nil, fmt.Errorf("unmarshal GameState: %w", err)
	}

	batch := ipc.NewBatch()
	if err := a.Engine.Evaluate(gs, a.State, batch); err != nil {
		a.logger.Error("rule engine error", zap.Int("tick", gs.Tick), zap.Error(err))
	}
	a.observe(gs)

	a.logger.Debug("tick decided",
		zap.String("matchId", a.MatchID),
		zap.Int("tick", gs.Tick),
		zap.Int("units", len(gs.Units)),
		zap.Int("commands", batch.Len()),
	)

	reply, err := ipc.NewEnvelope(ipc.TypeCommands, ipc.CommandsMessage{Tick: gs.Tick, Commands: batch.Commands()})
	if err != nil {
		return nil, err
	}
	return &reply, nil
}

// observe diffs the tick against the previous one and records any events.
func (a *Agent) observe(gs model.GameState) {
	events := detectEvents(gs, a.prev)
	next := advance(a.prev, takeSnapshot(gs), events)
	a.prev = &next

	for _, e := range events {
		a.logger.Info("match event",
			zap.String("matchId", a.MatchID),
			zap.String("kind", string(e.Kind)),
			zap.Int("tick", e.Tick),
			zap.String("detail", e.Detail),
		)
	}
	a.events = append(a.events, events...)
	if over := len(a.events) - maxRecentEvents; over > 0 {
		a.events = a.events[over:]
	}
}

// Events returns the most recent match events, oldest first.
func (a *Agent) Events() []Event {
	return append([]Event(nil), a.events...)
}

// Summary renders the recent events for the end-of-match log.
func (a *Agent) Summary() string {
	return formatEvents(a.events)
}
