// Package game runs one match from the lobby to the results. An Engine owns the
// arena and the roster outright; everything it learns about the outside world
// arrives on its inbox and everything it says leaves through its Outbox.
package game

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/wfunc/chaos-server/arena"
	"github.com/wfunc/chaos-server/logger"
	"github.com/wfunc/chaos-server/models"
	"github.com/wfunc/chaos-server/protocol"
	"github.com/wfunc/chaos-server/roster"
	"github.com/wfunc/chaos-server/rules"
	"github.com/wfunc/chaos-server/spells"
	"github.com/wfunc/chaos-server/state"
)

// ErrShutdown is returned when the context is cancelled or the inbox is
// closed before the game finished.
var ErrShutdown = errors.New("game: shutdown")

// DefaultLinger is how long a finished game waits for its players to leave.
const DefaultLinger = 30 * time.Second

// Outbox receives every event the engine emits. Deliver must not block.
type Outbox interface {
	Deliver(msg protocol.Outgoing)
}

// OutboxFunc adapts a function to Outbox.
type OutboxFunc func(msg protocol.Outgoing)

func (f OutboxFunc) Deliver(msg protocol.Outgoing) {
	f(msg)
}

// Observer is told about milestones of a game. Calls happen on the engine
// goroutine.
type Observer interface {
	PhaseEntered(phase string)
	SpellCast(id uint32, spell spells.Spell)
	LatencyMeasured(id uint32, rtt time.Duration)
	GameFinished(result Result)
}

type nopObserver struct{}

func (nopObserver) PhaseEntered(string)                   {}
func (nopObserver) SpellCast(uint32, spells.Spell)        {}
func (nopObserver) LatencyMeasured(uint32, time.Duration) {}
func (nopObserver) GameFinished(Result)                   {}

// Config tunes an Engine. Zero values fall back to defaults.
type Config struct {
	Roller   rules.Roller
	Linger   time.Duration
	Log      *zap.SugaredLogger
	Observer Observer
}

// Result summarises a game. Winners is empty when nobody is left standing.
type Result struct {
	Players    []models.Player
	Winners    []models.Player
	Rounds     int
	StartedAt  time.Time
	FinishedAt time.Time
}

// Engine is the state machine of one game.
type Engine struct {
	inbox  <-chan protocol.Inbound
	out    Outbox
	rng    rules.Roller
	linger time.Duration
	log    *zap.SugaredLogger
	obs    Observer

	phases *state.GameMachine
	lobby  *roster.Lobby
	roster *roster.Roster
	arena  *arena.Arena
	result Result
}

func New(inbox <-chan protocol.Inbound, out Outbox, cfg Config) *Engine {
	if cfg.Roller == nil {
		cfg.Roller = rules.NewRoller(0)
	}
	if cfg.Linger <= 0 {
		cfg.Linger = DefaultLinger
	}
	if cfg.Log == nil {
		cfg.Log = logger.Log
	}
	if cfg.Observer == nil {
		cfg.Observer = nopObserver{}
	}
	e := &Engine{
		inbox:  inbox,
		out:    out,
		rng:    cfg.Roller,
		linger: cfg.Linger,
		log:    cfg.Log,
		obs:    cfg.Observer,
		lobby:  roster.NewLobby(),
		arena:  arena.New(),
	}
	e.phases = state.NewGameMachine(func(id string) {
		e.log.Debugf("phase %s", id)
		e.obs.PhaseEntered(id)
	})
	return e
}

// Phase returns the current phase name. Only safe on the engine goroutine or
// after Run returned.
func (e *Engine) Phase() string {
	return e.phases.Phase()
}

// Run plays the game to the end. It always finishes with a Shutdown
// broadcast. The error is ErrShutdown when the game was cut short.
func (e *Engine) Run(ctx context.Context) (Result, error) {
	err := e.run(ctx)
	e.result.Rounds = e.phases.Rounds()
	e.result.FinishedAt = time.Now()
	e.send(protocol.ToAll(protocol.Shutdown{}))
	if err != nil {
		e.log.Infof("game stopped in %s after %d rounds: %v", e.phases.Phase(), e.result.Rounds, err)
		return e.result, err
	}
	e.obs.GameFinished(e.result)
	return e.result, nil
}

func (e *Engine) run(ctx context.Context) error {
	if err := e.lobbyLoop(ctx); err != nil {
		return err
	}
	if err := e.start(); err != nil {
		return err
	}
	winners, err := e.gameLoop(ctx)
	if err != nil {
		return err
	}
	e.enter(state.PhaseEnd)
	e.result.Winners = winners
	e.log.Infof("game over after %d rounds, %d winner(s)", e.phases.Rounds(), len(winners))
	e.send(protocol.ToAll(protocol.Results{Winners: winners}))
	e.waitForPlayersToLeave(ctx)
	return nil
}

// start rolls the wizards and puts them on the board.
func (e *Engine) start() error {
	e.roster = roster.New(e.lobby, e.rng)
	positions, err := e.roster.StartingPositions()
	if err != nil {
		return fmt.Errorf("start game: %w", err)
	}
	e.result.StartedAt = time.Now()
	for _, w := range e.roster.All() {
		e.result.Players = append(e.result.Players, w.Player)
		wizard := *w
		wizard.Spells = slices.Clone(w.Spells)
		e.send(protocol.ToID(w.ID, w.ID, protocol.Start{Wizard: wizard}))
	}
	for i, w := range e.roster.All() {
		piece := arena.NewWizard(w.ID, w.Stats)
		e.send(protocol.ToAllFrom(w.ID, protocol.AddWizard{Wizard: *piece, At: positions[i]}))
		e.arena.PlaceWizard(positions[i], piece)
	}
	e.log.Infof("game started with %d wizards", e.roster.Len())
	return nil
}

// NumberOfRounds is the length of a game that nobody wins early.
func NumberOfRounds(players int) int {
	return players*2 + 15
}

func (e *Engine) gameLoop(ctx context.Context) ([]models.Player, error) {
	for i, n := 0, NumberOfRounds(e.roster.Len()); i < n; i++ {
		won, err := e.playRound(ctx)
		if err != nil {
			return nil, err
		}
		if won {
			break
		}
	}
	return e.roster.Winners(), nil
}

// playRound reports whether the game was won during the round.
func (e *Engine) playRound(ctx context.Context) (bool, error) {
	e.enter(state.PhaseSpellSelection)
	orders, err := e.selectSpells(ctx)
	if err != nil {
		return false, err
	}

	e.enter(state.PhaseSpellResolution)
	for _, o := range orders {
		if err := e.doSpell(ctx, o); err != nil {
			return false, err
		}
		if e.roster.WinConditionMet() {
			return true, nil
		}
	}

	e.enter(state.PhaseEnvironment)
	e.shelterTurn()
	e.magicWoodTurn()
	e.spreadSpawns()
	if e.roster.WinConditionMet() {
		return true, nil
	}

	e.enter(state.PhaseMovement)
	for _, id := range e.roster.ActiveIDs() {
		// an earlier player may have killed this one
		if !e.roster.Get(id).Active() {
			continue
		}
		e.send(protocol.ToAllExcept(id, protocol.Turn{}))
		if err := e.movementLoop(ctx, id); err != nil {
			return false, err
		}
		if e.roster.WinConditionMet() {
			return true, nil
		}
	}
	e.send(protocol.ToAll(protocol.TurnEnd{}))
	return false, nil
}

// waitForPlayersToLeave lingers after the results until everyone is gone.
func (e *Engine) waitForPlayersToLeave(ctx context.Context) {
	timer := time.NewTimer(e.linger)
	defer timer.Stop()
	for !e.roster.AllGone() {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			return
		case ev, ok := <-e.inbox:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case protocol.Connected:
				e.turnAway(ev.ID)
			case protocol.Disconnected:
				e.roster.MarkDisconnected(ev.ID)
			case protocol.Latency:
				e.obs.LatencyMeasured(ev.ID, ev.RTT)
			}
		}
	}
}

func (e *Engine) enter(phase string) {
	if err := e.phases.Enter(phase); err != nil {
		panic(err)
	}
}

func (e *Engine) send(msg protocol.Outgoing) {
	e.out.Deliver(msg)
}

// tell sends a prompt or notice privately to id.
func (e *Engine) tell(id uint32, msg protocol.Message) {
	e.send(protocol.ToID(id, id, msg))
}

// announce sends msg to everyone as an action of id.
func (e *Engine) announce(id uint32, msg protocol.Message) {
	e.send(protocol.ToAllFrom(id, msg))
}

func (e *Engine) broadcast(msg protocol.Message) {
	e.send(protocol.ToAll(msg))
}
