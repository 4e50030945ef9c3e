package state

import (
	"fmt"
	"sync/atomic"
)

// 对局阶段
const (
	PhaseLobby           = "lobby"
	PhaseSpellSelection  = "spell_selection"
	PhaseSpellResolution = "spell_resolution"
	PhaseEnvironment     = "environment"
	PhaseMovement        = "movement"
	PhaseEnd             = "end"
)

// PhaseState is a named phase of a game. The hooks are optional.
type PhaseState struct {
	ID      string
	Enter   func(id string)
	Exit    func(id string)
	entered atomic.Int64
}

func (p *PhaseState) OnEnter() {
	p.entered.Add(1)
	if p.Enter != nil {
		p.Enter(p.ID)
	}
}

func (p *PhaseState) OnExit() {
	if p.Exit != nil {
		p.Exit(p.ID)
	}
}

func (p *PhaseState) GetID() string {
	return p.ID
}

// Entered counts how many times the phase has been entered.
func (p *PhaseState) Entered() int {
	return int(p.entered.Load())
}

// GameMachine is the phase machine of one game.
type GameMachine struct {
	*BaseStateMachine
	phases map[string]*PhaseState
}

var phaseFlow = map[string][]string{
	PhaseLobby:           {PhaseSpellSelection},
	PhaseSpellSelection:  {PhaseSpellResolution, PhaseEnd},
	PhaseSpellResolution: {PhaseEnvironment, PhaseEnd},
	PhaseEnvironment:     {PhaseMovement, PhaseEnd},
	PhaseMovement:        {PhaseSpellSelection, PhaseEnd},
}

// NewGameMachine starts in the lobby. onEnter, when set, observes every phase
// change including the initial one.
func NewGameMachine(onEnter func(id string)) *GameMachine {
	m := &GameMachine{phases: make(map[string]*PhaseState)}
	for _, id := range []string{PhaseLobby, PhaseSpellSelection, PhaseSpellResolution, PhaseEnvironment, PhaseMovement, PhaseEnd} {
		m.phases[id] = &PhaseState{ID: id, Enter: onEnter}
	}
	m.BaseStateMachine = NewBaseStateMachine(m.phases[PhaseLobby])
	for from, targets := range phaseFlow {
		for _, to := range targets {
			m.AddTransition(m.phases[from], m.phases[to], nil)
		}
	}
	// end 之后不能再切换
	m.transitions[PhaseEnd] = map[string]func() bool{}
	return m
}

// Enter switches to phase id.
func (m *GameMachine) Enter(id string) error {
	p, ok := m.phases[id]
	if !ok {
		return fmt.Errorf("unknown phase %q: %w", id, ErrTransitionNotAllowed)
	}
	if err := m.ChangeState(p); err != nil {
		return fmt.Errorf("%s -> %s: %w", m.Phase(), id, err)
	}
	return nil
}

// Phase returns the id of the current phase.
func (m *GameMachine) Phase() string {
	return m.GetCurrentState().GetID()
}

// Rounds counts the spell selection phases entered so far.
func (m *GameMachine) Rounds() int {
	return m.phases[PhaseSpellSelection].Entered()
}
