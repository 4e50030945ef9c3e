package game

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/wfunc/chaos-server/arena"
	"github.com/wfunc/chaos-server/models"
	"github.com/wfunc/chaos-server/protocol"
	"github.com/wfunc/chaos-server/roster"
	"github.com/wfunc/chaos-server/rules"
	"github.com/wfunc/chaos-server/spells"
	"github.com/wfunc/chaos-server/state"
)

// recorder is an Outbox that keeps everything it is given.
type recorder struct {
	mu  sync.Mutex
	out []protocol.Outgoing
}

func (r *recorder) Deliver(msg protocol.Outgoing) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.out = append(r.out, msg)
}

func (r *recorder) all() []protocol.Outgoing {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.out)
}

func sent[T protocol.Message](r *recorder) []T {
	var out []T
	for _, o := range r.all() {
		if m, ok := o.Msg.(T); ok {
			out = append(out, m)
		}
	}
	return out
}

// MockObserver records milestones.
type MockObserver struct {
	mu       sync.Mutex
	phases   []string
	cast     []string
	finished []Result
}

func (m *MockObserver) PhaseEntered(phase string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.phases = append(m.phases, phase)
}

func (m *MockObserver) SpellCast(_ uint32, spell spells.Spell) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cast = append(m.cast, spell.Name)
}

func (m *MockObserver) LatencyMeasured(uint32, time.Duration) {}

func (m *MockObserver) GameFinished(result Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finished = append(m.finished, result)
}

func newTestEngine(t *testing.T, rolls ...int) (*Engine, chan protocol.Inbound, *recorder, *MockObserver) {
	t.Helper()
	inbox := make(chan protocol.Inbound, 64)
	rec := &recorder{}
	obs := &MockObserver{}
	var roller rules.Roller = rules.NewRoller(7)
	if len(rolls) > 0 {
		roller = rules.NewSequence(rolls...)
	}
	e := New(inbox, rec, Config{
		Roller:   roller,
		Linger:   time.Second,
		Log:      zaptest.NewLogger(t).Sugar(),
		Observer: obs,
	})
	return e, inbox, rec, obs
}

func testPlayer(i int) models.Player {
	return models.Player{
		Name:      fmt.Sprintf("WIZ%d", i),
		Character: models.Character(i % 8),
		Color:     models.WizardColor(i % 8),
	}
}

// seat skips the lobby and puts n wizards on their starting tiles. The roster
// rolls with its own roller so scripted dice stay untouched.
func seat(t *testing.T, e *Engine, n int) []arena.Pos {
	t.Helper()
	for i := 1; i <= n; i++ {
		require.True(t, e.lobby.Join(uint32(i), testPlayer(i)))
	}
	e.roster = roster.New(e.lobby, rules.NewRoller(1))
	positions, err := e.roster.StartingPositions()
	require.NoError(t, err)
	for i, w := range e.roster.All() {
		e.arena.PlaceWizard(positions[i], arena.NewWizard(w.ID, w.Stats))
	}
	return positions
}

func creature(t *testing.T, owner uint32, name string) *arena.Creation {
	t.Helper()
	s, ok := spells.Lookup(name)
	require.True(t, ok, name)
	require.NotNil(t, s.Creation, name)
	return arena.NewCreation(owner, *s.Creation)
}

func chooseTile(id uint32, i int) protocol.Inbound {
	return protocol.Received{ID: id, Msg: protocol.ChosenTile{Index: protocol.IntPtr(i)}}
}

func indexOf(t *testing.T, tiles []arena.Pos, p arena.Pos) int {
	t.Helper()
	i := slices.Index(tiles, p)
	require.GreaterOrEqual(t, i, 0, "%v not offered in %v", p, tiles)
	return i
}

func TestNumberOfRounds(t *testing.T) {
	assert.Equal(t, 19, NumberOfRounds(2))
	assert.Equal(t, 31, NumberOfRounds(8))
}

func TestRunCancelledBeforeStart(t *testing.T) {
	e, _, rec, obs := newTestEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Run(ctx)
	require.ErrorIs(t, err, ErrShutdown)

	out := rec.all()
	require.NotEmpty(t, out)
	assert.Equal(t, protocol.Shutdown{}, out[len(out)-1].Msg)
	assert.Empty(t, obs.finished)
}

func TestRunClosedInbox(t *testing.T) {
	e, inbox, rec, _ := newTestEngine(t)
	close(inbox)

	_, err := e.Run(context.Background())
	require.ErrorIs(t, err, ErrShutdown)
	assert.Len(t, sent[protocol.Shutdown](rec), 1)
}

func TestRunToWinner(t *testing.T) {
	e, inbox, rec, obs := newTestEngine(t)
	p1, p2 := testPlayer(1), testPlayer(2)
	for _, ev := range []protocol.Inbound{
		protocol.Connected{ID: 1},
		protocol.Received{ID: 1, Msg: protocol.Join{Player: p1}},
		protocol.Received{ID: 1, Msg: protocol.Ready{Ready: true}},
		protocol.Connected{ID: 2},
		protocol.Received{ID: 2, Msg: protocol.Join{Player: p2}},
		protocol.Received{ID: 2, Msg: protocol.Ready{Ready: true}},
		// round one: 2 leaves, 1 casts nothing
		protocol.Disconnected{ID: 2},
		protocol.Received{ID: 1, Msg: protocol.ChosenSpell{}},
		protocol.Disconnected{ID: 1},
	} {
		inbox <- ev
	}

	result, err := e.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Player{p1}, result.Winners)
	assert.Equal(t, []models.Player{p1, p2}, result.Players)
	assert.Equal(t, 1, result.Rounds)
	assert.Equal(t, state.PhaseEnd, e.Phase())

	// the newcomer is told who is already seated
	out := rec.all()
	assert.Contains(t, out, protocol.ToID(2, 1, protocol.Join{Player: p1}))
	assert.Contains(t, out, protocol.ToID(2, 1, protocol.Ready{Ready: true}))

	assert.Len(t, sent[protocol.Start](rec), 2)
	assert.Len(t, sent[protocol.AddWizard](rec), 2)
	results := sent[protocol.Results](rec)
	require.Len(t, results, 1)
	assert.Equal(t, []models.Player{p1}, results[0].Winners)
	assert.Equal(t, protocol.Shutdown{}, out[len(out)-1].Msg)

	require.Len(t, obs.finished, 1)
	assert.Contains(t, obs.phases, state.PhaseSpellSelection)
	assert.Equal(t, state.PhaseEnd, obs.phases[len(obs.phases)-1])
}

func TestLobbyRejectsInvalidProfile(t *testing.T) {
	e, inbox, rec, _ := newTestEngine(t)
	inbox <- protocol.Received{ID: 1, Msg: protocol.Join{Player: models.Player{Name: ""}}}
	inbox <- protocol.Received{ID: 1, Msg: protocol.Ready{Ready: true}}
	close(inbox)

	require.ErrorIs(t, e.lobbyLoop(context.Background()), ErrShutdown)
	assert.Equal(t, 0, e.lobby.Len())
	assert.Empty(t, sent[protocol.Join](rec))
	assert.Empty(t, sent[protocol.Ready](rec))
}

func TestLobbyLeave(t *testing.T) {
	e, inbox, rec, _ := newTestEngine(t)
	inbox <- protocol.Received{ID: 1, Msg: protocol.Join{Player: testPlayer(1)}}
	inbox <- protocol.Disconnected{ID: 1}
	inbox <- protocol.Disconnected{ID: 9}
	close(inbox)

	require.ErrorIs(t, e.lobbyLoop(context.Background()), ErrShutdown)
	assert.Equal(t, []protocol.Leave{{ID: 1}}, sent[protocol.Leave](rec))
}

func TestSelectSpells(t *testing.T) {
	e, inbox, rec, _ := newTestEngine(t)
	seat(t, e, 2)
	hand := len(e.roster.Get(1).Spells)

	inbox <- protocol.Received{ID: 2, Msg: protocol.ChosenSpell{Choice: &protocol.SpellChoice{Index: 99}}}
	inbox <- protocol.Disconnected{ID: 2}
	inbox <- protocol.Received{ID: 2, Msg: protocol.ChosenSpell{Choice: &protocol.SpellChoice{Index: 0}}}
	inbox <- protocol.Received{ID: 1, Msg: protocol.ChosenSpell{Choice: &protocol.SpellChoice{Index: 0, Illusion: true}}}

	orders, err := e.selectSpells(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, uint32(1), orders[0].id)
	assert.Equal(t, spells.Disbelieve, orders[0].spell.Kind)
	assert.False(t, orders[0].illusion)
	// disbelieve stays in the hand
	assert.Len(t, e.roster.Get(1).Spells, hand)
	assert.True(t, e.roster.HasDisconnected(2))

	var counts []int
	for _, w := range sent[protocol.WaitingForOtherPlayers](rec) {
		counts = append(counts, w.Count)
	}
	assert.Equal(t, []int{2, 1, 0}, counts)
	assert.Len(t, sent[protocol.ChooseSpell](rec), 2)
}

func TestTakeSpellUsesUpTheSpell(t *testing.T) {
	e, _, rec, _ := newTestEngine(t)
	positions := seat(t, e, 2)
	cobra, ok := spells.Lookup("KING COBRA")
	require.True(t, ok)
	e.roster.Get(1).Spells = []spells.Spell{spells.NewDisbelieve(), cobra}
	before := e.arena.WizardAt(positions[0]).Stats.NumberOfSpells

	o := e.takeSpell(1, protocol.SpellChoice{Index: 1, Illusion: true})
	assert.Equal(t, "KING COBRA", o.spell.Name)
	assert.True(t, o.illusion)
	assert.Len(t, e.roster.Get(1).Spells, 1)
	assert.Equal(t, before-1, e.arena.WizardAt(positions[0]).Stats.NumberOfSpells)
	assert.Len(t, sent[protocol.DeBuffWizard](rec), 1)
}

func TestAwaitTile(t *testing.T) {
	e, inbox, _, _ := newTestEngine(t)
	seat(t, e, 2)
	tiles := []arena.Pos{{X: 2, Y: 4}, {X: 2, Y: 5}}

	inbox <- protocol.Received{ID: 1, Msg: protocol.Ready{Ready: true}}
	inbox <- chooseTile(2, 0)
	inbox <- chooseTile(1, 5)
	inbox <- protocol.Latency{ID: 1, RTT: time.Millisecond}
	inbox <- chooseTile(1, 1)

	at, ok, err := e.awaitTile(context.Background(), 1, tiles)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, tiles[1], at)

	inbox <- protocol.Received{ID: 1, Msg: protocol.ChosenTile{}}
	_, ok, err = e.awaitTile(context.Background(), 1, tiles)
	require.NoError(t, err)
	assert.False(t, ok, "nil index declines")

	inbox <- protocol.Disconnected{ID: 1}
	_, ok, err = e.awaitTile(context.Background(), 1, tiles)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, e.roster.HasDisconnected(1))

	// no wait at all once gone
	_, ok, err = e.awaitTile(context.Background(), 1, tiles)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAwaitTileCancelled(t *testing.T) {
	e, inbox, _, _ := newTestEngine(t)
	seat(t, e, 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	inbox <- chooseTile(1, 0)

	_, _, err := e.awaitTile(ctx, 1, []arena.Pos{{X: 2, Y: 4}})
	require.ErrorIs(t, err, ErrShutdown)
}

func TestDisbelieveIllusion(t *testing.T) {
	e, inbox, rec, obs := newTestEngine(t)
	positions := seat(t, e, 2)
	target := arena.Pos{X: 5, Y: 4}
	fake := creature(t, 2, "KING COBRA")
	fake.Illusion = true
	e.arena.PlaceCreation(target, fake)

	inbox <- chooseTile(1, indexOf(t, e.arena.AttackableOpposition(positions[0], spells.AnywhereRange, 1), target))
	require.NoError(t, e.doSpell(context.Background(), castOrder{id: 1, spell: spells.NewDisbelieve()}))

	assert.Nil(t, e.arena.Get(target).Creation)
	assert.Nil(t, e.arena.Get(target).Corpse)
	assert.Equal(t, []protocol.Disbelieve{{At: target, Success: true}}, sent[protocol.Disbelieve](rec))
	assert.Len(t, sent[protocol.SpellSucceeds](rec), 1)
	assert.Equal(t, []string{"DISBELIEVE"}, obs.cast)
}

func TestDisbelieveRealCreature(t *testing.T) {
	e, inbox, rec, _ := newTestEngine(t)
	positions := seat(t, e, 2)
	target := arena.Pos{X: 5, Y: 4}
	e.arena.PlaceCreation(target, creature(t, 2, "KING COBRA"))

	inbox <- chooseTile(1, indexOf(t, e.arena.AttackableOpposition(positions[0], spells.AnywhereRange, 1), target))
	require.NoError(t, e.doSpell(context.Background(), castOrder{id: 1, spell: spells.NewDisbelieve()}))

	assert.NotNil(t, e.arena.Get(target).Creation)
	assert.Equal(t, []protocol.Disbelieve{{At: target, Success: false}}, sent[protocol.Disbelieve](rec))
	assert.Len(t, sent[protocol.SpellFails](rec), 1)
}

func TestDeadCasterFizzles(t *testing.T) {
	e, _, rec, obs := newTestEngine(t)
	seat(t, e, 2)
	e.killWizard(1)

	require.NoError(t, e.doSpell(context.Background(), castOrder{id: 1, spell: spells.NewDisbelieve()}))
	assert.Empty(t, sent[protocol.CastSpell](rec))
	assert.Empty(t, obs.cast)
}

func TestShadowWoodStaysRooted(t *testing.T) {
	// attacker rolls 9, defender rolls 0
	e, _, rec, _ := newTestEngine(t, 9, 0)
	seat(t, e, 2)
	src, dst := arena.Pos{X: 5, Y: 4}, arena.Pos{X: 6, Y: 4}
	e.arena.PlaceCreation(src, creature(t, 1, "SHADOW WOOD"))
	e.arena.PlaceCreation(dst, creature(t, 2, "GOBLIN"))

	require.NoError(t, e.creationAttack(context.Background(), 1, src, dst))

	assert.True(t, e.arena.CreationAt(src).Stats.ShadowWood)
	assert.Nil(t, e.arena.Get(dst).Creation)
	assert.Equal(t, "GOBLIN", e.arena.CorpseAt(dst).Stats.Base.Name)
	assert.Equal(t, []protocol.SuccessfulAttack{{At: dst, Corpse: true}}, sent[protocol.SuccessfulAttack](rec))
	assert.Empty(t, sent[protocol.MoveCreation](rec))
}

func TestCreationAttackAdvances(t *testing.T) {
	e, _, rec, _ := newTestEngine(t, 9, 0)
	seat(t, e, 2)
	src, dst := arena.Pos{X: 5, Y: 4}, arena.Pos{X: 6, Y: 4}
	e.arena.PlaceCreation(src, creature(t, 1, "GOBLIN"))
	e.arena.PlaceCreation(dst, creature(t, 2, "GOBLIN"))

	require.NoError(t, e.creationAttack(context.Background(), 1, src, dst))

	assert.Nil(t, e.arena.Get(src).Creation)
	assert.Equal(t, uint32(1), e.arena.CreationAt(dst).ID)
	assert.Equal(t, []protocol.MoveCreation{{From: src, To: dst}}, sent[protocol.MoveCreation](rec))
}

func TestCreationAttackFails(t *testing.T) {
	// attacker rolls 0, defender rolls 9
	e, _, rec, _ := newTestEngine(t, 0, 9)
	seat(t, e, 2)
	src, dst := arena.Pos{X: 5, Y: 4}, arena.Pos{X: 6, Y: 4}
	e.arena.PlaceCreation(src, creature(t, 1, "GOBLIN"))
	e.arena.PlaceCreation(dst, creature(t, 2, "GOBLIN"))

	require.NoError(t, e.creationAttack(context.Background(), 1, src, dst))

	assert.Equal(t, uint32(1), e.arena.CreationAt(src).ID)
	assert.Equal(t, uint32(2), e.arena.CreationAt(dst).ID)
	assert.Equal(t, []protocol.FailedAttack{{At: dst}}, sent[protocol.FailedAttack](rec))
}

func TestWizardWalks(t *testing.T) {
	e, inbox, rec, _ := newTestEngine(t)
	positions := seat(t, e, 2)
	from := positions[0]
	dst := arena.Pos{X: from.X + 1, Y: from.Y}
	e.arena.ResetMoves(1)

	inbox <- chooseTile(1, indexOf(t, e.arena.TilesWithMovesLeft(1), from))
	inbox <- chooseTile(1, indexOf(t, e.arena.WizardMovementTiles(from, 1), dst))

	require.NoError(t, e.movementLoop(context.Background(), 1))
	assert.Equal(t, dst, e.arena.WizardPos(1))
	assert.Equal(t, []protocol.MoveWizard{{To: dst}}, sent[protocol.MoveWizard](rec))
}

func TestSpawnDiesOut(t *testing.T) {
	e, _, rec, _ := newTestEngine(t, 0)
	seat(t, e, 2)
	at := arena.Pos{X: 7, Y: 4}
	e.arena.SpawnFire(at, creature(t, 1, "MAGIC FIRE"))

	e.spreadSpawns()
	assert.Nil(t, e.arena.Get(at).Spawn)
	assert.Equal(t, []protocol.RemoveSpawn{{At: at}}, sent[protocol.RemoveSpawn](rec))
}

func TestFireSpreadsEast(t *testing.T) {
	// 4 picks the eastern neighbour
	e, _, rec, _ := newTestEngine(t, 4)
	seat(t, e, 2)
	at := arena.Pos{X: 7, Y: 4}
	e.arena.SpawnFire(at, creature(t, 1, "MAGIC FIRE"))

	e.spreadSpawns()
	east := arena.Pos{X: 8, Y: 4}
	require.NotNil(t, e.arena.Get(east).Spawn)
	assert.False(t, e.arena.Get(east).Spawn.IsBlob())
	assert.Equal(t, uint32(1), e.arena.Get(east).Spawn.ID())
	assert.NotNil(t, e.arena.Get(at).Spawn)
	require.Len(t, sent[protocol.SpawnFire](rec), 1)
}

func TestShelterBurnsDown(t *testing.T) {
	e, _, rec, _ := newTestEngine(t, 9)
	seat(t, e, 2)
	at := arena.Pos{X: 7, Y: 4}
	e.arena.PlaceCreation(at, creature(t, 1, "MAGIC CASTLE"))

	e.shelterTurn()
	assert.Nil(t, e.arena.Get(at).Creation)
	assert.Equal(t, []protocol.ShelterDisappears{{At: at}}, sent[protocol.ShelterDisappears](rec))
}

func TestLobbyStartsWhenUnreadyPlayerLeaves(t *testing.T) {
	e, inbox, rec, _ := newTestEngine(t)
	for i := 1; i <= 3; i++ {
		inbox <- protocol.Received{ID: uint32(i), Msg: protocol.Join{Player: testPlayer(i)}}
	}
	inbox <- protocol.Received{ID: 1, Msg: protocol.Ready{Ready: true}}
	inbox <- protocol.Received{ID: 2, Msg: protocol.Ready{Ready: true}}
	inbox <- protocol.Disconnected{ID: 3}

	require.NoError(t, e.lobbyLoop(context.Background()))
	assert.Equal(t, 2, e.lobby.Len())
	assert.Equal(t, []protocol.Leave{{ID: 3}}, sent[protocol.Leave](rec))
}

func TestLateSeatIsTurnedAway(t *testing.T) {
	e, inbox, rec, _ := newTestEngine(t)
	seat(t, e, 2)
	tiles := []arena.Pos{{X: 2, Y: 4}}

	inbox <- protocol.Connected{ID: 3}
	inbox <- chooseTile(1, 0)

	at, ok, err := e.awaitTile(context.Background(), 1, tiles)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, tiles[0], at)
	assert.Equal(t, []protocol.Outgoing{protocol.ToID(3, 3, protocol.Shutdown{})}, rec.all())
}

func TestLateSeatIsTurnedAwayAfterResults(t *testing.T) {
	e, inbox, rec, _ := newTestEngine(t)
	seat(t, e, 2)

	inbox <- protocol.Connected{ID: 3}
	inbox <- protocol.Disconnected{ID: 1}
	inbox <- protocol.Disconnected{ID: 2}

	e.waitForPlayersToLeave(context.Background())
	assert.True(t, e.roster.AllGone())
	assert.Contains(t, rec.all(), protocol.ToID(3, 3, protocol.Shutdown{}))
}

func TestMagicWoodGrantsSpell(t *testing.T) {
	// grant roll 9, then catalog entry 9
	e, _, rec, _ := newTestEngine(t, 9)
	seat(t, e, 2)
	at := arena.Pos{X: 2, Y: 4}
	e.arena.PlaceCreation(at, creature(t, 1, "MAGIC WOOD"))
	e.arena.MoveWizard(1, at)
	holder := e.roster.Get(1)
	hand := len(holder.Spells)
	before := e.arena.WizardAt(at).Stats.NumberOfSpells
	granted := spells.Catalog()[9]

	e.magicWoodTurn()

	require.Len(t, holder.Spells, hand+1)
	assert.Equal(t, granted, holder.Spells[hand])
	assert.Equal(t, before+1, e.arena.WizardAt(at).Stats.NumberOfSpells)
	assert.Nil(t, e.arena.Get(at).Creation, "the tree is used up")
	assert.Equal(t, []protocol.NewSpell{{At: at}}, sent[protocol.NewSpell](rec))
	assert.Contains(t, rec.all(), protocol.ToID(1, 1, protocol.SendSpell{Spell: granted}))
	assert.Len(t, sent[protocol.DeBuffWizard](rec), 1)
}

func TestMagicWoodFullHand(t *testing.T) {
	e, _, rec, _ := newTestEngine(t, 9)
	seat(t, e, 2)
	at := arena.Pos{X: 2, Y: 4}
	e.arena.PlaceCreation(at, creature(t, 1, "MAGIC WOOD"))
	e.arena.MoveWizard(1, at)
	holder := e.roster.Get(1)
	for len(holder.Spells) < models.MaxSpells {
		holder.Spells = append(holder.Spells, spells.NewDisbelieve())
	}

	e.magicWoodTurn()

	assert.Len(t, holder.Spells, models.MaxSpells)
	assert.NotNil(t, e.arena.Get(at).Creation)
	assert.Empty(t, sent[protocol.NewSpell](rec))
}

func TestRunToRoundLimit(t *testing.T) {
	e, inbox, rec, obs := newTestEngine(t)
	p1, p2 := testPlayer(1), testPlayer(2)
	rounds := NumberOfRounds(2)

	go func() {
		for _, ev := range []protocol.Inbound{
			protocol.Received{ID: 1, Msg: protocol.Join{Player: p1}},
			protocol.Received{ID: 2, Msg: protocol.Join{Player: p2}},
			protocol.Received{ID: 1, Msg: protocol.Ready{Ready: true}},
			protocol.Received{ID: 2, Msg: protocol.Ready{Ready: true}},
		} {
			inbox <- ev
		}
		// everyone passes every round
		for i := 0; i < rounds; i++ {
			inbox <- protocol.Received{ID: 1, Msg: protocol.ChosenSpell{}}
			inbox <- protocol.Received{ID: 2, Msg: protocol.ChosenSpell{}}
			inbox <- protocol.Received{ID: 1, Msg: protocol.ChosenTile{}}
			inbox <- protocol.Received{ID: 2, Msg: protocol.ChosenTile{}}
		}
		inbox <- protocol.Disconnected{ID: 1}
		inbox <- protocol.Disconnected{ID: 2}
	}()

	result, err := e.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, rounds, result.Rounds)
	assert.Equal(t, []models.Player{p1, p2}, result.Winners)
	assert.Len(t, sent[protocol.TurnEnd](rec), rounds)
	assert.Len(t, sent[protocol.ChooseSpell](rec), rounds*2)
	results := sent[protocol.Results](rec)
	require.Len(t, results, 1)
	assert.Equal(t, []models.Player{p1, p2}, results[0].Winners)
	require.Len(t, obs.finished, 1)
	assert.Equal(t, rounds, obs.finished[0].Rounds)
}
