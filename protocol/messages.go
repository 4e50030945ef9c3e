// Package protocol defines the messages exchanged between clients and a room
// engine, how outbound messages are routed and how they are encoded.
package protocol

import (
	"github.com/wfunc/chaos-server/arena"
	"github.com/wfunc/chaos-server/models"
	"github.com/wfunc/chaos-server/roster"
	"github.com/wfunc/chaos-server/spells"
)

// Type names a message on the wire.
type Type string

// Message is anything that can travel inside an envelope.
type Message interface {
	Type() Type
}

const (
	TypeJoin                         Type = "join"
	TypeLeave                        Type = "leave"
	TypeReady                        Type = "ready"
	TypeStart                        Type = "start"
	TypeAddWizard                    Type = "add_wizard"
	TypeDisbelieve                   Type = "disbelieve"
	TypeCreationSpell                Type = "creation_spell"
	TypeCastFire                     Type = "cast_fire"
	TypeCastBlob                     Type = "cast_blob"
	TypeSendSpell                    Type = "send_spell"
	TypeNewSpell                     Type = "new_spell"
	TypeShadowWoodInfo               Type = "shadow_wood_info"
	TypeNoPossibleMoves              Type = "no_possible_moves"
	TypeBuffWizard                   Type = "buff_wizard"
	TypeDeBuffWizard                 Type = "debuff_wizard"
	TypeChooseSpell                  Type = "choose_spell"
	TypeChosenSpell                  Type = "chosen_spell"
	TypeWaitingForOtherPlayers       Type = "waiting_for_other_players"
	TypeCastSpell                    Type = "cast_spell"
	TypeMovementRange                Type = "movement_range"
	TypeMovementPoints               Type = "movement_points"
	TypeUndeadCannotBeAttacked       Type = "undead_cannot_be_attacked"
	TypeFailedAttack                 Type = "failed_attack"
	TypeSuccessfulAttack             Type = "successful_attack"
	TypeFailedRangedAttack           Type = "failed_ranged_attack"
	TypeSuccessfulRangedAttack       Type = "successful_ranged_attack"
	TypeFailedDragonRangedAttack     Type = "failed_dragon_ranged_attack"
	TypeSuccessfulDragonRangedAttack Type = "successful_dragon_ranged_attack"
	TypeSubversion                   Type = "subversion"
	TypeRaiseDead                    Type = "raise_dead"
	TypeMagicBolt                    Type = "magic_bolt"
	TypeLightning                    Type = "lightning"
	TypeShelterDisappears            Type = "shelter_disappears"
	TypeMagicalAttack                Type = "magical_attack"
	TypeSpawnFire                    Type = "spawn_fire"
	TypeSpawnBlob                    Type = "spawn_blob"
	TypeRemoveSpawn                  Type = "remove_spawn"
	TypeNoLineOfSight                Type = "no_line_of_sight"
	TypeChoosePiece                  Type = "choose_piece"
	TypeChooseTarget                 Type = "choose_target"
	TypeChooseCombat                 Type = "choose_combat"
	TypeEngagedInCombat              Type = "engaged_in_combat"
	TypeChooseRangedCombat           Type = "choose_ranged_combat"
	TypeChosenTile                   Type = "chosen_tile"
	TypeSpellSucceeds                Type = "spell_succeeds"
	TypeSpellFails                   Type = "spell_fails"
	TypeTurn                         Type = "turn"
	TypeTurnEnd                      Type = "turn_end"
	TypeMoveWizard                   Type = "move_wizard"
	TypeMoveCreation                 Type = "move_creation"
	TypeAskForDismount               Type = "ask_for_dismount"
	TypeDismount                     Type = "dismount"
	TypeResults                      Type = "results"
	TypeShutdown                     Type = "shutdown"
)

// Lobby

type Join struct {
	Player models.Player `json:"player" msgpack:"player"`
}

type Leave struct {
	ID uint32 `json:"id" msgpack:"id"`
}

type Ready struct {
	Ready bool `json:"ready" msgpack:"ready"`
}

type Start struct {
	Wizard roster.Wizard `json:"wizard" msgpack:"wizard"`
}

type AddWizard struct {
	Wizard arena.Wizard `json:"wizard" msgpack:"wizard"`
	At     arena.Pos    `json:"at" msgpack:"at"`
}

// Spell selection

type ChooseSpell struct{}

// SpellChoice is the hand index picked and whether it is cast as an illusion.
type SpellChoice struct {
	Index    int  `json:"index" msgpack:"index"`
	Illusion bool `json:"illusion" msgpack:"illusion"`
}

// ChosenSpell answers ChooseSpell. A nil choice casts nothing this round.
type ChosenSpell struct {
	Choice *SpellChoice `json:"choice,omitempty" msgpack:"choice,omitempty"`
}

type WaitingForOtherPlayers struct {
	Count int `json:"count" msgpack:"count"`
}

type SendSpell struct {
	Spell spells.Spell `json:"spell" msgpack:"spell"`
}

type NewSpell struct {
	At arena.Pos `json:"at" msgpack:"at"`
}

type BuffWizard struct {
	Stats models.WizardStats `json:"stats" msgpack:"stats"`
}

type DeBuffWizard struct {
	Stats models.WizardStats `json:"stats" msgpack:"stats"`
}

// Spell resolution

type CastSpell struct {
	SpellName string `json:"spell_name" msgpack:"spell_name"`
	Range     int    `json:"range" msgpack:"range"`
}

type Disbelieve struct {
	At      arena.Pos `json:"at" msgpack:"at"`
	Success bool      `json:"success" msgpack:"success"`
}

// CreationSpell reports a summoning. A nil creation means the spell failed.
type CreationSpell struct {
	At       arena.Pos       `json:"at" msgpack:"at"`
	Creation *arena.Creation `json:"creation,omitempty" msgpack:"creation,omitempty"`
}

type CastFire struct {
	At   arena.Pos       `json:"at" msgpack:"at"`
	Fire *arena.Creation `json:"fire,omitempty" msgpack:"fire,omitempty"`
}

type CastBlob struct {
	At   arena.Pos       `json:"at" msgpack:"at"`
	Blob *arena.Creation `json:"blob,omitempty" msgpack:"blob,omitempty"`
}

type ShadowWoodInfo struct{}

type NoPossibleMoves struct{}

type NoLineOfSight struct{}

type Subversion struct {
	At      arena.Pos `json:"at" msgpack:"at"`
	Success bool      `json:"success" msgpack:"success"`
}

type RaiseDead struct {
	At      arena.Pos `json:"at" msgpack:"at"`
	Success bool      `json:"success" msgpack:"success"`
}

type MagicBolt struct {
	At      arena.Pos `json:"at" msgpack:"at"`
	Success bool      `json:"success" msgpack:"success"`
}

type Lightning struct {
	At      arena.Pos `json:"at" msgpack:"at"`
	Success bool      `json:"success" msgpack:"success"`
}

type MagicalAttack struct {
	At      arena.Pos `json:"at" msgpack:"at"`
	Success bool      `json:"success" msgpack:"success"`
}

// SpellSucceeds carries the world alignment after the spell.
type SpellSucceeds struct {
	Alignment int8 `json:"alignment" msgpack:"alignment"`
}

type SpellFails struct{}

// Environment

type ShelterDisappears struct {
	At arena.Pos `json:"at" msgpack:"at"`
}

// SpawnFire reports fire spreading. A nil fire means the spread was resisted.
type SpawnFire struct {
	At   arena.Pos       `json:"at" msgpack:"at"`
	Fire *arena.Creation `json:"fire,omitempty" msgpack:"fire,omitempty"`
}

type SpawnBlob struct {
	At   arena.Pos       `json:"at" msgpack:"at"`
	Blob *arena.Creation `json:"blob,omitempty" msgpack:"blob,omitempty"`
}

type RemoveSpawn struct {
	At arena.Pos `json:"at" msgpack:"at"`
}

// Movement and combat

type MovementRange struct {
	Range  int         `json:"range" msgpack:"range"`
	Flying bool        `json:"flying" msgpack:"flying"`
	Tiles  []arena.Pos `json:"tiles" msgpack:"tiles"`
}

type MovementPoints struct {
	Points int         `json:"points" msgpack:"points"`
	Tiles  []arena.Pos `json:"tiles" msgpack:"tiles"`
}

type UndeadCannotBeAttacked struct{}

type FailedAttack struct {
	At arena.Pos `json:"at" msgpack:"at"`
}

type SuccessfulAttack struct {
	At     arena.Pos `json:"at" msgpack:"at"`
	Corpse bool      `json:"corpse" msgpack:"corpse"`
}

type FailedRangedAttack struct {
	From  arena.Pos    `json:"from" msgpack:"from"`
	To    arena.Pos    `json:"to" msgpack:"to"`
	Color models.Color `json:"color" msgpack:"color"`
}

type SuccessfulRangedAttack struct {
	From   arena.Pos    `json:"from" msgpack:"from"`
	To     arena.Pos    `json:"to" msgpack:"to"`
	Corpse bool         `json:"corpse" msgpack:"corpse"`
	Color  models.Color `json:"color" msgpack:"color"`
}

type FailedDragonRangedAttack struct {
	From arena.Pos `json:"from" msgpack:"from"`
	To   arena.Pos `json:"to" msgpack:"to"`
}

type SuccessfulDragonRangedAttack struct {
	From arena.Pos `json:"from" msgpack:"from"`
	To   arena.Pos `json:"to" msgpack:"to"`
}

type ChoosePiece struct {
	Tiles []arena.Pos `json:"tiles" msgpack:"tiles"`
}

type ChooseTarget struct {
	Tiles []arena.Pos `json:"tiles" msgpack:"tiles"`
}

type ChooseCombat struct {
	Tiles []arena.Pos `json:"tiles" msgpack:"tiles"`
}

type EngagedInCombat struct {
	Tiles []arena.Pos `json:"tiles" msgpack:"tiles"`
}

type ChooseRangedCombat struct {
	Range int         `json:"range" msgpack:"range"`
	Tiles []arena.Pos `json:"tiles" msgpack:"tiles"`
}

// ChosenTile answers a tile prompt with an index into the offered list. A nil
// index declines.
type ChosenTile struct {
	Index *int `json:"index,omitempty" msgpack:"index,omitempty"`
}

type MoveWizard struct {
	To arena.Pos `json:"to" msgpack:"to"`
}

type MoveCreation struct {
	From arena.Pos `json:"from" msgpack:"from"`
	To   arena.Pos `json:"to" msgpack:"to"`
}

type AskForDismount struct{}

// Dismount answers AskForDismount. Nil backs out of the selection.
type Dismount struct {
	Choice *bool `json:"choice,omitempty" msgpack:"choice,omitempty"`
}

type Turn struct{}

type TurnEnd struct{}

type Results struct {
	Winners []models.Player `json:"winners" msgpack:"winners"`
}

type Shutdown struct{}

func (Join) Type() Type                         { return TypeJoin }
func (Leave) Type() Type                        { return TypeLeave }
func (Ready) Type() Type                        { return TypeReady }
func (Start) Type() Type                        { return TypeStart }
func (AddWizard) Type() Type                    { return TypeAddWizard }
func (Disbelieve) Type() Type                   { return TypeDisbelieve }
func (CreationSpell) Type() Type                { return TypeCreationSpell }
func (CastFire) Type() Type                     { return TypeCastFire }
func (CastBlob) Type() Type                     { return TypeCastBlob }
func (SendSpell) Type() Type                    { return TypeSendSpell }
func (NewSpell) Type() Type                     { return TypeNewSpell }
func (ShadowWoodInfo) Type() Type               { return TypeShadowWoodInfo }
func (NoPossibleMoves) Type() Type              { return TypeNoPossibleMoves }
func (BuffWizard) Type() Type                   { return TypeBuffWizard }
func (DeBuffWizard) Type() Type                 { return TypeDeBuffWizard }
func (ChooseSpell) Type() Type                  { return TypeChooseSpell }
func (ChosenSpell) Type() Type                  { return TypeChosenSpell }
func (WaitingForOtherPlayers) Type() Type       { return TypeWaitingForOtherPlayers }
func (CastSpell) Type() Type                    { return TypeCastSpell }
func (MovementRange) Type() Type                { return TypeMovementRange }
func (MovementPoints) Type() Type               { return TypeMovementPoints }
func (UndeadCannotBeAttacked) Type() Type       { return TypeUndeadCannotBeAttacked }
func (FailedAttack) Type() Type                 { return TypeFailedAttack }
func (SuccessfulAttack) Type() Type             { return TypeSuccessfulAttack }
func (FailedRangedAttack) Type() Type           { return TypeFailedRangedAttack }
func (SuccessfulRangedAttack) Type() Type       { return TypeSuccessfulRangedAttack }
func (FailedDragonRangedAttack) Type() Type     { return TypeFailedDragonRangedAttack }
func (SuccessfulDragonRangedAttack) Type() Type { return TypeSuccessfulDragonRangedAttack }
func (Subversion) Type() Type                   { return TypeSubversion }
func (RaiseDead) Type() Type                    { return TypeRaiseDead }
func (MagicBolt) Type() Type                    { return TypeMagicBolt }
func (Lightning) Type() Type                    { return TypeLightning }
func (ShelterDisappears) Type() Type            { return TypeShelterDisappears }
func (MagicalAttack) Type() Type                { return TypeMagicalAttack }
func (SpawnFire) Type() Type                    { return TypeSpawnFire }
func (SpawnBlob) Type() Type                    { return TypeSpawnBlob }
func (RemoveSpawn) Type() Type                  { return TypeRemoveSpawn }
func (NoLineOfSight) Type() Type                { return TypeNoLineOfSight }
func (ChoosePiece) Type() Type                  { return TypeChoosePiece }
func (ChooseTarget) Type() Type                 { return TypeChooseTarget }
func (ChooseCombat) Type() Type                 { return TypeChooseCombat }
func (EngagedInCombat) Type() Type              { return TypeEngagedInCombat }
func (ChooseRangedCombat) Type() Type           { return TypeChooseRangedCombat }
func (ChosenTile) Type() Type                   { return TypeChosenTile }
func (SpellSucceeds) Type() Type                { return TypeSpellSucceeds }
func (SpellFails) Type() Type                   { return TypeSpellFails }
func (Turn) Type() Type                         { return TypeTurn }
func (TurnEnd) Type() Type                      { return TypeTurnEnd }
func (MoveWizard) Type() Type                   { return TypeMoveWizard }
func (MoveCreation) Type() Type                 { return TypeMoveCreation }
func (AskForDismount) Type() Type               { return TypeAskForDismount }
func (Dismount) Type() Type                     { return TypeDismount }
func (Results) Type() Type                      { return TypeResults }
func (Shutdown) Type() Type                     { return TypeShutdown }

// IntPtr and BoolPtr build optional fields.
func IntPtr(v int) *int { return &v }

func BoolPtr(v bool) *bool { return &v }
