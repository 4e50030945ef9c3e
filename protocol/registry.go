package protocol

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
)

var (
	ErrUnknownType      = errors.New("protocol: unknown message type")
	ErrNotClientMessage = errors.New("protocol: message not accepted from clients")
)

var registry = map[Type]reflect.Type{}

// clientTypes are the messages a client may send.
var clientTypes = map[Type]bool{
	TypeJoin:        true,
	TypeReady:       true,
	TypeChosenSpell: true,
	TypeChosenTile:  true,
	TypeDismount:    true,
}

func register(msgs ...Message) {
	for _, m := range msgs {
		registry[m.Type()] = reflect.TypeOf(m)
	}
}

func init() {
	register(
		Join{}, Leave{}, Ready{}, Start{}, AddWizard{},
		Disbelieve{}, CreationSpell{}, CastFire{}, CastBlob{},
		SendSpell{}, NewSpell{}, ShadowWoodInfo{}, NoPossibleMoves{},
		BuffWizard{}, DeBuffWizard{},
		ChooseSpell{}, ChosenSpell{}, WaitingForOtherPlayers{}, CastSpell{},
		MovementRange{}, MovementPoints{}, UndeadCannotBeAttacked{},
		FailedAttack{}, SuccessfulAttack{},
		FailedRangedAttack{}, SuccessfulRangedAttack{},
		FailedDragonRangedAttack{}, SuccessfulDragonRangedAttack{},
		Subversion{}, RaiseDead{}, MagicBolt{}, Lightning{}, MagicalAttack{},
		ShelterDisappears{}, SpawnFire{}, SpawnBlob{}, RemoveSpawn{},
		NoLineOfSight{}, ChoosePiece{}, ChooseTarget{}, ChooseCombat{},
		EngagedInCombat{}, ChooseRangedCombat{}, ChosenTile{},
		SpellSucceeds{}, SpellFails{}, Turn{}, TurnEnd{},
		MoveWizard{}, MoveCreation{}, AskForDismount{}, Dismount{},
		Results{}, Shutdown{},
	)
}

// Types lists every registered message type, sorted.
func Types() []Type {
	out := make([]Type, 0, len(registry))
	for t := range registry {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// IsClientType reports whether clients may send t.
func IsClientType(t Type) bool {
	return clientTypes[t]
}

// decode builds the message registered for t, filling it with unmarshal.
func decode(t Type, data []byte, unmarshal func([]byte, any) error) (Message, error) {
	rt, ok := registry[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
	ptr := reflect.New(rt)
	if len(data) > 0 {
		if err := unmarshal(data, ptr.Interface()); err != nil {
			return nil, fmt.Errorf("protocol: decode %s: %w", t, err)
		}
	}
	return ptr.Elem().Interface().(Message), nil
}
