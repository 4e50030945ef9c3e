// broadcast/broadcast.go
package broadcast

import (
	"go.uber.org/zap"

	"github.com/wfunc/chaos-server/logger"
	"github.com/wfunc/chaos-server/network"
	"github.com/wfunc/chaos-server/protocol"
	"github.com/wfunc/chaos-server/session"
)

// Seats resolves the sessions seated in one room, keyed by player id.
type Seats interface {
	Sessions() map[uint32]*session.Session
}

// DropFunc is told when a seat could not take a message. The session has been
// closed by then.
type DropFunc func(seat uint32, err error)

// Fanout delivers engine output to the sessions of a room. It implements
// game.Outbox and never blocks.
type Fanout struct {
	seats  Seats
	codec  protocol.Codec
	onDrop DropFunc
	log    *zap.SugaredLogger
}

func NewFanout(seats Seats, codec protocol.Codec, onDrop DropFunc) *Fanout {
	if onDrop == nil {
		onDrop = func(uint32, error) {}
	}
	return &Fanout{seats: seats, codec: codec, onDrop: onDrop, log: logger.Log}
}

// Deliver encodes msg once per distinct envelope id and queues it on every
// recipient.
func (f *Fanout) Deliver(o protocol.Outgoing) {
	encoded := make(map[uint32][]byte, 1)
	for seat, s := range f.seats.Sessions() {
		id, ok := o.Delivers(seat)
		if !ok {
			continue
		}
		payload, ok := encoded[id]
		if !ok {
			var err error
			payload, err = f.codec.EncodeServer(id, o.Msg)
			if err != nil {
				f.log.Errorf("encode %s: %v", o.Msg.Type(), err)
				return
			}
			encoded[id] = payload
		}
		if err := s.Enqueue(payload); err != nil {
			f.onDrop(seat, err)
		}
	}
}

// ToSessions sends one server message to every session outside any room
// routing, e.g. a Shutdown when the server stops. It returns how many took it.
func ToSessions(sessions []*session.Session, codec protocol.Codec, msg protocol.Message) int {
	payload, err := codec.EncodeServer(0, msg)
	if err != nil {
		logger.Log.Errorf("encode %s: %v", msg.Type(), err)
		return 0
	}
	n := 0
	for _, s := range sessions {
		if err := s.Send(network.PacketServer, payload); err == nil {
			n++
		}
	}
	return n
}
