package protocol

import "time"

// Inbound is an event delivered to a room engine.
type Inbound interface {
	inbound()
}

// Connected is sent when a session takes a seat.
type Connected struct {
	ID uint32
}

// Disconnected is sent once per seat when its session goes away.
type Disconnected struct {
	ID uint32
}

// Received carries a decoded client message.
type Received struct {
	ID  uint32
	Msg Message
}

// Latency reports a measured round trip for a seat.
type Latency struct {
	ID  uint32
	RTT time.Duration
}

func (Connected) inbound()    {}
func (Disconnected) inbound() {}
func (Received) inbound()     {}
func (Latency) inbound()      {}

// Route selects who receives an outgoing message.
type Route uint8

const (
	// RouteAll delivers to every seat.
	RouteAll Route = iota
	// RouteID delivers to one seat.
	RouteID
	// RouteAllExcept delivers to every seat but one.
	RouteAllExcept
)

func (r Route) String() string {
	switch r {
	case RouteID:
		return "id"
	case RouteAllExcept:
		return "all_except"
	}
	return "all"
}

// Outgoing is a message plus its routing. The envelope id a recipient sees is
// From when set, otherwise its own seat id.
type Outgoing struct {
	Route Route
	// To is the target seat for RouteID and the excluded seat for
	// RouteAllExcept.
	To   uint32
	From *uint32
	Msg  Message
}

// ToAll sends msg to everyone, each stamped with their own id.
func ToAll(msg Message) Outgoing {
	return Outgoing{Route: RouteAll, Msg: msg}
}

// ToAllFrom sends msg to everyone, stamped with from.
func ToAllFrom(from uint32, msg Message) Outgoing {
	return Outgoing{Route: RouteAll, From: &from, Msg: msg}
}

// ToID sends msg to a single seat, stamped with from.
func ToID(to, from uint32, msg Message) Outgoing {
	return Outgoing{Route: RouteID, To: to, From: &from, Msg: msg}
}

// ToAllExcept sends msg to everyone but id, stamped with id.
func ToAllExcept(id uint32, msg Message) Outgoing {
	return Outgoing{Route: RouteAllExcept, To: id, From: &id, Msg: msg}
}

// Delivers reports whether seat receives o, and the envelope id it sees.
func (o Outgoing) Delivers(seat uint32) (uint32, bool) {
	switch o.Route {
	case RouteID:
		if seat != o.To {
			return 0, false
		}
	case RouteAllExcept:
		if seat == o.To {
			return 0, false
		}
	}
	if o.From != nil {
		return *o.From, true
	}
	return seat, true
}
