package game

import (
	"context"

	"github.com/wfunc/chaos-server/arena"
	"github.com/wfunc/chaos-server/protocol"
)

// next returns the next event for the engine. Cancellation wins over a
// pending event. Latency reports are consumed here, and so are sessions that
// took a seat after the lobby closed.
func (e *Engine) next(ctx context.Context) (protocol.Inbound, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ErrShutdown
		default:
		}
		select {
		case <-ctx.Done():
			return nil, ErrShutdown
		case ev, ok := <-e.inbox:
			if !ok {
				return nil, ErrShutdown
			}
			switch ev := ev.(type) {
			case protocol.Latency:
				e.obs.LatencyMeasured(ev.ID, ev.RTT)
				continue
			case protocol.Connected:
				if e.roster != nil {
					e.turnAway(ev.ID)
					continue
				}
			}
			return ev, nil
		}
	}
}

// turnAway closes a seat that was taken too late to play.
func (e *Engine) turnAway(id uint32) {
	e.log.Infof("seat %d connected after the game started", id)
	e.tell(id, protocol.Shutdown{})
}

// await feeds messages from id to accept until it returns true. Disconnects
// of any player are recorded on the way; all other traffic is dropped. It
// reports false when id is or becomes disconnected.
func (e *Engine) await(ctx context.Context, id uint32, accept func(msg protocol.Message) bool) (bool, error) {
	if e.roster.HasDisconnected(id) {
		return false, nil
	}
	for {
		ev, err := e.next(ctx)
		if err != nil {
			return false, err
		}
		switch ev := ev.(type) {
		case protocol.Disconnected:
			e.roster.MarkDisconnected(ev.ID)
			if ev.ID == id {
				return false, nil
			}
		case protocol.Received:
			if ev.ID == id && accept(ev.Msg) {
				return true, nil
			}
		}
	}
}

// awaitTile waits for id to pick one of tiles. Out of range indices are
// ignored. ok is false when the player declined or left.
func (e *Engine) awaitTile(ctx context.Context, id uint32, tiles []arena.Pos) (at arena.Pos, ok bool, err error) {
	_, err = e.await(ctx, id, func(msg protocol.Message) bool {
		chosen, isTile := msg.(protocol.ChosenTile)
		if !isTile {
			return false
		}
		if chosen.Index == nil {
			return true
		}
		if i := *chosen.Index; i >= 0 && i < len(tiles) {
			at, ok = tiles[i], true
			return true
		}
		e.log.Debugf("wizard %d chose tile %d of %d", id, *chosen.Index, len(tiles))
		return false
	})
	return at, ok, err
}

// awaitDismount waits for the answer to AskForDismount. Nil backs out.
func (e *Engine) awaitDismount(ctx context.Context, id uint32) (*bool, error) {
	var choice *bool
	_, err := e.await(ctx, id, func(msg protocol.Message) bool {
		d, isDismount := msg.(protocol.Dismount)
		if isDismount {
			choice = d.Choice
		}
		return isDismount
	})
	return choice, err
}
