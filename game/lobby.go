package game

import (
	"context"

	"github.com/wfunc/chaos-server/protocol"
)

// lobbyLoop seats players until everyone is ready.
func (e *Engine) lobbyLoop(ctx context.Context) error {
	for {
		ev, err := e.next(ctx)
		if err != nil {
			return err
		}
		switch ev := ev.(type) {
		case protocol.Connected:
			// 新连接补发大厅现状
			for _, lw := range e.lobby.Players() {
				e.send(protocol.ToID(ev.ID, lw.ID, protocol.Join{Player: lw.Player}))
				if lw.Ready {
					e.send(protocol.ToID(ev.ID, lw.ID, protocol.Ready{Ready: true}))
				}
			}
		case protocol.Disconnected:
			if _, ok := e.lobby.Leave(ev.ID); ok {
				e.announce(ev.ID, protocol.Leave{ID: ev.ID})
				// 剩下的人可能都已准备好
				if e.lobby.IsReady() {
					return nil
				}
			}
		case protocol.Received:
			switch msg := ev.Msg.(type) {
			case protocol.Join:
				if err := msg.Player.Validate(); err != nil {
					e.log.Warnf("rejected profile from %d: %v", ev.ID, err)
					continue
				}
				if e.lobby.Join(ev.ID, msg.Player) {
					e.announce(ev.ID, msg)
				}
			case protocol.Ready:
				if e.lobby.SetReady(ev.ID, msg.Ready) {
					e.announce(ev.ID, msg)
					if e.lobby.IsReady() {
						return nil
					}
				}
			}
		}
	}
}
