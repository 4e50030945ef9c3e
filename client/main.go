// Command client is a bot that joins a game and answers every prompt at
// random. Handy for load tests and for filling a lobby.
package main

import (
	"context"
	"flag"
	"math/rand"
	"net/url"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wfunc/chaos-server/arena"
	"github.com/wfunc/chaos-server/logger"
	"github.com/wfunc/chaos-server/models"
	"github.com/wfunc/chaos-server/network"
	"github.com/wfunc/chaos-server/protocol"
)

// declineChance is the odds of passing on a tile prompt.
const declineChance = 0.2

type bot struct {
	conn  *websocket.Conn
	codec protocol.Codec
	rng   *rand.Rand
	hand  int
	id    uint32
}

// send formats and sends a client message to the server.
func (b *bot) send(msg protocol.Message) error {
	payload, err := b.codec.EncodeClient(msg)
	if err != nil {
		return err
	}
	return b.write(network.PacketClient, payload)
}

func (b *bot) write(ptype uint16, data []byte) error {
	frame, err := network.Encode(ptype, data, network.DefaultMaxPacketSize)
	if err != nil {
		return err
	}
	return b.conn.WriteMessage(websocket.BinaryMessage, frame)
}

func (b *bot) chooseTile(tiles []arena.Pos) error {
	if len(tiles) == 0 || b.rng.Float64() < declineChance {
		return b.send(protocol.ChosenTile{})
	}
	return b.send(protocol.ChosenTile{Index: protocol.IntPtr(b.rng.Intn(len(tiles)))})
}

// handle answers one server message. It reports false once the game is over.
func (b *bot) handle(id uint32, msg protocol.Message) (bool, error) {
	switch m := msg.(type) {
	case protocol.Start:
		b.id = id
		b.hand = len(m.Wizard.Spells)
		logger.Log.Infof("playing as %d with %d spells", id, b.hand)
	case protocol.SendSpell:
		b.hand++
	case protocol.ChooseSpell:
		if b.hand == 0 {
			return true, b.send(protocol.ChosenSpell{})
		}
		choice := &protocol.SpellChoice{Index: b.rng.Intn(b.hand), Illusion: b.rng.Intn(4) == 0}
		// disbelieve (index 0) stays in the hand
		if choice.Index > 0 {
			b.hand--
		}
		return true, b.send(protocol.ChosenSpell{Choice: choice})
	case protocol.ChoosePiece:
		return true, b.chooseTile(m.Tiles)
	case protocol.ChooseTarget:
		return true, b.chooseTile(m.Tiles)
	case protocol.ChooseCombat:
		return true, b.chooseTile(m.Tiles)
	case protocol.EngagedInCombat:
		return true, b.chooseTile(m.Tiles)
	case protocol.ChooseRangedCombat:
		return true, b.chooseTile(m.Tiles)
	case protocol.MovementRange:
		return true, b.chooseTile(m.Tiles)
	case protocol.MovementPoints:
		return true, b.chooseTile(m.Tiles)
	case protocol.AskForDismount:
		return true, b.send(protocol.Dismount{Choice: protocol.BoolPtr(b.rng.Intn(2) == 0)})
	case protocol.Results:
		for _, w := range m.Winners {
			logger.Log.Infof("winner: %s", w.Name)
		}
	case protocol.Shutdown:
		return false, nil
	}
	return true, nil
}

func main() {
	addr := flag.String("addr", "localhost:8080", "server address")
	roomID := flag.String("room", "", "room to join, empty for any")
	name := flag.String("name", "BOT", "wizard name")
	codecName := flag.String("codec", "json", "wire codec: json or msgpack")
	seed := flag.Int64("seed", time.Now().UnixNano(), "bot dice seed")
	flag.Parse()

	logger.Init("info", true)
	defer logger.Sync()

	codec, err := protocol.NewCodec(*codecName)
	if err != nil {
		logger.Log.Fatalf("codec: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	u := url.URL{Scheme: "ws", Host: *addr, Path: "/ws"}
	if *roomID != "" {
		u.RawQuery = url.Values{"room": {*roomID}}.Encode()
	}
	logger.Log.Infof("Connecting to %s", u.String())
	c, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		logger.Log.Fatalf("Dial failed: %v", err)
	}
	defer c.Close()

	go func() {
		<-ctx.Done()
		c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		c.Close()
	}()

	rng := rand.New(rand.NewSource(*seed))
	b := &bot{conn: c, codec: codec, rng: rng}
	profile := models.Player{
		Name:      *name,
		Character: models.Character(rng.Intn(int(models.AsimonoZark) + 1)),
		Color:     models.WizardColor(rng.Intn(int(models.WizardBrightWhite) + 1)),
	}
	if err := b.send(protocol.Join{Player: profile}); err != nil {
		logger.Log.Fatalf("Write error: %v", err)
	}
	if err := b.send(protocol.Ready{Ready: true}); err != nil {
		logger.Log.Fatalf("Write error: %v", err)
	}

	for {
		_, data, err := c.ReadMessage()
		if err != nil {
			logger.Log.Infof("Read error: %v", err)
			return
		}
		packet, err := network.Decode(data, network.DefaultMaxPacketSize)
		if err != nil {
			logger.Log.Warnf("bad frame: %v", err)
			continue
		}
		switch packet.Type {
		case network.PacketPing:
			err = b.write(network.PacketPong, packet.Data)
		case network.PacketServer:
			var (
				id  uint32
				msg protocol.Message
			)
			id, msg, err = codec.DecodeServer(packet.Data)
			if err != nil {
				logger.Log.Warnf("bad message: %v", err)
				continue
			}
			logger.Log.Debugf("<- %d %s", id, msg.Type())
			var more bool
			more, err = b.handle(id, msg)
			if !more {
				logger.Log.Info("game over")
				return
			}
		}
		if err != nil {
			logger.Log.Errorf("Write error: %v", err)
			return
		}
	}
}
