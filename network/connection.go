// network/connection.go
package network

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var (
	ErrPacketTooLarge = errors.New("network: packet too large")
	ErrBadPingPayload = errors.New("network: bad ping payload")
)

type Packet struct {
	Type uint16
	Data []byte
}

type Connection interface {
	Send(ptype uint16, data []byte) error
	Close() error
	RemoteAddr() net.Addr
	SetHeartbeat(interval time.Duration)
	ReadPacket() (*Packet, error)
}

// Encode frames data behind a 6 byte header.
func Encode(ptype uint16, data []byte, maxSize int) ([]byte, error) {
	if len(data) > maxSize {
		return nil, fmt.Errorf("%w: %d > %d", ErrPacketTooLarge, len(data), maxSize)
	}
	// 封包: 2字节类型 + 4字节长度 + 数据
	packet := make([]byte, HeaderSize+len(data))
	binary.BigEndian.PutUint16(packet[0:2], ptype)
	binary.BigEndian.PutUint32(packet[2:6], uint32(len(data)))
	copy(packet[HeaderSize:], data)
	return packet, nil
}

// Decode splits one frame. Trailing bytes past the declared length are
// ignored.
func Decode(frame []byte, maxSize int) (*Packet, error) {
	if len(frame) < HeaderSize {
		return nil, io.ErrShortBuffer
	}
	ptype := binary.BigEndian.Uint16(frame[0:2])
	length := binary.BigEndian.Uint32(frame[2:6])
	if uint64(length) > uint64(maxSize) {
		return nil, fmt.Errorf("%w: %d > %d", ErrPacketTooLarge, length, maxSize)
	}
	if uint64(len(frame)) < HeaderSize+uint64(length) {
		return nil, io.ErrShortBuffer
	}
	return &Packet{Type: ptype, Data: frame[HeaderSize : HeaderSize+int(length)]}, nil
}

// PingPayload is the send time in unix nanoseconds.
func PingPayload(t time.Time) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(t.UnixNano()))
	return b
}

// ParsePing recovers the time a ping carrying data was sent.
func ParsePing(data []byte) (time.Time, error) {
	if len(data) != 8 {
		return time.Time{}, ErrBadPingPayload
	}
	return time.Unix(0, int64(binary.BigEndian.Uint64(data))), nil
}

type WSConnection struct {
	conn      *websocket.Conn
	sendMutex sync.Mutex
	heartbeat time.Duration
	maxSize   int
}

func NewWSConnection(conn *websocket.Conn, maxSize int) *WSConnection {
	if maxSize <= 0 {
		maxSize = DefaultMaxPacketSize
	}
	conn.SetReadLimit(int64(maxSize + HeaderSize))
	return &WSConnection{conn: conn, maxSize: maxSize}
}

func (c *WSConnection) Send(ptype uint16, data []byte) error {
	packet, err := Encode(ptype, data, c.maxSize)
	if err != nil {
		return err
	}

	c.sendMutex.Lock()
	defer c.sendMutex.Unlock()
	if c.heartbeat > 0 {
		c.conn.SetWriteDeadline(time.Now().Add(c.heartbeat))
	}
	return c.conn.WriteMessage(websocket.BinaryMessage, packet)
}

// ReadPacket blocks for the next frame. Every frame pushes the read deadline
// out by two heartbeats.
func (c *WSConnection) ReadPacket() (*Packet, error) {
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	if c.heartbeat > 0 {
		c.conn.SetReadDeadline(time.Now().Add(c.heartbeat * 2))
	}
	return Decode(data, c.maxSize)
}

func (c *WSConnection) SetHeartbeat(interval time.Duration) {
	c.heartbeat = interval
	c.conn.SetReadDeadline(time.Now().Add(interval * 2))
}

func (c *WSConnection) Close() error {
	return c.conn.Close()
}

func (c *WSConnection) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}
