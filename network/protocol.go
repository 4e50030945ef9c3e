package network

// 包类型
const (
	PacketPing   uint16 = 1
	PacketPong   uint16 = 2
	PacketClient uint16 = 101
	PacketServer uint16 = 201
)

// HeaderSize is the 2 byte packet type plus the 4 byte payload length.
const HeaderSize = 6

// DefaultMaxPacketSize bounds a payload when the caller sets no limit.
const DefaultMaxPacketSize = 1 << 20
