package models

// FrameSize is the width and height of a sprite in pixels.
const FrameSize = 16

// Frame is a 16x16 one bit per pixel sprite. Each row is a big-endian
// uint16, most significant bit on the left.
type Frame struct {
	Bytes [32]byte `json:"bytes" msgpack:"bytes"`
	FG    Color    `json:"fg" msgpack:"fg"`
	BG    *Color   `json:"bg,omitempty" msgpack:"bg,omitempty"`
}

// Glyph is the row form of a frame bitmap.
type Glyph [FrameSize]uint16

func NewFrame(g Glyph, fg Color, bg *Color) Frame {
	f := Frame{FG: fg, BG: bg}
	f.SetGlyph(g)
	return f
}

func (f *Frame) SetGlyph(g Glyph) {
	for i, row := range g {
		f.Bytes[i*2] = byte(row >> 8)
		f.Bytes[i*2+1] = byte(row)
	}
}

// ColorAt returns the colour drawn at (x, y) within the frame.
func (f Frame) ColorAt(x, y int) Color {
	row := uint16(f.Bytes[y*2])<<8 | uint16(f.Bytes[y*2+1])
	if row&(1<<(FrameSize-1-x)) != 0 {
		return f.FG
	}
	if f.BG != nil {
		return *f.BG
	}
	return Black
}

// SwapColors exchanges foreground and background, black when no background.
func (f Frame) SwapColors() Frame {
	bg := Black
	if f.BG != nil {
		bg = *f.BG
	}
	fg := f.FG
	return Frame{Bytes: f.Bytes, FG: bg, BG: &fg}
}

// Gfx is the animation carried alongside a piece. The server never advances
// frames, clients do.
type Gfx struct {
	Timing uint8    `json:"timing" msgpack:"timing"`
	Frames [4]Frame `json:"frames" msgpack:"frames"`
	Corpse *Frame   `json:"corpse,omitempty" msgpack:"corpse,omitempty"`
}

// StillGfx repeats one frame four times.
func StillGfx(f Frame, corpse *Frame) Gfx {
	return Gfx{Timing: 30, Frames: [4]Frame{f, f, f, f}, Corpse: corpse}
}

func (g *Gfx) SetGlyph(glyph Glyph) {
	for i := range g.Frames {
		g.Frames[i].SetGlyph(glyph)
	}
}
