package models

import "fmt"

// Color is one of the sixteen palette entries a sprite pixel can take.
type Color uint8

const (
	Black Color = iota
	Blue
	Red
	Magenta
	Green
	Cyan
	Yellow
	White
	BrightBlack
	BrightBlue
	BrightRed
	BrightMagenta
	BrightGreen
	BrightCyan
	BrightYellow
	BrightWhite
)

var colorNames = map[Color]string{
	Black:         "black",
	Blue:          "blue",
	Red:           "red",
	Magenta:       "magenta",
	Green:         "green",
	Cyan:          "cyan",
	Yellow:        "yellow",
	White:         "white",
	BrightBlack:   "bright_black",
	BrightBlue:    "bright_blue",
	BrightRed:     "bright_red",
	BrightMagenta: "bright_magenta",
	BrightGreen:   "bright_green",
	BrightCyan:    "bright_cyan",
	BrightYellow:  "bright_yellow",
	BrightWhite:   "bright_white",
}

func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return fmt.Sprintf("color(%d)", uint8(c))
}

// ColorPtr is a convenience for optional background colours.
func ColorPtr(c Color) *Color {
	return &c
}
