// models/player.go
package models

import "errors"

var (
	ErrInvalidCharacter = errors.New("invalid wizard character")
	ErrInvalidColor     = errors.New("invalid wizard color")
	ErrInvalidName      = errors.New("invalid wizard name")
)

// MaxNameLength 巫师名字最大长度
const MaxNameLength = 12

// Character 巫师形象
type Character uint8

const (
	Jevarell Character = iota
	LargeFart
	GreatFogey
	Dyerarti
	Gowin
	Merlin
	IlianRane
	AsimonoZark
)

var characterNames = [...]string{
	"JEVARELL", "LARGE FART", "GREAT FOGEY", "DYERARTI",
	"GOWIN", "MERLIN", "ILIAN RANE", "ASIMONO ZARK",
}

func (c Character) String() string {
	if int(c) < len(characterNames) {
		return characterNames[c]
	}
	return "UNKNOWN"
}

// WizardColor 巫师颜色，只允许八种明亮色
type WizardColor uint8

const (
	WizardBrightRed WizardColor = iota
	WizardBrightMagenta
	WizardBrightGreen
	WizardBrightCyan
	WizardYellow
	WizardBrightYellow
	WizardWhite
	WizardBrightWhite
)

var wizardPalette = [...]Color{
	BrightRed, BrightMagenta, BrightGreen, BrightCyan,
	Yellow, BrightYellow, White, BrightWhite,
}

// Color 转换为调色板颜色
func (c WizardColor) Color() Color {
	if int(c) < len(wizardPalette) {
		return wizardPalette[c]
	}
	return BrightWhite
}

// Player 玩家档案（名字、形象、颜色）
type Player struct {
	Name      string      `json:"name" msgpack:"name"`
	Character Character   `json:"character" msgpack:"character"`
	Color     WizardColor `json:"color" msgpack:"color"`
}

// Validate 校验客户端提交的档案
func (p Player) Validate() error {
	if p.Name == "" || len(p.Name) > MaxNameLength {
		return ErrInvalidName
	}
	if int(p.Character) >= len(characterNames) {
		return ErrInvalidCharacter
	}
	if int(p.Color) >= len(wizardPalette) {
		return ErrInvalidColor
	}
	return nil
}

// Frame 玩家形象对应的精灵帧
func (p Player) Frame() Frame {
	return NewFrame(characterGlyphs[int(p.Character)%len(characterGlyphs)], p.Color.Color(), nil)
}
