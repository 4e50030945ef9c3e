package models

var characterGlyphs = [8]Glyph{
	{0x0000, 0x0180, 0x03C0, 0x07E0, 0x0FF0, 0x0240, 0x03C0, 0x0180, 0x07E0, 0x0DB0, 0x1998, 0x03C0, 0x0660, 0x0C30, 0x0C30, 0x0000},
	{0x0000, 0x03C0, 0x07E0, 0x0FF0, 0x03C0, 0x05A0, 0x03C0, 0x0180, 0x0FF0, 0x1FF8, 0x1BD8, 0x03C0, 0x0660, 0x0660, 0x0E70, 0x0000},
	{0x0000, 0x0100, 0x0380, 0x07C0, 0x1FF0, 0x0280, 0x0380, 0x0100, 0x07C8, 0x0BA8, 0x13C8, 0x0388, 0x06C8, 0x0C68, 0x0C60, 0x0000},
	{0x0000, 0x0000, 0x0180, 0x03C0, 0x07E0, 0x03C0, 0x0240, 0x03C0, 0x1FF8, 0x0DB0, 0x0990, 0x03C0, 0x07E0, 0x0C30, 0x1818, 0x0000},
	{0x0000, 0x0080, 0x01C0, 0x03E0, 0x07F0, 0x0140, 0x01C0, 0x0080, 0x13E4, 0x0DD8, 0x01C0, 0x01C0, 0x0360, 0x0630, 0x0630, 0x0000},
	{0x0000, 0x0180, 0x0180, 0x03C0, 0x07E0, 0x1FF8, 0x03C0, 0x0240, 0x03C0, 0x07E0, 0x0BD0, 0x13C8, 0x03C0, 0x0660, 0x0E70, 0x0000},
	{0x0000, 0x07E0, 0x0FF0, 0x0FF0, 0x0DB0, 0x07E0, 0x03C0, 0x0180, 0x0FF0, 0x1BD8, 0x13C8, 0x03C0, 0x0240, 0x0660, 0x0660, 0x0000},
	{0x0000, 0x0000, 0x03C0, 0x0420, 0x0FF0, 0x0240, 0x03C0, 0x0180, 0x1FF8, 0x27E4, 0x07E0, 0x07E0, 0x0660, 0x0C30, 0x0C30, 0x0000},
}

// Wizard equipment overlays, replacing the character sprite once a buff lands.
var (
	GlyphMagicKnife = Glyph{0x0000, 0x0180, 0x03C0, 0x07E0, 0x0FF0, 0x0240, 0x03C2, 0x0184, 0x07E8, 0x0DB0, 0x1990, 0x03C0, 0x0660, 0x0C30, 0x0C30, 0x0000}
	GlyphMagicSword = Glyph{0x0001, 0x0182, 0x03C4, 0x07E8, 0x0FF0, 0x0260, 0x03D0, 0x01A0, 0x07E0, 0x0DB0, 0x1998, 0x03C0, 0x0660, 0x0C30, 0x0C30, 0x0000}
	GlyphMagicShield = Glyph{0x0000, 0x0180, 0x03C0, 0x07E0, 0x0FF0, 0x0240, 0x03C0, 0x3980, 0x7FE0, 0x7DB0, 0x7998, 0x3BC0, 0x1660, 0x0C30, 0x0C30, 0x0000}
	GlyphMagicArmour = Glyph{0x0000, 0x0180, 0x03C0, 0x07E0, 0x0FF0, 0x03C0, 0x03C0, 0x0180, 0x0FF0, 0x1FF8, 0x1FF8, 0x0FF0, 0x07E0, 0x0E70, 0x0E70, 0x0000}
	GlyphMagicWings = Glyph{0x0000, 0x0180, 0x43C2, 0x67E6, 0x7FFE, 0x3E7C, 0x1FF8, 0x0FF0, 0x07E0, 0x0DB0, 0x1998, 0x03C0, 0x0660, 0x0C30, 0x0C30, 0x0000}
	GlyphMagicBow = Glyph{0x0000, 0x0184, 0x03C2, 0x07E1, 0x0FF1, 0x0241, 0x03C1, 0x01BF, 0x07E1, 0x0DB1, 0x1999, 0x03C1, 0x0662, 0x0C34, 0x0C30, 0x0000}
)

// Creature and terrain sprites shared by the spell catalog.
var (
	GlyphSerpent   = Glyph{0x0000, 0x0000, 0x0070, 0x00F8, 0x00D8, 0x00F8, 0x0070, 0x0060, 0x00C0, 0x0180, 0x0300, 0x0630, 0x0C78, 0x0FCC, 0x0786, 0x0000}
	GlyphBeast     = Glyph{0x0000, 0x0000, 0x0006, 0x000F, 0x001E, 0x3FFC, 0x7FF8, 0xFFF8, 0xDFF0, 0x1FF0, 0x1830, 0x1830, 0x1830, 0x3060, 0x0000, 0x0000}
	GlyphHumanoid  = Glyph{0x0000, 0x03C0, 0x07E0, 0x05A0, 0x07E0, 0x03C0, 0x0FF0, 0x1FF8, 0x3BDC, 0x33CC, 0x03C0, 0x0660, 0x0660, 0x0C30, 0x1C38, 0x0000}
	GlyphGiant     = Glyph{0x03C0, 0x07E0, 0x05A0, 0x07E0, 0x03C0, 0x1FF8, 0x3FFC, 0x7FFE, 0x6FF6, 0x6FF6, 0x0FF0, 0x0E70, 0x0C30, 0x0C30, 0x1C38, 0x3C3C}
	GlyphHorse     = Glyph{0x0000, 0x000C, 0x001E, 0x003E, 0x007C, 0x00F8, 0x3FF0, 0x7FF0, 0xFFF0, 0x9FF0, 0x1C70, 0x1830, 0x1830, 0x1830, 0x1830, 0x0000}
	GlyphFlyer     = Glyph{0x0000, 0x0000, 0x8001, 0xC003, 0xE187, 0x73CE, 0x3FFC, 0x1FF8, 0x0FF0, 0x07E0, 0x03C0, 0x0180, 0x0000, 0x0000, 0x0000, 0x0000}
	GlyphBird      = Glyph{0x0000, 0x0000, 0x0000, 0x7000, 0x7C06, 0x3F0F, 0x1FFE, 0x0FFC, 0x07F8, 0x03F0, 0x01E0, 0x0120, 0x0120, 0x0000, 0x0000, 0x0000}
	GlyphDragon    = Glyph{0x0000, 0x0600, 0x0F00, 0x1D80, 0x0F86, 0x07CF, 0x07FE, 0x3FFC, 0x7FFC, 0xFFF8, 0xCFF8, 0x0FF0, 0x0C30, 0x0C30, 0x1C38, 0x0000}
	GlyphUndead    = Glyph{0x0000, 0x03C0, 0x07E0, 0x0DB0, 0x0FF0, 0x0660, 0x03C0, 0x0DB0, 0x1998, 0x0180, 0x03C0, 0x0240, 0x0240, 0x0660, 0x0660, 0x0000}
	GlyphGhost     = Glyph{0x0000, 0x03C0, 0x07E0, 0x0DB0, 0x0FF0, 0x0FF0, 0x0FF0, 0x1FF8, 0x1FF8, 0x3FFC, 0x3FFC, 0x7FFE, 0x6DB6, 0x4924, 0x0000, 0x0000}
	GlyphTree      = Glyph{0x0180, 0x03C0, 0x07E0, 0x0FF0, 0x1FF8, 0x3FFC, 0x7FFE, 0x3FFC, 0x7FFE, 0xFFFF, 0x7FFE, 0x0180, 0x0180, 0x0180, 0x03C0, 0x07E0}
	GlyphWall      = Glyph{0xFFFF, 0x8421, 0x8421, 0xFFFF, 0x2108, 0x2108, 0xFFFF, 0x8421, 0x8421, 0xFFFF, 0x2108, 0x2108, 0xFFFF, 0x8421, 0x8421, 0xFFFF}
	GlyphCastle    = Glyph{0x0000, 0xA5A5, 0xFFFF, 0x7FFE, 0x7E7E, 0x7E7E, 0x7FFE, 0x7FFE, 0x7FFE, 0x7C3E, 0x781E, 0x781E, 0x781E, 0x781E, 0xFFFF, 0xFFFF}
	GlyphFire      = Glyph{0x0000, 0x0100, 0x0180, 0x0380, 0x03C4, 0x07CC, 0x27EC, 0x37FC, 0x3FFC, 0x3FFC, 0x7FFE, 0x7E7E, 0x7C3E, 0x3C3C, 0x1FF8, 0x0FF0}
	GlyphBlob      = Glyph{0x0000, 0x0000, 0x0000, 0x0000, 0x03C0, 0x0FF0, 0x1FF8, 0x3FFC, 0x3FFC, 0x7FFE, 0x7FFE, 0xFFFF, 0xFFFF, 0x7FFE, 0x3FFC, 0x0000}
	GlyphCorpse    = Glyph{0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0C00, 0x1FFC, 0x3FFE, 0x0000}
)
