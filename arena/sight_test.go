package arena

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wfunc/chaos-server/models"
)

func TestLineCoords(t *testing.T) {
	coords := LineCoords(Pos{X: 0, Y: 0}, Pos{X: 1, Y: 0})
	assert.Len(t, coords, 17)
	assert.Equal(t, image.Pt(8, 8), coords[0])
	assert.Equal(t, image.Pt(24, 8), coords[16])

	single := LineCoords(Pos{X: 3, Y: 3}, Pos{X: 3, Y: 3})
	assert.Equal(t, []image.Point{image.Pt(56, 56)}, single)
}

func TestLineOfSightBlockedBySolidPiece(t *testing.T) {
	a := New()
	src, dst := Pos{X: 0, Y: 0}, Pos{X: 4, Y: 0}
	a.PlaceWizard(src, testWizard(1))
	a.PlaceWizard(dst, testWizard(2))
	assert.True(t, a.LineOfSight(src, dst))

	a.PlaceCreation(Pos{X: 2, Y: 0}, testCreation(3, nil))
	assert.False(t, a.LineOfSight(src, dst))
	assert.False(t, a.LineOfSight(dst, src))
	assert.NotNil(t, a.Get(src).Wizard, "line of sight must not touch the board")
}

func TestLineOfSightIgnoresTransparentAndCorpses(t *testing.T) {
	a := New()
	src, dst := Pos{X: 0, Y: 0}, Pos{X: 4, Y: 0}
	a.PlaceCreation(Pos{X: 1, Y: 0}, testCreation(3, func(s *models.CreationStats) { s.Transparent = true }))
	a.PlaceCreation(Pos{X: 2, Y: 0}, testCreation(3, nil))
	a.KillCreation(Pos{X: 2, Y: 0}, true)
	assert.True(t, a.LineOfSight(src, dst))
}

func TestLineOfSightIsSymmetric(t *testing.T) {
	a := New()
	for _, p := range []Pos{{X: 3, Y: 2}, {X: 7, Y: 5}, {X: 10, Y: 1}, {X: 5, Y: 8}, {X: 12, Y: 6}} {
		a.PlaceCreation(p, testCreation(9, nil))
	}
	for sy := 0; sy < Height; sy += 3 {
		for sx := 0; sx < Width; sx += 2 {
			for dy := 0; dy < Height; dy += 2 {
				for dx := 0; dx < Width; dx += 3 {
					s, d := Pos{X: sx, Y: sy}, Pos{X: dx, Y: dy}
					assert.Equal(t, a.LineOfSight(s, d), a.LineOfSight(d, s), "%s <-> %s", s, d)
				}
			}
		}
	}
	assert.True(t, a.LineOfSight(Pos{X: 7, Y: 5}, Pos{X: 7, Y: 5}))
}
