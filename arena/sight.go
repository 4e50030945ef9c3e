package arena

import (
	"image"

	"github.com/wfunc/chaos-server/models"
)

// sightStep is the pixel stride used when sampling a line of sight.
const sightStep = 4

func tileCenter(p Pos) image.Point {
	return image.Pt(p.X*models.FrameSize+models.FrameSize/2, p.Y*models.FrameSize+models.FrameSize/2)
}

// LineCoords rasterises the pixel line between the centres of two tiles.
func LineCoords(src, dst Pos) []image.Point {
	cur, end := tileCenter(src), tileCenter(dst)
	dx, dy := abs(end.X-cur.X), abs(end.Y-cur.Y)
	sx, sy := -1, -1
	if cur.X < end.X {
		sx = 1
	}
	if cur.Y < end.Y {
		sy = 1
	}
	err := dx - dy
	coords := make([]image.Point, 0, max(dx, dy)+1)
	for {
		coords = append(coords, cur)
		if cur == end {
			return coords
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			cur.X += sx
		}
		if e2 < dx {
			err += dx
			cur.Y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// LineOfSight reports whether nothing opaque stands between src and dst.
// Corpses, transparent creations and the pieces on either end never block.
func (a *Arena) LineOfSight(src, dst Pos) bool {
	// 统一端点顺序, 保证 a->b 与 b->a 结果一致
	if dst.Y < src.Y || (dst.Y == src.Y && dst.X < src.X) {
		src, dst = dst, src
	}
	view := a.Clone()
	view.each(func(p Pos, t *Tile) {
		t.Corpse = nil
		switch {
		case p == src || p == dst:
			t.Spawn, t.Creation, t.Wizard = nil, nil, nil
		case t.Creation != nil && t.Creation.Stats.Transparent:
			t.Creation = nil
		}
	})
	coords := LineCoords(src, dst)
	for i := 0; i < len(coords); i += sightStep {
		if view.pixel(coords[i]) != models.Black {
			return false
		}
	}
	return true
}

// pixel returns the colour of the topmost piece drawn at a board pixel.
func (a *Arena) pixel(pt image.Point) models.Color {
	t := a.Get(Pos{X: pt.X / models.FrameSize, Y: pt.Y / models.FrameSize})
	fx, fy := pt.X%models.FrameSize, pt.Y%models.FrameSize
	switch {
	case t.Spawn != nil:
		return t.Spawn.Creation.CurrentFrame().ColorAt(fx, fy)
	case t.Creation != nil:
		return t.Creation.CurrentFrame().ColorAt(fx, fy)
	case t.Wizard != nil:
		return t.Wizard.CurrentFrame().ColorAt(fx, fy)
	case t.Corpse != nil:
		if f, ok := t.Corpse.corpseFrame(); ok {
			return f.ColorAt(fx, fy)
		}
	}
	return models.Black
}
