package core

import "math"

// Viewport maps a logical playfield onto a rectangle of screen cells.
// Logical coordinates are independent of the rendered size.
type Viewport struct {
	Field Vec  // logical field size (e.g. 640x300)
	Area  Rect // cells the field is drawn into
}

// NewViewport fits a field into the screen, leaving `top` rows for a HUD
// and one row below for a footer.
func NewViewport(field Vec, screenW, screenH, top int) Viewport {
	h := Max(screenH-top-1, 1)
	return Viewport{
		Field: field,
		Area:  NewRect(0, top, Max(screenW, 1), h),
	}
}

func (v Viewport) scale() (float64, float64) {
	return float64(v.Area.W) / v.Field.X, float64(v.Area.H) / v.Field.Y
}

// ToCell converts a logical point to a screen cell.
func (v Viewport) ToCell(p Vec) (int, int) {
	sx, sy := v.scale()
	return v.Area.X + int(math.Floor(p.X*sx)), v.Area.Y + int(math.Floor(p.Y*sy))
}

// BoxToRect converts a logical box to the cells it covers (at least 1x1).
func (v Viewport) BoxToRect(b Box) Rect {
	x0, y0 := v.ToCell(Vec{X: b.X, Y: b.Y})
	sx, sy := v.scale()
	w := Max(int(math.Round(b.W*sx)), 1)
	h := Max(int(math.Round(b.H*sy)), 1)
	return NewRect(x0, y0, w, h)
}

// Bounds returns the viewport area as a logical-space Box in cell units,
// which is the "rendering element bounding box" pointer input is mapped against.
func (v Viewport) Bounds() Box {
	return Box{X: float64(v.Area.X), Y: float64(v.Area.Y), W: float64(v.Area.W), H: float64(v.Area.H)}
}
