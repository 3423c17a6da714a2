package selection

import (
	"math"

	"github.com/milk9111/ringworld/common"
)

// MinRectExtent is the smallest width or height a marquee may have before
// it is treated as degenerate.
const MinRectExtent = common.KindaSmallNumber

// Rect is a screen rectangle with Min top-left and Max bottom-right.
type Rect struct {
	Min common.Vec2
	Max common.Vec2
}

// NormalizeRect orders two arbitrary corners into a Rect.
func NormalizeRect(a, b common.Vec2) Rect {
	return Rect{
		Min: common.Vec2{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		Max: common.Vec2{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
}

func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Degenerate reports a rectangle too thin to build a volume from.
func (r Rect) Degenerate() bool {
	w, h := r.Width(), r.Height()
	return math.IsNaN(w) || math.IsNaN(h) || w <= MinRectExtent || h <= MinRectExtent
}

func (r Rect) Contains(p common.Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Corners returns top-left, top-right, bottom-right, bottom-left.
func (r Rect) Corners() [4]common.Vec2 {
	return [4]common.Vec2{
		{X: r.Min.X, Y: r.Min.Y},
		{X: r.Max.X, Y: r.Min.Y},
		{X: r.Max.X, Y: r.Max.Y},
		{X: r.Min.X, Y: r.Max.Y},
	}
}
