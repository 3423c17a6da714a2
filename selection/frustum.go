package selection

import (
	"errors"
	"math"

	"github.com/milk9111/ringworld/camera"
	"github.com/milk9111/ringworld/common"
)

var (
	ErrDegenerateRect    = errors.New("selection: degenerate marquee rectangle")
	ErrDegenerateFrustum = errors.New("selection: degenerate frustum")
)

const (
	DefaultNearDistance = 1.0
	DefaultFarDistance  = 10000.0
)

// Plane keeps points with Normal·p + D >= 0 on its inside.
type Plane struct {
	Normal common.Vec3
	D      float64
}

func planeThrough(normal, point common.Vec3) Plane {
	return Plane{Normal: normal, D: -normal.Dot(point)}
}

func (p Plane) Distance(point common.Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

// Frustum is the convex volume swept by a screen rectangle between the near
// and far distances. Plane order: near, far, left, right, top, bottom.
type Frustum struct {
	Planes  [6]Plane
	Corners [8]common.Vec3

	edges [8]common.Vec3
}

// BuildFrustum deprojects the rectangle corners through proj.
func BuildFrustum(proj camera.Projection, rect Rect, near, far float64) (Frustum, error) {
	if rect.Degenerate() {
		return Frustum{}, ErrDegenerateRect
	}
	if near <= 0 || far <= near {
		return Frustum{}, ErrDegenerateFrustum
	}

	forward := proj.Forward()
	var origin common.Vec3
	var dirs [4]common.Vec3
	var center common.Vec3
	for i, c := range rect.Corners() {
		o, d := proj.Deproject(c)
		if d.IsNearlyZero() || d.Dot(forward) <= common.KindaSmallNumber {
			return Frustum{}, ErrDegenerateFrustum
		}
		origin = o
		dirs[i] = d
		center = center.Add(d)
	}
	center = center.Normalize()

	var f Frustum
	for i, d := range dirs {
		depth := d.Dot(forward)
		f.Corners[i] = origin.Add(d.Scale(near / depth))
		f.Corners[i+4] = origin.Add(d.Scale(far / depth))
	}

	f.Planes[0] = planeThrough(forward, origin.Add(forward.Scale(near)))
	f.Planes[1] = planeThrough(forward.Scale(-1), origin.Add(forward.Scale(far)))

	// Side planes pass through the camera origin and two adjacent corner rays:
	// left (bl, tl), right (tr, br), top (tl, tr), bottom (br, bl).
	pairs := [4][2]int{{3, 0}, {1, 2}, {0, 1}, {2, 3}}
	for i, p := range pairs {
		n := dirs[p[0]].Cross(dirs[p[1]]).Normalize()
		if n.IsNearlyZero() {
			return Frustum{}, ErrDegenerateFrustum
		}
		if n.Dot(center) < 0 {
			n = n.Scale(-1)
		}
		f.Planes[2+i] = planeThrough(n, origin)
	}

	for i := 0; i < 4; i++ {
		f.edges[i] = dirs[i]
		f.edges[4+i] = f.Corners[(i+1)%4].Sub(f.Corners[i])
	}
	return f, nil
}

func (f Frustum) ContainsPoint(p common.Vec3) bool {
	for _, pl := range f.Planes {
		if pl.Distance(p) < 0 {
			return false
		}
	}
	return true
}

// IntersectsBox is an exact separating-axis test between the frustum and an
// axis-aligned box.
func (f Frustum) IntersectsBox(b Box) bool {
	center := b.Center()
	half := b.HalfExtent()

	for _, pl := range f.Planes {
		if pl.Distance(center)+boxRadius(pl.Normal, half) < 0 {
			return false
		}
	}

	axes := [3]common.Vec3{{X: 1}, {Y: 1}, {Z: 1}}
	for _, axis := range axes {
		if f.separatedOn(axis, center, half) {
			return false
		}
	}
	for _, e := range f.edges {
		for _, a := range axes {
			axis := e.Cross(a)
			if axis.LengthSquared() < common.SmallNumber {
				continue
			}
			if f.separatedOn(axis, center, half) {
				return false
			}
		}
	}
	return true
}

func (f Frustum) separatedOn(axis, center, half common.Vec3) bool {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, c := range f.Corners {
		d := axis.Dot(c)
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	mid := axis.Dot(center)
	r := boxRadius(axis, half)
	return hi < mid-r || lo > mid+r
}

func boxRadius(axis, half common.Vec3) float64 {
	return math.Abs(axis.X)*half.X + math.Abs(axis.Y)*half.Y + math.Abs(axis.Z)*half.Z
}
