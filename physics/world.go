package physics

import (
	"log"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/ringworld/camera"
	"github.com/milk9111/ringworld/common"
)

const (
	collisionTypeBlocker cp.CollisionType = iota + 1
	collisionTypePlatform
)

const (
	categoryVisibility uint = 1 << iota
	categoryCamera
)

// column is the vertical extent of a footprint shape, stored in Shape.UserData.
type column struct {
	entity uint64
	minZ   float64
	maxZ   float64
}

// World owns the Chipmunk space. Shapes live in the XY ground plane and
// carry a Z range, so sweeps are resolved in the plane and then checked
// against height.
type World struct {
	space *cp.Space

	shapeToEntity map[*cp.Shape]uint64
	platforms     map[uint64]*Platform
	order         []uint64
}

// NewWorld creates an empty collision world with no gravity.
func NewWorld() *World {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})

	return &World{
		space:         space,
		shapeToEntity: make(map[*cp.Shape]uint64),
		platforms:     make(map[uint64]*Platform),
	}
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// AddBox adds a static axis-aligned blocker spanning min..max. With no
// channels it blocks every channel.
func (w *World) AddBox(entity uint64, min, max common.Vec3, channels ...camera.Channel) *cp.Shape {
	if w == nil || w.space == nil {
		return nil
	}
	min, max = orderedBounds(min, max)
	bb := cp.BB{L: min.X, B: min.Y, R: max.X, T: max.Y}
	shape := cp.NewBox2(w.space.StaticBody, bb, 0)
	shape.SetCollisionType(collisionTypeBlocker)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, channelCategories(channels), cp.ALL_CATEGORIES))
	shape.UserData = column{entity: entity, minZ: min.Z, maxZ: max.Z}
	w.space.AddShape(shape)
	w.shapeToEntity[shape] = entity
	return shape
}

// AddPillar adds a static vertical cylinder standing on base.
func (w *World) AddPillar(entity uint64, base common.Vec3, radius, height float64, channels ...camera.Channel) *cp.Shape {
	if w == nil || w.space == nil || radius <= 0 {
		return nil
	}
	shape := cp.NewCircle(w.space.StaticBody, radius, cp.Vector{X: base.X, Y: base.Y})
	shape.SetCollisionType(collisionTypeBlocker)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, channelCategories(channels), cp.ALL_CATEGORIES))
	shape.UserData = column{entity: entity, minZ: base.Z, maxZ: base.Z + math.Max(height, 0)}
	w.space.AddShape(shape)
	w.shapeToEntity[shape] = entity
	return shape
}

// RemoveEntity drops every static shape registered for entity.
func (w *World) RemoveEntity(entity uint64) {
	if w == nil || w.space == nil {
		return
	}
	for shape, id := range w.shapeToEntity {
		if id != entity {
			continue
		}
		w.space.RemoveShape(shape)
		delete(w.shapeToEntity, shape)
	}
}

// EntityForShape reports which entity a shape was registered for.
func (w *World) EntityForShape(shape *cp.Shape) (uint64, bool) {
	if w == nil || shape == nil {
		return 0, false
	}
	id, ok := w.shapeToEntity[shape]
	return id, ok
}

// Step advances moving platforms.
func (w *World) Step(dt float64) {
	if w == nil || w.space == nil || dt <= 0 {
		return
	}
	for _, id := range w.order {
		w.platforms[id].update()
	}
	w.space.Step(dt)
}

// Sweep implements camera.Sweeper. It returns the earliest blocking contact
// between origin and end for a sphere of the given radius.
func (w *World) Sweep(origin, end common.Vec3, radius float64, channel camera.Channel) (camera.Hit, bool) {
	if w == nil || w.space == nil {
		return camera.Hit{}, false
	}
	radius = math.Max(radius, 0)
	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, channelCategories([]camera.Channel{channel}))
	a := cp.Vector{X: origin.X, Y: origin.Y}
	b := cp.Vector{X: end.X, Y: end.Y}

	best := math.Inf(1)
	var normal common.Vec3
	consider := func(shape *cp.Shape, enter, exit float64, planar cp.Vector) {
		col, ok := shape.UserData.(column)
		if !ok {
			return
		}
		t, vertical, ok := heightOverlap(origin.Z, end.Z, enter, exit, col.minZ-radius, col.maxZ+radius)
		if !ok || t >= best {
			return
		}
		best = t
		if vertical {
			normal = common.Vec3{Z: -math.Copysign(1, end.Z-origin.Z)}
		} else {
			normal = common.Vec3{X: planar.X, Y: planar.Y}
		}
	}

	if a.Distance(b) <= common.KindaSmallNumber {
		w.overlapping(a, radius, filter, func(shape *cp.Shape, info cp.PointQueryInfo) {
			consider(shape, 0, 1, info.Gradient)
		})
	} else {
		w.space.SegmentQuery(a, b, radius, filter, func(shape *cp.Shape, _ cp.Vector, n cp.Vector, alpha float64, _ interface{}) {
			exit := 1.0
			var back cp.SegmentQueryInfo
			if shape.SegmentQuery(b, a, radius, &back) {
				exit = 1 - back.Alpha
			}
			consider(shape, alpha, exit, n)
		}, nil)
	}

	if math.IsInf(best, 1) {
		return camera.Hit{}, false
	}
	return camera.Hit{
		Point:  common.LerpVec3(origin, end, best),
		Normal: normal,
		Time:   best,
	}, true
}

// overlapping calls fn for every shape within radius of p.
func (w *World) overlapping(p cp.Vector, radius float64, filter cp.ShapeFilter, fn func(*cp.Shape, cp.PointQueryInfo)) {
	w.space.BBQuery(cp.NewBBForCircle(p, radius), filter, func(shape *cp.Shape, _ interface{}) {
		info := shape.PointQuery(p)
		if info.Distance <= radius {
			fn(shape, info)
		}
	}, nil)
}

// heightOverlap finds the first t in [enter, exit] where the segment height
// lies within [lo, hi]. vertical is true when contact happens through the
// top or bottom face rather than a side.
func heightOverlap(z0, z1, enter, exit, lo, hi float64) (t float64, vertical bool, ok bool) {
	if enter > exit {
		return 0, false, false
	}
	dz := z1 - z0
	if math.Abs(dz) < common.SmallNumber {
		if z0 >= lo && z0 <= hi {
			return enter, false, true
		}
		return 0, false, false
	}
	ta := (lo - z0) / dz
	tb := (hi - z0) / dz
	if ta > tb {
		ta, tb = tb, ta
	}
	start := math.Max(enter, ta)
	stop := math.Min(exit, tb)
	if start > stop {
		return 0, false, false
	}
	return start, start > enter, true
}

func channelCategories(channels []camera.Channel) uint {
	if len(channels) == 0 {
		return categoryVisibility | categoryCamera
	}
	var mask uint
	for _, ch := range channels {
		switch ch {
		case camera.ChannelVisibility:
			mask |= categoryVisibility
		case camera.ChannelCamera:
			mask |= categoryCamera
		default:
			log.Printf("physics: unknown channel %q, using visibility", ch)
			mask |= categoryVisibility
		}
	}
	return mask
}

func orderedBounds(a, b common.Vec3) (common.Vec3, common.Vec3) {
	return common.Vec3{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)},
		common.Vec3{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)}
}
