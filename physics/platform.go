package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/ringworld/camera"
	"github.com/milk9111/ringworld/common"
)

// Platform is a kinematic box that shuttles back and forth and can act as a
// movement base for anything standing on it.
type Platform struct {
	ID     uint64
	Top    float64
	Bottom float64

	body   *cp.Body
	shape  *cp.Shape
	origin cp.Vector
	travel float64
}

// AddPlatform creates a platform centred on center with the given footprint.
// It moves at velocity until it is travel units from its start, then reverses.
func (w *World) AddPlatform(id uint64, center common.Vec3, width, depth, thickness float64, velocity common.Vec3, travel float64) *Platform {
	if w == nil || w.space == nil {
		return nil
	}
	body := cp.NewKinematicBody()
	body.SetPosition(cp.Vector{X: center.X, Y: center.Y})
	body.SetVelocityVector(cp.Vector{X: velocity.X, Y: velocity.Y})
	w.space.AddBody(body)

	shape := cp.NewBox(body, width, depth, 0)
	shape.SetCollisionType(collisionTypePlatform)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, channelCategories(nil), cp.ALL_CATEGORIES))
	shape.UserData = column{entity: id, minZ: center.Z - thickness, maxZ: center.Z}
	w.space.AddShape(shape)

	p := &Platform{
		ID:     id,
		Top:    center.Z,
		Bottom: center.Z - thickness,
		body:   body,
		shape:  shape,
		origin: body.Position(),
		travel: travel,
	}
	w.shapeToEntity[shape] = id
	w.platforms[id] = p
	w.order = append(w.order, id)
	return p
}

func (w *World) Platform(id uint64) (*Platform, bool) {
	if w == nil {
		return nil, false
	}
	p, ok := w.platforms[id]
	return p, ok
}

// PlatformUnder returns the platform whose top surface supports point, if any.
func (w *World) PlatformUnder(point common.Vec3, tolerance float64) (*Platform, bool) {
	if w == nil || w.space == nil {
		return nil, false
	}
	at := cp.Vector{X: point.X, Y: point.Y}
	for _, id := range w.order {
		p := w.platforms[id]
		if point.Z < p.Top-tolerance || point.Z > p.Top+tolerance {
			continue
		}
		if p.shape.PointQuery(at).Distance <= 0 {
			return p, true
		}
	}
	return nil, false
}

func (p *Platform) Location() common.Vec3 {
	pos := p.body.Position()
	return common.Vec3{X: pos.X, Y: pos.Y, Z: p.Top}
}

func (p *Platform) Velocity() common.Vec3 {
	v := p.body.Velocity()
	return common.Vec3{X: v.X, Y: v.Y}
}

// Base describes the platform as a camera movement base.
func (p *Platform) Base() camera.MovementBase {
	return camera.MovementBase{
		ID:       p.ID,
		Location: p.Location(),
		Rotation: common.Rotator{Yaw: common.Degrees(p.body.Angle())}.Quat(),
	}
}

func (p *Platform) update() {
	if p == nil || p.travel <= 0 {
		return
	}
	pos := p.body.Position()
	offset := pos.Sub(p.origin)
	v := p.body.Velocity()
	if offset.Length() >= p.travel && offset.Dot(v) > 0 {
		p.body.SetVelocityVector(v.Neg())
	}
}
