package camera

import (
	"errors"
	"math"

	"github.com/milk9111/ringworld/common"
)

var ErrInvalidViewport = errors.New("camera: invalid viewport")

// DefaultNearPlane is the closest depth a point may have and still project.
const DefaultNearPlane = 10.0

type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (v Viewport) Valid() bool {
	return v.Width > 0 && v.Height > 0 && !math.IsInf(v.Width, 0) && !math.IsInf(v.Height, 0)
}

// Projection maps between world space and pixel space for one view.
// FieldOfView is horizontal.
type Projection struct {
	View     ViewInfo
	Viewport Viewport
	Near     float64

	rotation common.Quat
	focal    float64
}

func NewProjection(view ViewInfo, viewport Viewport) (Projection, error) {
	if !viewport.Valid() {
		return Projection{}, ErrInvalidViewport
	}
	fov := ClampFieldOfView(view.FieldOfView)
	return Projection{
		View:     view,
		Viewport: viewport,
		Near:     DefaultNearPlane,
		rotation: view.Rotation.Quat(),
		focal:    (viewport.Width / 2) / math.Tan(common.Radians(fov)/2),
	}, nil
}

// Project returns the pixel position of a world point. ok is false for
// points at or behind the near plane.
func (p Projection) Project(world common.Vec3) (common.Vec2, bool) {
	local := p.rotation.Unrotate(world.Sub(p.View.Location))
	if local.X <= p.Near {
		return common.Vec2{}, false
	}
	return common.Vec2{
		X: p.Viewport.Width/2 + local.Y*p.focal/local.X,
		Y: p.Viewport.Height/2 - local.Z*p.focal/local.X,
	}, true
}

// Deproject returns the camera origin and the unit world direction through a pixel.
func (p Projection) Deproject(screen common.Vec2) (origin, direction common.Vec3) {
	local := common.Vec3{
		X: 1,
		Y: (screen.X - p.Viewport.Width/2) / p.focal,
		Z: (p.Viewport.Height/2 - screen.Y) / p.focal,
	}
	return p.View.Location, p.rotation.Rotate(local.Normalize())
}

func (p Projection) Forward() common.Vec3 {
	return p.rotation.Rotate(common.Vec3{X: 1})
}
