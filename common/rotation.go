package common

import "math"

// Rotator is an Euler rotation in degrees. Positive pitch looks up, positive
// yaw turns right around Z.
type Rotator struct {
	Pitch float64 `json:"pitch" yaml:"pitch"`
	Yaw   float64 `json:"yaw" yaml:"yaw"`
	Roll  float64 `json:"roll" yaml:"roll"`
}

func (r Rotator) Normalize() Rotator {
	return Rotator{Pitch: NormalizeAxis(r.Pitch), Yaw: NormalizeAxis(r.Yaw), Roll: NormalizeAxis(r.Roll)}
}

// YawOnly drops pitch and roll.
func (r Rotator) YawOnly() Rotator {
	return Rotator{Yaw: r.Yaw}
}

func (r Rotator) Quat() Quat {
	sp, cp := math.Sincos(Radians(math.Mod(r.Pitch, 360)) / 2)
	sy, cy := math.Sincos(Radians(math.Mod(r.Yaw, 360)) / 2)
	sr, cr := math.Sincos(Radians(math.Mod(r.Roll, 360)) / 2)

	return Quat{
		X: cr*sp*sy - sr*cp*cy,
		Y: -cr*sp*cy - sr*cp*sy,
		Z: cr*cp*sy - sr*sp*cy,
		W: cr*cp*cy + sr*sp*sy,
	}
}

func (r Rotator) Forward() Vec3 {
	return r.Quat().Rotate(Vec3{X: 1})
}

func (r Rotator) Right() Vec3 {
	return r.Quat().Rotate(Vec3{Y: 1})
}

func (r Rotator) Up() Vec3 {
	return r.Quat().Rotate(Vec3{Z: 1})
}

// AngleToDirectionXY returns the unit direction on the ground plane for a yaw in degrees.
func AngleToDirectionXY(yaw float64) Vec3 {
	s, c := math.Sincos(Radians(yaw))
	return Vec3{X: c, Y: s}
}

// Quat is a unit quaternion.
type Quat struct {
	X, Y, Z, W float64
}

var IdentityQuat = Quat{W: 1}

func (q Quat) Mul(o Quat) Quat {
	return Quat{
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
	}
}

func (q Quat) Inverse() Quat {
	return Quat{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{X: q.X, Y: q.Y, Z: q.Z}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

func (q Quat) Unrotate(v Vec3) Vec3 {
	return q.Inverse().Rotate(v)
}

func (q Quat) Normalize() Quat {
	l := math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if l < SmallNumber {
		return IdentityQuat
	}
	return Quat{X: q.X / l, Y: q.Y / l, Z: q.Z / l, W: q.W / l}
}

func (q Quat) Rotator() Rotator {
	const singularityThreshold = 0.4999995

	test := q.Z*q.X - q.W*q.Y
	yawY := 2 * (q.W*q.Z + q.X*q.Y)
	yawX := 1 - 2*(q.Y*q.Y+q.Z*q.Z)
	yaw := Degrees(math.Atan2(yawY, yawX))

	switch {
	case test < -singularityThreshold:
		return Rotator{Pitch: -90, Yaw: yaw, Roll: NormalizeAxis(-yaw - Degrees(2*math.Atan2(q.X, q.W)))}
	case test > singularityThreshold:
		return Rotator{Pitch: 90, Yaw: yaw, Roll: NormalizeAxis(yaw - Degrees(2*math.Atan2(q.X, q.W)))}
	default:
		return Rotator{
			Pitch: Degrees(math.Asin(2 * test)),
			Yaw:   yaw,
			Roll:  Degrees(math.Atan2(-2*(q.W*q.X+q.Y*q.Z), 1-2*(q.X*q.X+q.Y*q.Y))),
		}
	}
}

// Transform is a rigid world transform.
type Transform struct {
	Location Vec3
	Rotation Quat
}

func (t Transform) TransformPosition(local Vec3) Vec3 {
	return t.Location.Add(t.Rotation.Rotate(local))
}

func (t Transform) InverseTransformPosition(world Vec3) Vec3 {
	return t.Rotation.Unrotate(world.Sub(t.Location))
}
