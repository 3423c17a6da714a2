package common

import "math"

// Vec2 is a screen-space point in pixels.
type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// ClampMagnitude01 limits the vector length to 1, keeping its direction.
func (v Vec2) ClampMagnitude01() Vec2 {
	l := v.Length()
	if l <= 1 {
		return v
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// Vec3 is a world-space vector. X is forward, Y is right and Z is up.
type Vec3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vec3) Mul(o Vec3) Vec3 {
	return Vec3{X: v.X * o.X, Y: v.Y * o.Y, Z: v.Z * o.Z}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) LengthSquared() float64 {
	return v.Dot(v)
}

func (v Vec3) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

func (v Vec3) Distance(o Vec3) float64 {
	return v.Sub(o).Length()
}

// Normalize returns the unit vector, or the zero vector when v is too short.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l < SmallNumber {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

func (v Vec3) IsNearlyZero() bool {
	return v.LengthSquared() < SmallNumber
}

// LerpVec3 blends each axis independently.
func LerpVec3(a, b Vec3, t float64) Vec3 {
	return Vec3{X: Lerp(a.X, b.X, t), Y: Lerp(a.Y, b.Y, t), Z: Lerp(a.Z, b.Z, t)}
}

// DampVec3 applies exponential damping per axis with separate speeds.
func DampVec3(current, target, speed Vec3, dt float64) Vec3 {
	return Vec3{
		X: Damp(current.X, target.X, speed.X, dt),
		Y: Damp(current.Y, target.Y, speed.Y, dt),
		Z: Damp(current.Z, target.Z, speed.Z, dt),
	}
}
