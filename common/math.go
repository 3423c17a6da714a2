package common

import "math"

const (
	// KindaSmallNumber matches the tolerance used for distance and ratio guards.
	KindaSmallNumber = 1e-4
	// SmallNumber is used for near-zero length checks.
	SmallNumber = 1e-8
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// DampAlpha returns the frame-rate independent blend factor 1 - exp(-speed*dt).
// A non-positive speed disables lag and yields 1.
func DampAlpha(speed, dt float64) float64 {
	if speed <= 0 {
		return 1
	}
	if dt <= 0 {
		return 0
	}
	return Clamp01(1 - math.Exp(-speed*dt))
}

// Damp moves current toward target by DampAlpha(speed, dt).
func Damp(current, target, speed, dt float64) float64 {
	return Lerp(current, target, DampAlpha(speed, dt))
}

// NormalizeAxis wraps an angle in degrees into (-180, 180].
func NormalizeAxis(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg > 180 {
		deg -= 360
	}
	return deg
}

// DeltaAngle returns the shortest signed rotation in degrees from a to b.
func DeltaAngle(a, b float64) float64 {
	return NormalizeAxis(b - a)
}

// DampAngle interpolates an angle in degrees along the shortest arc.
func DampAngle(current, target, speed, dt float64) float64 {
	return NormalizeAxis(current + DeltaAngle(current, target)*DampAlpha(speed, dt))
}

func NearlyEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
