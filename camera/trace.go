package camera

import "github.com/milk9111/ringworld/common"

// Hit is the first blocking contact reported by a Sweeper.
type Hit struct {
	Point  common.Vec3
	Normal common.Vec3
	// Time is the fraction of the segment travelled before contact, in [0, 1].
	Time float64
}

// Sweeper is the collision query service. Implementations must be
// synchronous; a failed query reports no hit.
type Sweeper interface {
	Sweep(origin, end common.Vec3, radius float64, channel Channel) (Hit, bool)
}

// SweeperFunc adapts a function to Sweeper.
type SweeperFunc func(origin, end common.Vec3, radius float64, channel Channel) (Hit, bool)

func (f SweeperFunc) Sweep(origin, end common.Vec3, radius float64, channel Channel) (Hit, bool) {
	return f(origin, end, radius, channel)
}

type TraceResult struct {
	BlockingHit    bool
	ImpactPoint    common.Vec3
	ImpactDistance float64
}

// Trace runs a single sphere sweep from origin to target. With no blocking
// hit the impact point is the target and the distance is the full length.
func Trace(sweeper Sweeper, origin, target common.Vec3, radius float64, channel Channel) TraceResult {
	full := TraceResult{ImpactPoint: target, ImpactDistance: origin.Distance(target)}
	if sweeper == nil || full.ImpactDistance <= common.KindaSmallNumber {
		return full
	}

	hit, ok := sweeper.Sweep(origin, target, radius, channel)
	if !ok {
		return full
	}

	t := common.Clamp01(hit.Time)
	return TraceResult{
		BlockingHit:    true,
		ImpactPoint:    common.LerpVec3(origin, target, t),
		ImpactDistance: full.ImpactDistance * t,
	}
}

// Ratio is the impact distance as a fraction of the requested distance.
func (r TraceResult) Ratio(requested float64) float64 {
	if !r.BlockingHit || requested <= common.KindaSmallNumber {
		return 1
	}
	return common.Clamp01(r.ImpactDistance / requested)
}

// smoothTraceRatio pulls in immediately and eases back out.
func smoothTraceRatio(prev, target float64, trace TraceSettings, dt float64, allowLag bool) float64 {
	prev = common.Clamp01(prev)
	target = common.Clamp01(target)
	if !allowLag || !trace.EnableDistanceSmoothing || target <= prev {
		return target
	}
	return common.Clamp01(common.Damp(prev, target, trace.DistanceSmoothingSpeed, dt))
}
