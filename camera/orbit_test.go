package camera

import (
	"math"
	"testing"
)

func TestOrbitStartsAtDefaults(t *testing.T) {
	s := DefaultSettings().TopDown
	o := NewOrbit(s)
	if o.Distance != s.DefaultDistance || o.TargetDistance != s.DefaultDistance {
		t.Fatalf("expected distance %v, got %v/%v", s.DefaultDistance, o.Distance, o.TargetDistance)
	}
	if o.Pitch != s.Pitch {
		t.Fatalf("expected pitch %v, got %v", s.Pitch, o.Pitch)
	}
}

func TestOrbitClamps(t *testing.T) {
	s := DefaultSettings().TopDown

	tests := []struct {
		name  string
		apply func(o *Orbit)
		check func(t *testing.T, o *Orbit)
	}{
		{
			name:  "zoom_out_extreme",
			apply: func(o *Orbit) { o.AddZoom(1e12) },
			check: func(t *testing.T, o *Orbit) {
				if o.TargetDistance != s.MaxDistance {
					t.Fatalf("target distance %v, want %v", o.TargetDistance, s.MaxDistance)
				}
			},
		},
		{
			name:  "zoom_in_extreme",
			apply: func(o *Orbit) { o.AddZoom(-1e12) },
			check: func(t *testing.T, o *Orbit) {
				if o.TargetDistance != s.MinDistance {
					t.Fatalf("target distance %v, want %v", o.TargetDistance, s.MinDistance)
				}
			},
		},
		{
			name:  "pitch_above_limit",
			apply: func(o *Orbit) { o.AddPitch(500) },
			check: func(t *testing.T, o *Orbit) {
				if o.TargetPitch != s.MaxPitch {
					t.Fatalf("target pitch %v, want %v", o.TargetPitch, s.MaxPitch)
				}
			},
		},
		{
			name:  "pitch_below_limit",
			apply: func(o *Orbit) { o.SetTargetPitch(-170) },
			check: func(t *testing.T, o *Orbit) {
				if o.TargetPitch != s.MinPitch {
					t.Fatalf("target pitch %v, want %v", o.TargetPitch, s.MinPitch)
				}
			},
		},
		{
			name:  "set_distance_moves_current",
			apply: func(o *Orbit) { o.SetDistance(5000) },
			check: func(t *testing.T, o *Orbit) {
				if o.Distance != s.MaxDistance || o.TargetDistance != s.MaxDistance {
					t.Fatalf("distance %v/%v, want %v", o.Distance, o.TargetDistance, s.MaxDistance)
				}
			},
		},
		{
			name:  "yaw_wraps",
			apply: func(o *Orbit) { o.AddYaw(540) },
			check: func(t *testing.T, o *Orbit) {
				if math.Abs(o.TargetYaw-180) > 1e-9 {
					t.Fatalf("target yaw %v, want 180", o.TargetYaw)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			o := NewOrbit(s)
			tc.apply(&o)
			tc.check(t, &o)
		})
	}
}

func TestOrbitCurrentDistanceStaysInRangeUnderExtremeZoom(t *testing.T) {
	s := DefaultSettings().TopDown
	o := NewOrbit(s)
	o.AddZoom(math.MaxFloat64)
	for i := 0; i < 600; i++ {
		o.Tick(1.0 / 60)
		if o.Distance < s.MinDistance || o.Distance > s.MaxDistance {
			t.Fatalf("tick %d: distance %v outside [%v, %v]", i, o.Distance, s.MinDistance, s.MaxDistance)
		}
	}
	if math.Abs(o.Distance-s.MaxDistance) > 1e-3 {
		t.Fatalf("expected distance to settle at %v, got %v", s.MaxDistance, o.Distance)
	}
}

func TestOrbitYawTakesShortestArc(t *testing.T) {
	s := DefaultSettings().TopDown
	s.YawLagSpeed = 5
	o := NewOrbit(s)
	o.SetYaw(350)
	o.SetTargetYaw(10)

	for i := 0; i < 180; i++ {
		o.Tick(1.0 / 60)
		if math.Abs(o.Yaw) > 10+1e-9 {
			t.Fatalf("tick %d: yaw %v went through 180", i, o.Yaw)
		}
	}
	if math.Abs(o.Yaw-10) > 0.01 {
		t.Fatalf("expected yaw near 10, got %v", o.Yaw)
	}
}

func TestOrbitTickConvergesMonotonically(t *testing.T) {
	s := DefaultSettings().TopDown
	o := NewOrbit(s)
	o.SetTargetDistance(s.MinDistance)
	o.SetTargetPitch(s.MaxPitch)

	prevDist := math.Abs(o.Distance - o.TargetDistance)
	prevPitch := math.Abs(o.Pitch - o.TargetPitch)
	for i := 0; i < 300; i++ {
		o.Tick(1.0 / 30)
		dist := math.Abs(o.Distance - o.TargetDistance)
		pitch := math.Abs(o.Pitch - o.TargetPitch)
		if dist > prevDist+1e-9 || pitch > prevPitch+1e-9 {
			t.Fatalf("tick %d diverged: dist %v -> %v, pitch %v -> %v", i, prevDist, dist, prevPitch, pitch)
		}
		prevDist, prevPitch = dist, pitch
	}
}

func TestOrbitSnap(t *testing.T) {
	o := NewOrbit(DefaultSettings().TopDown)
	o.AddYaw(45)
	o.AddZoom(200)
	o.Snap()
	if o.Yaw != o.TargetYaw || o.Distance != o.TargetDistance {
		t.Fatalf("snap left current %v/%v behind target %v/%v", o.Yaw, o.Distance, o.TargetYaw, o.TargetDistance)
	}
}
