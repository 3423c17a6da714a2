package physics

import (
	"math"
	"testing"

	"github.com/milk9111/ringworld/camera"
	"github.com/milk9111/ringworld/common"
)

func TestSweep(t *testing.T) {
	w := NewWorld()
	w.AddBox(1, common.Vec3{X: 100, Y: -50, Z: 0}, common.Vec3{X: 120, Y: 50, Z: 200})
	w.AddBox(2, common.Vec3{X: -500, Y: -500, Z: 0}, common.Vec3{X: -400, Y: -400, Z: 100}, camera.ChannelCamera)

	tests := []struct {
		name    string
		origin  common.Vec3
		end     common.Vec3
		radius  float64
		channel camera.Channel
		hit     bool
		time    float64
	}{
		{"through_wall", common.Vec3{Z: 100}, common.Vec3{X: 200, Z: 100}, 0, camera.ChannelVisibility, true, 0.5},
		{"sphere_touches_early", common.Vec3{Z: 100}, common.Vec3{X: 200, Z: 100}, 10, camera.ChannelVisibility, true, 0.45},
		{"over_the_top", common.Vec3{Z: 300}, common.Vec3{X: 200, Z: 300}, 0, camera.ChannelVisibility, false, 0},
		{"straight_down_onto_roof", common.Vec3{X: 110, Z: 400}, common.Vec3{X: 110, Z: 100}, 0, camera.ChannelVisibility, true, 2.0 / 3.0},
		{"short_of_wall", common.Vec3{Z: 100}, common.Vec3{X: 50, Z: 100}, 0, camera.ChannelVisibility, false, 0},
		{"ignored_channel", common.Vec3{X: -600, Y: -450, Z: 50}, common.Vec3{X: -300, Y: -450, Z: 50}, 0, camera.ChannelVisibility, false, 0},
		{"matching_channel", common.Vec3{X: -600, Y: -450, Z: 50}, common.Vec3{X: -300, Y: -450, Z: 50}, 0, camera.ChannelCamera, true, 1.0 / 3.0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			hit, ok := w.Sweep(tc.origin, tc.end, tc.radius, tc.channel)
			if ok != tc.hit {
				t.Fatalf("hit=%t, want %t (%+v)", ok, tc.hit, hit)
			}
			if ok && math.Abs(hit.Time-tc.time) > 1e-6 {
				t.Fatalf("time=%v, want %v", hit.Time, tc.time)
			}
		})
	}
}

func TestSweepFeedsCameraTrace(t *testing.T) {
	w := NewWorld()
	w.AddBox(1, common.Vec3{X: 100, Y: -50}, common.Vec3{X: 120, Y: 50, Z: 200})

	res := camera.Trace(w, common.Vec3{Z: 100}, common.Vec3{X: 200, Z: 100}, 0, camera.ChannelVisibility)
	if !res.BlockingHit {
		t.Fatalf("expected blocking hit")
	}
	if math.Abs(res.ImpactDistance-100) > 1e-6 || math.Abs(res.ImpactPoint.X-100) > 1e-6 {
		t.Fatalf("unexpected impact %+v", res)
	}
}

func TestRemoveEntity(t *testing.T) {
	w := NewWorld()
	w.AddPillar(9, common.Vec3{X: 100}, 20, 300)
	if _, ok := w.Sweep(common.Vec3{Z: 10}, common.Vec3{X: 200, Z: 10}, 0, camera.ChannelVisibility); !ok {
		t.Fatalf("expected pillar to block")
	}
	w.RemoveEntity(9)
	if _, ok := w.Sweep(common.Vec3{Z: 10}, common.Vec3{X: 200, Z: 10}, 0, camera.ChannelVisibility); ok {
		t.Fatalf("expected no hit after removal")
	}
}

func TestPlatformMovesAndReverses(t *testing.T) {
	w := NewWorld()
	p := w.AddPlatform(3, common.Vec3{Z: 50}, 100, 100, 10, common.Vec3{X: 100}, 50)

	w.Step(0.1)
	if got := p.Location().X; math.Abs(got-10) > 1e-6 {
		t.Fatalf("expected platform at x=10, got %v", got)
	}

	for i := 0; i < 6; i++ {
		w.Step(0.1)
	}
	if p.Velocity().X >= 0 {
		t.Fatalf("expected platform to reverse, velocity %+v", p.Velocity())
	}

	under, ok := w.PlatformUnder(p.Location(), 1)
	if !ok || under.ID != 3 {
		t.Fatalf("expected platform 3 under its own top, got %v %t", under, ok)
	}
	if _, ok := w.PlatformUnder(p.Location().Add(common.Vec3{Z: 100}), 1); ok {
		t.Fatalf("did not expect a platform far above the surface")
	}
	base := p.Base()
	if base.ID != 3 || base.Location != p.Location() {
		t.Fatalf("unexpected base %+v", base)
	}
}

func TestSweepZeroLength(t *testing.T) {
	w := NewWorld()
	w.AddPillar(4, common.Vec3{X: 100}, 20, 300)

	tests := []struct {
		name   string
		at     common.Vec3
		radius float64
		hit    bool
	}{
		{"inside_pillar", common.Vec3{X: 100, Z: 10}, 0, true},
		{"inside_pillar_with_radius", common.Vec3{X: 110, Y: 5, Z: 150}, 5, true},
		{"sphere_grazes_side", common.Vec3{X: 70, Z: 10}, 15, true},
		{"clear_of_side", common.Vec3{X: 70, Z: 10}, 5, false},
		{"above_pillar", common.Vec3{X: 100, Z: 400}, 10, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			hit, ok := w.Sweep(tc.at, tc.at, tc.radius, camera.ChannelVisibility)
			if ok != tc.hit {
				t.Fatalf("hit=%t, want %t (%+v)", ok, tc.hit, hit)
			}
			if ok && (hit.Time != 0 || hit.Point != tc.at) {
				t.Fatalf("expected contact at the start, got %+v", hit)
			}
		})
	}
}

func TestPlatformUnder(t *testing.T) {
	w := NewWorld()
	w.AddPlatform(5, common.Vec3{Z: 50}, 100, 100, 10, common.Vec3{}, 0)
	w.AddPlatform(6, common.Vec3{X: 300, Z: 80}, 100, 100, 10, common.Vec3{}, 0)
	w.AddBox(7, common.Vec3{X: 500, Y: -50}, common.Vec3{X: 600, Y: 50, Z: 80})

	tests := []struct {
		name  string
		point common.Vec3
		want  uint64
		found bool
	}{
		{"on_first", common.Vec3{X: 10, Y: -20, Z: 50}, 5, true},
		{"on_second", common.Vec3{X: 320, Z: 80.5}, 6, true},
		{"second_footprint_wrong_height", common.Vec3{X: 300, Z: 50}, 0, false},
		{"between_platforms", common.Vec3{X: 150, Z: 50}, 0, false},
		{"static_box_is_not_a_platform", common.Vec3{X: 550, Z: 80}, 0, false},
		{"below_first", common.Vec3{Z: 30}, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, ok := w.PlatformUnder(tc.point, 1)
			if ok != tc.found {
				t.Fatalf("found=%t, want %t", ok, tc.found)
			}
			if ok && p.ID != tc.want {
				t.Fatalf("platform %d, want %d", p.ID, tc.want)
			}
		})
	}
}
