package camera

import (
	"errors"
	"math"
	"testing"

	"github.com/milk9111/ringworld/common"
)

func TestProjectionRoundTrip(t *testing.T) {
	view := ViewInfo{FieldOfView: 90}
	p, err := NewProjection(view, Viewport{Width: 800, Height: 600})
	if err != nil {
		t.Fatalf("NewProjection: %v", err)
	}

	tests := []struct {
		name  string
		world common.Vec3
		want  common.Vec2
		ok    bool
	}{
		{"center", common.Vec3{X: 100}, common.Vec2{X: 400, Y: 300}, true},
		{"right_edge", common.Vec3{X: 100, Y: 100}, common.Vec2{X: 800, Y: 300}, true},
		{"above", common.Vec3{X: 100, Z: 50}, common.Vec2{X: 400, Y: 100}, true},
		{"behind", common.Vec3{X: -100}, common.Vec2{}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := p.Project(tc.world)
			if ok != tc.ok {
				t.Fatalf("ok=%t, want %t", ok, tc.ok)
			}
			if ok && got.Sub(tc.want).Length() > 1e-9 {
				t.Fatalf("projected %+v, want %+v", got, tc.want)
			}
		})
	}

	origin, dir := p.Deproject(common.Vec2{X: 800, Y: 300})
	if origin != view.Location {
		t.Fatalf("unexpected origin %+v", origin)
	}
	want := common.Vec3{X: 1, Y: 1}.Normalize()
	if dir.Distance(want) > 1e-9 {
		t.Fatalf("direction %+v, want %+v", dir, want)
	}
}

func TestProjectionDeprojectFollowsRotation(t *testing.T) {
	view := ViewInfo{Location: common.Vec3{Z: 500}, Rotation: common.Rotator{Pitch: -90}, FieldOfView: 60}
	p, err := NewProjection(view, Viewport{Width: 640, Height: 480})
	if err != nil {
		t.Fatalf("NewProjection: %v", err)
	}
	_, dir := p.Deproject(common.Vec2{X: 320, Y: 240})
	if dir.Distance(common.Vec3{Z: -1}) > 1e-9 {
		t.Fatalf("expected straight down, got %+v", dir)
	}
	screen, ok := p.Project(common.Vec3{})
	if !ok || math.Abs(screen.X-320) > 1e-6 || math.Abs(screen.Y-240) > 1e-6 {
		t.Fatalf("expected ground origin at screen center, got %+v ok=%t", screen, ok)
	}
}

func TestProjectionRejectsInvalidViewport(t *testing.T) {
	if _, err := NewProjection(ViewInfo{FieldOfView: 90}, Viewport{Width: 0, Height: 100}); !errors.Is(err, ErrInvalidViewport) {
		t.Fatalf("expected ErrInvalidViewport, got %v", err)
	}
}
