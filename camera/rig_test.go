package camera

import (
	"strings"
	"testing"

	"github.com/milk9111/ringworld/common"
)

type staticPose struct {
	pose Pose
}

func (p *staticPose) CameraPose() Pose {
	return p.pose
}

func TestRigFieldOfViewOverrideClamps(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{200, 175},
		{-5, 5},
		{60, 60},
	}
	for _, tc := range tests {
		rig := NewRig(DefaultSettings(), nil, &staticPose{pose: standingPose(common.Vec3{})})
		rig.SetFieldOfViewOverride(tc.in)
		if got := rig.FieldOfViewOverride(); got != tc.want {
			t.Fatalf("SetFieldOfViewOverride(%v) stored %v, want %v", tc.in, got, tc.want)
		}

		rig.SetFieldOfViewOverridden(true)
		rig.SetViewMode(ViewModeFirstPerson)
		if view := rig.Tick(1.0/60, true); view.FieldOfView != tc.want {
			t.Fatalf("view fov %v, want %v", view.FieldOfView, tc.want)
		}
	}
}

func TestRigPostProcessWeightClamps(t *testing.T) {
	rig := NewRig(DefaultSettings(), nil, nil)
	rig.SetPostProcessWeight(3)
	if rig.PostProcessWeight() != 1 {
		t.Fatalf("expected 1, got %v", rig.PostProcessWeight())
	}
	rig.SetPostProcessWeight(-1)
	if rig.ViewInfo().PostProcessWeight != 0 {
		t.Fatalf("expected 0, got %v", rig.ViewInfo().PostProcessWeight)
	}
}

func TestRigCycleViewMode(t *testing.T) {
	rig := NewRig(DefaultSettings(), nil, nil)
	want := []ViewMode{ViewModeFirstPerson, ViewModeTopDown, ViewModeThirdPerson}
	for _, w := range want {
		if got := rig.CycleViewMode(); got != w {
			t.Fatalf("expected %s, got %s", w, got)
		}
	}
}

func TestRigTopDownEntryRestoresDefaultDistance(t *testing.T) {
	settings := DefaultSettings()
	settings.TopDown.MinDistance = 0
	rig := NewRig(settings, nil, nil)
	rig.TopDown().SetDistance(0)

	rig.SetViewMode(ViewModeTopDown)
	if rig.TopDown().Distance != settings.TopDown.DefaultDistance {
		t.Fatalf("expected default distance %v, got %v", settings.TopDown.DefaultDistance, rig.TopDown().Distance)
	}
}

func TestRigSwitchShoulder(t *testing.T) {
	rig := NewRig(DefaultSettings(), nil, nil)
	if !rig.IsRightShoulder() {
		t.Fatalf("expected right shoulder by default")
	}
	rig.SwitchShoulder()
	if rig.IsRightShoulder() {
		t.Fatalf("expected left shoulder after switch")
	}
}

func TestRigSettingsAreSanitized(t *testing.T) {
	settings := DefaultSettings()
	settings.FirstPerson.FieldOfView = 400
	settings.TopDown.MinDistance = 2000
	settings.TopDown.MaxDistance = 100
	settings.TopDown.MinPitch = 10

	rig := NewRig(settings, nil, nil)
	got := rig.Settings()
	if got.FirstPerson.FieldOfView != MaxFieldOfView {
		t.Fatalf("fov %v not clamped", got.FirstPerson.FieldOfView)
	}
	td := got.TopDown
	if !(td.MinDistance <= td.DefaultDistance && td.DefaultDistance <= td.MaxDistance) {
		t.Fatalf("distances out of order: %v %v %v", td.MinDistance, td.DefaultDistance, td.MaxDistance)
	}
	if td.MinPitch > td.MaxPitch || td.MaxPitch > 0 {
		t.Fatalf("pitch limits invalid: %v %v", td.MinPitch, td.MaxPitch)
	}
}

func TestRigDebugString(t *testing.T) {
	rig := NewRig(DefaultSettings(), nil, &staticPose{pose: standingPose(common.Vec3{})})
	rig.SetViewMode(ViewModeTopDown)
	rig.Tick(1.0/60, true)
	out := rig.DebugString()
	if !strings.Contains(out, "mode: top_down") || !strings.Contains(out, "orbit:") {
		t.Fatalf("unexpected debug output:\n%s", out)
	}
}
