package input

import (
	"math"
	"testing"

	"github.com/milk9111/ringworld/camera"
	"github.com/milk9111/ringworld/common"
)

type fakeDevice struct {
	keys    map[string]bool
	buttons map[string]bool
	pads    map[string]bool
	axes    map[string]float64
	delta   common.Vec2
	wheel   common.Vec2
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		keys:    map[string]bool{},
		buttons: map[string]bool{},
		pads:    map[string]bool{},
		axes:    map[string]float64{},
	}
}

func (d *fakeDevice) KeyPressed(name string) bool           { return d.keys[name] }
func (d *fakeDevice) MouseButtonPressed(name string) bool   { return d.buttons[name] }
func (d *fakeDevice) GamepadButtonPressed(name string) bool { return d.pads[name] }
func (d *fakeDevice) GamepadAxis(name string) float64       { return d.axes[name] }
func (d *fakeDevice) MouseDelta() common.Vec2               { return d.delta }
func (d *fakeDevice) Wheel() common.Vec2                    { return d.wheel }

func testBindings() Bindings {
	return Bindings{Actions: map[Action][]Binding{
		ActionMove: {
			{Key: "W", Component: "y"},
			{Key: "S", Component: "y", Scale: -1},
			{Key: "D"},
			{Key: "A", Scale: -1},
			{Axis: "left_x"},
			{Axis: "left_y", Component: "y", Scale: -1},
		},
		ActionJump:        {{Key: "Space"}, {Gamepad: "right_bottom"}},
		ActionSelect:      {{Mouse: "left"}},
		ActionTopDownZoom: {{Axis: AxisWheelY}},
	}}
}

func TestMapperCombinesBindings(t *testing.T) {
	tests := []struct {
		name  string
		setup func(d *fakeDevice)
		want  common.Vec2
	}{
		{"idle", func(d *fakeDevice) {}, common.Vec2{}},
		{"forward", func(d *fakeDevice) { d.keys["W"] = true }, common.Vec2{Y: 1}},
		{"opposite_keys_cancel", func(d *fakeDevice) { d.keys["A"] = true; d.keys["D"] = true }, common.Vec2{}},
		{"stick_inside_deadzone", func(d *fakeDevice) { d.axes["left_x"] = 0.1 }, common.Vec2{}},
		{"stick", func(d *fakeDevice) { d.axes["left_x"] = 0.5; d.axes["left_y"] = -1 }, common.Vec2{X: 0.5, Y: 1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := newFakeDevice()
			tc.setup(d)
			m := NewMapper(testBindings())
			m.Update(d)
			if got := m.Value(ActionMove); got != tc.want {
				t.Fatalf("move %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestMapperEdges(t *testing.T) {
	d := newFakeDevice()
	m := NewMapper(testBindings())

	d.pads["right_bottom"] = true
	m.Update(d)
	if !m.JustPressed(ActionJump) || !m.Pressed(ActionJump) {
		t.Fatalf("expected jump just pressed")
	}
	m.Update(d)
	if m.JustPressed(ActionJump) || !m.Pressed(ActionJump) {
		t.Fatalf("expected jump held without a new press")
	}
	d.pads["right_bottom"] = false
	m.Update(d)
	if !m.JustReleased(ActionJump) || m.Pressed(ActionJump) {
		t.Fatalf("expected jump released")
	}

	d.wheel = common.Vec2{Y: -2}
	m.Update(d)
	if got := m.Axis(ActionTopDownZoom); got != -2 {
		t.Fatalf("zoom axis %v", got)
	}
}

func TestBindingValidate(t *testing.T) {
	bad := Bindings{Actions: map[Action][]Binding{
		ActionJump: {{Key: "Space", Mouse: "left"}},
	}}
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected an error for a binding with two sources")
	}
	if err := (Binding{Key: "W", Component: "z"}).Validate(); err == nil {
		t.Fatalf("expected an error for an unknown component")
	}
	if err := testBindings().Validate(); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestCharacterToggles(t *testing.T) {
	var c Character

	c.ToggleWalk()
	if c.Gait != GaitWalking {
		t.Fatalf("expected walking, got %s", c.Gait)
	}
	c.Sprint(true)
	c.ToggleWalk()
	if c.Gait != GaitSprinting {
		t.Fatalf("walk toggle should not cancel sprint, got %s", c.Gait)
	}
	c.Sprint(false)
	if c.Gait != GaitRunning {
		t.Fatalf("expected running after sprint release, got %s", c.Gait)
	}

	c.ToggleCrouch()
	if c.Jump(true) || c.Stance != StanceStanding {
		t.Fatalf("jump while crouched should stand up instead")
	}
	if !c.Jump(true) || !c.Jumping {
		t.Fatalf("expected a jump")
	}
	c.Jump(false)
	if c.Jumping {
		t.Fatalf("jump release should clear the flag")
	}
}

func nearVec(a, b common.Vec3) bool {
	return a.Sub(b).Length() < 1e-9
}

func TestMoveDirection(t *testing.T) {
	tests := []struct {
		name  string
		value common.Vec2
		yaw   float64
		want  common.Vec3
	}{
		{"forward", common.Vec2{Y: 1}, 0, common.Vec3{X: 1}},
		{"right", common.Vec2{X: 1}, 0, common.Vec3{Y: 1}},
		{"forward_rotated", common.Vec2{Y: 1}, 90, common.Vec3{Y: 1}},
		{"diagonal_clamped", common.Vec2{X: 1, Y: 1}, 0, common.Vec3{X: math.Sqrt2 / 2, Y: math.Sqrt2 / 2}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := MoveDirection(tc.value, tc.yaw); !nearVec(got, tc.want) {
				t.Fatalf("MoveDirection = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestLookDelta(t *testing.T) {
	s := LookSettings{MouseYawSensitivity: 0.5, MousePitchSensitivity: 0.5, YawRate: 100, PitchRate: 50}
	yaw, pitch := LookDelta(s, common.Vec2{X: 10, Y: 4}, common.Vec2{X: 1, Y: 1}, 0.1)
	if yaw != 15 || pitch != 3 {
		t.Fatalf("LookDelta = %v, %v", yaw, pitch)
	}
}

func TestApplyTopDown(t *testing.T) {
	rig := camera.NewRig(camera.DefaultSettings(), nil, nil)

	ApplyTopDown(rig, 1, common.Vec2{X: 1, Y: 1})
	if got := rig.TopDown().TargetDistance; got != 800 {
		t.Fatalf("orbit changed outside top-down: %v", got)
	}

	rig.SetViewMode(camera.ViewModeTopDown)
	ApplyTopDown(rig, 1, common.Vec2{X: 1, Y: 1})
	orbit := rig.TopDown()
	if orbit.TargetDistance != 700 {
		t.Fatalf("positive zoom should pull in, distance %v", orbit.TargetDistance)
	}
	if orbit.TargetYaw != 3 || orbit.TargetPitch != -57 {
		t.Fatalf("rotate gave yaw=%v pitch=%v", orbit.TargetYaw, orbit.TargetPitch)
	}
	if got := TopDownZoom(-2, rig.Settings().TopDown); got != 200 {
		t.Fatalf("TopDownZoom(-2) = %v", got)
	}
}
