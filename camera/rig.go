package camera

import (
	"fmt"
	"strings"

	"github.com/milk9111/ringworld/common"
)

// Rig owns a camera State and resolves it once per frame against a pose provider.
type Rig struct {
	resolver Resolver
	state    State
	pose     PoseProvider
}

func NewRig(settings Settings, sweeper Sweeper, pose PoseProvider) *Rig {
	settings = settings.Sanitized()
	return &Rig{
		resolver: Resolver{Settings: settings, Sweeper: sweeper},
		state:    NewState(settings),
		pose:     pose,
	}
}

func (r *Rig) Settings() Settings {
	return r.resolver.Settings
}

// SetSettings swaps the configuration; the current state is kept and re-clamped.
func (r *Rig) SetSettings(settings Settings) {
	settings = settings.Sanitized()
	r.resolver.Settings = settings
	r.state.TopDown.SetSettings(settings.TopDown)
}

func (r *Rig) SetSweeper(sweeper Sweeper) {
	r.resolver.Sweeper = sweeper
}

func (r *Rig) State() State {
	return r.state
}

// Tick resolves the next frame and returns the view to render.
func (r *Rig) Tick(dt float64, allowLag bool) ViewInfo {
	if r.pose == nil {
		return r.state.ViewInfo()
	}
	r.state = r.resolver.Resolve(r.state, r.pose.CameraPose(), dt, allowLag)
	return r.state.ViewInfo()
}

func (r *Rig) ViewInfo() ViewInfo {
	return r.state.ViewInfo()
}

func (r *Rig) ViewMode() ViewMode {
	return r.state.Mode
}

// SetViewMode switches modes. Entering top down with a collapsed orbit
// frames the camera at the default distance.
func (r *Rig) SetViewMode(mode ViewMode) {
	if mode == ViewModeTopDown && r.state.TopDown.Distance <= common.KindaSmallNumber {
		r.state.TopDown.SetDistance(r.resolver.Settings.TopDown.DefaultDistance)
	}
	r.state.Mode = mode
}

func (r *Rig) CycleViewMode() ViewMode {
	r.SetViewMode(r.state.Mode.Next())
	return r.state.Mode
}

func (r *Rig) IsRightShoulder() bool {
	return r.state.RightShoulder
}

func (r *Rig) SetRightShoulder(right bool) {
	r.state.RightShoulder = right
}

func (r *Rig) SwitchShoulder() {
	r.state.RightShoulder = !r.state.RightShoulder
}

func (r *Rig) IsFieldOfViewOverridden() bool {
	return r.state.Overrides.FieldOfViewOverridden
}

func (r *Rig) SetFieldOfViewOverridden(overridden bool) {
	r.state.Overrides.FieldOfViewOverridden = overridden
}

func (r *Rig) FieldOfViewOverride() float64 {
	return r.state.Overrides.FieldOfView
}

// SetFieldOfViewOverride stores the manual field of view clamped to [5, 175].
func (r *Rig) SetFieldOfViewOverride(fov float64) {
	r.state.Overrides.FieldOfView = ClampFieldOfView(fov)
}

func (r *Rig) PostProcessWeight() float64 {
	return r.state.Overrides.PostProcessWeight
}

func (r *Rig) SetPostProcessWeight(weight float64) {
	r.state.Overrides.PostProcessWeight = common.Clamp01(weight)
}

// TopDown exposes the orbit controller for input and scripted framing.
func (r *Rig) TopDown() *Orbit {
	return &r.state.TopDown
}

// Projection builds the screen mapping for the last resolved view.
func (r *Rig) Projection(viewport Viewport) (Projection, error) {
	return NewProjection(r.state.ViewInfo(), viewport)
}

// DebugString summarises the rig state, one field per line.
func (r *Rig) DebugString() string {
	s := r.state
	var b strings.Builder
	fmt.Fprintf(&b, "mode: %s\n", s.Mode)
	fmt.Fprintf(&b, "location: %.1f %.1f %.1f\n", s.CameraLocation.X, s.CameraLocation.Y, s.CameraLocation.Z)
	fmt.Fprintf(&b, "rotation: p=%.1f y=%.1f r=%.1f\n", s.CameraRotation.Pitch, s.CameraRotation.Yaw, s.CameraRotation.Roll)
	fmt.Fprintf(&b, "pivot: %.1f %.1f %.1f\n", s.PivotLocation.X, s.PivotLocation.Y, s.PivotLocation.Z)
	fmt.Fprintf(&b, "fov: %.2f\n", s.FieldOfView)
	fmt.Fprintf(&b, "trace ratio: %.3f blocked=%t\n", s.TraceDistanceRatio, s.TraceBlocked)
	fmt.Fprintf(&b, "right shoulder: %t\n", s.RightShoulder)
	if s.Mode == ViewModeTopDown {
		fmt.Fprintf(&b, "orbit: yaw=%.1f/%.1f pitch=%.1f/%.1f dist=%.1f/%.1f\n",
			s.TopDown.Yaw, s.TopDown.TargetYaw,
			s.TopDown.Pitch, s.TopDown.TargetPitch,
			s.TopDown.Distance, s.TopDown.TargetDistance)
	}
	return b.String()
}
