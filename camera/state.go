package camera

import "github.com/milk9111/ringworld/common"

// MovementBase is the surface the pawn is standing on.
type MovementBase struct {
	ID       uint64
	Location common.Vec3
	Rotation common.Quat
}

func (b MovementBase) transform() common.Transform {
	return common.Transform{Location: b.Location, Rotation: b.Rotation}
}

// Pose is the per-frame snapshot the resolver reads from the pawn.
type Pose struct {
	Location     common.Vec3
	Rotation     common.Rotator
	ViewRotation common.Rotator
	Sockets      map[string]common.Vec3
	// Base is nil when the pawn is airborne or on static geometry.
	Base *MovementBase
}

func (p Pose) Socket(name string) (common.Vec3, bool) {
	if name == "" || p.Sockets == nil {
		return common.Vec3{}, false
	}
	v, ok := p.Sockets[name]
	return v, ok
}

// PoseProvider exposes the controlled pawn to the rig.
type PoseProvider interface {
	CameraPose() Pose
}

// Overrides holds the manual values set through the rig setters.
type Overrides struct {
	FieldOfViewOverridden bool
	FieldOfView           float64
	PostProcessWeight     float64
}

// State is everything the resolver carries from one frame to the next.
type State struct {
	Mode          ViewMode
	RightShoulder bool

	PivotTarget   common.Vec3
	PivotLag      common.Vec3
	PivotLocation common.Vec3

	CameraTargetRotation common.Rotator
	CameraLocation       common.Vec3
	CameraRotation       common.Rotator
	FieldOfView          float64

	TraceDistanceRatio float64
	TraceStart         common.Vec3
	TraceBlocked       bool

	TopDown Orbit

	BaseID            uint64
	HasBase           bool
	PivotLagRelative  common.Vec3
	RotationRelative  common.Quat
	LastActorLocation common.Vec3
	Overrides         Overrides

	initialized  bool
	resolvedMode ViewMode
}

// NewState creates the state a rig starts with.
func NewState(settings Settings) State {
	return State{
		Mode:               ViewModeThirdPerson,
		RightShoulder:      true,
		FieldOfView:        settings.ThirdPerson.FieldOfView,
		TraceDistanceRatio: 1,
		TopDown:            NewOrbit(settings.TopDown),
		RotationRelative:   common.IdentityQuat,
		Overrides: Overrides{
			FieldOfView: 90,
		},
	}
}

// Initialized reports whether the state has been resolved at least once.
func (s State) Initialized() bool {
	return s.initialized
}

// ViewInfo is what the renderer pulls once per frame.
type ViewInfo struct {
	Location          common.Vec3
	Rotation          common.Rotator
	FieldOfView       float64
	PostProcessWeight float64
}

func (s State) ViewInfo() ViewInfo {
	return ViewInfo{
		Location:          s.CameraLocation,
		Rotation:          s.CameraRotation,
		FieldOfView:       s.FieldOfView,
		PostProcessWeight: s.Overrides.PostProcessWeight,
	}
}
