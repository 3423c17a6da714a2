package camera

import (
	"math"

	"github.com/milk9111/ringworld/common"
)

const (
	MinFieldOfView = 5.0
	MaxFieldOfView = 175.0
)

// ViewMode selects how the rig resolves its pose.
type ViewMode int

const (
	ViewModeThirdPerson ViewMode = iota
	ViewModeFirstPerson
	ViewModeTopDown
)

func (m ViewMode) String() string {
	switch m {
	case ViewModeThirdPerson:
		return "third_person"
	case ViewModeFirstPerson:
		return "first_person"
	case ViewModeTopDown:
		return "top_down"
	default:
		return "unknown"
	}
}

// Next cycles third person -> first person -> top down -> third person.
func (m ViewMode) Next() ViewMode {
	switch m {
	case ViewModeThirdPerson:
		return ViewModeFirstPerson
	case ViewModeFirstPerson:
		return ViewModeTopDown
	default:
		return ViewModeThirdPerson
	}
}

// ParseViewMode accepts the names produced by String.
func ParseViewMode(s string) (ViewMode, bool) {
	switch s {
	case "third_person":
		return ViewModeThirdPerson, true
	case "first_person":
		return ViewModeFirstPerson, true
	case "top_down":
		return ViewModeTopDown, true
	}
	return ViewModeThirdPerson, false
}

// Channel names a collision channel the sweep runs against.
type Channel string

const (
	ChannelVisibility Channel = "visibility"
	ChannelCamera     Channel = "camera"
)

type FirstPersonSettings struct {
	FieldOfView  float64 `yaml:"field_of_view" json:"field_of_view" jsonschema:"minimum=5,maximum=175"`
	CameraSocket string  `yaml:"camera_socket" json:"camera_socket"`
}

// TraceSettings controls the obstruction sweep shared by third person and top down.
type TraceSettings struct {
	Radius                  float64 `yaml:"radius" json:"radius" jsonschema:"minimum=0"`
	Channel                 Channel `yaml:"channel" json:"channel" jsonschema:"enum=visibility,enum=camera"`
	EnableDistanceSmoothing bool    `yaml:"enable_distance_smoothing" json:"enable_distance_smoothing"`
	DistanceSmoothingSpeed  float64 `yaml:"distance_smoothing_speed" json:"distance_smoothing_speed" jsonschema:"minimum=0"`
}

type ThirdPersonSettings struct {
	FieldOfView float64 `yaml:"field_of_view" json:"field_of_view" jsonschema:"minimum=5,maximum=175"`
	// FieldOfViewTraceOffset is added to the field of view when the trace pulls the camera fully in.
	FieldOfViewTraceOffset float64 `yaml:"field_of_view_trace_offset" json:"field_of_view_trace_offset"`

	PivotFirstSocket  string         `yaml:"pivot_first_socket" json:"pivot_first_socket"`
	PivotSecondSocket string         `yaml:"pivot_second_socket" json:"pivot_second_socket"`
	PivotOffset       common.Vec3    `yaml:"pivot_offset" json:"pivot_offset"`
	CameraOffset      common.Vec3    `yaml:"camera_offset" json:"camera_offset"`
	LocationLagSpeed  common.Vec3    `yaml:"location_lag_speed" json:"location_lag_speed"`
	RotationLagSpeed  common.Rotator `yaml:"rotation_lag_speed" json:"rotation_lag_speed"`

	TraceShoulderLeftSocket  string        `yaml:"trace_shoulder_left_socket" json:"trace_shoulder_left_socket"`
	TraceShoulderRightSocket string        `yaml:"trace_shoulder_right_socket" json:"trace_shoulder_right_socket"`
	TraceOverrideOffset      common.Vec3   `yaml:"trace_override_offset" json:"trace_override_offset"`
	Trace                    TraceSettings `yaml:"trace" json:"trace"`
}

type TopDownSettings struct {
	FieldOfView     float64 `yaml:"field_of_view" json:"field_of_view" jsonschema:"minimum=5,maximum=175"`
	Pitch           float64 `yaml:"pitch" json:"pitch" jsonschema:"maximum=0"`
	MinPitch        float64 `yaml:"min_pitch" json:"min_pitch" jsonschema:"maximum=0"`
	MaxPitch        float64 `yaml:"max_pitch" json:"max_pitch" jsonschema:"maximum=0"`
	MinDistance     float64 `yaml:"min_distance" json:"min_distance" jsonschema:"minimum=0"`
	DefaultDistance float64 `yaml:"default_distance" json:"default_distance" jsonschema:"minimum=0"`
	MaxDistance     float64 `yaml:"max_distance" json:"max_distance" jsonschema:"minimum=0"`

	YawSensitivity   float64 `yaml:"yaw_sensitivity" json:"yaw_sensitivity"`
	PitchSensitivity float64 `yaml:"pitch_sensitivity" json:"pitch_sensitivity"`
	ZoomSensitivity  float64 `yaml:"zoom_sensitivity" json:"zoom_sensitivity"`

	YawLagSpeed      float64 `yaml:"yaw_lag_speed" json:"yaw_lag_speed" jsonschema:"minimum=0"`
	PitchLagSpeed    float64 `yaml:"pitch_lag_speed" json:"pitch_lag_speed" jsonschema:"minimum=0"`
	ZoomLagSpeed     float64 `yaml:"zoom_lag_speed" json:"zoom_lag_speed" jsonschema:"minimum=0"`
	LocationLagSpeed float64 `yaml:"location_lag_speed" json:"location_lag_speed" jsonschema:"minimum=0"`

	// FixedWorldYaw keeps the orbit yaw in world space instead of following the pawn.
	FixedWorldYaw bool          `yaml:"fixed_world_yaw" json:"fixed_world_yaw"`
	PivotOffset   common.Vec3   `yaml:"pivot_offset" json:"pivot_offset"`
	Trace         TraceSettings `yaml:"trace" json:"trace"`
}

// Settings is the read-only rig configuration.
type Settings struct {
	TeleportDistanceThreshold      float64             `yaml:"teleport_distance_threshold" json:"teleport_distance_threshold" jsonschema:"minimum=0"`
	ResetTraceDistanceOnModeSwitch bool                `yaml:"reset_trace_distance_on_mode_switch" json:"reset_trace_distance_on_mode_switch"`
	FirstPerson                    FirstPersonSettings `yaml:"first_person" json:"first_person"`
	ThirdPerson                    ThirdPersonSettings `yaml:"third_person" json:"third_person"`
	TopDown                        TopDownSettings     `yaml:"top_down" json:"top_down"`
}

func DefaultSettings() Settings {
	return Settings{
		TeleportDistanceThreshold: 200,
		FirstPerson: FirstPersonSettings{
			FieldOfView:  90,
			CameraSocket: "FirstPersonCamera",
		},
		ThirdPerson: ThirdPersonSettings{
			FieldOfView:              90,
			FieldOfViewTraceOffset:   -10,
			PivotFirstSocket:         "root",
			PivotSecondSocket:        "head",
			CameraOffset:             common.Vec3{X: -250, Y: 50, Z: 10},
			LocationLagSpeed:         common.Vec3{X: 10, Y: 10, Z: 20},
			RotationLagSpeed:         common.Rotator{Pitch: 20, Yaw: 20, Roll: 20},
			TraceShoulderLeftSocket:  "ThirdPersonTraceShoulderLeft",
			TraceShoulderRightSocket: "ThirdPersonTraceShoulderRight",
			TraceOverrideOffset:      common.Vec3{Z: 40},
			Trace: TraceSettings{
				Radius:                  15,
				Channel:                 ChannelVisibility,
				EnableDistanceSmoothing: true,
				DistanceSmoothingSpeed:  3,
			},
		},
		TopDown: TopDownSettings{
			FieldOfView:      75,
			Pitch:            -60,
			MinPitch:         -85,
			MaxPitch:         -20,
			MinDistance:      500,
			DefaultDistance:  800,
			MaxDistance:      1500,
			YawSensitivity:   3,
			PitchSensitivity: 3,
			ZoomSensitivity:  100,
			YawLagSpeed:      10,
			PitchLagSpeed:    10,
			ZoomLagSpeed:     10,
			LocationLagSpeed: 10,
			FixedWorldYaw:    true,
			Trace: TraceSettings{
				Radius:                  15,
				Channel:                 ChannelVisibility,
				EnableDistanceSmoothing: true,
				DistanceSmoothingSpeed:  3,
			},
		},
	}
}

// Sanitized clamps out-of-range values instead of rejecting them.
func (s Settings) Sanitized() Settings {
	s.TeleportDistanceThreshold = nonNegative(s.TeleportDistanceThreshold)

	s.FirstPerson.FieldOfView = ClampFieldOfView(s.FirstPerson.FieldOfView)

	tp := &s.ThirdPerson
	tp.FieldOfView = ClampFieldOfView(tp.FieldOfView)
	tp.LocationLagSpeed = common.Vec3{
		X: nonNegative(tp.LocationLagSpeed.X),
		Y: nonNegative(tp.LocationLagSpeed.Y),
		Z: nonNegative(tp.LocationLagSpeed.Z),
	}
	tp.RotationLagSpeed = common.Rotator{
		Pitch: nonNegative(tp.RotationLagSpeed.Pitch),
		Yaw:   nonNegative(tp.RotationLagSpeed.Yaw),
		Roll:  nonNegative(tp.RotationLagSpeed.Roll),
	}
	tp.Trace = tp.Trace.sanitized()

	td := &s.TopDown
	td.FieldOfView = ClampFieldOfView(td.FieldOfView)
	td.MinPitch = math.Min(td.MinPitch, 0)
	td.MaxPitch = math.Min(td.MaxPitch, 0)
	if td.MinPitch > td.MaxPitch {
		td.MinPitch, td.MaxPitch = td.MaxPitch, td.MinPitch
	}
	td.MinPitch = math.Max(td.MinPitch, -89.9)
	td.Pitch = common.Clamp(td.Pitch, td.MinPitch, td.MaxPitch)

	td.MinDistance = nonNegative(td.MinDistance)
	td.MaxDistance = nonNegative(td.MaxDistance)
	if td.MinDistance > td.MaxDistance {
		td.MinDistance, td.MaxDistance = td.MaxDistance, td.MinDistance
	}
	td.DefaultDistance = common.Clamp(td.DefaultDistance, td.MinDistance, td.MaxDistance)

	td.YawLagSpeed = nonNegative(td.YawLagSpeed)
	td.PitchLagSpeed = nonNegative(td.PitchLagSpeed)
	td.ZoomLagSpeed = nonNegative(td.ZoomLagSpeed)
	td.LocationLagSpeed = nonNegative(td.LocationLagSpeed)
	td.Trace = td.Trace.sanitized()

	return s
}

func (t TraceSettings) sanitized() TraceSettings {
	t.Radius = nonNegative(t.Radius)
	t.DistanceSmoothingSpeed = nonNegative(t.DistanceSmoothingSpeed)
	if t.Channel == "" {
		t.Channel = ChannelVisibility
	}
	return t
}

// ClampFieldOfView limits a field of view to [5, 175] degrees. NaN maps to 90.
func ClampFieldOfView(fov float64) float64 {
	if math.IsNaN(fov) {
		return 90
	}
	return common.Clamp(fov, MinFieldOfView, MaxFieldOfView)
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}
