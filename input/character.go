package input

import (
	"github.com/milk9111/ringworld/camera"
	"github.com/milk9111/ringworld/common"
)

type Gait int

const (
	GaitRunning Gait = iota
	GaitWalking
	GaitSprinting
)

func (g Gait) String() string {
	switch g {
	case GaitWalking:
		return "walking"
	case GaitSprinting:
		return "sprinting"
	}
	return "running"
}

type Stance int

const (
	StanceStanding Stance = iota
	StanceCrouching
)

func (s Stance) String() string {
	if s == StanceCrouching {
		return "crouching"
	}
	return "standing"
}

// LookSettings scales look input. Mouse values are per pixel of movement,
// rates are degrees per second at full stick deflection.
type LookSettings struct {
	MouseYawSensitivity   float64 `yaml:"mouse_yaw_sensitivity"`
	MousePitchSensitivity float64 `yaml:"mouse_pitch_sensitivity"`
	YawRate               float64 `yaml:"yaw_rate"`
	PitchRate             float64 `yaml:"pitch_rate"`
}

func DefaultLookSettings() LookSettings {
	return LookSettings{
		MouseYawSensitivity:   0.2,
		MousePitchSensitivity: 0.2,
		YawRate:               240,
		PitchRate:             130,
	}
}

// Character holds the locomotion intent driven by player input.
type Character struct {
	Gait    Gait
	Stance  Stance
	Aiming  bool
	Jumping bool
}

// Sprint sets the desired gait while the sprint input is held.
func (c *Character) Sprint(held bool) {
	if held {
		c.Gait = GaitSprinting
		return
	}
	c.Gait = GaitRunning
}

// ToggleWalk flips between walking and running. Sprinting is left alone.
func (c *Character) ToggleWalk() {
	switch c.Gait {
	case GaitWalking:
		c.Gait = GaitRunning
	case GaitRunning:
		c.Gait = GaitWalking
	}
}

func (c *Character) ToggleCrouch() {
	if c.Stance == StanceStanding {
		c.Stance = StanceCrouching
		return
	}
	c.Stance = StanceStanding
}

// Jump handles the jump input. Pressing it while crouched stands up instead
// of jumping. It reports whether a jump started.
func (c *Character) Jump(pressed bool) bool {
	if !pressed {
		c.Jumping = false
		return false
	}
	if c.Stance == StanceCrouching {
		c.Stance = StanceStanding
		return false
	}
	c.Jumping = true
	return true
}

// MoveDirection maps a 2D move input onto the ground plane. Input Y is
// forward along yaw and input X is to the right of it. In top-down the yaw
// is the camera's, which keeps movement screen-relative.
func MoveDirection(value common.Vec2, yaw float64) common.Vec3 {
	v := value.ClampMagnitude01()
	forward := common.AngleToDirectionXY(yaw)
	right := common.AngleToDirectionXY(yaw + 90)
	return forward.Scale(v.Y).Add(right.Scale(v.X))
}

// LookDelta combines mouse movement and stick rate into a yaw and pitch
// change in degrees. Screen Y grows downwards, so mouse Y is inverted.
func LookDelta(s LookSettings, mouse, stick common.Vec2, dt float64) (yaw, pitch float64) {
	yaw = mouse.X*s.MouseYawSensitivity + stick.X*s.YawRate*dt
	pitch = -mouse.Y*s.MousePitchSensitivity + stick.Y*s.PitchRate*dt
	return yaw, pitch
}

// TopDownZoom converts a zoom axis into an orbit distance change. Positive
// input zooms in.
func TopDownZoom(value float64, s camera.TopDownSettings) float64 {
	return -value * s.ZoomSensitivity
}

// TopDownRotate converts a 2D rotate input into yaw and pitch changes.
func TopDownRotate(value common.Vec2, s camera.TopDownSettings) (yaw, pitch float64) {
	return value.X * s.YawSensitivity, value.Y * s.PitchSensitivity
}

// ApplyTopDown feeds zoom and rotate input into the rig's orbit. It does
// nothing outside top-down.
func ApplyTopDown(rig *camera.Rig, zoom float64, rotate common.Vec2) {
	if rig.ViewMode() != camera.ViewModeTopDown {
		return
	}
	s := rig.Settings().TopDown
	orbit := rig.TopDown()
	if zoom != 0 {
		orbit.AddZoom(TopDownZoom(zoom, s))
	}
	if rotate.X != 0 || rotate.Y != 0 {
		yaw, pitch := TopDownRotate(rotate, s)
		orbit.AddYaw(yaw)
		orbit.AddPitch(pitch)
	}
}
