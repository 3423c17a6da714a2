package component

import (
	"github.com/milk9111/ringworld/camera"
	"github.com/milk9111/ringworld/common"
	"github.com/milk9111/ringworld/input"
	"github.com/milk9111/ringworld/selection"
)

// Player marks the locally controlled character.
type Player struct {
	Controller  selection.ControllerID
	MoveSpeed   float64
	WalkSpeed   float64
	SprintSpeed float64
}

var PlayerComponent = NewComponent[Player]()

// Control is the character's view rotation and locomotion intent.
type Control struct {
	ViewRotation common.Rotator
	Move         common.Vec3
	Character    input.Character
}

var ControlComponent = NewComponent[Control]()

// CameraRig attaches the multi-mode camera to an entity.
type CameraRig struct {
	Rig      *camera.Rig
	Viewport camera.Viewport
	Debug    bool
}

var CameraRigComponent = NewComponent[CameraRig]()

// Marquee holds the client-side drag for the local controller.
type Marquee struct {
	Drag selection.Marquee
}

var MarqueeComponent = NewComponent[Marquee]()

// Rider records the moving platform an entity stands on. HalfHeight is the
// distance from the transform down to the feet.
type Rider struct {
	HalfHeight float64
	PlatformID uint64
	OnPlatform bool
}

var RiderComponent = NewComponent[Rider]()
