package component

import (
	"github.com/milk9111/ringworld/attributes"
	"github.com/milk9111/ringworld/common"
	"github.com/milk9111/ringworld/hud"
	"github.com/milk9111/ringworld/script"
	"github.com/milk9111/ringworld/selection"
	"github.com/milk9111/ringworld/tags"
)

// Unit is an actor the marquee can select.
type Unit struct {
	Name        string
	Team        string
	Owner       string
	HalfExtent  common.Vec3
	ActorTags   tags.Names
	AbilityTags tags.Container
	Locked      bool
	Rule        *script.Rule
}

var UnitComponent = NewComponent[Unit]()

// Selected lists the controllers that currently hold this entity.
type Selected struct {
	By map[selection.ControllerID]bool
}

var SelectedComponent = NewComponent[Selected]()

type Vitality struct {
	Set *attributes.Set
}

var VitalityComponent = NewComponent[Vitality]()

type HealthBar struct {
	Bar *hud.HealthBar
	// Offset above the transform where the bar is anchored.
	Offset common.Vec3
}

var HealthBarComponent = NewComponent[HealthBar]()

// Scenery is static geometry registered with the physics world.
type Scenery struct {
	Min, Max common.Vec3
}

var SceneryComponent = NewComponent[Scenery]()

// Platform mirrors a moving physics platform. The physics world is keyed
// by the entity handle; HalfExtent sizes it for drawing.
type Platform struct {
	HalfExtent common.Vec3
}

var PlatformComponent = NewComponent[Platform]()
