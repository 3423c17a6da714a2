package selection

import (
	"github.com/milk9111/ringworld/common"
	"github.com/milk9111/ringworld/tags"
)

// Handle is a non-owning reference to a selectable entity. It may go stale;
// always resolve it through a Registry before use.
type Handle uint64

// ControllerID identifies the controller that owns a selection set.
type ControllerID string

// Box is a world-space axis-aligned bounding box.
type Box struct {
	Min common.Vec3
	Max common.Vec3
}

func BoxAround(center, halfExtent common.Vec3) Box {
	return Box{Min: center.Sub(halfExtent), Max: center.Add(halfExtent)}
}

func (b Box) Center() common.Vec3 {
	return common.LerpVec3(b.Min, b.Max, 0.5)
}

func (b Box) HalfExtent() common.Vec3 {
	return b.Max.Sub(b.Min).Scale(0.5)
}

// Actor is anything the selection engine can test geometrically.
type Actor interface {
	Handle() Handle
	Location() common.Vec3
	Bounds() Box
}

// Selectable is the capability an actor must expose to be selected.
type Selectable interface {
	IsSelectable(controller ControllerID) bool
	OnSelected(controller ControllerID)
	OnDeselected(controller ControllerID)
}

// ActorTagged exposes flat actor name tags.
type ActorTagged interface {
	ActorTags() tags.Names
}

// AbilityTagged exposes the gameplay tags owned by the actor's ability system.
type AbilityTagged interface {
	AbilityTags() tags.Container
}

// Registry enumerates live actors and resolves handles.
type Registry interface {
	Actors() []Actor
	Lookup(h Handle) (Actor, bool)
}
