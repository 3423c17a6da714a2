package system

import (
	"github.com/milk9111/ringworld/camera"
	"github.com/milk9111/ringworld/ecs"
	"github.com/milk9111/ringworld/ecs/component"
	"github.com/milk9111/ringworld/physics"
)

// EntityPose exposes an entity to a camera rig as its pose provider.
type EntityPose struct {
	World   *ecs.World
	Entity  ecs.Entity
	Physics *physics.World
}

func (p EntityPose) CameraPose() camera.Pose {
	var pose camera.Pose
	t, ok := ecs.Get(p.World, p.Entity, component.TransformComponent.Kind())
	if !ok {
		return pose
	}
	pose.Location = t.Location
	pose.Rotation = t.Rotation
	pose.ViewRotation = t.Rotation

	if ctrl, ok := ecs.Get(p.World, p.Entity, component.ControlComponent.Kind()); ok {
		pose.ViewRotation = ctrl.ViewRotation
	}
	if sockets, ok := ecs.Get(p.World, p.Entity, component.SocketsComponent.Kind()); ok {
		pose.Sockets = sockets.World(*t)
	}
	if rider, ok := ecs.Get(p.World, p.Entity, component.RiderComponent.Kind()); ok && rider.OnPlatform {
		if platform, ok := p.Physics.Platform(rider.PlatformID); ok {
			base := platform.Base()
			pose.Base = &base
		}
	}
	return pose
}
