package system

import (
	"github.com/milk9111/ringworld/ecs"
	"github.com/milk9111/ringworld/ecs/component"
	"github.com/milk9111/ringworld/physics"
)

const platformTolerance = 4

// PlatformSystem steps the moving platforms and carries riders with them.
type PlatformSystem struct {
	physics *physics.World
}

func NewPlatformSystem(world *physics.World) *PlatformSystem {
	return &PlatformSystem{physics: world}
}

func (s *PlatformSystem) Update(w *ecs.World) {
	if s == nil || s.physics == nil {
		return
	}
	dt := w.DeltaTime()
	s.physics.Step(dt)

	ecs.ForEach2(w, component.PlatformComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Platform, t *component.Transform) {
		if p, ok := s.physics.Platform(uint64(e)); ok {
			t.Location = p.Location()
		}
	})

	ecs.ForEach2(w, component.RiderComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, rider *component.Rider, t *component.Transform) {
		if rider.OnPlatform {
			if p, ok := s.physics.Platform(rider.PlatformID); ok {
				t.Location = t.Location.Add(p.Velocity().Scale(dt))
			}
		}

		feet := t.Location
		feet.Z -= rider.HalfHeight
		p, ok := s.physics.PlatformUnder(feet, platformTolerance)
		if !ok {
			rider.OnPlatform = false
			rider.PlatformID = 0
			return
		}
		rider.OnPlatform = true
		rider.PlatformID = p.ID
		t.Location.Z = p.Top + rider.HalfHeight
	})
}
