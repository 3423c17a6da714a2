package system

import (
	"github.com/milk9111/ringworld/ecs"
	"github.com/milk9111/ringworld/ecs/component"
)

// CameraSystem resolves every rig once per step. It runs after movement so
// the rig reads this frame's pose.
type CameraSystem struct {
	AllowLag bool
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{AllowLag: true}
}

func (s *CameraSystem) Update(w *ecs.World) {
	dt := w.DeltaTime()
	ecs.ForEach(w, component.CameraRigComponent.Kind(), func(e ecs.Entity, cr *component.CameraRig) {
		if cr.Rig == nil {
			return
		}
		cr.Rig.Tick(dt, s.AllowLag)
	})
}
