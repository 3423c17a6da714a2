package system

import (
	"github.com/milk9111/ringworld/camera"
	"github.com/milk9111/ringworld/common"
	"github.com/milk9111/ringworld/ecs"
	"github.com/milk9111/ringworld/ecs/component"
)

// aimRadius is how close to the viewport centre, in pixels, a unit must
// project to take aim focus.
const aimRadius = 48

// HealthBarSystem feeds vitality into the floating bars and moves aim focus
// to the unit under the player's crosshair while aiming.
type HealthBarSystem struct {
	focused ecs.Entity
}

func NewHealthBarSystem() *HealthBarSystem {
	return &HealthBarSystem{}
}

func (s *HealthBarSystem) Update(w *ecs.World) {
	s.updateFocus(w, s.aimTarget(w))

	dt := w.DeltaTime()
	ecs.ForEach(w, component.HealthBarComponent.Kind(), func(e ecs.Entity, hb *component.HealthBar) {
		if hb.Bar == nil {
			return
		}
		if v, ok := ecs.Get(w, e, component.VitalityComponent.Kind()); ok && v.Set != nil {
			hb.Bar.SetVitality(v.Set.Vitality())
		} else {
			hb.Bar.ClearSource()
		}
		hb.Bar.Tick(dt)
	})
}

func (s *HealthBarSystem) updateFocus(w *ecs.World, target ecs.Entity) {
	if target == s.focused {
		return
	}
	if hb, ok := ecs.Get(w, s.focused, component.HealthBarComponent.Kind()); ok && hb.Bar != nil {
		hb.Bar.AimFocusLost(-1)
	}
	if hb, ok := ecs.Get(w, target, component.HealthBarComponent.Kind()); ok && hb.Bar != nil {
		hb.Bar.AimFocusGained()
	}
	s.focused = target
}

// aimTarget returns the unit projecting closest to the centre of the
// aiming player's viewport, or zero.
func (s *HealthBarSystem) aimTarget(w *ecs.World) ecs.Entity {
	var proj camera.Projection
	aiming := false
	ecs.ForEach3(w, component.PlayerComponent.Kind(), component.ControlComponent.Kind(), component.CameraRigComponent.Kind(), func(e ecs.Entity, _ *component.Player, ctrl *component.Control, cr *component.CameraRig) {
		if aiming || !ctrl.Character.Aiming || cr.Rig == nil {
			return
		}
		p, err := cr.Rig.Projection(cr.Viewport)
		if err != nil {
			return
		}
		proj = p
		aiming = true
	})
	if !aiming {
		return 0
	}

	center := common.Vec2{X: proj.Viewport.Width / 2, Y: proj.Viewport.Height / 2}
	best := ecs.Entity(0)
	bestDist := float64(aimRadius)
	ecs.ForEach2(w, component.UnitComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Unit, t *component.Transform) {
		p, ok := proj.Project(t.Location)
		if !ok {
			return
		}
		if d := p.Sub(center).Length(); d <= bestDist {
			best, bestDist = e, d
		}
	})
	return best
}
