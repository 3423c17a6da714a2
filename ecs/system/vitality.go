package system

import (
	"log"

	"github.com/milk9111/ringworld/ecs"
	"github.com/milk9111/ringworld/ecs/component"
)

// VitalitySystem ticks regeneration and timed effects and reports deaths.
type VitalitySystem struct {
	dead map[ecs.Entity]bool
}

func NewVitalitySystem() *VitalitySystem {
	return &VitalitySystem{dead: make(map[ecs.Entity]bool)}
}

func (s *VitalitySystem) Update(w *ecs.World) {
	dt := w.DeltaTime()
	ecs.ForEach(w, component.VitalityComponent.Kind(), func(e ecs.Entity, v *component.Vitality) {
		if v.Set == nil {
			return
		}
		v.Set.Tick(dt)

		dead := v.Set.Dead()
		if dead && !s.dead[e] {
			log.Printf("attributes: %s died", e)
			w.Events().Push(ecs.Event{Type: ecs.EventDied, Entity: e})
		}
		if dead {
			s.dead[e] = true
		} else {
			delete(s.dead, e)
		}
	})

	for e := range s.dead {
		if !ecs.IsAlive(w, e) {
			delete(s.dead, e)
		}
	}
}
