package system

import (
	"log"

	"github.com/milk9111/ringworld/common"
	"github.com/milk9111/ringworld/ecs"
	"github.com/milk9111/ringworld/ecs/component"
	"github.com/milk9111/ringworld/script"
	"github.com/milk9111/ringworld/selection"
	"github.com/milk9111/ringworld/tags"
)

// UnitRegistry exposes the world's units to the selection service. Entity
// handles double as selection handles, so a destroyed unit stops resolving.
type UnitRegistry struct {
	world *ecs.World
}

func NewUnitRegistry(w *ecs.World) *UnitRegistry {
	return &UnitRegistry{world: w}
}

func (r *UnitRegistry) Actors() []selection.Actor {
	var out []selection.Actor
	ecs.ForEach2(r.world, component.UnitComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, u *component.Unit, t *component.Transform) {
		out = append(out, &unitActor{world: r.world, entity: e, unit: u, transform: t})
	})
	return out
}

func (r *UnitRegistry) Lookup(h selection.Handle) (selection.Actor, bool) {
	e, ok := ecs.Lookup(r.world, uint64(h))
	if !ok {
		return nil, false
	}
	u, ok := ecs.Get(r.world, e, component.UnitComponent.Kind())
	if !ok {
		return nil, false
	}
	t, ok := ecs.Get(r.world, e, component.TransformComponent.Kind())
	if !ok {
		return nil, false
	}
	return &unitActor{world: r.world, entity: e, unit: u, transform: t}, true
}

type unitActor struct {
	world     *ecs.World
	entity    ecs.Entity
	unit      *component.Unit
	transform *component.Transform
}

func (a *unitActor) Handle() selection.Handle {
	return selection.Handle(a.entity)
}

func (a *unitActor) Location() common.Vec3 {
	return a.transform.Location
}

func (a *unitActor) Bounds() selection.Box {
	return selection.BoxAround(a.transform.Location, a.unit.HalfExtent)
}

func (a *unitActor) ActorTags() tags.Names {
	return a.unit.ActorTags
}

func (a *unitActor) AbilityTags() tags.Container {
	return a.unit.AbilityTags
}

// IsSelectable rejects locked and dead units, then defers to the unit's
// rule when it has one.
func (a *unitActor) IsSelectable(controller selection.ControllerID) bool {
	if a.unit.Locked {
		return false
	}
	var health, maxHealth float64
	if v, ok := ecs.Get(a.world, a.entity, component.VitalityComponent.Kind()); ok && v.Set != nil {
		if v.Set.Dead() {
			return false
		}
		health, maxHealth = v.Set.Vitality().Health, v.Set.Vitality().MaxHealth
	}
	if a.unit.Rule == nil {
		return true
	}
	ok, err := a.unit.Rule.Selectable(string(controller), script.Unit{
		Name:      a.unit.Name,
		Team:      a.unit.Team,
		Owner:     a.unit.Owner,
		Tags:      a.unit.ActorTags,
		Health:    health,
		MaxHealth: maxHealth,
	})
	if err != nil {
		log.Printf("selection: unit %s rule %s: %v", a.unit.Name, a.unit.Rule.Name(), err)
		return false
	}
	return ok
}

func (a *unitActor) OnSelected(controller selection.ControllerID) {
	sel, ok := ecs.Get(a.world, a.entity, component.SelectedComponent.Kind())
	if !ok {
		sel = &component.Selected{By: make(map[selection.ControllerID]bool)}
		if err := ecs.Add(a.world, a.entity, component.SelectedComponent.Kind(), sel); err != nil {
			log.Printf("selection: mark %s selected: %v", a.entity, err)
			return
		}
	}
	sel.By[controller] = true
	a.syncBar(true)
	a.world.Events().Push(ecs.Event{Type: ecs.EventSelected, Entity: a.entity, Data: controller})
}

func (a *unitActor) OnDeselected(controller selection.ControllerID) {
	still := false
	if sel, ok := ecs.Get(a.world, a.entity, component.SelectedComponent.Kind()); ok {
		delete(sel.By, controller)
		if len(sel.By) == 0 {
			ecs.Remove(a.world, a.entity, component.SelectedComponent.Kind())
		} else {
			still = true
		}
	}
	a.syncBar(still)
	a.world.Events().Push(ecs.Event{Type: ecs.EventDeselected, Entity: a.entity, Data: controller})
}

func (a *unitActor) syncBar(selected bool) {
	if hb, ok := ecs.Get(a.world, a.entity, component.HealthBarComponent.Kind()); ok && hb.Bar != nil {
		hb.Bar.SetSelected(selected)
	}
}

// MirrorSelection applies a selection change decided elsewhere, such as a
// remote server, to the local units. Unknown handles are skipped.
func (r *UnitRegistry) MirrorSelection(controller selection.ControllerID, added, removed []selection.Handle) {
	for _, h := range removed {
		if a, ok := r.Lookup(h); ok {
			a.(*unitActor).OnDeselected(controller)
		}
	}
	for _, h := range added {
		if a, ok := r.Lookup(h); ok {
			a.(*unitActor).OnSelected(controller)
		}
	}
}

// ReconcileSelection makes controller's selection on the local units match
// selected exactly, whatever earlier results were missed.
func (r *UnitRegistry) ReconcileSelection(controller selection.ControllerID, selected []selection.Handle) {
	want := make(map[selection.Handle]bool, len(selected))
	for _, h := range selected {
		want[h] = true
	}
	var added, removed []selection.Handle
	ecs.ForEach(r.world, component.SelectedComponent.Kind(), func(e ecs.Entity, sel *component.Selected) {
		h := selection.Handle(e)
		if !sel.By[controller] {
			return
		}
		if want[h] {
			delete(want, h)
			return
		}
		removed = append(removed, h)
	})
	for _, h := range selected {
		if want[h] {
			added = append(added, h)
		}
	}
	r.MirrorSelection(controller, added, removed)
}
