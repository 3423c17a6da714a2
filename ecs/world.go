package ecs

import "github.com/milk9111/ringworld/ecs/component"

type System interface {
	Update(w *World)
}

type store interface {
	remove(id entityID) bool
}

func (s *SparseSet[T]) remove(id entityID) bool {
	return s.Remove(id)
}

// World owns entities, their components and the frame event queue.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]store
	events   EventQueue
	dt       float64
	frame    uint64
}

func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]store)}
}

func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity removes e and all its components. Stale handles return false.
func DestroyEntity(w *World, e Entity) bool {
	if !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e.id())
	}
	return w.entities.destroy(e)
}

func IsAlive(w *World, e Entity) bool {
	return w.entities.isAlive(e)
}

// Entities returns every live entity in slot order.
func Entities(w *World) []Entity {
	out := make([]Entity, 0, w.entities.count)
	for i := range w.entities.gens {
		if e, ok := w.entities.current(entityID(i + 1)); ok {
			out = append(out, e)
		}
	}
	return out
}

// Lookup resolves a raw handle, reporting false once the entity is gone.
func Lookup(w *World, raw uint64) (Entity, bool) {
	e := Entity(raw)
	return e, w.entities.isAlive(e)
}

func (w *World) Events() *EventQueue {
	return &w.events
}

// DeltaTime is the step the scheduler is currently running.
func (w *World) DeltaTime() float64 {
	return w.dt
}

func (w *World) Frame() uint64 {
	return w.frame
}

func storeFor[T any](w *World, kind component.ComponentKind[T], create bool) *SparseSet[T] {
	s, ok := w.stores[kind.ID()]
	if !ok {
		if !create {
			return nil
		}
		set := &SparseSet[T]{}
		w.stores[kind.ID()] = set
		return set
	}
	set, _ := s.(*SparseSet[T])
	return set
}

func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	storeFor(w, kind, true).Set(e.id(), value)
	return nil
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if !w.entities.isAlive(e) {
		return nil, false
	}
	s := storeFor(w, kind, false)
	if s == nil {
		return nil, false
	}
	v := s.Get(e.id())
	return v, v != nil
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	_, ok := Get(w, e, kind)
	return ok
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if !w.entities.isAlive(e) {
		return false
	}
	s := storeFor(w, kind, false)
	return s != nil && s.Remove(e.id())
}

// First returns any live entity carrying kind.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	s := storeFor(w, kind, false)
	if s == nil {
		return 0, false
	}
	for _, id := range s.denseIDs {
		if e, ok := w.entities.current(id); ok {
			return e, true
		}
	}
	return 0, false
}
