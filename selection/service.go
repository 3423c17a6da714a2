package selection

import (
	"log"
	"sync"

	"github.com/milk9111/ringworld/camera"
	"github.com/milk9111/ringworld/tags"
)

type Config struct {
	Strategy Strategy
	Policy   TagPolicy
	Logger   *log.Logger
}

// Service is the authoritative owner of every controller's selection.
// Each controller's set has its own lock; resolutions for different
// controllers never wait on each other.
type Service struct {
	registry Registry
	strategy Strategy
	policy   TagPolicy
	logger   *log.Logger

	mu   sync.Mutex
	sets map[ControllerID]*controllerSet
}

type controllerSet struct {
	mu  sync.Mutex
	set Set
}

func NewService(registry Registry, cfg Config) *Service {
	if cfg.Strategy == nil {
		cfg.Strategy = FrustumStrategy{}
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	return &Service{
		registry: registry,
		strategy: cfg.Strategy,
		policy:   cfg.Policy,
		logger:   cfg.Logger,
		sets:     make(map[ControllerID]*controllerSet),
	}
}

func (s *Service) Strategy() Strategy {
	return s.strategy
}

// Resolve runs one marquee request for controller against the view in proj.
// Failures are logged and leave the selection untouched. The returned diff
// lists the notifications that were actually delivered.
func (s *Service) Resolve(controller ControllerID, proj camera.Projection, req Request) Diff {
	rect := req.Rect()
	if rect.Degenerate() {
		s.logger.Printf("selection: controller=%s degenerate marquee %.1fx%.1f, ignoring", controller, rect.Width(), rect.Height())
		return Diff{}
	}

	candidates, err := s.strategy.Candidates(proj, rect, s.registry.Actors())
	if err != nil {
		s.logger.Printf("selection: controller=%s %s strategy: %v", controller, s.strategy.Name(), err)
		return Diff{}
	}

	filter := Filter{
		ActorTags:   req.ActorTags,
		AbilityTags: tags.Parse(req.AbilityTags...),
		Policy:      s.policy,
	}
	matched := make([]Handle, 0, len(candidates))
	for _, a := range candidates {
		if filter.Match(controller, a) {
			matched = append(matched, a.Handle())
		}
	}

	cs := s.setFor(controller)
	cs.mu.Lock()
	diff := cs.set.Apply(matched, req.Mode())
	cs.mu.Unlock()

	return s.dispatch(controller, cs, diff)
}

// Selected returns the handles currently selected by controller.
func (s *Service) Selected(controller ControllerID) []Handle {
	cs := s.lookupSet(controller)
	if cs == nil {
		return nil
	}
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.set.Handles()
}

func (s *Service) IsSelected(controller ControllerID, h Handle) bool {
	cs := s.lookupSet(controller)
	if cs == nil {
		return false
	}
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.set.Contains(h)
}

// Clear deselects everything controller holds.
func (s *Service) Clear(controller ControllerID) Diff {
	cs := s.lookupSet(controller)
	if cs == nil {
		return Diff{}
	}
	cs.mu.Lock()
	diff := cs.set.Apply(nil, ModeReplace)
	cs.mu.Unlock()
	return s.dispatch(controller, cs, diff)
}

// Forget clears controller and drops its set, e.g. on disconnect.
func (s *Service) Forget(controller ControllerID) Diff {
	diff := s.Clear(controller)
	s.mu.Lock()
	delete(s.sets, controller)
	s.mu.Unlock()
	return diff
}

// Prune removes handles that no longer resolve from every set, without
// notifications.
func (s *Service) Prune() int {
	s.mu.Lock()
	sets := make([]*controllerSet, 0, len(s.sets))
	for _, cs := range s.sets {
		sets = append(sets, cs)
	}
	s.mu.Unlock()

	alive := func(h Handle) bool {
		_, ok := s.registry.Lookup(h)
		return ok
	}
	removed := 0
	for _, cs := range sets {
		cs.mu.Lock()
		removed += len(cs.set.Prune(alive))
		cs.mu.Unlock()
	}
	return removed
}

// dispatch delivers deselects before selects. Handles that no longer resolve
// are skipped, and stale selects are dropped from the set again.
func (s *Service) dispatch(controller ControllerID, cs *controllerSet, diff Diff) Diff {
	var out Diff
	for _, h := range diff.Deselected {
		a, ok := s.registry.Lookup(h)
		if !ok {
			continue
		}
		if sel, ok := a.(Selectable); ok {
			sel.OnDeselected(controller)
			out.Deselected = append(out.Deselected, h)
		}
	}

	var stale []Handle
	for _, h := range diff.Selected {
		a, ok := s.registry.Lookup(h)
		if !ok {
			stale = append(stale, h)
			continue
		}
		sel, ok := a.(Selectable)
		if !ok {
			stale = append(stale, h)
			continue
		}
		sel.OnSelected(controller)
		out.Selected = append(out.Selected, h)
	}
	if len(stale) > 0 {
		cs.mu.Lock()
		cs.set.Remove(stale...)
		cs.mu.Unlock()
		s.logger.Printf("selection: controller=%s skipped %d stale handles", controller, len(stale))
	}
	return out
}

func (s *Service) setFor(controller ControllerID) *controllerSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	cs, ok := s.sets[controller]
	if !ok {
		cs = &controllerSet{}
		s.sets[controller] = cs
	}
	return cs
}

func (s *Service) lookupSet(controller ControllerID) *controllerSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sets[controller]
}
