package selection

// Mode is how a resolved candidate list combines with the current selection.
type Mode int

const (
	ModeReplace Mode = iota
	ModeAdd
	ModeRemove
)

func (m Mode) String() string {
	switch m {
	case ModeAdd:
		return "add"
	case ModeRemove:
		return "remove"
	default:
		return "replace"
	}
}

// ModeFor maps the two request modifiers. Remove wins over add.
func ModeFor(add, remove bool) Mode {
	switch {
	case remove:
		return ModeRemove
	case add:
		return ModeAdd
	default:
		return ModeReplace
	}
}

// Diff lists membership changes in dispatch order.
type Diff struct {
	Deselected []Handle
	Selected   []Handle
}

func (d Diff) Empty() bool {
	return len(d.Deselected) == 0 && len(d.Selected) == 0
}

// Set is a selection with unique members kept in insertion order.
type Set struct {
	order []Handle
	index map[Handle]struct{}
}

func (s *Set) Contains(h Handle) bool {
	_, ok := s.index[h]
	return ok
}

func (s *Set) Len() int {
	return len(s.order)
}

func (s *Set) Handles() []Handle {
	return append([]Handle(nil), s.order...)
}

// Apply folds candidates into the set and reports exactly the handles whose
// membership changed.
func (s *Set) Apply(candidates []Handle, mode Mode) Diff {
	candidates = unique(candidates)
	var d Diff

	switch mode {
	case ModeRemove:
		for _, h := range candidates {
			if s.Contains(h) {
				d.Deselected = append(d.Deselected, h)
			}
		}
		s.remove(d.Deselected)

	case ModeAdd:
		for _, h := range candidates {
			if !s.Contains(h) {
				d.Selected = append(d.Selected, h)
				s.add(h)
			}
		}

	default:
		next := make(map[Handle]struct{}, len(candidates))
		for _, h := range candidates {
			next[h] = struct{}{}
		}
		for _, h := range s.order {
			if _, keep := next[h]; !keep {
				d.Deselected = append(d.Deselected, h)
			}
		}
		for _, h := range candidates {
			if !s.Contains(h) {
				d.Selected = append(d.Selected, h)
			}
		}
		s.order = s.order[:0]
		s.index = next
		s.order = append(s.order, candidates...)
	}
	return d
}

// Remove drops handles without producing a diff.
func (s *Set) Remove(handles ...Handle) {
	s.remove(handles)
}

// Prune drops every handle for which alive reports false and returns them.
func (s *Set) Prune(alive func(Handle) bool) []Handle {
	var dead []Handle
	for _, h := range s.order {
		if !alive(h) {
			dead = append(dead, h)
		}
	}
	s.remove(dead)
	return dead
}

func (s *Set) add(h Handle) {
	if s.index == nil {
		s.index = make(map[Handle]struct{})
	}
	s.index[h] = struct{}{}
	s.order = append(s.order, h)
}

func (s *Set) remove(handles []Handle) {
	if len(handles) == 0 {
		return
	}
	for _, h := range handles {
		delete(s.index, h)
	}
	kept := s.order[:0]
	for _, h := range s.order {
		if _, ok := s.index[h]; ok {
			kept = append(kept, h)
		}
	}
	s.order = kept
}

func unique(handles []Handle) []Handle {
	if len(handles) < 2 {
		return handles
	}
	seen := make(map[Handle]struct{}, len(handles))
	out := make([]Handle, 0, len(handles))
	for _, h := range handles {
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	return out
}
