package attributes

import (
	"errors"
	"fmt"
)

var (
	ErrStartupApplied = errors.New("attributes: startup effects already applied")
	ErrEmptyEffect    = errors.New("attributes: effect has no modifiers")
)

// Effect bundles modifiers with a lifetime. An effect without a duration, a
// period or the infinite flag is instant and changes base values once.
// Periodic effects execute their modifiers against the base values every
// Period seconds. Other timed effects apply their modifiers on top of the
// base values until they expire or are removed.
type Effect struct {
	Name      string  `yaml:"name" json:"name"`
	Modifiers []Delta `yaml:"modifiers" json:"modifiers"`
	Duration  float64 `yaml:"duration" json:"duration,omitempty"`
	Period    float64 `yaml:"period" json:"period,omitempty"`
	Infinite  bool    `yaml:"infinite" json:"infinite,omitempty"`
}

func (e Effect) Instant() bool {
	return !e.Infinite && e.Duration <= 0 && e.Period <= 0
}

func (e Effect) Periodic() bool {
	return e.Period > 0
}

func (e Effect) Validate() error {
	if len(e.Modifiers) == 0 {
		return fmt.Errorf("%w: %q", ErrEmptyEffect, e.Name)
	}
	for _, m := range e.Modifiers {
		if _, err := ParseAttribute(string(m.Attribute)); err != nil {
			return fmt.Errorf("attributes: effect %q: %w", e.Name, err)
		}
		if m.Attribute == Health && !e.Instant() && !e.Periodic() {
			return fmt.Errorf("attributes: effect %q: health can only change through instant or periodic effects", e.Name)
		}
	}
	if e.Periodic() && !e.Infinite && e.Duration <= 0 {
		return fmt.Errorf("attributes: effect %q: periodic effect needs a duration", e.Name)
	}
	return nil
}

type EffectID uint64

type activeEffect struct {
	id         EffectID
	effect     Effect
	elapsed    float64
	nextPeriod float64
}

func (a *activeEffect) expired() bool {
	return !a.effect.Infinite && a.elapsed >= a.effect.Duration
}

// Set owns one unit's vitality: base values, active effects and the
// listeners that observe current values. It is driven from a single frame
// loop and is not safe for concurrent use.
type Set struct {
	base    Vitality
	current Vitality
	active  []*activeEffect
	nextID  EffectID

	changeListeners []func(Change)
	deathListeners  []func()

	dead           bool
	startupApplied bool
}

func NewSet(initial Vitality) *Set {
	s := &Set{base: initial.Clamped()}
	s.recompute()
	s.dead = !s.current.Alive()
	return s
}

// Vitality returns the current values with every active modifier applied.
func (s *Set) Vitality() Vitality {
	return s.current
}

func (s *Set) Base() Vitality {
	return s.base
}

func (s *Set) Dead() bool {
	return s.dead
}

func (s *Set) ActiveEffects() int {
	return len(s.active)
}

func (s *Set) OnChange(fn func(Change)) {
	if fn != nil {
		s.changeListeners = append(s.changeListeners, fn)
	}
}

// OnDeath fires once each time health reaches zero from a living state.
func (s *Set) OnDeath(fn func()) {
	if fn != nil {
		s.deathListeners = append(s.deathListeners, fn)
	}
}

// ApplyDelta changes a base value directly.
func (s *Set) ApplyDelta(d Delta) []Change {
	return s.commit(func() { s.applyBase(d) })
}

// ApplyEffect applies or activates e. Instant effects return a zero id.
func (s *Set) ApplyEffect(e Effect) (EffectID, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}
	if e.Instant() {
		s.commit(func() {
			for _, m := range e.Modifiers {
				s.applyBase(m)
			}
		})
		return 0, nil
	}

	s.nextID++
	a := &activeEffect{id: s.nextID, effect: e, nextPeriod: e.Period}
	s.commit(func() {
		s.active = append(s.active, a)
		if e.Periodic() {
			s.execute(a)
		}
	})
	return a.id, nil
}

func (s *Set) RemoveEffect(id EffectID) bool {
	for i, a := range s.active {
		if a.id != id {
			continue
		}
		s.commit(func() {
			s.active = append(s.active[:i], s.active[i+1:]...)
		})
		return true
	}
	return false
}

// ApplyStartupEffects applies the unit's default effects. It succeeds once;
// later calls report ErrStartupApplied and change nothing.
func (s *Set) ApplyStartupEffects(effects []Effect) error {
	if s.startupApplied {
		return ErrStartupApplied
	}
	for _, e := range effects {
		if err := e.Validate(); err != nil {
			return err
		}
	}
	s.startupApplied = true
	for _, e := range effects {
		if _, err := s.ApplyEffect(e); err != nil {
			return err
		}
	}
	return nil
}

// Tick advances regeneration and effect timers by dt seconds.
func (s *Set) Tick(dt float64) []Change {
	if dt <= 0 {
		return nil
	}
	return s.commit(func() {
		if s.current.Alive() && s.current.HealingRate > 0 && !s.current.Full() {
			s.applyBase(Delta{Attribute: Health, Value: s.current.HealingRate * dt})
		}

		kept := s.active[:0]
		for _, a := range s.active {
			a.elapsed += dt
			if a.effect.Periodic() {
				for a.nextPeriod <= a.elapsed && (a.effect.Infinite || a.nextPeriod <= a.effect.Duration) {
					s.execute(a)
					a.nextPeriod += a.effect.Period
				}
			}
			if a.expired() {
				continue
			}
			kept = append(kept, a)
		}
		for i := len(kept); i < len(s.active); i++ {
			s.active[i] = nil
		}
		s.active = kept
	})
}

func (s *Set) execute(a *activeEffect) {
	for _, m := range a.effect.Modifiers {
		s.applyBase(m)
	}
	s.recompute()
}

// applyBase changes one base value. Health is clamped against the current
// capacity, which may include active modifiers.
func (s *Set) applyBase(d Delta) {
	switch d.Attribute {
	case Health:
		next, _ := ApplyDelta(s.current, d)
		s.base.Health = next.Health
	case MaxHealth, HealingRate:
		next, _ := ApplyDelta(Vitality{MaxHealth: s.base.MaxHealth, HealingRate: s.base.HealingRate}, d)
		s.base.MaxHealth = next.MaxHealth
		s.base.HealingRate = next.HealingRate
	}
	s.recompute()
}

func (s *Set) recompute() {
	cur := s.base
	for _, a := range s.active {
		if a.effect.Periodic() {
			continue
		}
		for _, m := range a.effect.Modifiers {
			cur.set(m.Attribute, combine(cur.Get(m.Attribute), m))
		}
	}
	cur = cur.Clamped()
	s.base.Health = cur.Health
	s.current = cur
}

func (s *Set) commit(fn func()) []Change {
	before := s.current
	fn()
	s.recompute()
	changes := diff(before, s.current)
	for _, c := range changes {
		for _, l := range s.changeListeners {
			l(c)
		}
	}
	switch {
	case !s.dead && !s.current.Alive():
		s.dead = true
		for _, l := range s.deathListeners {
			l()
		}
	case s.dead && s.current.Alive():
		s.dead = false
	}
	return changes
}
