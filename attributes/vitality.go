package attributes

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// Attribute names one of the vitality values.
type Attribute string

const (
	Health      Attribute = "health"
	MaxHealth   Attribute = "max_health"
	HealingRate Attribute = "healing_rate"
)

func ParseAttribute(s string) (Attribute, error) {
	switch Attribute(s) {
	case Health, MaxHealth, HealingRate:
		return Attribute(s), nil
	}
	return "", fmt.Errorf("attributes: unknown attribute %q", s)
}

// Op selects how a delta combines with the current value.
type Op int

const (
	OpAdd Op = iota
	OpMultiply
	OpOverride
)

func (o Op) String() string {
	switch o {
	case OpMultiply:
		return "multiply"
	case OpOverride:
		return "override"
	}
	return "add"
}

func (o *Op) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("attributes: op must be a string")
	}
	parsed, err := ParseOp(value.Value)
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

func (o Op) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Op) UnmarshalText(text []byte) error {
	parsed, err := ParseOp(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

func ParseOp(s string) (Op, error) {
	switch s {
	case "", "add":
		return OpAdd, nil
	case "multiply":
		return OpMultiply, nil
	case "override":
		return OpOverride, nil
	}
	return OpAdd, fmt.Errorf("attributes: unknown op %q", s)
}

// Delta is one modification to a single attribute.
type Delta struct {
	Attribute Attribute `yaml:"attribute" json:"attribute"`
	Op        Op        `yaml:"op" json:"op"`
	Value     float64   `yaml:"value" json:"value"`
}

// Change records an attribute that actually moved.
type Change struct {
	Attribute Attribute
	Old       float64
	New       float64
}

// Vitality is the health attribute set. The zero value is a dead unit with
// no capacity; use DefaultVitality for a fresh one.
type Vitality struct {
	Health      float64 `yaml:"health" json:"health"`
	MaxHealth   float64 `yaml:"max_health" json:"max_health"`
	HealingRate float64 `yaml:"healing_rate" json:"healing_rate"`
}

func DefaultVitality() Vitality {
	return Vitality{Health: 100, MaxHealth: 100, HealingRate: 1}
}

func (v Vitality) Get(a Attribute) float64 {
	switch a {
	case Health:
		return v.Health
	case MaxHealth:
		return v.MaxHealth
	case HealingRate:
		return v.HealingRate
	}
	return 0
}

func (v *Vitality) set(a Attribute, value float64) {
	switch a {
	case Health:
		v.Health = value
	case MaxHealth:
		v.MaxHealth = value
	case HealingRate:
		v.HealingRate = value
	}
}

func (v Vitality) Alive() bool {
	return v.Health > 0
}

func (v Vitality) Full() bool {
	return v.MaxHealth > 0 && v.Health >= v.MaxHealth
}

// Percent is Health/MaxHealth in [0,1], or 0 with no capacity.
func (v Vitality) Percent() float64 {
	if v.MaxHealth <= 0 {
		return 0
	}
	return math.Max(0, math.Min(1, v.Health/v.MaxHealth))
}

// Clamped enforces the set's invariants: MaxHealth and HealingRate are never
// negative and Health stays within [0, MaxHealth].
func (v Vitality) Clamped() Vitality {
	v.MaxHealth = finite(math.Max(v.MaxHealth, 0))
	v.HealingRate = finite(math.Max(v.HealingRate, 0))
	if math.IsNaN(v.Health) {
		v.Health = 0
	}
	v.Health = math.Max(0, math.Min(v.Health, v.MaxHealth))
	return v
}

// ApplyDelta returns the state after d, clamped, and the attributes that
// changed. A MaxHealth change re-clamps Health in the same step.
func ApplyDelta(v Vitality, d Delta) (Vitality, []Change) {
	before := v
	next := v
	switch d.Attribute {
	case Health, MaxHealth, HealingRate:
	default:
		return v, nil
	}
	next.set(d.Attribute, combine(v.Get(d.Attribute), d))
	next = next.Clamped()
	return next, diff(before, next)
}

func combine(current float64, d Delta) float64 {
	switch d.Op {
	case OpMultiply:
		return current * d.Value
	case OpOverride:
		return d.Value
	}
	return current + d.Value
}

func diff(before, after Vitality) []Change {
	var out []Change
	// MaxHealth first so observers see the new capacity before the health it clamped.
	for _, a := range []Attribute{MaxHealth, Health, HealingRate} {
		if o, n := before.Get(a), after.Get(a); o != n {
			out = append(out, Change{Attribute: a, Old: o, New: n})
		}
	}
	return out
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
