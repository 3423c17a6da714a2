package attributes

import (
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestApplyDelta(t *testing.T) {
	full := DefaultVitality()

	tests := []struct {
		name    string
		start   Vitality
		delta   Delta
		want    Vitality
		changes []Change
	}{
		{
			name:    "damage",
			start:   full,
			delta:   Delta{Attribute: Health, Value: -30},
			want:    Vitality{Health: 70, MaxHealth: 100, HealingRate: 1},
			changes: []Change{{Health, 100, 70}},
		},
		{
			name:    "overkill_clamps_to_zero",
			start:   full,
			delta:   Delta{Attribute: Health, Value: -150},
			want:    Vitality{Health: 0, MaxHealth: 100, HealingRate: 1},
			changes: []Change{{Health, 100, 0}},
		},
		{
			name:  "overheal_is_silent",
			start: full,
			delta: Delta{Attribute: Health, Value: 50},
			want:  full,
		},
		{
			name:    "max_health_drop_reclamps_health",
			start:   full,
			delta:   Delta{Attribute: MaxHealth, Op: OpOverride, Value: 60},
			want:    Vitality{Health: 60, MaxHealth: 60, HealingRate: 1},
			changes: []Change{{MaxHealth, 100, 60}, {Health, 100, 60}},
		},
		{
			name:    "max_health_never_negative",
			start:   full,
			delta:   Delta{Attribute: MaxHealth, Value: -200},
			want:    Vitality{Health: 0, MaxHealth: 0, HealingRate: 1},
			changes: []Change{{MaxHealth, 100, 0}, {Health, 100, 0}},
		},
		{
			name:    "healing_rate_never_negative",
			start:   full,
			delta:   Delta{Attribute: HealingRate, Op: OpOverride, Value: -5},
			want:    Vitality{Health: 100, MaxHealth: 100, HealingRate: 0},
			changes: []Change{{HealingRate, 1, 0}},
		},
		{
			name:    "multiply",
			start:   full,
			delta:   Delta{Attribute: Health, Op: OpMultiply, Value: 0.5},
			want:    Vitality{Health: 50, MaxHealth: 100, HealingRate: 1},
			changes: []Change{{Health, 100, 50}},
		},
		{
			name:  "unknown_attribute",
			start: full,
			delta: Delta{Attribute: "stamina", Value: 10},
			want:  full,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, changes := ApplyDelta(tc.start, tc.delta)
			if got != tc.want {
				t.Fatalf("state %+v, want %+v", got, tc.want)
			}
			if !reflect.DeepEqual(changes, tc.changes) {
				t.Fatalf("changes %+v, want %+v", changes, tc.changes)
			}
		})
	}
}

func TestVitalityPercent(t *testing.T) {
	cases := []struct {
		v    Vitality
		want float64
	}{
		{Vitality{Health: 50, MaxHealth: 100}, 0.5},
		{Vitality{Health: 10, MaxHealth: 0}, 0},
		{Vitality{Health: 100, MaxHealth: 100}, 1},
	}
	for _, c := range cases {
		if got := c.v.Percent(); got != c.want {
			t.Fatalf("Percent(%+v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestEffectFromYAML(t *testing.T) {
	src := `
name: poison
period: 1
duration: 3
modifiers:
  - attribute: health
    op: add
    value: -5
  - attribute: healing_rate
    op: override
    value: 0
`
	var e Effect
	if err := yaml.Unmarshal([]byte(src), &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !e.Periodic() || e.Instant() {
		t.Fatalf("expected a periodic effect, got %+v", e)
	}
	if e.Modifiers[1].Op != OpOverride || e.Modifiers[0].Value != -5 {
		t.Fatalf("unexpected modifiers %+v", e.Modifiers)
	}

	bad := "name: x\nmodifiers:\n  - attribute: health\n    op: divide\n"
	if err := yaml.Unmarshal([]byte(bad), &e); err == nil {
		t.Fatalf("expected an error for an unknown op")
	}
}
