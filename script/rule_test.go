package script

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRuleSelectable(t *testing.T) {
	src := `
text := import("text")

selectable = unit.owner == controller || unit.team == "neutral"
if text.has_prefix(unit.name, "statue") {
	selectable = false
}
`
	rule, err := Compile("owner.tengo", []byte(src))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	tests := []struct {
		name       string
		controller string
		unit       Unit
		want       bool
	}{
		{"owner", "p1", Unit{Name: "worker", Owner: "p1"}, true},
		{"other_player", "p2", Unit{Name: "worker", Owner: "p1"}, false},
		{"neutral", "p2", Unit{Name: "sheep", Team: "neutral"}, true},
		{"statue_never", "p1", Unit{Name: "statue_of_p1", Owner: "p1"}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := rule.Selectable(tc.controller, tc.unit)
			if err != nil {
				t.Fatalf("Selectable: %v", err)
			}
			if got != tc.want {
				t.Fatalf("Selectable = %t, want %t", got, tc.want)
			}
		})
	}
}

func TestRuleReadsTagsAndHealth(t *testing.T) {
	src := `
selectable = false
for t in unit.tags {
	if t == "Selectable" && unit.health > 0 {
		selectable = true
	}
}
`
	rule, err := Compile("tags.tengo", []byte(src))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if ok, err := rule.Selectable("p1", Unit{Tags: []string{"Unit", "Selectable"}, Health: 10}); err != nil || !ok {
		t.Fatalf("expected selectable, got %t %v", ok, err)
	}
	if ok, _ := rule.Selectable("p1", Unit{Tags: []string{"Selectable"}, Health: 0}); ok {
		t.Fatalf("dead unit should not be selectable")
	}
}

func TestRuleErrors(t *testing.T) {
	if _, err := Compile("broken.tengo", []byte("selectable = missing_fn()")); err == nil {
		t.Fatalf("expected a compile error")
	}

	notBool, err := Compile("string.tengo", []byte(`selectable = "yes"`))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if _, err := notBool.Selectable("p1", Unit{}); err == nil {
		t.Fatalf("expected a type error")
	}

	spin, err := Compile("spin.tengo", []byte("for {}"))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	spin.Timeout = 20 * time.Millisecond
	if _, err := spin.Selectable("p1", Unit{}); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected a deadline error, got %v", err)
	}
}
