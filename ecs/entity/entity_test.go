package entity

import (
	"reflect"
	"testing"

	"github.com/milk9111/ringworld/camera"
	"github.com/milk9111/ringworld/ecs"
	"github.com/milk9111/ringworld/ecs/component"
	"github.com/milk9111/ringworld/physics"
	"github.com/milk9111/ringworld/prefabs"
)

func newContext(t *testing.T, authority bool) *Context {
	t.Helper()
	effects, err := prefabs.LoadEffects()
	if err != nil {
		t.Fatalf("effects: %v", err)
	}
	return &Context{Physics: physics.NewWorld(), Effects: effects, Authority: authority}
}

func TestBuildPlayer(t *testing.T) {
	w := ecs.NewWorld()
	e, err := BuildEntity(w, "player.yaml", newContext(t, true))
	if err != nil {
		t.Fatalf("build player: %v", err)
	}

	p, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	if !ok || p.Controller != "local" || p.SprintSpeed != 650 {
		t.Fatalf("unexpected player %+v", p)
	}
	cr, ok := ecs.Get(w, e, component.CameraRigComponent.Kind())
	if !ok || cr.Rig == nil || cr.Rig.ViewMode() != camera.ViewModeThirdPerson {
		t.Fatalf("camera rig not built")
	}
	sockets, ok := ecs.Get(w, e, component.SocketsComponent.Kind())
	if !ok || len(sockets.Local) != 5 {
		t.Fatalf("expected 5 sockets, got %+v", sockets)
	}
	if !ecs.Has(w, e, component.ControlComponent.Kind()) || !ecs.Has(w, e, component.MarqueeComponent.Kind()) || !ecs.Has(w, e, component.RiderComponent.Kind()) {
		t.Fatalf("player is missing control components")
	}
	v, ok := ecs.Get(w, e, component.VitalityComponent.Kind())
	if !ok || v.Set.Vitality().Health != 100 {
		t.Fatalf("unexpected vitality")
	}
}

func TestBuildUnitStartupEffects(t *testing.T) {
	tests := []struct {
		name      string
		authority bool
		health    float64
	}{
		{"authority_applies_startup", true, 55},
		{"mirror_keeps_spec_values", false, 100},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			ctx := newContext(t, tc.authority)
			a, err := BuildEntity(w, "grunt.yaml", ctx)
			if err != nil {
				t.Fatalf("build grunt: %v", err)
			}
			b, err := BuildEntity(w, "grunt.yaml", ctx)
			if err != nil {
				t.Fatalf("build grunt: %v", err)
			}

			v, _ := ecs.Get(w, a, component.VitalityComponent.Kind())
			if got := v.Set.Vitality().Health; got != tc.health {
				t.Fatalf("health %v, want %v", got, tc.health)
			}
			ua, _ := ecs.Get(w, a, component.UnitComponent.Kind())
			ub, _ := ecs.Get(w, b, component.UnitComponent.Kind())
			if ua.Rule == nil || ua.Rule != ub.Rule {
				t.Fatalf("units should share one compiled rule")
			}
			if !ua.AbilityTags.HasTag("Unit.Type") {
				t.Fatalf("ability tags not parsed: %v", ua.AbilityTags)
			}
			hb, ok := ecs.Get(w, a, component.HealthBarComponent.Kind())
			if !ok || hb.Offset.Z != 60 || hb.Bar.AimLinger != 2 {
				t.Fatalf("unexpected health bar %+v", hb)
			}
		})
	}
}

func TestBuildEntitySpecRejectsUnknownComponents(t *testing.T) {
	w := ecs.NewWorld()
	spec := prefabs.EntityBuildSpec{Name: "odd", Components: map[string]any{
		"transform": map[string]any{},
		"bogus":     nil,
	}}
	if _, err := BuildEntitySpec(w, "odd.yaml", spec, nil); err == nil {
		t.Fatalf("expected an error for an unknown component")
	}
	if n := len(ecs.Entities(w)); n != 0 {
		t.Fatalf("partial entity left behind: %d entities", n)
	}

	if _, err := BuildEntitySpec(w, "empty.yaml", prefabs.EntityBuildSpec{}, nil); err == nil {
		t.Fatalf("expected an error for a prefab without components")
	}
}

func TestLoadLevel(t *testing.T) {
	spec, err := prefabs.LoadLevel("")
	if err != nil {
		t.Fatalf("level spec: %v", err)
	}

	tests := []struct {
		name       string
		withPlayer bool
	}{
		{"client", true},
		{"server", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			level, err := LoadLevel(w, spec, newContext(t, true), tc.withPlayer)
			if err != nil {
				t.Fatalf("load level: %v", err)
			}
			if level.Player.Valid() != tc.withPlayer {
				t.Fatalf("player spawned=%t, want %t", level.Player.Valid(), tc.withPlayer)
			}
			if len(level.Units) != len(spec.Spawns) {
				t.Fatalf("spawned %d units, want %d", len(level.Units), len(spec.Spawns))
			}

			scenery := 0
			ecs.ForEach(w, component.SceneryComponent.Kind(), func(ecs.Entity, *component.Scenery) { scenery++ })
			if scenery != len(spec.Boxes)+len(spec.Pillars) {
				t.Fatalf("scenery %d, want %d", scenery, len(spec.Boxes)+len(spec.Pillars))
			}

			u, _ := ecs.Get(w, level.Units[0], component.UnitComponent.Kind())
			tr, _ := ecs.Get(w, level.Units[0], component.TransformComponent.Kind())
			if u.Name != spec.Spawns[0].Name || u.Owner != spec.Spawns[0].Owner || tr.Location != spec.Spawns[0].Location {
				t.Fatalf("spawn overrides not applied: %+v at %v", u, tr.Location)
			}
		})
	}
}

func TestLoadLevelUnitHandlesMatchServer(t *testing.T) {
	spec, err := prefabs.LoadLevel("")
	if err != nil {
		t.Fatalf("level spec: %v", err)
	}
	client, err := LoadLevel(ecs.NewWorld(), spec, newContext(t, false), true)
	if err != nil {
		t.Fatalf("client level: %v", err)
	}
	server, err := LoadLevel(ecs.NewWorld(), spec, newContext(t, true), false)
	if err != nil {
		t.Fatalf("server level: %v", err)
	}
	if !reflect.DeepEqual(client.Units, server.Units) {
		t.Fatalf("unit handles differ: client %v, server %v", client.Units, server.Units)
	}
}

func TestNewSelectionService(t *testing.T) {
	w := ecs.NewWorld()
	svc, err := NewSelectionService(w, prefabs.SelectionSpec{Strategy: "projection", TagPolicy: "all"})
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	if svc.Strategy().Name() != "projection" {
		t.Fatalf("strategy %s", svc.Strategy().Name())
	}
	if _, err := NewSelectionService(w, prefabs.SelectionSpec{Strategy: "lasso"}); err == nil {
		t.Fatalf("expected an error for an unknown strategy")
	}
	if _, err := NewSelectionService(w, prefabs.SelectionSpec{TagPolicy: "most"}); err == nil {
		t.Fatalf("expected an error for an unknown tag policy")
	}
}
