package entity

import (
	"fmt"

	"github.com/milk9111/ringworld/common"
	"github.com/milk9111/ringworld/ecs"
	"github.com/milk9111/ringworld/ecs/component"
	"github.com/milk9111/ringworld/ecs/system"
	"github.com/milk9111/ringworld/prefabs"
	"github.com/milk9111/ringworld/selection"
)

// Level is what LoadLevel spawned.
type Level struct {
	Name   string
	Player ecs.Entity
	Units  []ecs.Entity
}

// LoadLevel spawns the level's geometry and entities. withPlayer is false
// on the headless server, which has no local pawn.
func LoadLevel(w *ecs.World, spec prefabs.LevelSpec, ctx *Context, withPlayer bool) (Level, error) {
	if ctx == nil {
		ctx = &Context{}
	}
	level := Level{Name: spec.Name}

	for i, b := range spec.Boxes {
		if _, err := NewBox(w, ctx, b); err != nil {
			return level, fmt.Errorf("level %s: box %d: %w", spec.Name, i, err)
		}
	}
	for i, p := range spec.Pillars {
		if _, err := NewPillar(w, ctx, p); err != nil {
			return level, fmt.Errorf("level %s: pillar %d: %w", spec.Name, i, err)
		}
	}
	for i, p := range spec.Platforms {
		if _, err := NewPlatform(w, ctx, p); err != nil {
			return level, fmt.Errorf("level %s: platform %d: %w", spec.Name, i, err)
		}
	}

	for _, s := range spec.Spawns {
		e, err := Spawn(w, s, ctx)
		if err != nil {
			return level, fmt.Errorf("level %s: spawn %s: %w", spec.Name, s.Prefab, err)
		}
		level.Units = append(level.Units, e)
	}

	// The player comes last so unit handles match between a client and a
	// headless server loading the same level.
	if withPlayer && spec.Player.Prefab != "" {
		player, err := Spawn(w, spec.Player, ctx)
		if err != nil {
			return level, fmt.Errorf("level %s: player: %w", spec.Name, err)
		}
		level.Player = player
	}
	return level, nil
}

// Spawn builds a prefab at the spawn location and applies the identity
// overrides.
func Spawn(w *ecs.World, s prefabs.SpawnSpec, ctx *Context) (ecs.Entity, error) {
	e, err := BuildEntity(w, s.Prefab, ctx)
	if err != nil {
		return 0, err
	}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		t.Location = s.Location
		t.Rotation = s.Rotation
	}
	if ctrl, ok := ecs.Get(w, e, component.ControlComponent.Kind()); ok {
		ctrl.ViewRotation = s.Rotation
	}
	if u, ok := ecs.Get(w, e, component.UnitComponent.Kind()); ok {
		if s.Name != "" {
			u.Name = s.Name
		}
		if s.Team != "" {
			u.Team = s.Team
		}
		if s.Owner != "" {
			u.Owner = s.Owner
		}
	}
	return e, nil
}

func NewBox(w *ecs.World, ctx *Context, b prefabs.BoxSpec) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	min, max := ordered(b.Min, b.Max)
	if err := ecs.Add(w, e, component.SceneryComponent.Kind(), &component.Scenery{Min: min, Max: max}); err != nil {
		return 0, err
	}
	ctx.Physics.AddBox(uint64(e), min, max, b.Channels...)
	return e, nil
}

func NewPillar(w *ecs.World, ctx *Context, p prefabs.PillarSpec) (ecs.Entity, error) {
	if p.Radius <= 0 || p.Height <= 0 {
		return 0, fmt.Errorf("pillar needs a positive radius and height")
	}
	e := ecs.CreateEntity(w)
	half := common.Vec3{X: p.Radius, Y: p.Radius}
	scenery := &component.Scenery{
		Min: p.Base.Sub(half),
		Max: p.Base.Add(half).Add(common.Vec3{Z: p.Height}),
	}
	if err := ecs.Add(w, e, component.SceneryComponent.Kind(), scenery); err != nil {
		return 0, err
	}
	ctx.Physics.AddPillar(uint64(e), p.Base, p.Radius, p.Height, p.Channels...)
	return e, nil
}

func NewPlatform(w *ecs.World, ctx *Context, p prefabs.PlatformSpec) (ecs.Entity, error) {
	if p.Width <= 0 || p.Depth <= 0 {
		return 0, fmt.Errorf("platform needs a positive footprint")
	}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Location: p.Center}); err != nil {
		return 0, err
	}
	half := common.Vec3{X: p.Width / 2, Y: p.Depth / 2, Z: p.Thickness / 2}
	if err := ecs.Add(w, e, component.PlatformComponent.Kind(), &component.Platform{HalfExtent: half}); err != nil {
		return 0, err
	}
	ctx.Physics.AddPlatform(uint64(e), p.Center, p.Width, p.Depth, p.Thickness, p.Velocity, p.Travel)
	return e, nil
}

// NewSelectionService builds the authoritative service over the world's
// units from the level's selection settings.
func NewSelectionService(w *ecs.World, spec prefabs.SelectionSpec) (*selection.Service, error) {
	strategy, err := selection.StrategyByName(spec.Strategy)
	if err != nil {
		return nil, err
	}
	if fs, ok := strategy.(selection.FrustumStrategy); ok {
		fs.Near, fs.Far = spec.Near, spec.Far
		strategy = fs
	}
	policy, err := selection.ParseTagPolicy(spec.TagPolicy)
	if err != nil {
		return nil, err
	}
	return selection.NewService(system.NewUnitRegistry(w), selection.Config{Strategy: strategy, Policy: policy}), nil
}

func ordered(a, b common.Vec3) (common.Vec3, common.Vec3) {
	return common.Vec3{X: min(a.X, b.X), Y: min(a.Y, b.Y), Z: min(a.Z, b.Z)},
		common.Vec3{X: max(a.X, b.X), Y: max(a.Y, b.Y), Z: max(a.Z, b.Z)}
}
