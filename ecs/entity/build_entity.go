package entity

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/milk9111/ringworld/attributes"
	"github.com/milk9111/ringworld/camera"
	"github.com/milk9111/ringworld/ecs"
	"github.com/milk9111/ringworld/ecs/component"
	"github.com/milk9111/ringworld/ecs/system"
	"github.com/milk9111/ringworld/hud"
	"github.com/milk9111/ringworld/physics"
	"github.com/milk9111/ringworld/prefabs"
	"github.com/milk9111/ringworld/script"
	"github.com/milk9111/ringworld/selection"
	"github.com/milk9111/ringworld/tags"
)

// Context carries the shared services component builders need.
type Context struct {
	Physics *physics.World
	Effects map[string]attributes.Effect
	// Authority applies startup effects. Clients that mirror a server
	// leave it false.
	Authority bool

	rules map[string]*script.Rule
}

// Rule compiles a selectability script once and shares it between units.
func (c *Context) Rule(name string) (*script.Rule, error) {
	if c.rules == nil {
		c.rules = make(map[string]*script.Rule)
	}
	if r, ok := c.rules[name]; ok {
		return r, nil
	}
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("entity: load script %s: %w", name, err)
	}
	r, err := script.Compile(name, src)
	if err != nil {
		return nil, err
	}
	c.rules[name] = r
	return r, nil
}

// ForgetRule drops a cached rule so the next build recompiles it.
func (c *Context) ForgetRule(name string) {
	delete(c.rules, name)
}

type buildContext struct {
	*Context
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player":     addPlayer,
	"transform":  addTransform,
	"sockets":    addSockets,
	"control":    addControl,
	"rider":      addRider,
	"camera_rig": addCameraRig,
	"marquee":    addMarquee,
	"unit":       addUnit,
	"vitality":   addVitality,
	"health_bar": addHealthBar,
}

// componentBuildOrder lists builders that read components added earlier.
var componentBuildOrder = []string{
	"player",
	"transform",
	"sockets",
	"control",
	"rider",
	"camera_rig",
	"marquee",
	"unit",
	"vitality",
	"health_bar",
}

func BuildEntity(w *ecs.World, prefabPath string, ctx *Context) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return BuildEntitySpec(w, prefabPath, spec, ctx)
}

// BuildEntitySpec builds an already decoded prefab. Any failure destroys the
// partial entity.
func BuildEntitySpec(w *ecs.World, prefabPath string, spec prefabs.EntityBuildSpec, ctx *Context) (ecs.Entity, error) {
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}
	if ctx == nil {
		ctx = &Context{}
	}

	e := ecs.CreateEntity(w)
	bctx := &buildContext{Context: ctx, PrefabPath: prefabPath}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	names := make([]string, 0, len(remaining))
	for _, name := range componentBuildOrder {
		if _, ok := remaining[name]; ok {
			names = append(names, name)
			delete(remaining, name)
		}
	}
	if len(remaining) > 0 {
		unknown := make([]string, 0, len(remaining))
		for name := range remaining {
			unknown = append(unknown, name)
		}
		sort.Strings(unknown)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for components %v", prefabPath, unknown)
	}

	for _, name := range names {
		if err := componentRegistry[name](w, e, spec.Components[name], bctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}

	return e, nil
}

func addPlayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PlayerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player spec: %w", err)
	}
	if spec.Controller == "" {
		spec.Controller = "local"
	}
	if spec.MoveSpeed <= 0 {
		spec.MoveSpeed = 400
	}
	if spec.WalkSpeed <= 0 {
		spec.WalkSpeed = spec.MoveSpeed / 2
	}
	if spec.SprintSpeed <= 0 {
		spec.SprintSpeed = spec.MoveSpeed * 1.5
	}
	return ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
		Controller:  selection.ControllerID(spec.Controller),
		MoveSpeed:   spec.MoveSpeed,
		WalkSpeed:   spec.WalkSpeed,
		SprintSpeed: spec.SprintSpeed,
	})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Location: spec.Location,
		Rotation: spec.Rotation,
	})
}

func addSockets(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.SocketsComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sockets spec: %w", err)
	}
	return ecs.Add(w, e, component.SocketsComponent.Kind(), &component.Sockets{Local: spec})
}

func addControl(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	ctrl := &component.Control{}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		ctrl.ViewRotation = t.Rotation
	}
	return ecs.Add(w, e, component.ControlComponent.Kind(), ctrl)
}

func addRider(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.RiderComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode rider spec: %w", err)
	}
	return ecs.Add(w, e, component.RiderComponent.Kind(), &component.Rider{HalfHeight: spec.HalfHeight})
}

func addCameraRig(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CameraRigComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera_rig spec: %w", err)
	}
	settings, err := prefabs.LoadCameraSettings(spec.Settings)
	if err != nil {
		log.Printf("entity: %s: camera settings: %v; using defaults", ctx.PrefabPath, err)
	}

	var sweeper camera.Sweeper
	if ctx.Physics != nil {
		sweeper = ctx.Physics
	}
	rig := camera.NewRig(settings, sweeper, system.EntityPose{World: w, Entity: e, Physics: ctx.Physics})
	if spec.ViewMode != "" {
		mode, ok := camera.ParseViewMode(spec.ViewMode)
		if !ok {
			return fmt.Errorf("unknown view mode %q", spec.ViewMode)
		}
		rig.SetViewMode(mode)
	}
	if spec.RightShoulder != nil {
		rig.SetRightShoulder(*spec.RightShoulder)
	}
	return ecs.Add(w, e, component.CameraRigComponent.Kind(), &component.CameraRig{Rig: rig, Debug: spec.Debug})
}

func addMarquee(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.MarqueeComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode marquee spec: %w", err)
	}
	return ecs.Add(w, e, component.MarqueeComponent.Kind(), &component.Marquee{
		Drag: selection.Marquee{ActorTags: spec.ActorTags, AbilityTags: spec.AbilityTags},
	})
}

func addUnit(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.UnitComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode unit spec: %w", err)
	}
	if spec.HalfExtent.IsNearlyZero() {
		return fmt.Errorf("unit %q needs a half extent", spec.Name)
	}
	unit := &component.Unit{
		Name:        spec.Name,
		Team:        spec.Team,
		Owner:       spec.Owner,
		HalfExtent:  spec.HalfExtent,
		ActorTags:   tags.Names(spec.ActorTags),
		AbilityTags: tags.Parse(spec.AbilityTags...),
		Locked:      spec.Locked,
	}
	if spec.Script != "" {
		rule, err := ctx.Rule(spec.Script)
		if err != nil {
			return err
		}
		unit.Rule = rule
	}
	return ecs.Add(w, e, component.UnitComponent.Kind(), unit)
}

func addVitality(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec := prefabs.VitalityComponentSpec{Vitality: attributes.DefaultVitality()}
	if err := prefabs.DecodeComponentSpecInto(raw, &spec); err != nil {
		return fmt.Errorf("decode vitality spec: %w", err)
	}

	set := attributes.NewSet(spec.Vitality)
	if ctx.Authority && len(spec.StartupEffects) > 0 {
		effects := make([]attributes.Effect, 0, len(spec.StartupEffects))
		var missing []error
		for _, name := range spec.StartupEffects {
			effect, ok := ctx.Effects[name]
			if !ok {
				missing = append(missing, fmt.Errorf("unknown startup effect %q", name))
				continue
			}
			effects = append(effects, effect)
		}
		if len(missing) > 0 {
			return errors.Join(missing...)
		}
		if err := set.ApplyStartupEffects(effects); err != nil {
			return fmt.Errorf("startup effects: %w", err)
		}
	}
	return ecs.Add(w, e, component.VitalityComponent.Kind(), &component.Vitality{Set: set})
}

func addHealthBar(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.HealthBarComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode health_bar spec: %w", err)
	}
	bar := hud.NewHealthBar()
	if spec.HideWhenNoSource != nil {
		bar.HideWhenNoSource = *spec.HideWhenNoSource
	}
	if spec.HideWhenFull != nil {
		bar.HideWhenFull = *spec.HideWhenFull
	}
	if spec.AimLinger > 0 {
		bar.AimLinger = spec.AimLinger
	}
	if v, ok := ecs.Get(w, e, component.VitalityComponent.Kind()); ok && v.Set != nil {
		bar.SetVitality(v.Set.Vitality())
	}
	return ecs.Add(w, e, component.HealthBarComponent.Kind(), &component.HealthBar{Bar: bar, Offset: spec.Offset})
}
