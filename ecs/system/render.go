package system

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/ringworld/camera"
	"github.com/milk9111/ringworld/common"
	"github.com/milk9111/ringworld/ecs"
	"github.com/milk9111/ringworld/ecs/component"
	"github.com/milk9111/ringworld/hud"
)

const unitMarkerSize = 10

var teamColors = map[string]color.Color{
	"blue": colornames.Royalblue,
	"red":  colornames.Crimson,
}

// RenderSystem draws a wireframe view of the world through the player's
// camera plus the HUD overlays.
type RenderSystem struct {
	Style hud.BarStyle
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{Style: hud.DefaultBarStyle}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	player, ok := ecs.First(w, component.PlayerComponent.Kind())
	if !ok {
		return
	}
	cr, ok := ecs.Get(w, player, component.CameraRigComponent.Kind())
	if !ok || cr.Rig == nil {
		return
	}
	proj, err := cr.Rig.Projection(cr.Viewport)
	if err != nil {
		return
	}

	ecs.ForEach(w, component.SceneryComponent.Kind(), func(e ecs.Entity, s *component.Scenery) {
		drawBox(screen, proj, s.Min, s.Max, colornames.Slategray)
	})
	ecs.ForEach2(w, component.PlatformComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Platform, t *component.Transform) {
		drawBox(screen, proj, t.Location.Sub(p.HalfExtent), t.Location.Add(p.HalfExtent), colornames.Darkorange)
	})

	ecs.ForEach2(w, component.UnitComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, u *component.Unit, t *component.Transform) {
		p, ok := proj.Project(t.Location)
		if !ok {
			return
		}
		clr, ok := teamColors[u.Team]
		if !ok {
			clr = colornames.Lightgray
		}
		x, y := float32(p.X)-unitMarkerSize/2, float32(p.Y)-unitMarkerSize/2
		vector.FillRect(screen, x, y, unitMarkerSize, unitMarkerSize, clr, false)
		if ecs.Has(w, e, component.SelectedComponent.Kind()) {
			vector.StrokeRect(screen, x-2, y-2, unitMarkerSize+4, unitMarkerSize+4, 1, colornames.Gold, false)
		}
	})

	if cr.Rig.ViewMode() != camera.ViewModeFirstPerson {
		if t, ok := ecs.Get(w, player, component.TransformComponent.Kind()); ok {
			if p, ok := proj.Project(t.Location); ok {
				vector.FillCircle(screen, float32(p.X), float32(p.Y), unitMarkerSize/2, colornames.White, true)
			}
		}
	}

	ecs.ForEach2(w, component.HealthBarComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, hb *component.HealthBar, t *component.Transform) {
		p, ok := proj.Project(t.Location.Add(hb.Offset))
		if !ok {
			return
		}
		hud.DrawHealthBar(screen, hb.Bar, p.X, p.Y, r.Style)
	})

	if mq, ok := ecs.Get(w, player, component.MarqueeComponent.Kind()); ok {
		if rect, ok := mq.Drag.Rect(); ok {
			hud.DrawMarquee(screen, rect)
		}
	}
	if cr.Debug {
		hud.DrawDebugText(screen, cr.Rig.DebugString(), 8, 8)
	}
}

// drawBox draws the edges of an axis-aligned box, skipping any edge with an
// end behind the camera.
func drawBox(screen *ebiten.Image, proj camera.Projection, min, max common.Vec3, clr color.Color) {
	corners := [8]common.Vec3{
		{X: min.X, Y: min.Y, Z: min.Z}, {X: max.X, Y: min.Y, Z: min.Z},
		{X: max.X, Y: max.Y, Z: min.Z}, {X: min.X, Y: max.Y, Z: min.Z},
		{X: min.X, Y: min.Y, Z: max.Z}, {X: max.X, Y: min.Y, Z: max.Z},
		{X: max.X, Y: max.Y, Z: max.Z}, {X: min.X, Y: max.Y, Z: max.Z},
	}
	var screenPts [8]common.Vec2
	var visible [8]bool
	for i, c := range corners {
		screenPts[i], visible[i] = proj.Project(c)
	}
	edges := [12][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}
	for _, edge := range edges {
		a, b := edge[0], edge[1]
		if !visible[a] || !visible[b] {
			continue
		}
		vector.StrokeLine(screen, float32(screenPts[a].X), float32(screenPts[a].Y), float32(screenPts[b].X), float32(screenPts[b].Y), 1, clr, false)
	}
}
