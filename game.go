package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"golang.design/x/clipboard"

	"github.com/milk9111/ringworld/camera"
	"github.com/milk9111/ringworld/ecs"
	"github.com/milk9111/ringworld/ecs/component"
	"github.com/milk9111/ringworld/ecs/entity"
	"github.com/milk9111/ringworld/ecs/system"
	"github.com/milk9111/ringworld/input"
	"github.com/milk9111/ringworld/netrpc"
	"github.com/milk9111/ringworld/physics"
	"github.com/milk9111/ringworld/prefabs"
	"github.com/milk9111/ringworld/selection"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

type gameConfig struct {
	Level  string
	Server string
	Debug  bool
	Watch  bool
}

type Game struct {
	frames int

	world     *ecs.World
	scheduler *ecs.Scheduler
	physics   *physics.World
	ctx       *entity.Context
	level     entity.Level

	device   *system.EbitenDevice
	mapper   *input.Mapper
	control  *system.PlayerControlSystem
	render   *system.RenderSystem
	registry *system.UnitRegistry
	local    *system.LocalSelection
	remote   *netrpc.Client
	results  <-chan netrpc.Result

	watcher *prefabs.Watcher
	pauseUI *ebitenui.UI
	paused  bool

	clipboardReady bool
	width, height  float64
}

func NewGame(cfg gameConfig) (*Game, error) {
	g := &Game{
		world:   ecs.NewWorld(),
		physics: physics.NewWorld(),
		device:  system.NewEbitenDevice(),
		render:  system.NewRenderSystem(),
		width:   baseWidth,
		height:  baseHeight,
	}
	g.registry = system.NewUnitRegistry(g.world)

	effects, err := prefabs.LoadEffects()
	if err != nil {
		log.Printf("game: effects: %v", err)
	}
	g.ctx = &entity.Context{Physics: g.physics, Effects: effects, Authority: cfg.Server == ""}

	spec, err := prefabs.LoadLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	g.level, err = entity.LoadLevel(g.world, spec, g.ctx, true)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	if !g.level.Player.Valid() {
		return nil, fmt.Errorf("game: level %s has no player", spec.Name)
	}

	controls, err := prefabs.LoadControls()
	if err != nil {
		log.Printf("game: controls: %v", err)
	}
	g.mapper = input.NewMapper(controls.Bindings)
	g.control = system.NewPlayerControlSystem(g.mapper, controls.Look)

	if cr, ok := ecs.Get(g.world, g.level.Player, component.CameraRigComponent.Kind()); ok {
		cr.Debug = cr.Debug || cfg.Debug
	}

	var sender system.SelectionSender
	var viewSync ecs.System
	if cfg.Server != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		client, err := netrpc.Dial(ctx, cfg.Server, netrpc.ClientConfig{Controller: g.controller()})
		if err != nil {
			return nil, fmt.Errorf("game: %w", err)
		}
		g.remote = client
		g.results = client.Results()
		sender = client
		viewSync = system.NewViewSyncSystem(client, g.controller())
		log.Printf("game: selection resolved by %s as %s", cfg.Server, client.Controller())
	} else {
		service, err := entity.NewSelectionService(g.world, spec.Selection)
		if err != nil {
			return nil, fmt.Errorf("game: %w", err)
		}
		g.local = system.NewLocalSelection(g.world, service)
		sender = g.local
	}

	g.scheduler = ecs.NewScheduler(
		system.NewInputSystem(g.device, g.mapper),
		g.control,
		system.NewPlatformSystem(g.physics),
		system.NewCameraSystem(),
		viewSync,
		system.NewMarqueeSystem(g.mapper, g.device, sender),
		system.NewVitalitySystem(),
		system.NewHealthBarSystem(),
	)

	if err := clipboard.Init(); err != nil {
		log.Printf("game: clipboard unavailable: %v", err)
	} else {
		g.clipboardReady = true
	}

	if cfg.Watch {
		g.startWatching()
	}
	g.pauseUI = newPauseUI(g)
	return g, nil
}

func (g *Game) controller() selection.ControllerID {
	if p, ok := ecs.Get(g.world, g.level.Player, component.PlayerComponent.Kind()); ok {
		return p.Controller
	}
	return ""
}

func (g *Game) rig() *camera.Rig {
	if cr, ok := ecs.Get(g.world, g.level.Player, component.CameraRigComponent.Kind()); ok {
		return cr.Rig
	}
	return nil
}

func (g *Game) Update() error {
	g.frames++
	g.drainReloads()
	g.drainResults()

	if g.paused {
		g.device.Poll()
		g.mapper.Update(g.device)
		if g.mapper.JustPressed(input.ActionPause) {
			g.setPaused(false)
			return nil
		}
		g.pauseUI.Update()
		return nil
	}

	g.scheduler.Step(g.world, 1/float64(ebiten.TPS()))
	g.drainEvents()
	if g.local != nil && g.frames%60 == 0 {
		g.local.Service().Prune()
	}
	if g.mapper.JustPressed(input.ActionPause) {
		g.setPaused(true)
	}
	return nil
}

func (g *Game) setPaused(paused bool) {
	g.paused = paused
	if paused {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
		return
	}
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)
}

func (g *Game) drainEvents() {
	for _, ev := range g.world.Events().Drain() {
		if ev.Type == ecs.EventViewMode {
			log.Printf("camera: view mode %v", ev.Data)
		}
	}
}

// drainResults mirrors what the remote server selected onto the local units.
// Each result carries the full selection, so a dropped result heals on the next.
func (g *Game) drainResults() {
	if g.results == nil {
		return
	}
	for {
		select {
		case r, ok := <-g.results:
			if !ok {
				log.Printf("game: selection server gone: %v", g.remote.Err())
				g.results = nil
				return
			}
			if r.Error == "" {
				g.registry.ReconcileSelection(g.controller(), r.Selected)
			}
		default:
			return
		}
	}
}

func (g *Game) copyDebug() {
	rig := g.rig()
	if rig == nil {
		return
	}
	if !g.clipboardReady {
		log.Printf("game: clipboard unavailable")
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(rig.DebugString()))
	log.Printf("game: camera state copied")
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)

	status := fmt.Sprintf("FPS: %.0f", ebiten.ActualFPS())
	if g.remote != nil {
		status += fmt.Sprintf("    remote selection: %d", len(g.remote.Selected()))
	} else if g.local != nil {
		status += fmt.Sprintf("    selected: %d", len(g.local.Service().Selected(g.controller())))
	}
	ebitenutil.DebugPrintAt(screen, status, 8, int(g.height)-20)

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

// LayoutF keeps the render size equal to the window so every camera
// projects onto the real viewport.
func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	g.width, g.height = outsideWidth, outsideHeight
	viewport := camera.Viewport{Width: outsideWidth, Height: outsideHeight}
	ecs.ForEach(g.world, component.CameraRigComponent.Kind(), func(e ecs.Entity, cr *component.CameraRig) {
		cr.Viewport = viewport
	})
	return outsideWidth, outsideHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) Close() {
	if g.watcher != nil {
		g.watcher.Close()
	}
	if g.remote != nil {
		g.remote.Close()
	}
}
