package main

import (
	"log"
	"path"
	"path/filepath"
	"strings"

	"github.com/milk9111/ringworld/ecs"
	"github.com/milk9111/ringworld/ecs/component"
	"github.com/milk9111/ringworld/prefabs"
	"github.com/milk9111/ringworld/script"
)

// startWatching follows the on-disk prefab directory. Without one the game
// keeps running on the embedded specs.
func (g *Game) startWatching() {
	w, err := prefabs.NewWatcher(prefabs.DiskDir, filepath.Join(prefabs.DiskDir, "scripts"))
	if err != nil {
		log.Printf("game: hot reload disabled: %v", err)
		return
	}
	g.watcher = w
	log.Printf("game: watching %s", prefabs.DiskDir)
}

func (g *Game) drainReloads() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case p, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(prefabs.Name(p))
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("game: watcher: %v", err)
		default:
			return
		}
	}
}

func (g *Game) reload(name string) {
	switch {
	case name == prefabs.CameraFile:
		settings, err := prefabs.LoadCameraSettings(prefabs.CameraFile)
		if err != nil {
			log.Printf("game: reload %s: %v; using defaults", name, err)
		}
		ecs.ForEach(g.world, component.CameraRigComponent.Kind(), func(e ecs.Entity, cr *component.CameraRig) {
			if cr.Rig != nil {
				cr.Rig.SetSettings(settings)
			}
		})
		log.Printf("game: reloaded %s", name)
	case name == prefabs.ControlsFile:
		controls, err := prefabs.LoadControls()
		if err != nil {
			log.Printf("game: reload %s: %v", name, err)
			return
		}
		g.mapper.SetBindings(controls.Bindings)
		g.control.SetLookSettings(controls.Look)
		log.Printf("game: reloaded %s", name)
	case strings.HasSuffix(name, ".tengo"):
		g.reloadRule(name)
	default:
		log.Printf("game: %s changed; restart to apply", name)
	}
}

// reloadRule recompiles every cached rule built from the changed script and
// swaps it into the units using it. A script that no longer compiles leaves
// the old rule in place.
func (g *Game) reloadRule(name string) {
	changed := scriptBase(name)
	swapped := make(map[*script.Rule]*script.Rule)
	ecs.ForEach(g.world, component.UnitComponent.Kind(), func(e ecs.Entity, u *component.Unit) {
		if u.Rule == nil || scriptBase(u.Rule.Name()) != changed {
			return
		}
		next, ok := swapped[u.Rule]
		if !ok {
			g.ctx.ForgetRule(u.Rule.Name())
			rule, err := g.ctx.Rule(u.Rule.Name())
			if err != nil {
				log.Printf("game: reload %s: %v", name, err)
				rule = u.Rule
			}
			swapped[u.Rule] = rule
			next = rule
		}
		u.Rule = next
	})
	if len(swapped) > 0 {
		log.Printf("game: reloaded %s", name)
	}
}

func scriptBase(name string) string {
	return strings.TrimSuffix(path.Base(filepath.ToSlash(name)), ".tengo")
}
