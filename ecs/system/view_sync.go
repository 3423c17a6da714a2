package system

import (
	"log"

	"github.com/milk9111/ringworld/camera"
	"github.com/milk9111/ringworld/ecs"
	"github.com/milk9111/ringworld/ecs/component"
	"github.com/milk9111/ringworld/selection"
)

type ViewSender interface {
	SendView(view camera.ViewInfo, viewport camera.Viewport) error
}

// ViewSyncSystem reports the local player's view to a remote authority
// whenever it changes. Run it after CameraSystem.
type ViewSyncSystem struct {
	sender     ViewSender
	controller selection.ControllerID

	sent     bool
	failed   bool
	view     camera.ViewInfo
	viewport camera.Viewport
}

func NewViewSyncSystem(sender ViewSender, controller selection.ControllerID) *ViewSyncSystem {
	return &ViewSyncSystem{sender: sender, controller: controller}
}

func (s *ViewSyncSystem) Update(w *ecs.World) {
	if s.sender == nil {
		return
	}
	done := false
	ecs.ForEach2(w, component.PlayerComponent.Kind(), component.CameraRigComponent.Kind(), func(e ecs.Entity, player *component.Player, cr *component.CameraRig) {
		if done || player.Controller != s.controller || cr.Rig == nil {
			return
		}
		done = true

		view := cr.Rig.ViewInfo()
		if s.sent && view == s.view && cr.Viewport == s.viewport {
			return
		}
		if err := s.sender.SendView(view, cr.Viewport); err != nil {
			if !s.failed {
				log.Printf("system: send view: %v", err)
			}
			s.failed = true
			return
		}
		s.sent, s.failed = true, false
		s.view, s.viewport = view, cr.Viewport
	})
}
