package system

import (
	"fmt"

	"github.com/milk9111/ringworld/ecs"
	"github.com/milk9111/ringworld/ecs/component"
	"github.com/milk9111/ringworld/selection"
)

// LocalSelection resolves marquees in-process against the requesting
// player's camera, for when this process is the authority.
type LocalSelection struct {
	world   *ecs.World
	service *selection.Service
}

func NewLocalSelection(w *ecs.World, service *selection.Service) *LocalSelection {
	return &LocalSelection{world: w, service: service}
}

func (l *LocalSelection) Service() *selection.Service {
	return l.service
}

func (l *LocalSelection) SendSelection(controller selection.ControllerID, req selection.Request) error {
	var (
		found bool
		err   error
	)
	ecs.ForEach2(l.world, component.PlayerComponent.Kind(), component.CameraRigComponent.Kind(), func(e ecs.Entity, player *component.Player, cr *component.CameraRig) {
		if found || player.Controller != controller || cr.Rig == nil {
			return
		}
		found = true
		proj, perr := cr.Rig.Projection(cr.Viewport)
		if perr != nil {
			err = fmt.Errorf("system: projection for %s: %w", controller, perr)
			return
		}
		l.service.Resolve(controller, proj, req)
	})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("system: no camera for controller %s", controller)
	}
	return nil
}
