package system

import (
	"log"

	"github.com/milk9111/ringworld/ecs"
	"github.com/milk9111/ringworld/ecs/component"
	"github.com/milk9111/ringworld/input"
	"github.com/milk9111/ringworld/selection"
)

// SelectionSender delivers a released marquee to whoever owns selection:
// the local service or a remote server.
type SelectionSender interface {
	SendSelection(controller selection.ControllerID, req selection.Request) error
}

// MarqueeSystem captures the drag for the local player. Nothing is sent
// until the select input is released; cancelling drops the drag.
type MarqueeSystem struct {
	mapper  *input.Mapper
	pointer Pointer
	sender  SelectionSender
}

func NewMarqueeSystem(mapper *input.Mapper, pointer Pointer, sender SelectionSender) *MarqueeSystem {
	return &MarqueeSystem{mapper: mapper, pointer: pointer, sender: sender}
}

func (s *MarqueeSystem) SetSender(sender SelectionSender) {
	s.sender = sender
}

func (s *MarqueeSystem) Update(w *ecs.World) {
	if s == nil || s.mapper == nil || s.pointer == nil {
		return
	}
	m := s.mapper
	cursor := s.pointer.Cursor()

	ecs.ForEach2(w, component.PlayerComponent.Kind(), component.MarqueeComponent.Kind(), func(e ecs.Entity, player *component.Player, mq *component.Marquee) {
		drag := &mq.Drag
		if drag.Drawing() && m.JustPressed(input.ActionSelectCancel) {
			drag.Cancel()
			return
		}

		switch {
		case m.JustPressed(input.ActionSelect):
			drag.Begin(cursor)
		case m.Pressed(input.ActionSelect):
			drag.Update(cursor)
		case m.JustReleased(input.ActionSelect):
			drag.Update(cursor)
			req, ok := drag.Release(m.Pressed(input.ActionSelectAdd), m.Pressed(input.ActionSelectRemove))
			if !ok || s.sender == nil {
				return
			}
			if err := s.sender.SendSelection(player.Controller, req); err != nil {
				log.Printf("selection: send for %s: %v", player.Controller, err)
			}
		}
	})
}
