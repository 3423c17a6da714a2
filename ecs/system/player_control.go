package system

import (
	"math"

	"github.com/milk9111/ringworld/camera"
	"github.com/milk9111/ringworld/common"
	"github.com/milk9111/ringworld/ecs"
	"github.com/milk9111/ringworld/ecs/component"
	"github.com/milk9111/ringworld/input"
)

const maxViewPitch = 89

// PlayerControlSystem applies the mapped actions to the controlled
// character and its camera rig, then moves the character.
type PlayerControlSystem struct {
	mapper *input.Mapper
	look   input.LookSettings
}

func NewPlayerControlSystem(mapper *input.Mapper, look input.LookSettings) *PlayerControlSystem {
	return &PlayerControlSystem{mapper: mapper, look: look}
}

func (s *PlayerControlSystem) SetLookSettings(look input.LookSettings) {
	s.look = look
}

func (s *PlayerControlSystem) Update(w *ecs.World) {
	if s == nil || s.mapper == nil {
		return
	}
	dt := w.DeltaTime()
	m := s.mapper

	ecs.ForEach4(w, component.PlayerComponent.Kind(), component.ControlComponent.Kind(), component.TransformComponent.Kind(), component.CameraRigComponent.Kind(), func(e ecs.Entity, player *component.Player, ctrl *component.Control, t *component.Transform, cr *component.CameraRig) {
		rig := cr.Rig
		if rig == nil {
			return
		}
		c := &ctrl.Character

		switch {
		case m.JustPressed(input.ActionSprint):
			c.Sprint(true)
		case m.JustReleased(input.ActionSprint):
			c.Sprint(false)
		}
		if m.JustPressed(input.ActionWalk) {
			c.ToggleWalk()
		}
		if m.JustPressed(input.ActionCrouch) {
			c.ToggleCrouch()
		}
		switch {
		case m.JustPressed(input.ActionJump):
			c.Jump(true)
		case m.JustReleased(input.ActionJump):
			c.Jump(false)
		}
		c.Aiming = m.Pressed(input.ActionAim)

		if m.JustPressed(input.ActionViewMode) {
			mode := rig.CycleViewMode()
			w.Events().Push(ecs.Event{Type: ecs.EventViewMode, Entity: e, Data: mode})
		}
		if m.JustPressed(input.ActionSwitchShoulder) {
			rig.SwitchShoulder()
		}
		if m.JustPressed(input.ActionDebug) {
			cr.Debug = !cr.Debug
		}

		if rig.ViewMode() == camera.ViewModeTopDown {
			input.ApplyTopDown(rig, m.Axis(input.ActionTopDownZoom), m.Value(input.ActionTopDownRotate))
		} else {
			yaw, pitch := input.LookDelta(s.look, m.Value(input.ActionLookMouse), m.Value(input.ActionLook), dt)
			ctrl.ViewRotation.Yaw = common.NormalizeAxis(ctrl.ViewRotation.Yaw + yaw)
			ctrl.ViewRotation.Pitch = common.Clamp(ctrl.ViewRotation.Pitch+pitch, -maxViewPitch, maxViewPitch)
		}

		moveYaw := ctrl.ViewRotation.Yaw
		if rig.ViewMode() == camera.ViewModeTopDown {
			moveYaw = rig.TopDown().Yaw
		}
		ctrl.Move = input.MoveDirection(m.Value(input.ActionMove), moveYaw)
		move(t, ctrl, player, rig.ViewMode(), dt)
	})
}

func move(t *component.Transform, ctrl *component.Control, player *component.Player, mode camera.ViewMode, dt float64) {
	if ctrl.Move.IsNearlyZero() {
		if mode != camera.ViewModeTopDown {
			t.Rotation.Yaw = ctrl.ViewRotation.Yaw
		}
		return
	}
	t.Location = t.Location.Add(ctrl.Move.Scale(gaitSpeed(player, ctrl.Character) * dt))
	if mode == camera.ViewModeTopDown {
		t.Rotation.Yaw = common.Degrees(math.Atan2(ctrl.Move.Y, ctrl.Move.X))
		return
	}
	t.Rotation.Yaw = ctrl.ViewRotation.Yaw
}

func gaitSpeed(player *component.Player, c input.Character) float64 {
	speed := player.MoveSpeed
	switch c.Gait {
	case input.GaitWalking:
		speed = player.WalkSpeed
	case input.GaitSprinting:
		speed = player.SprintSpeed
	}
	if c.Stance == input.StanceCrouching {
		speed = math.Min(speed, player.WalkSpeed)
	}
	return speed
}
