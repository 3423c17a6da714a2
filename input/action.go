package input

import (
	"fmt"
	"log"
	"math"

	"github.com/milk9111/ringworld/common"
)

// Action names a gameplay intent that one or more device inputs feed.
type Action string

const (
	ActionMove           Action = "move"
	ActionLookMouse      Action = "look_mouse"
	ActionLook           Action = "look"
	ActionSprint         Action = "sprint"
	ActionWalk           Action = "walk"
	ActionCrouch         Action = "crouch"
	ActionJump           Action = "jump"
	ActionAim            Action = "aim"
	ActionViewMode       Action = "view_mode"
	ActionSwitchShoulder Action = "switch_shoulder"
	ActionTopDownZoom    Action = "top_down_zoom"
	ActionTopDownRotate  Action = "top_down_rotate"
	ActionSelect         Action = "select"
	ActionSelectCancel   Action = "select_cancel"
	ActionSelectAdd      Action = "select_add"
	ActionSelectRemove   Action = "select_remove"
	ActionPause          Action = "pause"
	ActionDebug          Action = "debug"
)

// Axis names for Binding.Axis that are read from the mouse rather than a
// gamepad.
const (
	AxisMouseX = "mouse_x"
	AxisMouseY = "mouse_y"
	AxisWheelX = "wheel_x"
	AxisWheelY = "wheel_y"
)

const DefaultDeadzone = 0.2

// Binding maps one physical input onto one component of an action value.
// Exactly one of Key, Mouse, Gamepad or Axis should be set. Buttons add
// Scale while held; axes add their reading times Scale.
type Binding struct {
	Key       string  `yaml:"key,omitempty"`
	Mouse     string  `yaml:"mouse,omitempty"`
	Gamepad   string  `yaml:"gamepad,omitempty"`
	Axis      string  `yaml:"axis,omitempty"`
	Component string  `yaml:"component,omitempty"`
	Scale     float64 `yaml:"scale,omitempty"`
	Deadzone  float64 `yaml:"deadzone,omitempty"`
}

func (b Binding) scale() float64 {
	if b.Scale == 0 {
		return 1
	}
	return b.Scale
}

func (b Binding) Validate() error {
	set := 0
	for _, s := range []string{b.Key, b.Mouse, b.Gamepad, b.Axis} {
		if s != "" {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("input: binding needs exactly one source, got %d", set)
	}
	switch b.Component {
	case "", "x", "y":
	default:
		return fmt.Errorf("input: unknown component %q", b.Component)
	}
	return nil
}

// Bindings is the action map loaded from bindings.yaml.
type Bindings struct {
	Actions map[Action][]Binding `yaml:"actions"`
}

func (b Bindings) Validate() error {
	for action, list := range b.Actions {
		for i, binding := range list {
			if err := binding.Validate(); err != nil {
				return fmt.Errorf("input: %s[%d]: %w", action, i, err)
			}
		}
	}
	return nil
}

// Device is the raw input source polled once per frame.
type Device interface {
	KeyPressed(name string) bool
	MouseButtonPressed(name string) bool
	GamepadButtonPressed(name string) bool
	GamepadAxis(name string) float64
	MouseDelta() common.Vec2
	Wheel() common.Vec2
}

// Mapper turns device state into per-frame action values.
type Mapper struct {
	bindings Bindings
	values   map[Action]common.Vec2
	held     map[Action]bool
	prev     map[Action]bool
}

func NewMapper(bindings Bindings) *Mapper {
	if err := bindings.Validate(); err != nil {
		log.Printf("input: %v", err)
	}
	return &Mapper{
		bindings: bindings,
		values:   make(map[Action]common.Vec2),
		held:     make(map[Action]bool),
		prev:     make(map[Action]bool),
	}
}

func (m *Mapper) SetBindings(bindings Bindings) {
	if err := bindings.Validate(); err != nil {
		log.Printf("input: %v", err)
	}
	m.bindings = bindings
}

func (m *Mapper) Update(d Device) {
	m.prev, m.held = m.held, m.prev
	clear(m.held)
	clear(m.values)

	for action, list := range m.bindings.Actions {
		var v common.Vec2
		for _, b := range list {
			amount := read(d, b) * b.scale()
			if b.Component == "y" {
				v.Y += amount
			} else {
				v.X += amount
			}
		}
		m.values[action] = v
		m.held[action] = v.X != 0 || v.Y != 0
	}
}

func read(d Device, b Binding) float64 {
	switch {
	case b.Key != "":
		return boolValue(d.KeyPressed(b.Key))
	case b.Mouse != "":
		return boolValue(d.MouseButtonPressed(b.Mouse))
	case b.Gamepad != "":
		return boolValue(d.GamepadButtonPressed(b.Gamepad))
	}

	switch b.Axis {
	case AxisMouseX:
		return d.MouseDelta().X
	case AxisMouseY:
		return d.MouseDelta().Y
	case AxisWheelX:
		return d.Wheel().X
	case AxisWheelY:
		return d.Wheel().Y
	case "":
		return 0
	}
	dz := b.Deadzone
	if dz == 0 {
		dz = DefaultDeadzone
	}
	v := d.GamepadAxis(b.Axis)
	if math.Abs(v) < dz {
		return 0
	}
	return v
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func (m *Mapper) Value(a Action) common.Vec2 {
	return m.values[a]
}

func (m *Mapper) Axis(a Action) float64 {
	return m.values[a].X
}

func (m *Mapper) Pressed(a Action) bool {
	return m.held[a]
}

func (m *Mapper) JustPressed(a Action) bool {
	return m.held[a] && !m.prev[a]
}

func (m *Mapper) JustReleased(a Action) bool {
	return !m.held[a] && m.prev[a]
}
