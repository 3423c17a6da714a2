package system

import (
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/ringworld/common"
	"github.com/milk9111/ringworld/ecs"
	"github.com/milk9111/ringworld/input"
)

var mouseButtons = map[string]ebiten.MouseButton{
	"left":   ebiten.MouseButtonLeft,
	"right":  ebiten.MouseButtonRight,
	"middle": ebiten.MouseButtonMiddle,
}

var gamepadButtons = map[string]ebiten.StandardGamepadButton{
	"a":      ebiten.StandardGamepadButtonRightBottom,
	"b":      ebiten.StandardGamepadButtonRightRight,
	"x":      ebiten.StandardGamepadButtonRightLeft,
	"y":      ebiten.StandardGamepadButtonRightTop,
	"lb":     ebiten.StandardGamepadButtonFrontTopLeft,
	"rb":     ebiten.StandardGamepadButtonFrontTopRight,
	"lt":     ebiten.StandardGamepadButtonFrontBottomLeft,
	"rt":     ebiten.StandardGamepadButtonFrontBottomRight,
	"select": ebiten.StandardGamepadButtonCenterLeft,
	"start":  ebiten.StandardGamepadButtonCenterRight,
	"ls":     ebiten.StandardGamepadButtonLeftStick,
	"rs":     ebiten.StandardGamepadButtonRightStick,
	"up":     ebiten.StandardGamepadButtonLeftTop,
	"down":   ebiten.StandardGamepadButtonLeftBottom,
	"left":   ebiten.StandardGamepadButtonLeftLeft,
	"right":  ebiten.StandardGamepadButtonLeftRight,
}

var gamepadAxes = map[string]ebiten.StandardGamepadAxis{
	"left_x":  ebiten.StandardGamepadAxisLeftStickHorizontal,
	"left_y":  ebiten.StandardGamepadAxisLeftStickVertical,
	"right_x": ebiten.StandardGamepadAxisRightStickHorizontal,
	"right_y": ebiten.StandardGamepadAxisRightStickVertical,
}

// EbitenDevice reads the keyboard, mouse and first gamepad through ebiten.
type EbitenDevice struct {
	keys    map[string]ebiten.Key
	unknown map[string]bool

	cursor     common.Vec2
	lastCursor common.Vec2
	hasCursor  bool
	delta      common.Vec2
	wheel      common.Vec2
	gamepad    ebiten.GamepadID
	hasGamepad bool
}

func NewEbitenDevice() *EbitenDevice {
	return &EbitenDevice{
		keys:    make(map[string]ebiten.Key),
		unknown: make(map[string]bool),
	}
}

// Poll samples the per-frame values. Call once per tick before reading.
func (d *EbitenDevice) Poll() {
	x, y := ebiten.CursorPosition()
	d.cursor = common.Vec2{X: float64(x), Y: float64(y)}
	if d.hasCursor {
		d.delta = d.cursor.Sub(d.lastCursor)
	}
	d.lastCursor = d.cursor
	d.hasCursor = true

	wx, wy := ebiten.Wheel()
	d.wheel = common.Vec2{X: wx, Y: wy}

	d.hasGamepad = false
	if ids := ebiten.AppendGamepadIDs(nil); len(ids) > 0 {
		d.gamepad = ids[0]
		d.hasGamepad = ebiten.IsStandardGamepadLayoutAvailable(ids[0])
	}
}

func (d *EbitenDevice) Cursor() common.Vec2 {
	return d.cursor
}

func (d *EbitenDevice) KeyPressed(name string) bool {
	k, ok := d.key(name)
	return ok && ebiten.IsKeyPressed(k)
}

func (d *EbitenDevice) key(name string) (ebiten.Key, bool) {
	if k, ok := d.keys[name]; ok {
		return k, true
	}
	if d.unknown[name] {
		return 0, false
	}
	var k ebiten.Key
	if err := k.UnmarshalText([]byte(name)); err != nil {
		log.Printf("input: unknown key %q: %v", name, err)
		d.unknown[name] = true
		return 0, false
	}
	d.keys[name] = k
	return k, true
}

func (d *EbitenDevice) MouseButtonPressed(name string) bool {
	b, ok := mouseButtons[strings.ToLower(name)]
	return ok && ebiten.IsMouseButtonPressed(b)
}

func (d *EbitenDevice) GamepadButtonPressed(name string) bool {
	if !d.hasGamepad {
		return false
	}
	b, ok := gamepadButtons[strings.ToLower(name)]
	return ok && ebiten.IsStandardGamepadButtonPressed(d.gamepad, b)
}

func (d *EbitenDevice) GamepadAxis(name string) float64 {
	if !d.hasGamepad {
		return 0
	}
	a, ok := gamepadAxes[strings.ToLower(name)]
	if !ok {
		return 0
	}
	return ebiten.StandardGamepadAxisValue(d.gamepad, a)
}

func (d *EbitenDevice) MouseDelta() common.Vec2 {
	return d.delta
}

func (d *EbitenDevice) Wheel() common.Vec2 {
	return d.wheel
}

// Pointer is the source the marquee reads the cursor from.
type Pointer interface {
	Cursor() common.Vec2
}

// InputSystem polls the device and refreshes the shared action mapper. It
// runs first so every later system sees the same frame of input.
type InputSystem struct {
	device *EbitenDevice
	mapper *input.Mapper
}

func NewInputSystem(device *EbitenDevice, mapper *input.Mapper) *InputSystem {
	return &InputSystem{device: device, mapper: mapper}
}

func (s *InputSystem) Update(w *ecs.World) {
	if s == nil || s.device == nil || s.mapper == nil {
		return
	}
	s.device.Poll()
	s.mapper.Update(s.device)
}
