package hud

import (
	"fmt"
	"math"

	"github.com/milk9111/ringworld/attributes"
)

const DefaultAimLinger = 2.0

// HealthBar decides what a unit's floating health bar shows and whether it
// is visible at all. It holds no drawing state.
type HealthBar struct {
	HideWhenNoSource bool
	HideWhenFull     bool
	AimLinger        float64

	hasSource bool
	vitality  attributes.Vitality

	aimFocus bool
	linger   float64
	selected bool
}

func NewHealthBar() *HealthBar {
	return &HealthBar{
		HideWhenNoSource: true,
		HideWhenFull:     true,
		AimLinger:        DefaultAimLinger,
	}
}

// SetVitality binds the bar to a source and refreshes its values.
func (h *HealthBar) SetVitality(v attributes.Vitality) {
	h.hasSource = true
	h.vitality = v
}

func (h *HealthBar) ClearSource() {
	h.hasSource = false
	h.vitality = attributes.Vitality{}
}

func (h *HealthBar) HasSource() bool {
	return h.hasSource
}

func (h *HealthBar) AimFocusGained() {
	h.aimFocus = true
	h.linger = 0
}

// AimFocusLost keeps the bar up for linger seconds. A negative linger uses
// AimLinger; zero hides it on the next visibility check.
func (h *HealthBar) AimFocusLost(linger float64) {
	h.aimFocus = false
	if linger < 0 {
		linger = h.AimLinger
	}
	h.linger = math.Max(linger, 0)
}

func (h *HealthBar) SetSelected(selected bool) {
	h.selected = selected
}

func (h *HealthBar) Selected() bool {
	return h.selected
}

func (h *HealthBar) Lingering() bool {
	return h.linger > 0
}

func (h *HealthBar) Tick(dt float64) {
	if h.linger > 0 {
		h.linger = math.Max(h.linger-dt, 0)
	}
}

// Visible applies the rules in priority order: a missing source hides,
// aim focus, linger or selection shows, a full bar hides, otherwise show.
func (h *HealthBar) Visible() bool {
	if h.HideWhenNoSource && !h.hasSource {
		return false
	}
	if h.aimFocus || h.Lingering() || h.selected {
		return true
	}
	if h.HideWhenFull && h.full() {
		return false
	}
	return true
}

func (h *HealthBar) full() bool {
	if !h.hasSource {
		return true
	}
	return h.vitality.Full()
}

func (h *HealthBar) Percent() float64 {
	return h.vitality.Percent()
}

func (h *HealthBar) Label() string {
	return fmt.Sprintf("%d / %d", int(math.Round(h.vitality.Health)), int(math.Round(h.vitality.MaxHealth)))
}
