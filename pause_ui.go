package main

import (
	"github.com/ebitenui/ebitenui"

	"github.com/milk9111/ringworld/camera"
	"github.com/milk9111/ringworld/hud"
)

// newPauseUI wires the pause menu buttons to the player's camera rig.
func newPauseUI(g *Game) *ebitenui.UI {
	label := camera.ViewModeThirdPerson.String()
	if rig := g.rig(); rig != nil {
		label = rig.ViewMode().String()
	}

	return hud.NewPauseMenu(baseWidth, baseHeight, label, hud.PauseActions{
		Resume: func() {
			g.setPaused(false)
		},
		CycleView: func() string {
			rig := g.rig()
			if rig == nil {
				return label
			}
			return rig.CycleViewMode().String()
		},
		SwitchShoulder: func() {
			if rig := g.rig(); rig != nil {
				rig.SwitchShoulder()
			}
		},
		CopyDebug: g.copyDebug,
	})
}
