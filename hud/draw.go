package hud

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/ringworld/selection"
)

var (
	marqueeFill   = color.NRGBA{R: 0, G: 255, B: 0, A: 64}
	marqueeBorder = color.NRGBA{R: 0, G: 255, B: 0, A: 255}
	barBackground = color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 200}
)

var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)

// DrawMarquee draws the normalised drag rectangle: a translucent fill with a
// one pixel border.
func DrawMarquee(screen *ebiten.Image, r selection.Rect) {
	if r.Degenerate() {
		return
	}
	x, y := float32(r.Min.X), float32(r.Min.Y)
	w, h := float32(r.Width()), float32(r.Height())
	vector.FillRect(screen, x, y, w, h, marqueeFill, false)
	vector.StrokeRect(screen, x, y, w, h, 1, marqueeBorder, false)
}

// BarStyle sizes a floating health bar in screen pixels.
type BarStyle struct {
	Width     float32
	Height    float32
	ShowLabel bool
}

var DefaultBarStyle = BarStyle{Width: 60, Height: 6, ShowLabel: true}

// DrawHealthBar draws h centred above (x, y) when it is visible.
func DrawHealthBar(screen *ebiten.Image, h *HealthBar, x, y float64, style BarStyle) {
	if h == nil || !h.Visible() {
		return
	}
	left := float32(x) - style.Width/2
	top := float32(y) - style.Height
	vector.FillRect(screen, left, top, style.Width, style.Height, barBackground, false)

	fill := colornames.Limegreen
	if h.Selected() {
		fill = colornames.Gold
	}
	vector.FillRect(screen, left, top, style.Width*float32(h.Percent()), style.Height, fill, false)
	vector.StrokeRect(screen, left, top, style.Width, style.Height, 1, colornames.Black, false)

	if style.ShowLabel {
		op := &ebtext.DrawOptions{}
		op.GeoM.Translate(float64(left), float64(top)-14)
		op.ColorScale.ScaleWithColor(colornames.White)
		ebtext.Draw(screen, h.Label(), face, op)
	}
}

// DrawDebugText prints multi-line text at (x, y) on a dark backdrop.
func DrawDebugText(screen *ebiten.Image, s string, x, y float64) {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	width := 0
	for _, l := range lines {
		if len(l) > width {
			width = len(l)
		}
	}
	const lineHeight = 14
	vector.FillRect(screen, float32(x)-4, float32(y)-2, float32(width*7+8), float32(len(lines)*lineHeight+4), color.NRGBA{A: 160}, false)

	for i, l := range lines {
		op := &ebtext.DrawOptions{}
		op.GeoM.Translate(x, y+float64(i*lineHeight))
		op.ColorScale.ScaleWithColor(colornames.White)
		ebtext.Draw(screen, l, face, op)
	}
}
