package game

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/surround-panner/internal/config"
	"github.com/iburimskiy/surround-panner/internal/panel"
)

var (
	backgroundColor = color.RGBA{R: 18, G: 20, B: 28, A: 255}
	canvasColor     = color.RGBA{R: 204, G: 204, B: 204, A: 255}
	ringColor       = color.RGBA{R: 150, G: 170, B: 200, A: 255}
	speakerColor    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	markerColor     = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	textColor       = color.RGBA{R: 230, G: 232, B: 240, A: 255}
	dimTextColor    = color.RGBA{R: 140, G: 150, B: 170, A: 255}
	failedColor     = color.RGBA{R: 235, G: 90, B: 80, A: 255}
)

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	if !g.layout.Ready() {
		g.drawText(screen, "Window too small", 12, 12, g.face, failedColor)
		return
	}

	g.drawCanvas(screen)
	g.drawSpeakers(screen)
	g.drawTrail(screen)
	g.drawMarker(screen)
	g.drawReadout(screen)
}

func (g *Game) drawCanvas(screen *ebiten.Image) {
	cx, cy := g.layout.CenterScreen()
	r := float32(g.layout.Radius)
	vector.DrawFilledCircle(screen, float32(cx), float32(cy), r, canvasColor, true)
	vector.StrokeCircle(screen, float32(cx), float32(cy), r, 2, ringColor, true)

	// faint guide rings
	for i := 1; i <= 3; i++ {
		gr := r * float32(i) / 4
		vector.StrokeCircle(screen, float32(cx), float32(cy), gr, 1, color.RGBA{R: 170, G: 170, B: 170, A: 255}, true)
	}
	vector.StrokeLine(screen, float32(cx)-r, float32(cy), float32(cx)+r, float32(cy), 1, color.RGBA{R: 170, G: 170, B: 170, A: 255}, true)
	vector.StrokeLine(screen, float32(cx), float32(cy)-r, float32(cx), float32(cy)+r, 1, color.RGBA{R: 170, G: 170, B: 170, A: 255}, true)
}

func (g *Game) drawSpeakers(screen *ebiten.Image) {
	cx, cy := g.layout.CenterScreen()
	for _, sp := range g.layout.Speakers() {
		// a box with a stub pointing at the center
		dx, dy := cx-sp.X, cy-sp.Y
		d := math.Hypot(dx, dy)
		if d == 0 {
			continue
		}
		ux, uy := dx/d, dy/d
		s := float64(config.SpeakerSize)

		vector.DrawFilledRect(screen, float32(sp.X-s/2), float32(sp.Y-s/2), float32(s), float32(s), speakerColor, true)
		vector.StrokeLine(screen, float32(sp.X), float32(sp.Y), float32(sp.X+ux*s), float32(sp.Y+uy*s), 3, speakerColor, true)

		// label just outside the canvas
		lx, ly := sp.X-ux*22, sp.Y-uy*22
		g.drawText(screen, sp.Label, lx-6, ly-8, g.smallFace, textColor)
	}
}

func (g *Game) drawTrail(screen *ebiten.Image) {
	points := g.trail.Snapshot()
	n := len(points)
	for i, p := range points {
		if i == n-1 {
			break // the marker covers the newest point
		}
		age := float64(i+1) / float64(n)
		x, y := g.layout.ToScreen(p)
		hue := (g.rotation + age*0.3) * 360
		c := panel.HSV(hue, 0.6, 0.8)
		c.A = uint8(40 + 140*age)
		vector.DrawFilledCircle(screen, float32(x), float32(y), float32(1+2*age), c, true)
	}
}

func (g *Game) drawMarker(screen *ebiten.Image) {
	pos, ok := g.machine.Position()
	if !ok {
		return
	}
	x, y := g.layout.ToScreen(pos)
	vector.DrawFilledCircle(screen, float32(x), float32(y), config.MarkerRadius, markerColor, true)

	if g.machine.Locked() {
		pulse := 2 + 1.5*math.Sin(g.time*6)
		hue := g.rotation * 360
		vector.StrokeCircle(screen, float32(x), float32(y), float32(config.MarkerRadius+pulse), 1.5, panel.HSV(hue, 0.8, 0.9), true)
	}
}

func (g *Game) drawReadout(screen *ebiten.Image) {
	ro := panel.Build(g.machine.State(), g.store)

	x := g.layout.OriginX
	y := g.layout.PanelY
	lh := float64(config.PanelLineHeight)

	statusColor := dimTextColor
	if ro.Failed {
		statusColor = failedColor
	}
	status := ro.Status
	if pos, ok := g.machine.Position(); ok {
		status = panel.PositionText(pos.X, pos.Y) + " | " + status
	}
	g.drawText(screen, status, 12, 12, g.smallFace, statusColor)

	// query echo on the left, gains on the right
	for i, l := range ro.Query {
		g.drawText(screen, l.Text, x, y+float64(i)*lh, g.face, dimTextColor)
	}

	barX := x + 2*g.layout.Radius/5
	barMax := 2*g.layout.Radius - (barX - x) - 60
	for i, l := range ro.Result {
		ly := y + float64(i)*lh
		g.drawText(screen, l.Text, barX, ly, g.face, textColor)
		w := barMax * panel.Clamp01(l.Value)
		if w > 0 {
			vector.DrawFilledRect(screen, float32(barX+60), float32(ly+4), float32(w), float32(lh-8), panel.GainColor(l.Value), false)
		}
	}
}

func (g *Game) drawText(screen *ebiten.Image, s string, x, y float64, face *text.GoTextFace, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, face, op)
}
