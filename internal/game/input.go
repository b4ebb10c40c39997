package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/surround-panner/internal/config"
	"github.com/iburimskiy/surround-panner/internal/listener"
)

var nudgeKeys = []struct {
	key ebiten.Key
	dir listener.Direction
}{
	{ebiten.KeyArrowLeft, listener.Left},
	{ebiten.KeyH, listener.Left},
	{ebiten.KeyArrowRight, listener.Right},
	{ebiten.KeyL, listener.Right},
	{ebiten.KeyArrowUp, listener.Up},
	{ebiten.KeyK, listener.Up},
	{ebiten.KeyArrowDown, listener.Down},
	{ebiten.KeyJ, listener.Down},
}

// repeating fires on the first tick a key is down and then at the repeat
// interval once it has been held past the delay.
func repeating(k ebiten.Key) bool {
	d := inpututil.KeyPressDuration(k)
	if d == 1 {
		return true
	}
	return d >= config.KeyRepeatDelay && (d-config.KeyRepeatDelay)%config.KeyRepeatInterval == 0
}

// handleInput forwards this tick's input to the state machine and reports
// whether the user asked to quit.
func (g *Game) handleInput() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return true
	}
	if !g.layout.Ready() {
		return false
	}

	// Clicking the marker or pressing Enter/Space on it toggles the lock.
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		if pos, ok := g.machine.Position(); ok && g.layout.HitsMarker(float64(mx), float64(my), pos) {
			g.machine.ToggleLock()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.machine.ToggleLock()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.trail.Reset()
		g.machine.Recenter()
	}

	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	for _, nk := range nudgeKeys {
		if repeating(nk.key) {
			g.machine.KeyNudge(nk.dir, shift)
		}
	}

	g.handlePointer()
	return false
}

// handlePointer forwards cursor motion over the canvas.
func (g *Game) handlePointer() {
	mx, my := ebiten.CursorPosition()
	if mx == g.lastCursorX && my == g.lastCursorY {
		return
	}
	g.lastCursorX, g.lastCursorY = mx, my

	sx, sy := float64(mx), float64(my)
	if !g.layout.InCanvasBox(sx, sy) {
		return
	}
	p := g.layout.ToCanvas(sx, sy)
	g.machine.PointerMove(p.X, p.Y)
}
