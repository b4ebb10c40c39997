// Package panel is the display-independent half of the panning view: where
// things go on screen and what text is shown. It never changes listener state.
package panel

import (
	"github.com/iburimskiy/surround-panner/internal/config"
	"github.com/iburimskiy/surround-panner/internal/geometry"
)

// Layout places the circular canvas inside the window.
type Layout struct {
	// OriginX, OriginY is the top-left of the canvas bounding square in
	// screen pixels.
	OriginX float64
	OriginY float64
	Radius  float64

	// PanelY is where the result list starts.
	PanelY float64
}

// Measure fits the largest circle into a width x height window, leaving margin
// on every side and panelHeight below the circle for the result list.
func Measure(width, height, margin, panelHeight int) Layout {
	w := float64(width - 2*margin)
	h := float64(height - 2*margin - panelHeight)
	d := min(w, h)
	if d < 0 {
		d = 0
	}
	l := Layout{
		OriginX: (float64(width) - d) / 2,
		OriginY: float64(margin),
		Radius:  d / 2,
	}
	l.PanelY = l.OriginY + d + float64(margin)/2
	return l
}

// Ready reports whether the layout has room for a canvas.
func (l Layout) Ready() bool {
	return geometry.Canvas{Radius: l.Radius}.Ready()
}

// ToCanvas converts a screen pixel to a canvas-local position.
func (l Layout) ToCanvas(sx, sy float64) geometry.Position {
	return geometry.Position{X: sx - l.OriginX, Y: sy - l.OriginY}
}

// ToScreen converts a canvas-local position to screen pixels.
func (l Layout) ToScreen(p geometry.Position) (float64, float64) {
	return p.X + l.OriginX, p.Y + l.OriginY
}

// CenterScreen is the canvas center in screen pixels.
func (l Layout) CenterScreen() (float64, float64) {
	return l.ToScreen(geometry.Center(l.Radius))
}

// InCanvasBox reports whether the screen pixel falls in the canvas bounding
// square, the area that receives pointer moves.
func (l Layout) InCanvasBox(sx, sy float64) bool {
	p := l.ToCanvas(sx, sy)
	d := 2 * l.Radius
	return p.X >= 0 && p.Y >= 0 && p.X <= d && p.Y <= d
}

// HitsMarker reports whether a click at the screen pixel lands on the marker.
func (l Layout) HitsMarker(sx, sy float64, marker geometry.Position) bool {
	p := l.ToCanvas(sx, sy)
	dx, dy := p.X-marker.X, p.Y-marker.Y
	r := float64(config.MarkerHitRadius)
	return dx*dx+dy*dy <= r*r
}

// Speaker is one decorative speaker glyph.
type Speaker struct {
	Label string
	Angle float64
	X, Y  float64 // screen pixels
}

var speakerLabels = []string{"L", "C", "R", "LS", "RS"}

// Speakers lays out the speaker glyphs around the canvas edge.
func (l Layout) Speakers() []Speaker {
	out := make([]Speaker, 0, len(config.SpeakerAngles))
	for i, a := range config.SpeakerAngles {
		p := geometry.Polar(l.Radius, l.Radius*config.SpeakerDistance, a)
		x, y := l.ToScreen(p)
		out = append(out, Speaker{Label: speakerLabels[i], Angle: a, X: x, Y: y})
	}
	return out
}
