package panel

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iburimskiy/surround-panner/internal/geometry"
)

func TestMeasure(t *testing.T) {
	l := Measure(520, 680, 60, 160)
	assert.Equal(t, 200.0, l.Radius)
	assert.Equal(t, 60.0, l.OriginX)
	assert.Equal(t, 60.0, l.OriginY)
	assert.Equal(t, 490.0, l.PanelY)
	assert.True(t, l.Ready())
}

func TestMeasure_HeightBound(t *testing.T) {
	l := Measure(1000, 520, 60, 160)
	assert.Equal(t, 120.0, l.Radius)
	assert.Equal(t, 380.0, l.OriginX)
}

func TestMeasure_TooSmall(t *testing.T) {
	l := Measure(100, 100, 60, 160)
	assert.Equal(t, 0.0, l.Radius)
	assert.False(t, l.Ready())
}

func TestToCanvasRoundTrip(t *testing.T) {
	l := Measure(520, 680, 60, 160)
	p := l.ToCanvas(260, 260)
	assert.Equal(t, geometry.Position{X: 200, Y: 200}, p)
	x, y := l.ToScreen(p)
	assert.Equal(t, 260.0, x)
	assert.Equal(t, 260.0, y)

	cx, cy := l.CenterScreen()
	assert.Equal(t, 260.0, cx)
	assert.Equal(t, 260.0, cy)
}

func TestInCanvasBox(t *testing.T) {
	l := Measure(520, 680, 60, 160)
	assert.True(t, l.InCanvasBox(60, 60))
	assert.True(t, l.InCanvasBox(460, 460))
	assert.False(t, l.InCanvasBox(59, 100))
	assert.False(t, l.InCanvasBox(100, 461))
}

func TestHitsMarker(t *testing.T) {
	l := Measure(520, 680, 60, 160)
	marker := geometry.Position{X: 200, Y: 200}
	assert.True(t, l.HitsMarker(260, 260, marker))
	assert.True(t, l.HitsMarker(265, 263, marker))
	assert.False(t, l.HitsMarker(280, 260, marker))
}

func TestSpeakers(t *testing.T) {
	l := Measure(520, 680, 60, 160)
	sp := l.Speakers()
	assert.Len(t, sp, 5)

	byLabel := map[string]Speaker{}
	for _, s := range sp {
		byLabel[s.Label] = s
	}
	cx, cy := l.CenterScreen()

	assert.InDelta(t, cx, byLabel["C"].X, 1e-9)
	assert.Less(t, byLabel["C"].Y, cy)
	assert.Less(t, byLabel["L"].X, cx)
	assert.Greater(t, byLabel["R"].X, cx)
	assert.Greater(t, byLabel["LS"].Y, cy)
	assert.Greater(t, byLabel["RS"].Y, cy)
	assert.InDelta(t, cx-byLabel["LS"].X, byLabel["RS"].X-cx, 1e-9)
}
