package panel

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHSV_Primaries(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 255, A: 255}, HSV(0, 1, 1))
	assert.Equal(t, color.RGBA{G: 255, A: 255}, HSV(120, 1, 1))
	assert.Equal(t, color.RGBA{B: 255, A: 255}, HSV(240, 1, 1))
	assert.Equal(t, HSV(0, 1, 1), HSV(360, 1, 1))
	assert.Equal(t, HSV(300, 1, 1), HSV(-60, 1, 1))
}

func TestGainColor_Ends(t *testing.T) {
	low := GainColor(0)
	high := GainColor(1)
	assert.Greater(t, low.B, low.R)
	assert.Greater(t, high.R, high.B)
	assert.Equal(t, GainColor(1), GainColor(5))
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, Clamp01(-1))
	assert.Equal(t, 0.5, Clamp01(0.5))
	assert.Equal(t, 1.0, Clamp01(2))
}
