package listener

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/surround-panner/internal/geometry"
)

type issued struct {
	pos    geometry.Position
	canvas geometry.Canvas
}

type recordingQuerier struct {
	calls []issued
}

func (q *recordingQuerier) Issue(pos geometry.Position, canvas geometry.Canvas) uint64 {
	q.calls = append(q.calls, issued{pos, canvas})
	return uint64(len(q.calls))
}

func newMachine(t *testing.T, initial State) (*Machine, *recordingQuerier) {
	t.Helper()
	q := &recordingQuerier{}
	m := New(q, initial, zerolog.Nop())
	return m, q
}

func mounted(t *testing.T, initial State, radius float64) (*Machine, *recordingQuerier) {
	t.Helper()
	m, q := newMachine(t, initial)
	m.Resize(radius)
	require.True(t, m.Recenter())
	q.calls = nil
	return m, q
}

func TestNew_InitialState(t *testing.T) {
	m, q := newMachine(t, Unlocked)
	assert.Equal(t, Unlocked, m.State())
	_, placed := m.Position()
	assert.False(t, placed)
	assert.False(t, m.Canvas().Ready())
	assert.Empty(t, q.calls)
}

func TestToggleLock(t *testing.T) {
	m, q := mounted(t, Unlocked, 200)
	before, _ := m.Position()

	m.ToggleLock()
	assert.Equal(t, Locked, m.State())
	assert.True(t, m.Locked())
	m.ToggleLock()
	assert.Equal(t, Unlocked, m.State())

	after, _ := m.Position()
	assert.Equal(t, before, after)
	assert.Empty(t, q.calls)
}

func TestPointerMove_UnlockedIgnored(t *testing.T) {
	m, q := mounted(t, Unlocked, 200)
	start, _ := m.Position()

	moves := [][2]float64{{10, 10}, {399, 0}, {-3, 500}, {200, 201}}
	for _, mv := range moves {
		assert.False(t, m.PointerMove(mv[0], mv[1]))
	}

	got, _ := m.Position()
	assert.Equal(t, start, got)
	assert.Empty(t, q.calls)
}

func TestPointerMove_LockedFollows(t *testing.T) {
	m, q := mounted(t, Locked, 200)

	moves := [][2]float64{{10, 10}, {399.5, 0.25}, {-3, 500}}
	for i, mv := range moves {
		require.True(t, m.PointerMove(mv[0], mv[1]))
		got, _ := m.Position()
		assert.Equal(t, geometry.Position{X: mv[0], Y: mv[1]}, got)
		require.Len(t, q.calls, i+1)
		assert.Equal(t, got, q.calls[i].pos)
		assert.Equal(t, geometry.Canvas{Radius: 200}, q.calls[i].canvas)
	}
}

func TestKeyNudge_StepMagnitude(t *testing.T) {
	tests := []struct {
		dir      Direction
		modifier bool
		want     geometry.Position
	}{
		{Right, false, geometry.Position{X: 201, Y: 200}},
		{Right, true, geometry.Position{X: 210, Y: 200}},
		{Left, false, geometry.Position{X: 199, Y: 200}},
		{Left, true, geometry.Position{X: 190, Y: 200}},
		{Up, false, geometry.Position{X: 200, Y: 199}},
		{Up, true, geometry.Position{X: 200, Y: 190}},
		{Down, false, geometry.Position{X: 200, Y: 201}},
		{Down, true, geometry.Position{X: 200, Y: 210}},
	}
	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			m, q := mounted(t, Unlocked, 200)
			m.KeyNudge(tt.dir, tt.modifier)
			got, _ := m.Position()
			assert.Equal(t, tt.want, got)
			assert.Len(t, q.calls, 1)
		})
	}
}

func TestKeyNudge_AlwaysUnlocks(t *testing.T) {
	for _, dir := range []Direction{Left, Right, Up, Down} {
		for _, mod := range []bool{false, true} {
			m, _ := mounted(t, Locked, 150)
			require.True(t, m.Locked())
			m.KeyNudge(dir, mod)
			assert.Equal(t, Unlocked, m.State(), "dir=%v mod=%v", dir, mod)
		}
	}
}

func TestKeyNudge_NotClamped(t *testing.T) {
	m, _ := mounted(t, Unlocked, 10)
	for i := 0; i < 5; i++ {
		m.KeyNudge(Right, true)
	}
	got, _ := m.Position()
	assert.Equal(t, 60.0, got.X)
}

func TestResize_RescalesWithoutQuery(t *testing.T) {
	m, q := mounted(t, Locked, 200)
	require.True(t, m.PointerMove(100, 300))

	q.calls = nil
	m.Resize(100)

	got, _ := m.Position()
	assert.Equal(t, geometry.Position{X: 50, Y: 150}, got)
	assert.Equal(t, 100.0, m.Canvas().Radius)
	assert.Empty(t, q.calls)
}

func TestResize_NoOpKeepsPositionExactly(t *testing.T) {
	m, _ := mounted(t, Locked, 173.7)
	require.True(t, m.PointerMove(12.345678, 301.000001))
	want, _ := m.Position()

	for i := 0; i < 1000; i++ {
		m.Resize(173.7)
	}
	got, _ := m.Position()
	assert.Equal(t, want, got)
}

func TestResize_IgnoresInvalidRadius(t *testing.T) {
	m, _ := mounted(t, Unlocked, 150)
	m.Resize(0)
	m.Resize(-20)
	assert.Equal(t, 150.0, m.Canvas().Radius)
	got, _ := m.Position()
	assert.Equal(t, geometry.Position{X: 150, Y: 150}, got)
}

func TestRecenter_IssuesExactlyOneQuery(t *testing.T) {
	m, q := newMachine(t, Unlocked)
	m.Resize(150)

	require.True(t, m.Recenter())

	got, placed := m.Position()
	assert.True(t, placed)
	assert.Equal(t, geometry.Position{X: 150, Y: 150}, got)
	require.Len(t, q.calls, 1)
	assert.Equal(t, geometry.Position{X: 150, Y: 150}, q.calls[0].pos)
}

func TestRecenter_DeferredUntilMeasured(t *testing.T) {
	m, q := newMachine(t, Unlocked)
	assert.False(t, m.Recenter())
	_, placed := m.Position()
	assert.False(t, placed)
	assert.Empty(t, q.calls)
}

func TestQuery_SkippedBeforeMeasurement(t *testing.T) {
	m, q := newMachine(t, Locked)
	assert.True(t, m.PointerMove(5, 5))
	m.KeyNudge(Right, false)
	assert.Empty(t, q.calls)
}

func TestNilQuerier(t *testing.T) {
	m := New(nil, Locked, zerolog.Nop())
	m.Resize(100)
	assert.True(t, m.Recenter())
	assert.True(t, m.PointerMove(1, 2))
}
