package panel

import (
	"github.com/iburimskiy/surround-panner/internal/geometry"
)

// Trail records the last N marker positions so the view can draw where the
// listener has been.
type Trail struct {
	buffer    []geometry.Position
	nextIndex int
	count     int
}

func NewTrail(size int) *Trail {
	if size < 1 {
		size = 1
	}
	return &Trail{buffer: make([]geometry.Position, size)}
}

// Push records p unless it equals the most recent entry.
func (t *Trail) Push(p geometry.Position) {
	if t.count > 0 {
		last := t.nextIndex - 1
		if last < 0 {
			last = len(t.buffer) - 1
		}
		if t.buffer[last] == p {
			return
		}
	}
	t.buffer[t.nextIndex] = p
	t.nextIndex++
	if t.nextIndex >= len(t.buffer) {
		t.nextIndex = 0
	}
	if t.count < len(t.buffer) {
		t.count++
	}
}

// Rescale moves every recorded point to a resized canvas.
func (t *Trail) Rescale(oldRadius, newRadius float64) {
	for i := range t.buffer {
		t.buffer[i] = geometry.Rescale(t.buffer[i], oldRadius, newRadius)
	}
}

// Reset forgets all points.
func (t *Trail) Reset() {
	t.nextIndex = 0
	t.count = 0
}

// Snapshot returns the recorded points, oldest first.
func (t *Trail) Snapshot() []geometry.Position {
	out := make([]geometry.Position, 0, t.count)
	// Walk backwards from nextIndex - 1
	idx := t.nextIndex - 1
	if idx < 0 {
		idx = len(t.buffer) - 1
	}
	for i := 0; i < t.count; i++ {
		out = append(out, t.buffer[idx])
		idx--
		if idx < 0 {
			idx = len(t.buffer) - 1
		}
	}
	// reverse to chronological order
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
