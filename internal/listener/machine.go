// Package listener holds the interaction state for the listener marker:
// where it is, whether pointer movement drives it, and how big the canvas is.
package listener

import (
	"github.com/rs/zerolog"

	"github.com/iburimskiy/surround-panner/internal/geometry"
)

// State is the pointer lock state.
type State int

const (
	Unlocked State = iota
	Locked
)

func (s State) String() string {
	if s == Locked {
		return "locked"
	}
	return "unlocked"
}

// Direction of a keyboard nudge.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return "unknown"
}

const (
	// NudgeStep is the keyboard step in pixels.
	NudgeStep = 1.0
	// NudgeStepModified is the step while shift is held.
	NudgeStepModified = 10.0
)

// Querier receives a position whenever it changes through user input.
type Querier interface {
	Issue(pos geometry.Position, canvas geometry.Canvas) uint64
}

// Machine is the listener interaction state machine. It is not safe for
// concurrent use; drive it from the UI update loop.
type Machine struct {
	state  State
	pos    geometry.Position
	placed bool
	canvas geometry.Canvas

	querier Querier
	log     zerolog.Logger
}

// New creates a machine in the given initial lock state with no position and
// no measured canvas.
func New(q Querier, initial State, log zerolog.Logger) *Machine {
	return &Machine{
		state:   initial,
		querier: q,
		log:     log.With().Str("component", "listener").Logger(),
	}
}

// State returns the current lock state.
func (m *Machine) State() State { return m.state }

// Locked reports whether pointer movement currently drives the listener.
func (m *Machine) Locked() bool { return m.state == Locked }

// Position returns the listener position and whether one has been set yet.
func (m *Machine) Position() (geometry.Position, bool) { return m.pos, m.placed }

// Canvas returns the last measured canvas.
func (m *Machine) Canvas() geometry.Canvas { return m.canvas }

// ToggleLock flips between Locked and Unlocked.
func (m *Machine) ToggleLock() {
	if m.state == Locked {
		m.state = Unlocked
	} else {
		m.state = Locked
	}
	m.log.Debug().Stringer("state", m.state).Msg("Lock toggled")
}

// PointerMove moves the listener to (px, py) when locked. It reports whether
// the position changed; unlocked moves are ignored.
func (m *Machine) PointerMove(px, py float64) bool {
	if m.state != Locked {
		return false
	}
	m.pos = geometry.Position{X: px, Y: py}
	m.placed = true
	m.query()
	return true
}

// KeyNudge moves the listener one step in dir, ten steps when modifier is
// held. Keyboard control always releases the pointer lock. The position is
// not clamped to the canvas.
func (m *Machine) KeyNudge(dir Direction, modifier bool) {
	step := NudgeStep
	if modifier {
		step = NudgeStepModified
	}
	switch dir {
	case Left:
		m.pos.X -= step
	case Right:
		m.pos.X += step
	case Up:
		m.pos.Y -= step
	case Down:
		m.pos.Y += step
	}
	m.placed = true
	m.state = Unlocked
	m.query()
}

// Resize re-anchors the listener for a canvas of newRadius. It does not
// query; the normalized coordinate is unchanged by a rescale.
func (m *Machine) Resize(newRadius float64) {
	if !(geometry.Canvas{Radius: newRadius}).Ready() {
		return
	}
	if m.placed && m.canvas.Ready() {
		m.pos = geometry.Rescale(m.pos, m.canvas.Radius, newRadius)
	}
	if m.canvas.Radius != newRadius {
		m.log.Debug().Float64("from", m.canvas.Radius).Float64("to", newRadius).Msg("Canvas resized")
	}
	m.canvas.Radius = newRadius
}

// Recenter places the listener at the canvas center and queries. Before the
// canvas is measured it does nothing and reports false.
func (m *Machine) Recenter() bool {
	if !m.canvas.Ready() {
		m.log.Debug().Msg("Recenter deferred, canvas not measured")
		return false
	}
	m.pos = geometry.Center(m.canvas.Radius)
	m.placed = true
	m.query()
	return true
}

func (m *Machine) query() {
	if m.querier == nil {
		return
	}
	if !m.canvas.Ready() {
		m.log.Debug().Msg("Query skipped, canvas not measured")
		return
	}
	m.querier.Issue(m.pos, m.canvas)
}
