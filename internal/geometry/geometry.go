// Package geometry converts between canvas-local pixel positions and the
// normalized listener coordinate sent to the gain service.
package geometry

import (
	"errors"
	"math"
)

// ErrRadiusNotReady is returned when a conversion needs a canvas radius that
// has not been measured yet.
var ErrRadiusNotReady = errors.New("geometry: canvas radius not measured")

// Position is a canvas-local pixel position, origin at the top-left corner of
// the circle's bounding square.
type Position struct {
	X float64
	Y float64
}

// Canvas describes the measured circular interaction area. The zero value
// means the canvas has not been laid out yet.
type Canvas struct {
	Radius float64
}

// Ready reports whether the canvas has a usable radius.
func (c Canvas) Ready() bool {
	return validRadius(c.Radius)
}

// Normalized is a dimensionless coordinate in [-1, 1] per axis for positions
// inside the canvas bounding square.
type Normalized struct {
	X float64
	Y float64
}

func validRadius(r float64) bool {
	return r > 0 && !math.IsNaN(r) && !math.IsInf(r, 0)
}

// ToNormalized maps p into the normalized space: nx = (r-x)/r, ny = (r-y)/r.
func ToNormalized(p Position, radius float64) (Normalized, error) {
	if !validRadius(radius) {
		return Normalized{}, ErrRadiusNotReady
	}
	return Normalized{
		X: (radius - p.X) / radius,
		Y: (radius - p.Y) / radius,
	}, nil
}

// FromNormalized is the inverse of ToNormalized.
func FromNormalized(n Normalized, radius float64) (Position, error) {
	if !validRadius(radius) {
		return Position{}, ErrRadiusNotReady
	}
	return Position{
		X: radius - n.X*radius,
		Y: radius - n.Y*radius,
	}, nil
}

// ToWire returns the query parameters for n. The x axis is negated so that
// positive x points right and positive y points up.
func ToWire(n Normalized) (x, y float64) {
	x = -n.X
	if x == 0 {
		x = 0 // no "-0" on the wire
	}
	return x, n.Y
}

// FromWire undoes ToWire.
func FromWire(x, y float64) Normalized {
	return Normalized{X: -x, Y: y}
}

// Rescale moves p from a canvas of oldRadius to one of newRadius, keeping its
// fractional offset from the center. Equal radii return p untouched so that
// repeated no-op resizes never drift.
func Rescale(p Position, oldRadius, newRadius float64) Position {
	if oldRadius == newRadius {
		return p
	}
	if !validRadius(oldRadius) || !validRadius(newRadius) {
		return p
	}
	k := newRadius / oldRadius
	return Position{X: p.X * k, Y: p.Y * k}
}

// Center is the canvas center for the given radius.
func Center(radius float64) Position {
	return Position{X: radius, Y: radius}
}

// Polar returns the point at distance dist from the canvas center, at an angle
// measured in degrees clockwise from straight up (the listener's front).
func Polar(radius, dist, degrees float64) Position {
	rad := degrees * math.Pi / 180
	return Position{
		X: radius + dist*math.Sin(rad),
		Y: radius - dist*math.Cos(rad),
	}
}
