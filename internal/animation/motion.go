package animation

import "math"

const (
	// Speed is the distance travelled along each axis per frame.
	Speed = 5.0
	// RotationStep is the rotation added per frame, in degrees.
	RotationStep = 2.0
)

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float64
}

// Size is an integer extent, in pixels.
type Size struct {
	W, H int
}

// State is the per-frame animation state of the label.
//
// Direction holds the sign of travel on each axis and is always ±1;
// the velocity is Direction scaled by Speed. Rotation stays in [0, 360)
// and Counter in [0, CounterPeriod).
type State struct {
	Position  Vec2
	Direction Vec2
	Rotation  float64
	Counter   uint8
}

// NewState returns the start-up state: top-left corner, heading down-right.
func NewState() State {
	return State{Direction: Vec2{X: 1, Y: 1}}
}

// Reflection reports which axes flipped direction during a Step.
type Reflection struct {
	X, Y bool
}

// Any reports whether either axis flipped.
func (r Reflection) Any() bool { return r.X || r.Y }

// LabelSize returns the label's bounding box for a viewport: a third of the
// width and a sixth of the height.
func LabelSize(viewport Size) Size {
	return Size{W: viewport.W / 3, H: viewport.H / 6}
}

// Step advances position and rotation by one frame and reflects the
// direction on any axis whose edge touches or passes the bounds.
//
// The contact test runs on the already advanced position, so the label may
// overshoot an edge by up to one frame before it turns around.
func Step(s State, bounds, label Size) (State, Reflection) {
	s.Position.X += s.Direction.X * Speed
	s.Position.Y += s.Direction.Y * Speed

	s.Rotation = math.Mod(s.Rotation+RotationStep, 360)

	var r Reflection
	if touches(s.Position.X, label.W, bounds.W) {
		s.Direction.X = -s.Direction.X
		r.X = true
	}
	if touches(s.Position.Y, label.H, bounds.H) {
		s.Direction.Y = -s.Direction.Y
		r.Y = true
	}
	return s, r
}

// touches reports whether a span starting at pos with the given length meets
// either end of [0, limit].
func touches(pos float64, length, limit int) bool {
	return pos <= 0 || pos+float64(length) >= float64(limit)
}
