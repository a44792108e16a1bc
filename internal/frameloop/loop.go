// Package frameloop drives the label animation one frame at a time.
//
// A Loop owns the animation state and the Active/Quit lifecycle. Backends
// either call Run, which paces frames with a fixed sleep, or call Advance
// and Render from their own frame callbacks.
package frameloop

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/iburimskiy/bounce-label/internal/animation"
	"github.com/iburimskiy/bounce-label/internal/logging"
)

// FrameBudget is the fixed sleep between frames in Run.
const FrameBudget = time.Second / 60

var (
	backgroundColor = animation.Color{R: 0, G: 0, B: 0}
	borderColor     = animation.Color{R: 0, G: 255, B: 0}
)

// Status is the loop lifecycle state.
type Status int

const (
	Active Status = iota
	Quit
)

func (s Status) String() string {
	if s == Quit {
		return "quit"
	}
	return "active"
}

// Frame is everything needed to draw one frame.
type Frame struct {
	Counter    uint8
	Color      animation.Color
	Dest       Rect
	Angle      float64
	Viewport   animation.Size
	Reflection animation.Reflection
}

// Loop is the frame loop. It is not safe for concurrent use.
type Loop struct {
	text   string
	state  animation.State
	status Status

	log    *slog.Logger
	sleep  func(time.Duration)
	bounce BounceListener

	events []Event
}

// Option configures a Loop.
type Option func(*Loop)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(lp *Loop) { lp.log = logging.OrNop(l) }
}

// WithSleep replaces time.Sleep for the end-of-frame delay.
func WithSleep(sleep func(time.Duration)) Option {
	return func(lp *Loop) {
		if sleep != nil {
			lp.sleep = sleep
		}
	}
}

// WithBounceListener registers a listener for reflections.
func WithBounceListener(b BounceListener) Option {
	return func(lp *Loop) { lp.bounce = b }
}

// New returns an active loop that draws text.
func New(text string, opts ...Option) *Loop {
	l := &Loop{
		text:  text,
		state: animation.NewState(),
		log:   logging.Nop(),
		sleep: time.Sleep,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Status returns the lifecycle state.
func (l *Loop) Status() Status { return l.status }

// State returns a copy of the animation state.
func (l *Loop) State() animation.State { return l.state }

// Advance runs the update half of a frame: it bumps the frame counter,
// processes every event, and when still active computes the color and
// steps the motion for a viewport of the given size.
//
// It returns false once the loop has quit; no frame must be drawn then.
func (l *Loop) Advance(events []Event, width, height int) (Frame, bool) {
	if l.status == Quit {
		return Frame{}, false
	}

	l.state.Counter = animation.NextCounter(l.state.Counter)

	for _, ev := range events {
		if ev.Terminates() {
			l.status = Quit
		}
	}
	if l.status == Quit {
		l.log.Info("quit requested", "counter", l.state.Counter)
		return Frame{}, false
	}

	viewport := animation.Size{W: width, H: height}
	label := animation.LabelSize(viewport)

	var refl animation.Reflection
	l.state, refl = animation.Step(l.state, viewport, label)

	if refl.Any() {
		l.log.Debug("bounce",
			"x", l.state.Position.X, "y", l.state.Position.Y,
			"flipX", refl.X, "flipY", refl.Y)
		if l.bounce != nil {
			l.bounce.Bounce(refl)
		}
	}

	return Frame{
		Counter: l.state.Counter,
		Color:   animation.ColorForFrame(l.state.Counter),
		Dest: Rect{
			X: int(l.state.Position.X),
			Y: int(l.state.Position.Y),
			W: label.W,
			H: label.H,
		},
		Angle:      l.state.Rotation,
		Viewport:   viewport,
		Reflection: refl,
	}, true
}

// Render draws f: black background, green border around the viewport, and
// the rotated label. The first collaborator error aborts the frame.
func (l *Loop) Render(s Surface, r Rasterizer, f Frame) error {
	s.SetDrawColor(backgroundColor)
	if err := s.Clear(); err != nil {
		return fmt.Errorf("frameloop: clear: %w", err)
	}

	s.SetDrawColor(borderColor)
	if err := s.DrawRect(Rect{W: f.Viewport.W, H: f.Viewport.H}); err != nil {
		return fmt.Errorf("frameloop: draw border: %w", err)
	}

	tex, err := r.Rasterize(l.text, f.Color)
	if err != nil {
		return fmt.Errorf("frameloop: rasterize label: %w", err)
	}
	if err := s.DrawRotated(tex, f.Dest, f.Angle); err != nil {
		return fmt.Errorf("frameloop: draw label: %w", err)
	}

	if err := s.Present(); err != nil {
		return fmt.Errorf("frameloop: present: %w", err)
	}
	return nil
}

// Run loops until a terminating event arrives or a render step fails.
// Each iteration drains input, advances, renders and then sleeps for
// FrameBudget. Cancelling ctx is handled like a quit event at the next
// frame boundary.
func (l *Loop) Run(ctx context.Context, s Surface, in Input, r Rasterizer) error {
	l.log.Info("frame loop started", "budget", FrameBudget)

	for {
		l.events = in.AppendEvents(l.events[:0])
		if ctx.Err() != nil {
			l.events = append(l.events, QuitEvent())
		}

		w, h := s.ViewportSize()
		frame, ok := l.Advance(l.events, w, h)
		if !ok {
			l.log.Info("frame loop stopped")
			return nil
		}

		if err := l.Render(s, r, frame); err != nil {
			l.log.Error("frame failed", "counter", frame.Counter, "err", err)
			return err
		}

		l.sleep(FrameBudget)
	}
}
