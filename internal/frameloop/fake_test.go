package frameloop

import (
	"fmt"
	"image"

	"github.com/iburimskiy/bounce-label/internal/animation"
)

type fakeTexture struct {
	text  string
	color animation.Color
}

func (fakeTexture) Bounds() image.Rectangle { return image.Rect(0, 0, 100, 20) }

// fakeSurface records every call as a string.
type fakeSurface struct {
	w, h    int
	calls   []string
	failOn  string
	frames  int
	drawn   []Rect
	angles  []float64
	colors  []animation.Color
	current animation.Color
}

func (s *fakeSurface) record(call string) error {
	s.calls = append(s.calls, call)
	if call == s.failOn {
		return fmt.Errorf("%s failed", call)
	}
	return nil
}

func (s *fakeSurface) Clear() error { return s.record("clear") }

func (s *fakeSurface) SetDrawColor(c animation.Color) {
	s.current = c
	s.calls = append(s.calls, fmt.Sprintf("color(%d,%d,%d)", c.R, c.G, c.B))
}

func (s *fakeSurface) DrawRect(r Rect) error {
	return s.record(fmt.Sprintf("rect(%d,%d,%d,%d)", r.X, r.Y, r.W, r.H))
}

func (s *fakeSurface) DrawRotated(t Texture, dst Rect, angle float64) error {
	s.drawn = append(s.drawn, dst)
	s.angles = append(s.angles, angle)
	if ft, ok := t.(fakeTexture); ok {
		s.colors = append(s.colors, ft.color)
	}
	return s.record("label")
}

func (s *fakeSurface) Present() error {
	s.frames++
	return s.record("present")
}

func (s *fakeSurface) ViewportSize() (int, int) { return s.w, s.h }

type fakeRasterizer struct {
	err   error
	texts []string
}

func (r *fakeRasterizer) Rasterize(text string, c animation.Color) (Texture, error) {
	r.texts = append(r.texts, text)
	if r.err != nil {
		return nil, r.err
	}
	return fakeTexture{text: text, color: c}, nil
}

// scriptedInput hands out one batch of events per poll.
type scriptedInput struct {
	batches [][]Event
	polls   int
}

func (in *scriptedInput) AppendEvents(dst []Event) []Event {
	defer func() { in.polls++ }()
	if in.polls < len(in.batches) {
		return append(dst, in.batches[in.polls]...)
	}
	return dst
}

type bounceRecorder struct {
	got []animation.Reflection
}

func (b *bounceRecorder) Bounce(r animation.Reflection) { b.got = append(b.got, r) }
