package terminal

import (
	"context"
	"errors"
	"image"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/bounce-label/internal/animation"
	"github.com/iburimskiy/bounce-label/internal/frameloop"
)

func newSimScreen(t *testing.T, w, h int) (*Screen, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	s, err := NewWithScreen(sim)
	if err != nil {
		t.Fatalf("NewWithScreen: %v", err)
	}
	t.Cleanup(s.Close)
	sim.SetSize(w, h)
	s.AppendEvents(nil) // drop start-up events
	return s, sim
}

func cellText(sim tcell.SimulationScreen) []string {
	cells, w, h := sim.GetContents()
	rows := make([]string, h)
	for y := 0; y < h; y++ {
		var b strings.Builder
		for x := 0; x < w; x++ {
			c := cells[y*w+x]
			if len(c.Runes) == 0 {
				b.WriteRune(' ')
				continue
			}
			b.WriteRune(c.Runes[0])
		}
		rows[y] = b.String()
	}
	return rows
}

func TestLayoutUnrotated(t *testing.T) {
	got := layout([]rune("abcd"), frameloop.Rect{W: 64, H: 16}, 0)
	want := []glyph{{1, 0, 'a'}, {3, 0, 'b'}, {5, 0, 'c'}, {7, 0, 'd'}}
	assertGlyphs(t, got, want)
}

func TestLayoutHalfTurnReverses(t *testing.T) {
	got := layout([]rune("abcd"), frameloop.Rect{W: 64, H: 16}, 180)
	want := []glyph{{7, 0, 'a'}, {5, 0, 'b'}, {3, 0, 'c'}, {1, 0, 'd'}}
	assertGlyphs(t, got, want)
}

func TestLayoutEmpty(t *testing.T) {
	if got := layout(nil, frameloop.Rect{W: 64, H: 16}, 0); got != nil {
		t.Errorf("layout(nil) = %v, want nil", got)
	}
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		ev   tcell.Event
		want frameloop.Event
	}{
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), frameloop.KeyDownEvent(frameloop.KeyEscape)},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), frameloop.QuitEvent()},
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), frameloop.KeyDownEvent(frameloop.KeyUnknown)},
		{"resize", tcell.NewEventResize(80, 25), frameloop.OtherEvent()},
	}
	for _, tt := range tests {
		if got := translate(tt.ev); got != tt.want {
			t.Errorf("%s: translate = %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestViewportInVirtualPixels(t *testing.T) {
	s, _ := newSimScreen(t, 40, 12)
	w, h := s.ViewportSize()
	if w != 320 || h != 192 {
		t.Errorf("ViewportSize = %dx%d, want 320x192", w, h)
	}
}

func TestAppendEventsDrainsKeys(t *testing.T) {
	s, sim := newSimScreen(t, 40, 12)
	sim.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	sim.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	evs := s.AppendEvents(nil)

	var sawEscape bool
	for _, ev := range evs {
		if ev.Terminates() {
			sawEscape = true
		}
	}
	if !sawEscape {
		t.Errorf("events = %+v, want an escape key-down", evs)
	}
	if more := s.AppendEvents(nil); len(more) != 0 {
		t.Errorf("second drain returned %+v, want nothing", more)
	}
}

func TestRenderDrawsBorderAndLabel(t *testing.T) {
	s, sim := newSimScreen(t, 40, 12)
	loop := frameloop.New("HI")

	w, h := s.ViewportSize()
	f, ok := loop.Advance(nil, w, h)
	if !ok {
		t.Fatal("Advance quit")
	}
	if err := loop.Render(s, s, f); err != nil {
		t.Fatalf("Render: %v", err)
	}

	rows := cellText(sim)
	if !strings.HasPrefix(rows[0], "┌") || !strings.HasSuffix(rows[0], "┐") {
		t.Errorf("top row = %q, want box corners", rows[0])
	}
	if !strings.HasPrefix(rows[11], "└") || !strings.HasSuffix(rows[11], "┘") {
		t.Errorf("bottom row = %q, want box corners", rows[11])
	}
	joined := strings.Join(rows, "\n")
	if !strings.Contains(joined, "H") || !strings.Contains(joined, "I") {
		t.Errorf("label missing from screen:\n%s", joined)
	}
}

func TestRunWithSimulationScreen(t *testing.T) {
	s, sim := newSimScreen(t, 40, 12)

	frames := 0
	loop := frameloop.New("HI", frameloop.WithSleep(func(time.Duration) {
		frames++
		if frames == 3 {
			sim.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
		}
		if frames > 1000 {
			t.Fatal("escape never reached the loop")
		}
	}))

	if err := loop.Run(context.Background(), s, s, s); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if frames != 3 {
		t.Errorf("frames = %d, want 3", frames)
	}
	if got := loop.State().Position; got != (animation.Vec2{X: 15, Y: 15}) {
		t.Errorf("Position = %+v, want {15 15}", got)
	}
}

func TestDrawRotatedRejectsForeignTexture(t *testing.T) {
	s, _ := newSimScreen(t, 10, 5)
	err := s.DrawRotated(image.NewRGBA(image.Rect(0, 0, 1, 1)), frameloop.Rect{}, 0)
	if !errors.Is(err, ErrForeignTexture) {
		t.Errorf("DrawRotated error = %v, want ErrForeignTexture", err)
	}
}

func TestLabelBounds(t *testing.T) {
	l := &Label{Text: []rune("ハロー")}
	if got := l.Bounds(); got != image.Rect(0, 0, 24, 16) {
		t.Errorf("Bounds = %v, want (0,0)-(24,16)", got)
	}
}

func assertGlyphs(t *testing.T, got, want []glyph) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d glyphs, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("glyph %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
