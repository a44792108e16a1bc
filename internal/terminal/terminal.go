// Package terminal runs the bouncing label inside a terminal using tcell.
//
// The viewport is reported in virtual pixels, CellWidth × CellHeight per
// character cell, so motion speed matches the window backend.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/bounce-label/internal/animation"
	"github.com/iburimskiy/bounce-label/internal/config"
	"github.com/iburimskiy/bounce-label/internal/frameloop"
)

// ErrForeignTexture is returned when a texture was not made by a Screen.
var ErrForeignTexture = errors.New("terminal: texture is not a label")

// Label is the terminal texture: text that still has to be laid out in cells.
type Label struct {
	Text  []rune
	Color animation.Color
}

// Bounds is the label's unscaled size, one cell per rune.
func (l *Label) Bounds() image.Rectangle {
	return image.Rect(0, 0, len(l.Text)*config.CellWidth, config.CellHeight)
}

// Screen adapts a tcell.Screen to the frameloop collaborators.
type Screen struct {
	scr   tcell.Screen
	color tcell.Color
	label Label
}

// New initialises the controlling terminal.
func New() (*Screen, error) {
	scr, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("terminal: new screen: %w", err)
	}
	return NewWithScreen(scr)
}

// NewWithScreen initialises scr and wraps it.
func NewWithScreen(scr tcell.Screen) (*Screen, error) {
	if err := scr.Init(); err != nil {
		return nil, fmt.Errorf("terminal: init screen: %w", err)
	}
	scr.HideCursor()
	return &Screen{scr: scr, color: tcell.ColorBlack}, nil
}

// Close restores the terminal.
func (s *Screen) Close() {
	s.scr.Fini()
}

func (s *Screen) Clear() error {
	s.scr.Fill(' ', tcell.StyleDefault.Background(s.color))
	return nil
}

func (s *Screen) SetDrawColor(c animation.Color) {
	s.color = rgb(c)
}

func (s *Screen) style() tcell.Style {
	return tcell.StyleDefault.Foreground(s.color).Background(tcell.ColorBlack)
}

// DrawRect outlines r with box-drawing runes in the current color.
func (s *Screen) DrawRect(r frameloop.Rect) error {
	x0, y0 := r.X/config.CellWidth, r.Y/config.CellHeight
	x1, y1 := (r.X+r.W)/config.CellWidth-1, (r.Y+r.H)/config.CellHeight-1
	if x1 < x0 || y1 < y0 {
		return nil
	}
	st := s.style()

	for x := x0 + 1; x < x1; x++ {
		s.scr.SetContent(x, y0, tcell.RuneHLine, nil, st)
		s.scr.SetContent(x, y1, tcell.RuneHLine, nil, st)
	}
	for y := y0 + 1; y < y1; y++ {
		s.scr.SetContent(x0, y, tcell.RuneVLine, nil, st)
		s.scr.SetContent(x1, y, tcell.RuneVLine, nil, st)
	}
	s.scr.SetContent(x0, y0, tcell.RuneULCorner, nil, st)
	s.scr.SetContent(x1, y0, tcell.RuneURCorner, nil, st)
	s.scr.SetContent(x0, y1, tcell.RuneLLCorner, nil, st)
	s.scr.SetContent(x1, y1, tcell.RuneLRCorner, nil, st)
	return nil
}

// DrawRotated spreads the label's runes evenly across dst along a baseline
// through the centre of dst, turned clockwise by angle degrees.
func (s *Screen) DrawRotated(t frameloop.Texture, dst frameloop.Rect, angle float64) error {
	l, ok := t.(*Label)
	if !ok {
		return fmt.Errorf("%w: %T", ErrForeignTexture, t)
	}

	style := tcell.StyleDefault.Foreground(rgb(l.Color)).Background(tcell.ColorBlack).Bold(true)
	for _, g := range layout(l.Text, dst, angle) {
		s.scr.SetContent(g.col, g.row, g.r, nil, style)
	}
	return nil
}

func (s *Screen) Present() error {
	s.scr.Show()
	return nil
}

func (s *Screen) ViewportSize() (int, int) {
	w, h := s.scr.Size()
	return w * config.CellWidth, h * config.CellHeight
}

// Rasterize returns the label for text in c. The returned label is reused
// by the next call.
func (s *Screen) Rasterize(text string, c animation.Color) (frameloop.Texture, error) {
	if string(s.label.Text) != text {
		s.label.Text = []rune(text)
	}
	s.label.Color = c
	return &s.label, nil
}

// AppendEvents drains pending terminal events without blocking.
func (s *Screen) AppendEvents(dst []frameloop.Event) []frameloop.Event {
	for s.scr.HasPendingEvent() {
		ev := s.scr.PollEvent()
		if ev == nil {
			break
		}
		if _, ok := ev.(*tcell.EventResize); ok {
			s.scr.Sync()
		}
		dst = append(dst, translate(ev))
	}
	return dst
}

func translate(ev tcell.Event) frameloop.Event {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape:
			return frameloop.KeyDownEvent(frameloop.KeyEscape)
		case tcell.KeyCtrlC:
			return frameloop.QuitEvent()
		default:
			return frameloop.KeyDownEvent(frameloop.KeyUnknown)
		}
	default:
		return frameloop.OtherEvent()
	}
}

// glyph is one rune placed in a cell.
type glyph struct {
	col, row int
	r        rune
}

func layout(text []rune, dst frameloop.Rect, angle float64) []glyph {
	n := len(text)
	if n == 0 {
		return nil
	}

	cx := float64(dst.X) + float64(dst.W)/2
	cy := float64(dst.Y) + float64(dst.H)/2
	step := float64(dst.W) / float64(n)
	sin, cos := math.Sincos(angle * math.Pi / 180)

	out := make([]glyph, 0, n)
	for i, r := range text {
		off := (float64(i) - float64(n-1)/2) * step
		px := cx + off*cos
		py := cy + off*sin
		out = append(out, glyph{
			col: int(math.Floor(px / config.CellWidth)),
			row: int(math.Floor(py / config.CellHeight)),
			r:   r,
		})
	}
	return out
}

func rgb(c animation.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Run draws the animation in the terminal until the loop quits.
func Run(ctx context.Context, loop *frameloop.Loop) error {
	s, err := New()
	if err != nil {
		return err
	}
	defer s.Close()

	return loop.Run(ctx, s, s, s)
}
