package game

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/bounce-label/internal/animation"
	"github.com/iburimskiy/bounce-label/internal/frameloop"
)

// ErrForeignTexture is returned when a texture did not come from this backend.
var ErrForeignTexture = errors.New("game: texture is not an ebiten image")

// surface adapts the screen image handed to Draw.
type surface struct {
	dst  *ebiten.Image
	draw color.RGBA
	op   ebiten.DrawImageOptions
}

func (s *surface) Clear() error {
	s.dst.Fill(s.draw)
	return nil
}

func (s *surface) SetDrawColor(c animation.Color) {
	s.draw = c.ToRGBA()
}

// DrawRect strokes a one pixel outline just inside r.
func (s *surface) DrawRect(r frameloop.Rect) error {
	vector.StrokeRect(s.dst,
		float32(r.X)+0.5, float32(r.Y)+0.5,
		float32(r.W)-1, float32(r.H)-1,
		1, s.draw, false)
	return nil
}

func (s *surface) DrawRotated(t frameloop.Texture, dst frameloop.Rect, angle float64) error {
	img, ok := t.(*ebiten.Image)
	if !ok {
		return fmt.Errorf("%w: %T", ErrForeignTexture, t)
	}

	s.op.GeoM = labelGeoM(img.Bounds(), dst, angle)
	s.op.Filter = ebiten.FilterLinear
	s.dst.DrawImage(img, &s.op)
	return nil
}

// Present is a no-op: Ebitengine shows the screen after Draw returns.
func (s *surface) Present() error { return nil }

func (s *surface) ViewportSize() (int, int) {
	b := s.dst.Bounds()
	return b.Dx(), b.Dy()
}

// labelGeoM stretches src over dst and rotates it clockwise by angle degrees
// around the centre of dst.
func labelGeoM(src image.Rectangle, dst frameloop.Rect, angle float64) ebiten.GeoM {
	var g ebiten.GeoM
	if src.Dx() == 0 || src.Dy() == 0 {
		g.Scale(0, 0)
		return g
	}

	halfW, halfH := float64(dst.W)/2, float64(dst.H)/2

	g.Scale(float64(dst.W)/float64(src.Dx()), float64(dst.H)/float64(src.Dy()))
	g.Translate(-halfW, -halfH)
	g.Rotate(angle * math.Pi / 180)
	g.Translate(float64(dst.X)+halfW, float64(dst.Y)+halfH)
	return g
}
