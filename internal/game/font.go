package game

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/iburimskiy/bounce-label/internal/animation"
	"github.com/iburimskiy/bounce-label/internal/frameloop"
)

// ErrEmptyLabel is returned when the label text renders to no pixels.
var ErrEmptyLabel = errors.New("game: label renders empty")

// LoadFont returns the TrueType data at path, or the embedded Go Mono face
// when path is empty.
func LoadFont(path string) ([]byte, error) {
	if path == "" {
		return gomono.TTF, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("game: load font %q: %w", path, err)
	}
	return data, nil
}

// Rasterizer renders the label with Ebitengine's text/v2 into one reused
// offscreen image.
type Rasterizer struct {
	face        *text.GoTextFace
	lineSpacing float64

	img     *ebiten.Image
	imgText string
}

// NewRasterizer parses TrueType data and prepares a face of the given size.
func NewRasterizer(ttf []byte, size float64) (*Rasterizer, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttf))
	if err != nil {
		return nil, fmt.Errorf("game: parse font: %w", err)
	}

	face := &text.GoTextFace{
		Source: source,
		Size:   size,
	}
	m := face.Metrics()

	return &Rasterizer{
		face:        face,
		lineSpacing: m.HAscent + m.HDescent + m.HLineGap,
	}, nil
}

// Rasterize draws s in c. The returned image stays valid until the next call.
func (r *Rasterizer) Rasterize(s string, c animation.Color) (frameloop.Texture, error) {
	if r.img == nil || r.imgText != s {
		w, h := text.Measure(s, r.face, r.lineSpacing)
		if int(w) <= 0 || int(h) <= 0 {
			return nil, fmt.Errorf("%w: %q", ErrEmptyLabel, s)
		}
		if r.img != nil {
			r.img.Deallocate()
		}
		r.img = ebiten.NewImage(int(w), int(h))
		r.imgText = s
	} else {
		r.img.Clear()
	}

	op := &text.DrawOptions{}
	op.ColorScale.ScaleWithColor(c.ToRGBA())
	op.LineSpacing = r.lineSpacing
	text.Draw(r.img, s, r.face, op)

	return r.img, nil
}

// Close releases the offscreen image.
func (r *Rasterizer) Close() {
	if r.img != nil {
		r.img.Deallocate()
		r.img = nil
	}
}
