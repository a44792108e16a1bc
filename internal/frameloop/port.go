package frameloop

import (
	"image"

	"github.com/iburimskiy/bounce-label/internal/animation"
)

// Rect is an integer rectangle in viewport pixels.
type Rect struct {
	X, Y, W, H int
}

// Texture is a drawable produced by a Rasterizer. Its bounds are the
// rendered pixel size, which the loop never uses for placement.
type Texture interface {
	Bounds() image.Rectangle
}

// Surface is the render target of a backend.
type Surface interface {
	// Clear fills the whole surface with the current draw color.
	Clear() error
	SetDrawColor(c animation.Color)
	// DrawRect outlines r with the current draw color.
	DrawRect(r Rect) error
	// DrawRotated blits t scaled into dst, rotated clockwise by angle
	// degrees around the centre of dst.
	DrawRotated(t Texture, dst Rect, angle float64) error
	// Present shows the finished frame.
	Present() error
	ViewportSize() (width, height int)
}

// Rasterizer renders a string in a solid color.
type Rasterizer interface {
	Rasterize(text string, c animation.Color) (Texture, error)
}

// Input drains pending input events.
type Input interface {
	// AppendEvents appends every pending event to dst and returns the
	// extended slice. It never blocks.
	AppendEvents(dst []Event) []Event
}

// BounceListener is told about every frame in which the label reflected.
type BounceListener interface {
	Bounce(r animation.Reflection)
}
