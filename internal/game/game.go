// Package game runs the bouncing label in a desktop window with Ebitengine.
package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/bounce-label/internal/config"
	"github.com/iburimskiy/bounce-label/internal/frameloop"
	"github.com/iburimskiy/bounce-label/internal/logging"
)

// Game implements ebiten.Game on top of a frameloop.Loop. Update advances
// the animation and Draw renders the latest frame; Ebitengine's 60 TPS
// tick is the frame budget.
type Game struct {
	ctx    context.Context
	loop   *frameloop.Loop
	raster frameloop.Rasterizer
	log    *slog.Logger

	width, height int

	frame frameloop.Frame
	ready bool
	err   error

	keys   []ebiten.Key
	events []frameloop.Event
	screen surface
}

// NewGame returns a game for a fixed width × height window. Cancelling ctx
// closes the window at the next tick.
func NewGame(ctx context.Context, loop *frameloop.Loop, raster frameloop.Rasterizer, width, height int, log *slog.Logger) *Game {
	return &Game{
		ctx:    ctx,
		loop:   loop,
		raster: raster,
		log:    logging.OrNop(log),
		width:  width,
		height: height,
	}
}

func (g *Game) Update() error {
	// Draw has no error return; a failed frame surfaces here.
	if g.err != nil {
		return g.err
	}

	g.events = g.appendEvents(g.events[:0])

	frame, ok := g.loop.Advance(g.events, g.width, g.height)
	if !ok {
		return ebiten.Termination
	}
	g.frame, g.ready = frame, true
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if !g.ready || g.err != nil {
		return
	}
	g.screen.dst = screen
	if err := g.loop.Render(&g.screen, g.raster, g.frame); err != nil {
		g.log.Error("draw failed", "err", err)
		g.err = err
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// appendEvents converts this tick's window and keyboard input.
func (g *Game) appendEvents(dst []frameloop.Event) []frameloop.Event {
	if ebiten.IsWindowBeingClosed() || g.ctx.Err() != nil {
		dst = append(dst, frameloop.QuitEvent())
	}
	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	return appendKeyEvents(dst, g.keys)
}

func appendKeyEvents(dst []frameloop.Event, keys []ebiten.Key) []frameloop.Event {
	for _, k := range keys {
		dst = append(dst, frameloop.KeyDownEvent(mapKey(k)))
	}
	return dst
}

func mapKey(k ebiten.Key) frameloop.Key {
	if k == ebiten.KeyEscape {
		return frameloop.KeyEscape
	}
	return frameloop.KeyUnknown
}

// Run opens the window and blocks until the loop quits or a frame fails.
func Run(ctx context.Context, cfg config.Config, loop *frameloop.Loop, log *slog.Logger) error {
	ttf, err := LoadFont(cfg.FontPath)
	if err != nil {
		return err
	}
	raster, err := NewRasterizer(ttf, config.FontSize)
	if err != nil {
		return err
	}
	defer raster.Close()

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(int(time.Second / frameloop.FrameBudget))

	g := NewGame(ctx, loop, raster, config.WindowWidth, config.WindowHeight, log)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("game: %w", err)
	}
	return nil
}
