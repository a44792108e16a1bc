package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/ncruces/zenity"

	"github.com/iburimskiy/bounce-label/internal/config"
	"github.com/iburimskiy/bounce-label/internal/cue"
	"github.com/iburimskiy/bounce-label/internal/frameloop"
	"github.com/iburimskiy/bounce-label/internal/game"
	"github.com/iburimskiy/bounce-label/internal/logging"
	"github.com/iburimskiy/bounce-label/internal/terminal"
)

func main() {
	cfg, err := config.Parse(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, "bounce:", err)
		if cfg.ErrorDialog && cfg.Backend == config.BackendWindow {
			_ = zenity.Error(err.Error(), zenity.Title(config.WindowTitle), zenity.ErrorIcon)
		}
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	log, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := []frameloop.Option{frameloop.WithLogger(log)}
	if cfg.Sound {
		player, err := cue.NewPlayer(config.SampleRate, log)
		if err != nil {
			// Non-fatal, the label bounces silently
			log.Warn("sound disabled", "err", err)
		} else {
			defer player.Close()
			opts = append(opts, frameloop.WithBounceListener(player))
		}
	}
	loop := frameloop.New(config.LabelText, opts...)

	log.Info("starting", "backend", cfg.Backend, "font", cfg.FontPath, "sound", cfg.Sound)

	switch cfg.Backend {
	case config.BackendTerminal:
		return terminal.Run(ctx, loop)
	default:
		return game.Run(ctx, cfg, loop, log)
	}
}

// newLogger writes to -log-file when set, otherwise to stderr. The terminal
// backend owns the screen, so without a file it logs nothing.
func newLogger(cfg config.Config) (*slog.Logger, func(), error) {
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		return logging.New(f, cfg.LogLevel), func() { _ = f.Close() }, nil
	}

	var w io.Writer = os.Stderr
	if cfg.Backend == config.BackendTerminal {
		w = nil
	}
	return logging.New(w, cfg.LogLevel), func() {}, nil
}
