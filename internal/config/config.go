package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/iburimskiy/bounce-label/internal/logging"
)

const (
	WindowWidth  = 800
	WindowHeight = 600
	WindowTitle  = "ハローワールド"

	// Label parameters
	LabelText = "Hello, World!"
	FontSize  = 200

	// Terminal backend: virtual pixels per character cell
	CellWidth  = 8
	CellHeight = 16

	// Bounce cue
	SampleRate = 44100
)

const (
	BackendWindow   = "window"
	BackendTerminal = "terminal"
)

// ErrUnknownBackend is returned for a -backend value other than window or terminal.
var ErrUnknownBackend = errors.New("config: unknown backend")

// Config holds the command-line settings. Motion, sizes and colors are
// fixed and live in the animation package.
type Config struct {
	Backend     string
	FontPath    string // empty selects the embedded Go Mono face
	Sound       bool
	LogLevel    slog.Level
	LogFile     string
	ErrorDialog bool
}

// Default returns the settings used when no flags are given.
func Default() Config {
	return Config{
		Backend:     BackendWindow,
		LogLevel:    slog.LevelInfo,
		ErrorDialog: true,
	}
}

// Parse reads flags from args (without the program name).
func Parse(args []string, output io.Writer) (Config, error) {
	cfg := Default()

	fs := flag.NewFlagSet("bounce", flag.ContinueOnError)
	fs.SetOutput(output)

	level := cfg.LogLevel.String()
	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, "render backend: window or terminal")
	fs.StringVar(&cfg.FontPath, "font", cfg.FontPath, "TrueType font for the label (default: embedded Go Mono)")
	fs.BoolVar(&cfg.Sound, "sound", cfg.Sound, "play a blip on every bounce")
	fs.StringVar(&level, "log-level", level, "log level: debug, info, warn or error")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "write logs to this file instead of stderr")
	fs.BoolVar(&cfg.ErrorDialog, "dialog", cfg.ErrorDialog, "show fatal errors in a dialog (window backend)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("config: unexpected arguments %q", fs.Args())
	}

	l, err := logging.ParseLevel(level)
	if err != nil {
		return Config{}, err
	}
	cfg.LogLevel = l

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field values.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendWindow, BackendTerminal:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
	}
}
