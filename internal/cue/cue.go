// Package cue plays a short blip through the speaker when the label bounces.
package cue

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"

	"github.com/iburimskiy/bounce-label/internal/animation"
	"github.com/iburimskiy/bounce-label/internal/logging"
)

const (
	blipLength = 50 * time.Millisecond
	blipVolume = 0.25

	pitchX      = 660.0
	pitchY      = 440.0
	pitchCorner = 880.0
)

// Player turns reflections into blips.
type Player struct {
	sr  beep.SampleRate
	log *slog.Logger
}

// NewPlayer initialises the speaker at sampleRate.
func NewPlayer(sampleRate int, log *slog.Logger) (*Player, error) {
	sr := beep.SampleRate(sampleRate)
	if err := speaker.Init(sr, sr.N(time.Second/20)); err != nil {
		return nil, fmt.Errorf("cue: init speaker: %w", err)
	}
	return &Player{sr: sr, log: logging.OrNop(log)}, nil
}

// Bounce plays a blip pitched by the axes that reflected.
func (p *Player) Bounce(r animation.Reflection) {
	freq, ok := Pitch(r)
	if !ok {
		return
	}
	p.log.Debug("blip", "hz", freq)
	speaker.Play(Tone(p.sr, freq, blipLength))
}

// Close stops anything still playing.
func (p *Player) Close() {
	speaker.Lock()
	speaker.Clear()
	speaker.Unlock()
}

// Pitch returns the blip frequency for r: one per axis and a higher one
// when both axes flip at once.
func Pitch(r animation.Reflection) (float64, bool) {
	switch {
	case r.X && r.Y:
		return pitchCorner, true
	case r.X:
		return pitchX, true
	case r.Y:
		return pitchY, true
	default:
		return 0, false
	}
}

// Tone returns a mono sine at freq lasting d, fading out linearly so the
// end does not click.
func Tone(sr beep.SampleRate, freq float64, d time.Duration) beep.Streamer {
	total := sr.N(d)
	step := 2 * math.Pi * freq / float64(sr)
	pos := 0

	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		if pos >= total {
			return 0, false
		}
		for n = range samples {
			if pos >= total {
				return n, true
			}
			fade := 1 - float64(pos)/float64(total)
			v := blipVolume * fade * math.Sin(step*float64(pos))
			samples[n][0], samples[n][1] = v, v
			pos++
		}
		return len(samples), true
	})
}
