package animation

import (
	"image/color"
	"math"
)

// Color is an opaque RGB triple, one byte per channel.
type Color struct {
	R, G, B uint8
}

// ToRGBA returns c as an opaque color.RGBA.
func (c Color) ToRGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// CounterPeriod is the length of the frame counter cycle. Counters live in
// [0, CounterPeriod).
const CounterPeriod = 255

// NextCounter advances a frame counter, wrapping at CounterPeriod.
func NextCounter(c uint8) uint8 {
	return uint8((int(c) + 1) % CounterPeriod)
}

// hueSector is one 60° slice of the hue wheel. lo and hi are inclusive
// integer degrees.
type hueSector struct {
	lo, hi int
	rgb    func(c, x float64) (r, g, b float64)
}

var hueSectors = [...]hueSector{
	{0, 59, func(c, x float64) (float64, float64, float64) { return c, x, 0 }},
	{60, 119, func(c, x float64) (float64, float64, float64) { return x, c, 0 }},
	{120, 179, func(c, x float64) (float64, float64, float64) { return 0, c, x }},
	{180, 239, func(c, x float64) (float64, float64, float64) { return 0, x, c }},
	{240, 299, func(c, x float64) (float64, float64, float64) { return x, 0, c }},
	{300, 359, func(c, x float64) (float64, float64, float64) { return c, 0, x }},
}

// sectorFor returns the sector containing the truncated hue deg.
func sectorFor(deg int) hueSector {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	for _, s := range hueSectors {
		if deg >= s.lo && deg <= s.hi {
			return s
		}
	}
	// unreachable: the table covers 0..359
	return hueSectors[len(hueSectors)-1]
}

// HueForFrame maps a counter onto the hue wheel so the counter period
// sweeps one full rotation.
func HueForFrame(counter uint8) float64 {
	return float64(counter) / CounterPeriod * 360
}

// ColorForFrame returns the fully saturated, full value color for counter.
func ColorForFrame(counter uint8) Color {
	return HSVToRGB(HueForFrame(counter), 1, 1)
}

// HSVToRGB converts HSV to RGB (hue: degrees, saturation: 0-1, value: 0-1).
// The sector is picked from the hue truncated to whole degrees; the
// secondary component uses the exact hue.
func HSVToRGB(h, s, v float64) Color {
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	r, g, b := sectorFor(int(h)).rgb(c, x)
	return Color{R: channel(r + m), G: channel(g + m), B: channel(b + m)}
}

func channel(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
