package checkerboard

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	defaultToneTolerance = 15
	defaultNeutralMax    = 35
	defaultNeutralSpread = 10
)

var (
	// DarkTone is the darker square of the common checkerboard rendering.
	DarkTone = Tone{R: 77, G: 79, B: 76}
	// LightTone is the lighter square.
	LightTone = Tone{R: 155, G: 157, B: 154}
)

// Tone is an 8-bit RGB colour used as a classification centre.
type Tone struct {
	R, G, B uint8
}

// ParseTone parses a "#rrggbb" hex colour.
func ParseTone(hex string) (Tone, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Tone{}, fmt.Errorf("parse tone %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return Tone{R: r, G: g, B: b}, nil
}

// Hex formats the tone as "#rrggbb".
func (t Tone) Hex() string {
	return colorful.Color{
		R: float64(t.R) / 255.0,
		G: float64(t.G) / 255.0,
		B: float64(t.B) / 255.0,
	}.Hex()
}

// Options holds the colour-distance rules that decide whether a pixel is
// candidate background. All comparisons are strict.
type Options struct {
	// Tones are matched per channel: |c-tone| < ToneTolerance on R, G and B.
	Tones         []Tone
	ToneTolerance int
	// A pixel is a near-black neutral when every channel is below
	// NeutralMax and both |r-g| and |r-b| are below NeutralSpread.
	NeutralMax    int
	NeutralSpread int
}

// DefaultOptions returns the thresholds tuned for the usual checkerboard
// renderings.
func DefaultOptions() Options {
	return Options{
		Tones:         []Tone{DarkTone, LightTone},
		ToneTolerance: defaultToneTolerance,
		NeutralMax:    defaultNeutralMax,
		NeutralSpread: defaultNeutralSpread,
	}
}

// Validate rejects negative thresholds.
func (o Options) Validate() error {
	if o.ToneTolerance < 0 {
		return fmt.Errorf("tone tolerance must not be negative, got %d", o.ToneTolerance)
	}
	if o.NeutralMax < 0 {
		return fmt.Errorf("neutral max must not be negative, got %d", o.NeutralMax)
	}
	if o.NeutralSpread < 0 {
		return fmt.Errorf("neutral spread must not be negative, got %d", o.NeutralSpread)
	}
	return nil
}

// IsBackground reports whether the colour is candidate background.
func (o Options) IsBackground(r, g, b uint8) bool {
	ri, gi, bi := int(r), int(g), int(b)

	for _, t := range o.Tones {
		if absDiff(ri, int(t.R)) < o.ToneTolerance &&
			absDiff(gi, int(t.G)) < o.ToneTolerance &&
			absDiff(bi, int(t.B)) < o.ToneTolerance {
			return true
		}
	}

	return ri < o.NeutralMax && gi < o.NeutralMax && bi < o.NeutralMax &&
		absDiff(ri, gi) < o.NeutralSpread && absDiff(ri, bi) < o.NeutralSpread
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
