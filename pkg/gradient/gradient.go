// Package gradient spreads a color gradient across a group of tracks.
package gradient

import (
	"errors"

	"github.com/macropower/trackhue/pkg/color"
	"github.com/macropower/trackhue/pkg/track"
)

// DefaultMaxStep is the largest factor increase allowed between adjacent tracks.
const DefaultMaxStep = 0.3

// ErrEmptyGroup indicates there were no tracks to color.
var ErrEmptyGroup = errors.New("empty group")

// Assignment is a color to write to a track.
type Assignment struct {
	Track  track.Track
	Color  color.Color
	Factor float64
}

type options struct {
	maxStep float64
}

// Opt configures [Apply].
type Opt func(*options)

// WithMaxStep sets the max-step clamp. Non-positive values are ignored.
func WithMaxStep(step float64) Opt {
	return func(o *options) {
		if step > 0 {
			o.maxStep = step
		}
	}
}

// Factors returns the clamped interpolation factor for each of n positions.
//
// Position i would nominally get i/(n-1), but a factor may never exceed the
// previous one by more than maxStep, so long groups can stop short of 1.
func Factors(n int, maxStep float64) []float64 {
	if n <= 0 {
		return nil
	}

	factors := make([]float64, n)
	prev := 0.0

	for i := range factors {
		p := 0.0
		if n > 1 {
			p = float64(i) / float64(n-1)
		}

		p = min(p, prev+maxStep)
		factors[i] = p
		prev = p
	}

	return factors
}

// Apply returns one [Assignment] per track in group order. No assignments are
// produced for an empty group or an invalid color.
func Apply(group []track.Track, start, end color.Color, opts ...Opt) ([]Assignment, error) {
	o := &options{maxStep: DefaultMaxStep}
	for _, opt := range opts {
		opt(o)
	}

	if len(group) == 0 {
		return nil, ErrEmptyGroup
	}

	if !start.Valid() || !end.Valid() {
		return nil, color.ErrInvalidColor
	}

	factors := Factors(len(group), o.maxStep)
	out := make([]Assignment, len(group))

	for i, t := range group {
		out[i] = Assignment{
			Track:  t,
			Color:  color.Interpolate(start, end, factors[i]),
			Factor: factors[i],
		}
	}

	return out, nil
}
