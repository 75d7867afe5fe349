package color

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	// ErrInvalidHex indicates that a string could not be parsed as a hex color.
	ErrInvalidHex = errors.New("invalid hex color")
	// ErrInvalidColor indicates a color with a channel outside 0..255.
	ErrInvalidColor = errors.New("invalid color")
)

// Invalid is returned when a packed value cannot describe a color.
// It fails [Color.Valid].
var Invalid = Color{R: -1, G: -1, B: -1}

// Color is an RGB color with channels in the range 0..255.
type Color struct {
	R, G, B int
}

// RGB returns a [Color] from its channels.
func RGB(r, g, b int) Color {
	return Color{R: r, G: g, B: b}
}

// Valid reports whether every channel is within 0..255.
func (c Color) Valid() bool {
	return validChannel(c.R) && validChannel(c.G) && validChannel(c.B)
}

// ParseHex parses "#rrggbb" (the leading '#' is optional).
func ParseHex(s string) (Color, error) {
	if s != "" && s[0] != '#' {
		s = "#" + s
	}

	cf, err := colorful.Hex(s)
	if err != nil {
		return Invalid, fmt.Errorf("%w %q: %w", ErrInvalidHex, s, err)
	}

	r, g, b := cf.RGB255()

	return Color{R: int(r), G: int(g), B: int(b)}, nil
}

// Hex returns the color as "#rrggbb". Invalid colors render as an empty string.
func (c Color) Hex() string {
	if !c.Valid() {
		return ""
	}

	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

func (c Color) String() string {
	if !c.Valid() {
		return fmt.Sprintf("invalid(%d,%d,%d)", c.R, c.G, c.B)
	}

	return c.Hex()
}

// Interpolate blends start toward end by factor. Each channel is rounded by
// adding 0.5 and truncating. The factor is not clamped.
func Interpolate(start, end Color, factor float64) Color {
	return Color{
		R: lerp(start.R, end.R, factor),
		G: lerp(start.G, end.G, factor),
		B: lerp(start.B, end.B, factor),
	}
}

func lerp(a, b int, factor float64) int {
	return int(float64(a) + float64(b-a)*factor + 0.5)
}

func validChannel(v int) bool {
	return v >= 0 && v <= 255
}
