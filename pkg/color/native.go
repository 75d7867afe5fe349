package color

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// OverrideFlag is set on a track's packed color when a custom color is enabled.
const OverrideFlag Native = 0x1000000

// ErrUnknownChannelOrder indicates an unrecognized channel order name.
var ErrUnknownChannelOrder = errors.New("unknown channel order")

// Native is a color packed into a single integer, as stored by the host.
type Native int64

// ChannelOrder is the byte order of red and blue in a [Native] value.
type ChannelOrder int

const (
	// OrderRGB packs as r<<16 | g<<8 | b.
	OrderRGB ChannelOrder = iota
	// OrderBGR packs as b<<16 | g<<8 | r (Windows COLORREF).
	OrderBGR
)

// AllChannelOrders lists the accepted names for [ParseChannelOrder].
var AllChannelOrders = []string{"auto", "rgb", "bgr"}

// DefaultChannelOrder returns the order the host uses on the current platform.
func DefaultChannelOrder() ChannelOrder {
	return channelOrderFor(runtime.GOOS)
}

func channelOrderFor(goos string) ChannelOrder {
	if goos == "windows" {
		return OrderBGR
	}

	return OrderRGB
}

// ParseChannelOrder parses "auto", "rgb" or "bgr".
func ParseChannelOrder(s string) (ChannelOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return DefaultChannelOrder(), nil
	case "rgb":
		return OrderRGB, nil
	case "bgr":
		return OrderBGR, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownChannelOrder, s)
}

func (o ChannelOrder) String() string {
	switch o {
	case OrderRGB:
		return "rgb"
	case OrderBGR:
		return "bgr"
	}

	return fmt.Sprintf("ChannelOrder(%d)", int(o))
}

// Pack encodes c using the given channel order. Invalid colors pack to -1.
func Pack(c Color, order ChannelOrder) Native {
	if !c.Valid() {
		return -1
	}

	hi, lo := c.R, c.B
	if order == OrderBGR {
		hi, lo = lo, hi
	}

	return Native(hi<<16 | c.G<<8 | lo)
}

// Unpack decodes v using the given channel order. The [OverrideFlag] bit is
// ignored. Values outside the 24-bit range decode to [Invalid].
func Unpack(v Native, order ChannelOrder) Color {
	v &^= OverrideFlag
	if v < 0 || v > 0xFFFFFF {
		return Invalid
	}

	hi := int(v>>16) & 0xFF
	g := int(v>>8) & 0xFF
	lo := int(v) & 0xFF

	if order == OrderBGR {
		hi, lo = lo, hi
	}

	return Color{R: hi, G: g, B: lo}
}

// PackOverride packs c and sets [OverrideFlag], the form written to a track's
// custom color slot.
func PackOverride(c Color, order ChannelOrder) Native {
	n := Pack(c, order)
	if n < 0 {
		return 0
	}

	return n | OverrideFlag
}

// HasOverride reports whether the custom color bit is set.
func (v Native) HasOverride() bool {
	return v >= 0 && v&OverrideFlag != 0
}
