// Package color provides the RGB [Color] value type, linear interpolation
// between colors, and conversion to and from the host's packed [Native]
// representation.
//
// [Pack] and [Unpack] are the only places where the platform dependent
// red/blue channel swap happens. Callers choose a [ChannelOrder] explicitly,
// or use [DefaultChannelOrder] to follow the host platform.
package color
