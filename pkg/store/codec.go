package store

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/macropower/trackhue/pkg/color"
	"github.com/macropower/trackhue/pkg/rule"
)

var (
	// ErrUnknownFormat indicates an unrecognized [Format].
	ErrUnknownFormat = errors.New("unknown format")
	// ErrMalformed indicates persisted data that does not match the schema.
	ErrMalformed = errors.New("malformed data")
)

// Format selects the on-disk encoding.
type Format string

const (
	FormatLiteral Format = "literal"
	FormatYAML    Format = "yaml"
	FormatTOML    Format = "toml"
)

// AllFormats lists every supported [Format].
var AllFormats = []string{
	string(FormatLiteral),
	string(FormatYAML),
	string(FormatTOML),
}

// ParseFormat parses a [Format] name. The empty string selects [FormatLiteral].
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FormatLiteral, nil
	}

	if slices.Contains(AllFormats, string(f)) {
		return f, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Codec converts rule lists and the last-active pointer to and from bytes.
type Codec interface {
	// Ext is the file extension, without the dot.
	Ext() string
	EncodeRules(rules rule.List) ([]byte, error)
	DecodeRules(data []byte) (rule.List, error)
	EncodeLastActive(name string) ([]byte, error)
	DecodeLastActive(data []byte) (string, error)
}

// NewCodec returns the [Codec] for f. Codecs that store packed colors use
// order to pack and unpack them.
//
//nolint:ireturn // Codec is selected at runtime.
func NewCodec(f Format, order color.ChannelOrder) (Codec, error) {
	switch f {
	case FormatLiteral, "":
		return &LiteralCodec{Order: order}, nil
	case FormatYAML:
		return &YAMLCodec{}, nil
	case FormatTOML:
		return &TOMLCodec{Order: order}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// maxExactInt is the largest integer a float64 holds exactly.
const maxExactInt = 1 << 53

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
}

// unpackNumber converts a persisted packed color. Non-integral values decode
// to [color.Invalid] so the rule is kept but skipped when applied.
func unpackNumber(n float64, order color.ChannelOrder) color.Color {
	if n < -maxExactInt || n > maxExactInt || n != float64(int64(n)) {
		return color.Invalid
	}

	return color.Unpack(color.Native(int64(n)), order)
}
