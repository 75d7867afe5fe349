package literal

import (
	"bytes"
	"math"
	"strconv"
)

// Marshal renders v as a literal. Tables that contain other tables are
// written one entry per line; all other tables are written on a single line.
func Marshal(v Value) []byte {
	b := &bytes.Buffer{}
	writeValue(b, v, 0)
	b.WriteByte('\n')

	return b.Bytes()
}

func writeValue(b *bytes.Buffer, v Value, indent int) {
	switch v := v.(type) {
	case nil, Nil:
		b.WriteString("nil")
	case Bool:
		b.WriteString(strconv.FormatBool(bool(v)))
	case Number:
		b.WriteString(formatNumber(float64(v)))
	case String:
		b.WriteString(Quote(string(v)))
	case *Table:
		writeTable(b, v, indent)
	}
}

func writeTable(b *bytes.Buffer, t *Table, indent int) {
	if t == nil || len(t.Items) == 0 && len(t.Fields) == 0 {
		b.WriteString("{}")

		return
	}

	if !hasNested(t) {
		b.WriteByte('{')

		first := true
		sep := func() {
			if !first {
				b.WriteString(", ")
			}

			first = false
		}

		for _, item := range t.Items {
			sep()
			writeValue(b, item, indent)
		}

		for _, f := range t.Fields {
			sep()
			writeKey(b, f.Key)
			writeValue(b, f.Value, indent)
		}

		b.WriteByte('}')

		return
	}

	pad := bytes.Repeat([]byte("  "), indent+1)

	b.WriteString("{\n")

	for _, item := range t.Items {
		b.Write(pad)
		writeValue(b, item, indent+1)
		b.WriteString(",\n")
	}

	for _, f := range t.Fields {
		b.Write(pad)
		writeKey(b, f.Key)
		writeValue(b, f.Value, indent+1)
		b.WriteString(",\n")
	}

	b.Write(bytes.Repeat([]byte("  "), indent))
	b.WriteByte('}')
}

func writeKey(b *bytes.Buffer, key string) {
	if isName(key) {
		b.WriteString(key)
	} else {
		b.WriteByte('[')
		b.WriteString(Quote(key))
		b.WriteByte(']')
	}

	b.WriteString(" = ")
}

func hasNested(t *Table) bool {
	for _, item := range t.Items {
		if _, ok := item.(*Table); ok {
			return true
		}
	}

	for _, f := range t.Fields {
		if _, ok := f.Value.(*Table); ok {
			return true
		}
	}

	return false
}

func formatNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "0"
	}

	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Quote returns s as a double-quoted literal string. Control characters are
// written as three-digit decimal escapes; other bytes are copied as-is.
func Quote(s string) string {
	b := make([]byte, 0, len(s)+2)
	b = append(b, '"')

	for i := range len(s) {
		c := s[i]

		switch c {
		case '"':
			b = append(b, '\\', '"')
		case '\\':
			b = append(b, '\\', '\\')
		case '\n':
			b = append(b, '\\', 'n')
		case '\r':
			b = append(b, '\\', 'r')
		case '\t':
			b = append(b, '\\', 't')
		default:
			if c < 0x20 || c == 0x7f {
				b = append(b, '\\', '0'+c/100, '0'+c/10%10, '0'+c%10)

				continue
			}

			b = append(b, c)
		}
	}

	return string(append(b, '"'))
}

var reserved = map[string]bool{
	"nil": true, "true": true, "false": true, "return": true,
	"and": true, "or": true, "not": true, "function": true, "end": true,
}

func isName(s string) bool {
	if s == "" || reserved[s] || !isNameStart(s[0]) {
		return false
	}

	for i := 1; i < len(s); i++ {
		if !isNameChar(s[i]) {
			return false
		}
	}

	return true
}
