package literal

// Value is one of [Nil], [Bool], [Number], [String] or [*Table].
type Value interface {
	literal()
}

type (
	Nil    struct{}
	Bool   bool
	Number float64
	String string
)

func (Nil) literal()    {}
func (Bool) literal()   {}
func (Number) literal() {}
func (String) literal() {}
func (*Table) literal() {}

// Field is a named entry of a [Table].
type Field struct {
	Value Value
	Key   string
}

// Table holds positional items and named fields, each in source order.
type Table struct {
	Items  []Value
	Fields []Field
}

// NewTable creates an empty [Table].
func NewTable() *Table {
	return &Table{}
}

// Append adds a positional item.
func (t *Table) Append(v Value) *Table {
	t.Items = append(t.Items, v)

	return t
}

// Set assigns a named field, replacing an earlier field with the same key.
func (t *Table) Set(key string, v Value) *Table {
	for i, f := range t.Fields {
		if f.Key == key {
			t.Fields[i].Value = v

			return t
		}
	}

	t.Fields = append(t.Fields, Field{Key: key, Value: v})

	return t
}

// Get returns the named field.
func (t *Table) Get(key string) (Value, bool) {
	for _, f := range t.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}

	return nil, false
}

// GetString returns the named field if it is a [String].
func (t *Table) GetString(key string) (string, bool) {
	v, ok := t.Get(key)
	if !ok {
		return "", false
	}

	s, ok := v.(String)

	return string(s), ok
}

// GetNumber returns the named field if it is a [Number].
func (t *Table) GetNumber(key string) (float64, bool) {
	v, ok := t.Get(key)
	if !ok {
		return 0, false
	}

	n, ok := v.(Number)

	return float64(n), ok
}

// GetBool returns the named field if it is a [Bool].
func (t *Table) GetBool(key string) (value, ok bool) {
	v, found := t.Get(key)
	if !found {
		return false, false
	}

	b, ok := v.(Bool)

	return bool(b), ok
}
