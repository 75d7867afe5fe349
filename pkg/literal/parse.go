package literal

// maxDepth bounds table nesting.
const maxDepth = 64

type parser struct {
	lex   *lexer
	tok   token
	depth int
}

// Parse parses a single literal value from data. Errors wrap [ErrSyntax].
func Parse(data []byte) (Value, error) {
	p := &parser{lex: newLexer(string(data))}

	err := p.advance()
	if err != nil {
		return nil, err
	}

	if p.tok.kind == tokName && p.tok.text == "return" {
		err = p.advance()
		if err != nil {
			return nil, err
		}
	}

	v, err := p.value()
	if err != nil {
		return nil, err
	}

	if p.tok.kind != tokEOF {
		return nil, p.unexpected("end of input")
	}

	return v, nil
}

// ParseTable parses data and requires the result to be a table.
func ParseTable(data []byte) (*Table, error) {
	v, err := Parse(data)
	if err != nil {
		return nil, err
	}

	t, ok := v.(*Table)
	if !ok {
		return nil, &SyntaxError{Line: 1, Col: 1, Msg: "expected a table"}
	}

	return t, nil
}

func (p *parser) advance() error {
	tk, err := p.lex.next()
	if err != nil {
		return err
	}

	p.tok = tk

	return nil
}

func (p *parser) unexpected(want string) error {
	got := p.tok.kind.String()
	if p.tok.kind == tokName {
		got = "'" + p.tok.text + "'"
	}

	return p.lex.errorf(p.tok.line, p.tok.col, "expected %s, got %s", want, got)
}

func (p *parser) expect(kind tokenKind) error {
	if p.tok.kind != kind {
		return p.unexpected(kind.String())
	}

	return p.advance()
}

func (p *parser) value() (Value, error) {
	tk := p.tok

	switch tk.kind {
	case tokLBrace:
		return p.table()

	case tokString:
		return String(tk.text), p.advance()

	case tokNumber:
		return Number(tk.num), p.advance()

	case tokMinus:
		err := p.advance()
		if err != nil {
			return nil, err
		}

		if p.tok.kind != tokNumber {
			return nil, p.unexpected("number")
		}

		n := -p.tok.num

		return Number(n), p.advance()

	case tokName:
		var v Value

		switch tk.text {
		case "nil":
			v = Nil{}
		case "true":
			v = Bool(true)
		case "false":
			v = Bool(false)
		default:
			return nil, p.unexpected("value")
		}

		return v, p.advance()

	default:
		return nil, p.unexpected("value")
	}
}

func (p *parser) table() (*Table, error) {
	p.depth++
	defer func() { p.depth-- }()

	if p.depth > maxDepth {
		return nil, p.lex.errorf(p.tok.line, p.tok.col, "tables nested too deeply")
	}

	err := p.expect(tokLBrace)
	if err != nil {
		return nil, err
	}

	t := NewTable()

	for p.tok.kind != tokRBrace {
		err = p.entry(t)
		if err != nil {
			return nil, err
		}

		if p.tok.kind == tokComma || p.tok.kind == tokSemicolon {
			err = p.advance()
			if err != nil {
				return nil, err
			}

			continue
		}

		if p.tok.kind != tokRBrace {
			return nil, p.unexpected("',' or '}'")
		}
	}

	return t, p.advance()
}

func (p *parser) entry(t *Table) error {
	switch p.tok.kind {
	case tokLBracket:
		err := p.advance()
		if err != nil {
			return err
		}

		if p.tok.kind != tokString {
			return p.unexpected("string key")
		}

		key := p.tok.text

		err = p.advance()
		if err != nil {
			return err
		}

		err = p.expect(tokRBracket)
		if err != nil {
			return err
		}

		return p.field(t, key)

	case tokName:
		switch p.tok.text {
		case "nil", "true", "false":
			// Keywords are values, not field names.
		default:
			key := p.tok.text

			err := p.advance()
			if err != nil {
				return err
			}

			return p.field(t, key)
		}
	}

	v, err := p.value()
	if err != nil {
		return err
	}

	t.Append(v)

	return nil
}

func (p *parser) field(t *Table, key string) error {
	err := p.expect(tokAssign)
	if err != nil {
		return err
	}

	v, err := p.value()
	if err != nil {
		return err
	}

	t.Set(key, v)

	return nil
}
