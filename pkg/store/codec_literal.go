package store

import (
	"fmt"

	"github.com/macropower/trackhue/pkg/color"
	"github.com/macropower/trackhue/pkg/literal"
	"github.com/macropower/trackhue/pkg/rule"
)

const (
	keyKeyword    = "keyword"
	keyStartColor = "startColor"
	keyEndColor   = "endColor"
	keyExactMatch = "exactMatch"
	keyLastConfig = "lastConfig"
)

// LiteralCodec stores table literals, with colors as packed integers.
type LiteralCodec struct {
	Order color.ChannelOrder
}

func (c *LiteralCodec) Ext() string {
	return "txt"
}

func (c *LiteralCodec) EncodeRules(rules rule.List) ([]byte, error) {
	t := literal.NewTable()

	for _, r := range rules {
		t.Append(literal.NewTable().
			Set(keyKeyword, literal.String(r.Keyword)).
			Set(keyStartColor, literal.Number(color.Pack(r.StartColor, c.Order))).
			Set(keyEndColor, literal.Number(color.Pack(r.EndColor, c.Order))).
			Set(keyExactMatch, literal.Bool(r.ExactMatch)))
	}

	return literal.Marshal(t), nil
}

func (c *LiteralCodec) DecodeRules(data []byte) (rule.List, error) {
	t, err := literal.ParseTable(data)
	if err != nil {
		return nil, err //nolint:wrapcheck // Syntax errors carry their position.
	}

	if len(t.Fields) > 0 {
		return nil, malformed("unexpected field %q in rule list", t.Fields[0].Key)
	}

	rules := make(rule.List, 0, len(t.Items))

	for i, item := range t.Items {
		rt, ok := item.(*literal.Table)
		if !ok {
			return nil, malformed("rule %d: not a table", i+1)
		}

		r, err := c.decodeRule(rt)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i+1, err)
		}

		rules = append(rules, r)
	}

	return rules, nil
}

func (c *LiteralCodec) decodeRule(t *literal.Table) (rule.Rule, error) {
	for _, f := range t.Fields {
		switch f.Key {
		case keyKeyword, keyStartColor, keyEndColor, keyExactMatch:
		default:
			return rule.Rule{}, malformed("unknown field %q", f.Key)
		}
	}

	if len(t.Items) > 0 {
		return rule.Rule{}, malformed("unexpected positional value")
	}

	kw, ok := t.GetString(keyKeyword)
	if !ok {
		return rule.Rule{}, malformed("%s must be a string", keyKeyword)
	}

	start, ok := t.GetNumber(keyStartColor)
	if !ok {
		return rule.Rule{}, malformed("%s must be a number", keyStartColor)
	}

	end, ok := t.GetNumber(keyEndColor)
	if !ok {
		return rule.Rule{}, malformed("%s must be a number", keyEndColor)
	}

	var exact bool
	if _, found := t.Get(keyExactMatch); found {
		exact, ok = t.GetBool(keyExactMatch)
		if !ok {
			return rule.Rule{}, malformed("%s must be a boolean", keyExactMatch)
		}
	}

	return rule.New(kw, unpackNumber(start, c.Order), unpackNumber(end, c.Order), exact), nil
}

func (c *LiteralCodec) EncodeLastActive(name string) ([]byte, error) {
	return literal.Marshal(literal.NewTable().Set(keyLastConfig, literal.String(name))), nil
}

func (c *LiteralCodec) DecodeLastActive(data []byte) (string, error) {
	t, err := literal.ParseTable(data)
	if err != nil {
		return "", err //nolint:wrapcheck // Syntax errors carry their position.
	}

	name, ok := t.GetString(keyLastConfig)
	if !ok {
		return "", malformed("%s must be a string", keyLastConfig)
	}

	return name, nil
}
