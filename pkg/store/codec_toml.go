package store

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/macropower/trackhue/pkg/color"
	"github.com/macropower/trackhue/pkg/rule"
)

// tomlRule uses pointers so that missing required keys can be told apart
// from zero values.
type tomlRule struct {
	Keyword    *string `toml:"keyword"`
	StartColor *int64  `toml:"startColor"`
	EndColor   *int64  `toml:"endColor"`
	ExactMatch bool    `toml:"exactMatch"`
}

type tomlRules struct {
	Rules []tomlRule `toml:"rules"`
}

type tomlLastActive struct {
	LastConfig string `toml:"lastConfig"`
}

// TOMLCodec stores TOML documents, with colors as packed integers.
type TOMLCodec struct {
	Order color.ChannelOrder
}

func (c *TOMLCodec) Ext() string {
	return "toml"
}

func (c *TOMLCodec) EncodeRules(rules rule.List) ([]byte, error) {
	doc := tomlRules{Rules: make([]tomlRule, 0, len(rules))}

	for _, r := range rules {
		start := int64(color.Pack(r.StartColor, c.Order))
		end := int64(color.Pack(r.EndColor, c.Order))

		doc.Rules = append(doc.Rules, tomlRule{
			Keyword:    &r.Keyword,
			StartColor: &start,
			EndColor:   &end,
			ExactMatch: r.ExactMatch,
		})
	}

	b, err := toml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode rules: %w", err)
	}

	return b, nil
}

func (c *TOMLCodec) DecodeRules(data []byte) (rule.List, error) {
	var doc tomlRules

	err := decodeStrict(data, &doc)
	if err != nil {
		return nil, err
	}

	rules := make(rule.List, 0, len(doc.Rules))

	for i, tr := range doc.Rules {
		switch {
		case tr.Keyword == nil:
			return nil, malformed("rule %d: missing %s", i+1, keyKeyword)
		case tr.StartColor == nil:
			return nil, malformed("rule %d: missing %s", i+1, keyStartColor)
		case tr.EndColor == nil:
			return nil, malformed("rule %d: missing %s", i+1, keyEndColor)
		}

		rules = append(rules, rule.New(
			*tr.Keyword,
			color.Unpack(color.Native(*tr.StartColor), c.Order),
			color.Unpack(color.Native(*tr.EndColor), c.Order),
			tr.ExactMatch,
		))
	}

	return rules, nil
}

func (c *TOMLCodec) EncodeLastActive(name string) ([]byte, error) {
	b, err := toml.Marshal(tomlLastActive{LastConfig: name})
	if err != nil {
		return nil, fmt.Errorf("encode last active: %w", err)
	}

	return b, nil
}

func (c *TOMLCodec) DecodeLastActive(data []byte) (string, error) {
	var doc tomlLastActive

	err := decodeStrict(data, &doc)
	if err != nil {
		return "", err
	}

	return doc.LastConfig, nil
}

// decodeStrict decodes TOML and rejects keys that have no destination field.
func decodeStrict(data []byte, v any) error {
	md, err := toml.Decode(string(data), v)
	if err != nil {
		return fmt.Errorf("decode toml: %w", err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return malformed("unknown key %q", undecoded[0].String())
	}

	return nil
}
