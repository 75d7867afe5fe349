package store

import (
	"fmt"

	"github.com/macropower/trackhue/pkg/color"
	"github.com/macropower/trackhue/pkg/rule"
	"github.com/macropower/trackhue/pkg/yaml"
)

// yamlRule is the YAML form of a [rule.Rule]. Colors are "#rrggbb" strings, so
// no channel order is involved.
type yamlRule struct {
	Keyword string `json:"keyword"         jsonschema:"title=Keywords,description=Comma-separated keywords"`
	Start   string `json:"start"           jsonschema:"title=Start Color,pattern=^(#?[0-9a-fA-F]{6})?$"`
	End     string `json:"end"             jsonschema:"title=End Color,pattern=^(#?[0-9a-fA-F]{6})?$"`
	Exact   bool   `json:"exact,omitempty" jsonschema:"title=Exact Match"`
}

type yamlRules struct {
	Rules []yamlRule `json:"rules" jsonschema:"title=Rules"`
}

type yamlLastActive struct {
	LastConfig string `json:"lastConfig" jsonschema:"title=Last Configuration"`
}

var (
	rulesValidator      = yaml.MustNewValidatorFor("/rules.json", &yamlRules{})
	lastActiveValidator = yaml.MustNewValidatorFor("/last.json", &yamlLastActive{})
)

// YAMLCodec stores YAML documents validated against a JSON schema.
type YAMLCodec struct{}

func (c *YAMLCodec) Ext() string {
	return "yaml"
}

func (c *YAMLCodec) EncodeRules(rules rule.List) ([]byte, error) {
	doc := yamlRules{Rules: make([]yamlRule, 0, len(rules))}

	for _, r := range rules {
		doc.Rules = append(doc.Rules, yamlRule{
			Keyword: r.Keyword,
			Start:   r.StartColor.Hex(),
			End:     r.EndColor.Hex(),
			Exact:   r.ExactMatch,
		})
	}

	b, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode rules: %w", err)
	}

	return b, nil
}

func (c *YAMLCodec) DecodeRules(data []byte) (rule.List, error) {
	var doc yamlRules

	err := decodeValidated(data, rulesValidator, &doc)
	if err != nil {
		return nil, err
	}

	rules := make(rule.List, 0, len(doc.Rules))

	for _, yr := range doc.Rules {
		rules = append(rules, rule.New(yr.Keyword, hexOrInvalid(yr.Start), hexOrInvalid(yr.End), yr.Exact))
	}

	return rules, nil
}

func (c *YAMLCodec) EncodeLastActive(name string) ([]byte, error) {
	b, err := yaml.Marshal(yamlLastActive{LastConfig: name})
	if err != nil {
		return nil, fmt.Errorf("encode last active: %w", err)
	}

	return b, nil
}

func (c *YAMLCodec) DecodeLastActive(data []byte) (string, error) {
	var doc yamlLastActive

	err := decodeValidated(data, lastActiveValidator, &doc)
	if err != nil {
		return "", err
	}

	return doc.LastConfig, nil
}

func decodeValidated(data []byte, v *yaml.Validator, out any) error {
	var anyDoc any

	err := yaml.Unmarshal(data, &anyDoc)
	if err != nil {
		return err //nolint:wrapcheck // Already annotated with source.
	}

	err = yaml.NewErrorWrapper(yaml.WithSource(data)).Wrap(v.Validate(anyDoc))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	return yaml.Unmarshal(data, out) //nolint:wrapcheck // Already annotated with source.
}

func hexOrInvalid(s string) color.Color {
	c, err := color.ParseHex(s)
	if err != nil {
		return color.Invalid
	}

	return c
}
