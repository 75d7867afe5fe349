package literal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/trackhue/pkg/literal"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		want  literal.Value
		input string
	}{
		"nil": {
			input: "nil",
			want:  literal.Nil{},
		},
		"true": {
			input: "true",
			want:  literal.Bool(true),
		},
		"integer": {
			input: "16711680",
			want:  literal.Number(16711680),
		},
		"negative float": {
			input: "-0.25",
			want:  literal.Number(-0.25),
		},
		"hex": {
			input: "0xFF00ff",
			want:  literal.Number(0xFF00FF),
		},
		"exponent": {
			input: "1e3",
			want:  literal.Number(1000),
		},
		"double quoted with escapes": {
			input: `"a\"b\\c\n\065\x42"`,
			want:  literal.String("a\"b\\c\nAB"),
		},
		"single quoted": {
			input: `'it\'s'`,
			want:  literal.String("it's"),
		},
		"adjacent strings": {
			input: `'it''s'`,
		},
		"empty table": {
			input: "{}",
			want:  literal.NewTable(),
		},
		"record": {
			input: `{lastConfig = "drums"}`,
			want:  literal.NewTable().Set("lastConfig", literal.String("drums")),
		},
		"return prefix and comments": {
			input: "-- saved rules\nreturn { --[[ inline ]] 1; 2, [\"odd key\"] = false, }",
			want: literal.NewTable().
				Append(literal.Number(1)).
				Append(literal.Number(2)).
				Set("odd key", literal.Bool(false)),
		},
		"nested": {
			input: `{ {keyword = "kick", exactMatch = true}, {keyword = "snare"} }`,
			want: literal.NewTable().
				Append(literal.NewTable().Set("keyword", literal.String("kick")).Set("exactMatch", literal.Bool(true))).
				Append(literal.NewTable().Set("keyword", literal.String("snare"))),
		},
		"keyword values as items": {
			input: "{true, nil, false}",
			want: literal.NewTable().
				Append(literal.Bool(true)).
				Append(literal.Nil{}).
				Append(literal.Bool(false)),
		},
		"duplicate field keeps last": {
			input: "{a = 1, a = 2}",
			want:  literal.NewTable().Set("a", literal.Number(2)),
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := literal.Parse([]byte(tc.input))
			if tc.want == nil {
				require.ErrorIs(t, err, literal.ErrSyntax)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input    string
		wantLine int
		wantCol  int
	}{
		"empty input":            {input: "", wantLine: 1, wantCol: 1},
		"unterminated table":     {input: "{\n  a = 1,\n", wantLine: 3, wantCol: 1},
		"missing separator":      {input: "{1 2}", wantLine: 1, wantCol: 4},
		"function call":          {input: `{a = os.execute("rm")}`, wantLine: 1, wantCol: 6},
		"identifier value":       {input: "{a = b}", wantLine: 1, wantCol: 6},
		"trailing garbage":       {input: "{} {}", wantLine: 1, wantCol: 4},
		"unterminated string":    {input: `{"abc}`, wantLine: 1, wantCol: 2},
		"newline in string":      {input: "\"a\nb\"", wantLine: 1, wantCol: 1},
		"bad escape":             {input: `"\q"`, wantLine: 1, wantCol: 2},
		"decimal escape too big": {input: `"\999"`, wantLine: 1, wantCol: 2},
		"numeric bracket key":    {input: "{[1] = 2}", wantLine: 1, wantCol: 3},
		"unterminated comment":   {input: "--[[ open\n{}", wantLine: 1, wantCol: 1},
		"malformed number":       {input: "12ab", wantLine: 1, wantCol: 1},
		"minus without number":   {input: "-true", wantLine: 1, wantCol: 2},
		"stray character":        {input: "{a = 1 + 2}", wantLine: 1, wantCol: 8},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := literal.Parse([]byte(tc.input))
			require.ErrorIs(t, err, literal.ErrSyntax)

			var synErr *literal.SyntaxError
			require.ErrorAs(t, err, &synErr)
			assert.Equal(t, tc.wantLine, synErr.Line, "line: %s", err)
			assert.Equal(t, tc.wantCol, synErr.Col, "col: %s", err)
		})
	}
}

func TestParse_DeepNesting(t *testing.T) {
	t.Parallel()

	input := make([]byte, 0, 400)
	for range 200 {
		input = append(input, '{')
	}

	for range 200 {
		input = append(input, '}')
	}

	_, err := literal.Parse(input)
	require.ErrorIs(t, err, literal.ErrSyntax)
	assert.Contains(t, err.Error(), "nested too deeply")
}

func TestParseTable(t *testing.T) {
	t.Parallel()

	tbl, err := literal.ParseTable([]byte(`{lastConfig = "x", n = 3, ok = true}`))
	require.NoError(t, err)

	s, ok := tbl.GetString("lastConfig")
	assert.True(t, ok)
	assert.Equal(t, "x", s)

	n, ok := tbl.GetNumber("n")
	assert.True(t, ok)
	assert.InDelta(t, 3.0, n, 0)

	b, ok := tbl.GetBool("ok")
	assert.True(t, ok)
	assert.True(t, b)

	_, ok = tbl.GetString("n")
	assert.False(t, ok)

	_, ok = tbl.GetBool("missing")
	assert.False(t, ok)

	_, err = literal.ParseTable([]byte(`"not a table"`))
	require.ErrorIs(t, err, literal.ErrSyntax)
}

func TestMarshal(t *testing.T) {
	t.Parallel()

	rules := literal.NewTable().
		Append(literal.NewTable().
			Set("keyword", literal.String("kick,snare")).
			Set("startColor", literal.Number(16711680)).
			Set("endColor", literal.Number(255)).
			Set("exactMatch", literal.Bool(false))).
		Append(literal.NewTable().
			Set("keyword", literal.String(`say "hi"`)).
			Set("startColor", literal.Number(-1)).
			Set("endColor", literal.Number(0.5)).
			Set("exactMatch", literal.Bool(true)))

	want := `{
  {keyword = "kick,snare", startColor = 16711680, endColor = 255, exactMatch = false},
  {keyword = "say \"hi\"", startColor = -1, endColor = 0.5, exactMatch = true},
}
`

	got := literal.Marshal(rules)
	assert.Equal(t, want, string(got))

	parsed, err := literal.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, literal.Value(rules), parsed)

	assert.Equal(t, "{lastConfig = \"drums\"}\n",
		string(literal.Marshal(literal.NewTable().Set("lastConfig", literal.String("drums")))))
	assert.Equal(t, "{}\n", string(literal.Marshal(literal.NewTable())))
	assert.Equal(t, "{[\"odd key\"] = nil, [\"end\"] = 1}\n", string(literal.Marshal(
		literal.NewTable().Set("odd key", literal.Nil{}).Set("end", literal.Number(1)),
	)))
}

func TestQuote_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, s := range []string{
		"",
		"plain",
		"tab\there",
		"quote \" and backslash \\",
		"control \x01\x1f\x7f then 1",
		"bell\a1",
		"unicode: Überbus ✓",
		"multi\nline\r\n",
	} {
		got, err := literal.Parse([]byte(literal.Quote(s)))
		require.NoError(t, err, s)
		assert.Equal(t, literal.String(s), got)
	}
}
