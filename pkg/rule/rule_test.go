package rule_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/trackhue/pkg/color"
	"github.com/macropower/trackhue/pkg/rule"
)

var (
	red  = color.RGB(255, 0, 0)
	blue = color.RGB(0, 0, 255)
)

func TestRule_Keywords(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		keyword string
		want    []string
	}{
		"single": {
			keyword: "kick",
			want:    []string{"kick"},
		},
		"comma separated with spaces": {
			keyword: " kick , snare,hat ",
			want:    []string{"kick", "snare", "hat"},
		},
		"empty segments are dropped": {
			keyword: "kick,,  ,snare,",
			want:    []string{"kick", "snare"},
		},
		"inner spaces are kept": {
			keyword: "lead vox, bv",
			want:    []string{"lead vox", "bv"},
		},
		"only separators": {
			keyword: " , ,",
			want:    nil,
		},
		"empty": {
			keyword: "",
			want:    nil,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			r := rule.New(tc.keyword, red, blue, false)
			assert.Equal(t, tc.want, r.Keywords())
		})
	}
}

func TestRule_Validate(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		wantErr error
		rule    rule.Rule
	}{
		"valid": {
			rule: rule.New("kick", red, blue, true),
		},
		"no keywords": {
			rule:    rule.New(" , ", red, blue, false),
			wantErr: rule.ErrNoKeywords,
		},
		"invalid start": {
			rule:    rule.New("kick", color.Invalid, blue, false),
			wantErr: color.ErrInvalidColor,
		},
		"invalid end": {
			rule:    rule.New("kick", red, color.RGB(0, 0, 256), false),
			wantErr: color.ErrInvalidColor,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := tc.rule.Validate()
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Contains(t, err.Error(), tc.rule.Keyword)

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestRule_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "kick (exact): #ff0000 -> #0000ff", rule.New("kick", red, blue, true).String())
	assert.Equal(t, "kick (contains): #ff0000 -> #0000ff", rule.New("kick", red, blue, false).String())
}
