package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/trackhue/pkg/yaml"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		want []string
	}{
		"settings": {
			want: []string{`"channelOrder"`, `"maxStep"`, `"literal"`},
		},
		"project": {
			want: []string{`"tracks"`, `"history"`, `"depth"`},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			b, err := generate(name)
			require.NoError(t, err)

			for _, want := range tc.want {
				assert.Contains(t, string(b), want)
			}

			_, err = yaml.NewValidator("/"+name+".json", b)
			require.NoError(t, err)
		})
	}

	_, err := generate("policy")
	require.ErrorIs(t, err, errUnknownKind)
	assert.Equal(t, []string{"project", "settings"}, kindNames())
}
