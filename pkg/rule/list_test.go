package rule_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/trackhue/pkg/rule"
)

func newList(keywords ...string) rule.List {
	var l rule.List
	for _, kw := range keywords {
		l.Add(rule.New(kw, red, blue, false))
	}

	return l
}

func keywords(l rule.List) []string {
	out := make([]string, 0, len(l))
	for _, r := range l {
		out = append(out, r.Keyword)
	}

	return out
}

func TestList_Move(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		want    []string
		index   int
		delta   int
		wantIdx int
	}{
		"move up": {
			index:   1,
			delta:   -1,
			want:    []string{"b", "a", "c"},
			wantIdx: 0,
		},
		"move down": {
			index:   1,
			delta:   1,
			want:    []string{"a", "c", "b"},
			wantIdx: 2,
		},
		"move first up is a no-op": {
			index:   0,
			delta:   -1,
			want:    []string{"a", "b", "c"},
			wantIdx: 0,
		},
		"move last down is a no-op": {
			index:   2,
			delta:   1,
			want:    []string{"a", "b", "c"},
			wantIdx: 2,
		},
		"large delta moves one position": {
			index:   0,
			delta:   5,
			want:    []string{"b", "a", "c"},
			wantIdx: 1,
		},
		"zero delta": {
			index:   1,
			delta:   0,
			want:    []string{"a", "b", "c"},
			wantIdx: 1,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			l := newList("a", "b", "c")
			idx, err := l.Move(tc.index, tc.delta)
			require.NoError(t, err)
			assert.Equal(t, tc.wantIdx, idx)
			assert.Equal(t, tc.want, keywords(l))
		})
	}
}

func TestList_Edit(t *testing.T) {
	t.Parallel()

	l := newList("a", "b")

	require.NoError(t, l.Insert(1, rule.New("x", red, blue, true)))
	assert.Equal(t, []string{"a", "x", "b"}, keywords(l))

	require.NoError(t, l.Update(0, rule.New("y", blue, red, false)))
	assert.Equal(t, []string{"y", "x", "b"}, keywords(l))
	assert.Equal(t, blue, l[0].StartColor)

	require.NoError(t, l.Delete(1))
	assert.Equal(t, []string{"y", "b"}, keywords(l))

	require.ErrorIs(t, l.Delete(2), rule.ErrIndexOutOfRange)
	require.ErrorIs(t, l.Update(-1, rule.Rule{}), rule.ErrIndexOutOfRange)
	require.ErrorIs(t, l.Insert(3, rule.Rule{}), rule.ErrIndexOutOfRange)

	_, err := l.Move(5, 1)
	require.ErrorIs(t, err, rule.ErrIndexOutOfRange)
}

func TestList_Clone(t *testing.T) {
	t.Parallel()

	l := newList("a", "b")
	c := l.Clone()
	c[0].Keyword = "z"

	assert.Equal(t, "a", l[0].Keyword)
}
