package track_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/macropower/trackhue/pkg/track"
)

func tracks(specs ...any) []track.Track {
	out := make([]track.Track, 0, len(specs)/2)
	for i := 0; i+1 < len(specs); i += 2 {
		out = append(out, track.Track{
			ID:    fmt.Sprintf("t%d", len(out)),
			Name:  specs[i].(string),
			Depth: specs[i+1].(int),
		})
	}

	return out
}

func names(ts []track.Track) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.Name)
	}

	return out
}

func TestResolveGroup(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		tracks []track.Track
		want   []string
		root   int
	}{
		"non-folder is a singleton": {
			tracks: tracks("A", 0, "B", 0),
			root:   0,
			want:   []string{"A"},
		},
		"folder opening two levels is a singleton": {
			tracks: tracks("A", 2, "B", 0, "C", -2),
			root:   0,
			want:   []string{"A"},
		},
		"closing track is a singleton": {
			tracks: tracks("A", 1, "B", -1),
			root:   1,
			want:   []string{"B"},
		},
		"folder includes closing child": {
			tracks: tracks("Kick Drum", 1, "Kick Mic", 0, "Kick Mic 2", -1, "Snare Top", 0),
			root:   0,
			want:   []string{"Kick Drum", "Kick Mic", "Kick Mic 2"},
		},
		"nested folder stays inside": {
			tracks: tracks("Drums", 1, "Kit", 1, "Kick", 0, "Snare", -1, "Room", -1, "Bass", 0),
			root:   0,
			want:   []string{"Drums", "Kit", "Kick", "Snare", "Room"},
		},
		"nested folder resolved on its own": {
			tracks: tracks("Drums", 1, "Kit", 1, "Kick", 0, "Snare", -1, "Room", -1, "Bass", 0),
			root:   1,
			want:   []string{"Kit", "Kick", "Snare"},
		},
		"closing several levels at once": {
			tracks: tracks("Drums", 1, "Kit", 1, "Kick", -2, "Bass", 0),
			root:   1,
			want:   []string{"Kit", "Kick"},
		},
		"unclosed folder runs to the end": {
			tracks: tracks("Vox", 1, "Lead", 0, "Harmony", 0),
			root:   0,
			want:   []string{"Vox", "Lead", "Harmony"},
		},
		"folder as last track": {
			tracks: tracks("A", 0, "Vox", 1),
			root:   1,
			want:   []string{"Vox"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := track.ResolveGroup(tc.tracks[tc.root], tc.tracks)
			assert.Equal(t, tc.want, names(got))
		})
	}
}

func TestResolveGroup_UnknownRoot(t *testing.T) {
	t.Parallel()

	ts := tracks("A", 1, "B", -1)
	got := track.ResolveGroup(track.Track{ID: "missing", Name: "A", Depth: 1}, ts)
	assert.Empty(t, got)
}

func TestResolveGroup_ChildCount(t *testing.T) {
	t.Parallel()

	for n := 1; n <= 20; n++ {
		specs := []any{"Folder", 1}
		for i := range n {
			depth := 0
			if i == n-1 {
				depth = -1
			}

			specs = append(specs, fmt.Sprintf("Child %d", i), depth)
		}

		specs = append(specs, "After", 0)

		ts := tracks(specs...)
		assert.Len(t, track.ResolveGroup(ts[0], ts), n+1, "children: %d", n)
	}
}

func TestMatch(t *testing.T) {
	t.Parallel()

	all := tracks("Drums", 1, "Drums Bus", 0, "KICK", 0, "Overheads", -1, "", 0)

	tcs := map[string]struct {
		keyword string
		want    []string
		exact   bool
	}{
		"substring is case-insensitive": {
			keyword: "drums",
			want:    []string{"Drums", "Drums Bus"},
		},
		"exact is case-insensitive": {
			keyword: "drums",
			exact:   true,
			want:    []string{"Drums"},
		},
		"exact rejects longer names": {
			keyword: "drums bu",
			exact:   true,
			want:    nil,
		},
		"upper-case keyword": {
			keyword: "Kick",
			want:    []string{"KICK"},
		},
		"empty keyword matches everything": {
			keyword: "",
			want:    []string{"Drums", "Drums Bus", "KICK", "Overheads", ""},
		},
		"empty keyword exact matches unnamed": {
			keyword: "",
			exact:   true,
			want:    []string{""},
		},
		"no match": {
			keyword: "vocals",
			want:    nil,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := track.Match(tc.keyword, tc.exact, all)
			if tc.want == nil {
				assert.Empty(t, got)

				return
			}

			assert.Equal(t, tc.want, names(got))
		})
	}
}
