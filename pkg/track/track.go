package track

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/macropower/trackhue/pkg/color"
)

// Track is a read-only view of a host track.
type Track struct {
	// ID is a stable reference to the track within the host.
	ID string
	// Name is the display name.
	Name string
	// Color is the current custom color, meaningful only when HasColor is set.
	Color color.Color
	// Depth is the hierarchy depth-change marker: >0 opens that many folder
	// levels, <0 closes that many, 0 leaves the depth unchanged.
	Depth    int
	HasColor bool
}

// IsFolder reports whether the track opens exactly one folder level.
func (t Track) IsFolder() bool {
	return t.Depth == 1
}

// Index returns the position of the track with the given ID, or -1.
func Index(tracks []Track, id string) int {
	for i, t := range tracks {
		if t.ID == id {
			return i
		}
	}

	return -1
}

// ResolveGroup returns root followed by its contiguous descendants.
//
// Only a root whose depth marker is exactly 1 has descendants. Scanning stops
// after the track that closes the folder, which is included. If the folder is
// never closed, every remaining track is included. A root that is not in
// tracks yields an empty group.
func ResolveGroup(root Track, tracks []Track) []Track {
	idx := Index(tracks, root.ID)
	if idx < 0 {
		return nil
	}

	root = tracks[idx]
	group := []Track{root}

	if !root.IsFolder() {
		return group
	}

	depth := 0
	for _, t := range tracks[idx+1:] {
		depth += t.Depth
		group = append(group, t)

		if depth < 0 {
			break
		}
	}

	return group
}

// Match returns the tracks whose names match keyword, in input order.
//
// Matching is case-insensitive. With exact set, the whole name must equal the
// keyword; otherwise the name must contain it. An empty keyword matches every
// track when exact is false.
func Match(keyword string, exact bool, tracks []Track) []Track {
	lower := cases.Lower(language.Und)
	kw := lower.String(keyword)

	var matches []Track

	for _, t := range tracks {
		name := lower.String(t.Name)

		if exact && name == kw || !exact && strings.Contains(name, kw) {
			matches = append(matches, t)
		}
	}

	return matches
}
