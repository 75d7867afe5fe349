package rule

import (
	"errors"
	"fmt"
	"strings"

	"github.com/macropower/trackhue/pkg/color"
)

// ErrNoKeywords indicates a rule whose keyword field has no usable keywords.
var ErrNoKeywords = errors.New("no keywords")

// Rule colors every group whose root track name matches one of its keywords.
type Rule struct {
	// Keyword is a comma-separated list of keywords.
	Keyword    string
	StartColor color.Color
	EndColor   color.Color
	// ExactMatch requires the whole track name to equal a keyword, instead of
	// containing it. Comparison is case-insensitive either way.
	ExactMatch bool
}

// New creates a new [Rule].
func New(keyword string, start, end color.Color, exact bool) Rule {
	return Rule{
		Keyword:    keyword,
		StartColor: start,
		EndColor:   end,
		ExactMatch: exact,
	}
}

// Keywords splits the keyword field on commas, trims each segment, and drops
// empty segments.
func (r Rule) Keywords() []string {
	var out []string

	for kw := range strings.SplitSeq(r.Keyword, ",") {
		kw = strings.TrimSpace(kw)
		if kw != "" {
			out = append(out, kw)
		}
	}

	return out
}

// Validate reports why the rule cannot produce a gradient, if anything.
func (r Rule) Validate() error {
	if len(r.Keywords()) == 0 {
		return fmt.Errorf("rule %q: %w", r.Keyword, ErrNoKeywords)
	}

	if !r.StartColor.Valid() {
		return fmt.Errorf("rule %q: start %w: %s", r.Keyword, color.ErrInvalidColor, r.StartColor)
	}

	if !r.EndColor.Valid() {
		return fmt.Errorf("rule %q: end %w: %s", r.Keyword, color.ErrInvalidColor, r.EndColor)
	}

	return nil
}

func (r Rule) String() string {
	mode := "contains"
	if r.ExactMatch {
		mode = "exact"
	}

	return fmt.Sprintf("%s (%s): %s -> %s", r.Keyword, mode, r.StartColor, r.EndColor)
}
