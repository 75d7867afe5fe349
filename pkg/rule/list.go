package rule

import (
	"errors"
	"fmt"
	"slices"
)

// ErrIndexOutOfRange indicates a rule index outside the list.
var ErrIndexOutOfRange = errors.New("index out of range")

// List is an ordered list of rules.
type List []Rule

// Clone returns a copy of the list.
func (l List) Clone() List {
	return slices.Clone(l)
}

// Add appends r to the end of the list.
func (l *List) Add(r Rule) {
	*l = append(*l, r)
}

// Insert places r at index i, shifting later rules down.
func (l *List) Insert(i int, r Rule) error {
	if i < 0 || i > len(*l) {
		return fmt.Errorf("insert at %d: %w", i, ErrIndexOutOfRange)
	}

	*l = slices.Insert(*l, i, r)

	return nil
}

// Update replaces the rule at index i.
func (l List) Update(i int, r Rule) error {
	if i < 0 || i >= len(l) {
		return fmt.Errorf("update %d: %w", i, ErrIndexOutOfRange)
	}

	l[i] = r

	return nil
}

// Delete removes the rule at index i.
func (l *List) Delete(i int) error {
	if i < 0 || i >= len(*l) {
		return fmt.Errorf("delete %d: %w", i, ErrIndexOutOfRange)
	}

	*l = slices.Delete(*l, i, i+1)

	return nil
}

// Move swaps the rule at index i with its neighbor in the direction of delta
// (-1 moves it up, +1 moves it down). It returns the rule's new index.
// Moving past either end leaves the list unchanged.
func (l List) Move(i, delta int) (int, error) {
	if i < 0 || i >= len(l) {
		return i, fmt.Errorf("move %d: %w", i, ErrIndexOutOfRange)
	}

	switch {
	case delta < 0:
		delta = -1
	case delta > 0:
		delta = 1
	default:
		return i, nil
	}

	j := i + delta
	if j < 0 || j >= len(l) {
		return i, nil
	}

	l[i], l[j] = l[j], l[i]

	return j, nil
}
