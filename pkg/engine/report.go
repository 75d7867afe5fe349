package engine

import (
	"github.com/macropower/trackhue/pkg/gradient"
	"github.com/macropower/trackhue/pkg/rule"
)

// Status is the result of applying one rule, or a whole pass.
type Status int

const (
	StatusApplied Status = iota
	StatusSkipped
)

func (s Status) String() string {
	if s == StatusSkipped {
		return "skipped"
	}

	return "applied"
}

// Reason explains why a rule or pass was skipped.
type Reason string

const (
	ReasonNone         Reason = ""
	ReasonNoRules      Reason = "no rules available"
	ReasonNoKeywords   Reason = "no keywords"
	ReasonInvalidColor Reason = "invalid color"
	ReasonNoMatches    Reason = "no matching tracks"
)

// Outcome records what happened to a single rule.
type Outcome struct {
	Reason      Reason
	Rule        rule.Rule
	Assignments []gradient.Assignment
	Index       int
	Matches     int
	Status      Status
}

// Report summarizes an [Engine.ApplyAll] pass.
type Report struct {
	Reason   Reason
	Outcomes []Outcome
	// Writes counts successful color writes, including overwrites.
	Writes int
	// Failures counts color writes the provider rejected.
	Failures int
	Status   Status
}

func skipped(reason Reason) *Report {
	return &Report{Status: StatusSkipped, Reason: reason}
}

// Applied returns the outcomes of rules that produced at least one color.
func (r *Report) Applied() []Outcome {
	var out []Outcome

	for _, o := range r.Outcomes {
		if o.Status == StatusApplied {
			out = append(out, o)
		}
	}

	return out
}

// Skipped returns the outcomes of rules that produced no colors.
func (r *Report) Skipped() []Outcome {
	var out []Outcome

	for _, o := range r.Outcomes {
		if o.Status == StatusSkipped {
			out = append(out, o)
		}
	}

	return out
}
