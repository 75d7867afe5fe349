package engine

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/macropower/trackhue/pkg/color"
	"github.com/macropower/trackhue/pkg/gradient"
	"github.com/macropower/trackhue/pkg/log"
	"github.com/macropower/trackhue/pkg/rule"
	"github.com/macropower/trackhue/pkg/track"
)

// BatchDescription names the undo step that brackets a pass.
const BatchDescription = "Apply track color rules"

// Provider is the host's track list.
type Provider interface {
	// Tracks returns every track in project order.
	Tracks() []track.Track
	// SetColor sets the custom color of the track with the given ID.
	SetColor(id string, c color.Color) error
}

// Batcher is implemented by providers that can group a pass into one undo step.
type Batcher interface {
	BeginBatch(desc string)
	EndBatch()
}

// Engine applies rules to tracks.
type Engine struct {
	tracer  trace.Tracer
	maxStep float64
}

// Opt configures an [Engine].
type Opt func(*Engine)

// WithMaxStep sets the gradient max-step clamp.
func WithMaxStep(step float64) Opt {
	return func(e *Engine) {
		if step > 0 {
			e.maxStep = step
		}
	}
}

// New creates a new [Engine].
func New(opts ...Opt) *Engine {
	e := &Engine{
		tracer:  otel.Tracer("engine"),
		maxStep: gradient.DefaultMaxStep,
	}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// MaxStep returns the configured gradient max-step clamp.
func (e *Engine) MaxStep() float64 {
	return e.maxStep
}

// ApplyAll applies every rule in rules to the tracks of p.
//
// An empty rule list performs no writes and reports [ReasonNoRules].
func (e *Engine) ApplyAll(ctx context.Context, rules rule.List, p Provider) *Report {
	ctx, span := e.tracer.Start(ctx, "apply", trace.WithAttributes(
		attribute.Int("rules", len(rules)),
	))
	defer span.End()

	logger := log.WithContext(ctx)

	if len(rules) == 0 || p == nil {
		logger.Info("nothing to apply", slog.String("reason", string(ReasonNoRules)))

		return skipped(ReasonNoRules)
	}

	tracks := p.Tracks()
	report := &Report{Status: StatusApplied}

	if b, ok := p.(Batcher); ok {
		b.BeginBatch(BatchDescription)
		defer b.EndBatch()
	}

	for i, r := range rules {
		o := e.applyRule(ctx, i, r, tracks, p, report)
		report.Outcomes = append(report.Outcomes, o)
	}

	span.SetAttributes(
		attribute.Int("writes", report.Writes),
		attribute.Int("failures", report.Failures),
	)

	logger.Debug("applied rules",
		slog.Int("rules", len(rules)),
		slog.Int("tracks", len(tracks)),
		slog.Int("writes", report.Writes),
		slog.Int("failures", report.Failures),
	)

	return report
}

func (e *Engine) applyRule(
	ctx context.Context,
	idx int,
	r rule.Rule,
	tracks []track.Track,
	p Provider,
	report *Report,
) Outcome {
	logger := log.WithContext(ctx).With(
		slog.Int("rule", idx),
		slog.String("keyword", r.Keyword),
	)

	o := Outcome{Index: idx, Rule: r, Status: StatusSkipped}

	keywords := r.Keywords()
	if len(keywords) == 0 {
		o.Reason = ReasonNoKeywords
		logger.Debug("skip rule", slog.String("reason", string(o.Reason)))

		return o
	}

	if !r.StartColor.Valid() || !r.EndColor.Valid() {
		o.Reason = ReasonInvalidColor
		logger.Warn("skip rule",
			slog.String("reason", string(o.Reason)),
			slog.String("start", r.StartColor.String()),
			slog.String("end", r.EndColor.String()),
		)

		return o
	}

	for _, kw := range keywords {
		for _, root := range track.Match(kw, r.ExactMatch, tracks) {
			o.Matches++

			group := track.ResolveGroup(root, tracks)

			assignments, err := gradient.Apply(group, r.StartColor, r.EndColor, gradient.WithMaxStep(e.maxStep))
			if err != nil {
				logger.Debug("skip group", slog.String("root", root.Name), slog.Any("err", err))

				continue
			}

			for _, a := range assignments {
				err := p.SetColor(a.Track.ID, a.Color)
				if err != nil {
					report.Failures++
					logger.Warn("set track color",
						slog.String("track", a.Track.Name),
						slog.Any("err", err),
					)

					continue
				}

				report.Writes++
				o.Assignments = append(o.Assignments, a)
			}
		}
	}

	if len(o.Assignments) == 0 {
		o.Reason = ReasonNoMatches
		logger.Debug("skip rule", slog.String("reason", string(o.Reason)))

		return o
	}

	o.Status = StatusApplied

	return o
}
