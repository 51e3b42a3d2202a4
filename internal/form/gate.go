package form

import (
	"context"
	"fmt"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/pkg/metrics"
)

// Continuation receives a validated doctor form, typically to forward it to
// the persistence collaborator.
type Continuation func(ctx context.Context, in model.DoctorUpsertInput) error

// Gate blocks submission of invalid forms. Only validated values ever reach
// the continuation.
type Gate struct {
	validator *Validator
	metrics   *metrics.Metrics
}

// NewGate creates a gate. m may be nil.
func NewGate(v *Validator, m *metrics.Metrics) *Gate {
	return &Gate{validator: v, metrics: m}
}

func (g *Gate) Validator() *Validator {
	return g.validator
}

// Submit validates in and, when the report is empty, calls next exactly once
// with the validated value. A non-empty report is returned without calling next.
// The returned error is the continuation's error.
func (g *Gate) Submit(ctx context.Context, in model.DoctorUpsertInput, next Continuation) (model.DoctorUpsertInput, Report, error) {
	if next == nil {
		return in, nil, fmt.Errorf("form gate: nil continuation")
	}

	out, report := g.validator.Validate(in)
	if !report.Empty() {
		g.observe("rejected", report)
		return out, report, nil
	}

	if err := next(ctx, out); err != nil {
		g.observe("failed", nil)
		return out, nil, err
	}

	g.observe("accepted", nil)
	return out, nil, nil
}

func (g *Gate) observe(outcome string, report Report) {
	if g.metrics == nil {
		return
	}
	g.metrics.FormSubmissions.WithLabelValues(outcome).Inc()
	for _, e := range report {
		g.metrics.FormFieldErrors.WithLabelValues(e.Field).Inc()
	}
}
