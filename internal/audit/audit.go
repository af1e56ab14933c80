// Package audit runs one validation pipeline end to end: compile the
// instruction document, make the single boundary call, reconcile the
// response. Each run is stateless given its inputs; nothing is shared
// between runs.
package audit

import (
	"context"

	"github.com/joescharf/rubriq/internal/engine"
	"github.com/joescharf/rubriq/internal/models"
	"github.com/joescharf/rubriq/internal/prompt"
	"github.com/joescharf/rubriq/internal/reconcile"
)

// Runner executes audit runs against one reasoning engine.
type Runner struct {
	Engine engine.Engine
}

// NewRunner creates a runner bound to the given engine.
func NewRunner(e engine.Engine) *Runner {
	return &Runner{Engine: e}
}

// RubricRun is the complete outcome of one rubric audit.
type RubricRun struct {
	RunID    string                 `json:"run_id"`
	Document prompt.Document        `json:"-"`
	Result   reconcile.RubricResult `json:"result"`
}

// RatingRun is the complete outcome of one rating audit.
type RatingRun struct {
	RunID    string                 `json:"run_id"`
	Document prompt.Document        `json:"-"`
	Result   reconcile.RatingResult `json:"result"`
}

// Rubrics audits rubric quality. All rubrics share a single instruction
// document and a single engine response so the engine sees the whole set
// at once and feedback ordering stays consistent. Boundary failures abort
// the run; engine-output irregularities do not.
func (r *Runner) Rubrics(ctx context.Context, evidence models.EvidenceContext, rubrics []models.Rubric) (*RubricRun, error) {
	run := &RubricRun{
		RunID:    models.NewRunID(),
		Document: prompt.CompileRubricAudit(evidence, rubrics),
	}
	raw, err := r.Engine.Send(ctx, run.Document)
	if err != nil {
		return nil, err
	}
	run.Result = reconcile.Rubrics(raw, rubrics)
	return run, nil
}

// Ratings audits rating correctness for every (response, rubric) pair in
// the set.
func (r *Runner) Ratings(ctx context.Context, evidence models.EvidenceContext, ratings models.RatingSet, rubrics []models.Rubric) (*RatingRun, error) {
	run := &RatingRun{
		RunID:    models.NewRunID(),
		Document: prompt.CompileRatingAudit(evidence, ratings, rubrics),
	}
	raw, err := r.Engine.Send(ctx, run.Document)
	if err != nil {
		return nil, err
	}
	run.Result = reconcile.Ratings(raw, ratings)
	return run, nil
}
