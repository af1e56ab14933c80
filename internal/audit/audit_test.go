package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joescharf/rubriq/internal/engine"
	"github.com/joescharf/rubriq/internal/models"
	"github.com/joescharf/rubriq/internal/prompt"
)

// fakeEngine replays a canned response and records what it was sent.
type fakeEngine struct {
	reply string
	err   error

	calls []prompt.Document
}

func (f *fakeEngine) Name() string { return "fake" }

func (f *fakeEngine) Send(_ context.Context, doc prompt.Document) (string, error) {
	f.calls = append(f.calls, doc)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func TestRubricsRunRoundTrip(t *testing.T) {
	rubrics := []models.Rubric{
		{ID: "R1", Type: models.RubricTypeCorrectness, Importance: models.ImportanceMustFollow, Positive: true, Text: "fn foo in a.py must return 0"},
	}
	evidence := models.EvidenceContext{PRDiff: "diff --git a/a.py b/a.py"}

	eng := &fakeEngine{reply: `{"rubric_feedback":[{"id":"R1","verdict":"pass","flags":{"atomic":true,"specific":true,"accurate":true,"categorized":true,"grounded":true,"self_contained":true},"issues":[],"suggested_fix":""}]}`}

	run, err := NewRunner(eng).Rubrics(context.Background(), evidence, rubrics)
	require.NoError(t, err)

	assert.NotEmpty(t, run.RunID)
	require.Len(t, eng.calls, 1, "all records share a single engine call")
	assert.Equal(t, run.Document, eng.calls[0])
	assert.Contains(t, eng.calls[0].User, "a.py")

	require.True(t, run.Result.Clean())
	require.Len(t, run.Result.Items, 1)
	require.NotNil(t, run.Result.Items[0].Feedback)
	assert.Equal(t, models.RubricVerdictPass, run.Result.Items[0].Feedback.Verdict)
	assert.Equal(t, "R1", run.Result.Items[0].Feedback.ID)
}

func TestRubricsRunIdentifierPreservation(t *testing.T) {
	rubrics := []models.Rubric{
		{ID: "R1", Text: "a"},
		{ID: "custom-id", Text: "b"},
		{ID: "R3", Text: "c"},
	}
	eng := &fakeEngine{reply: `{"rubric_feedback":[
		{"id":"R1","verdict":"pass","flags":{},"issues":[],"suggested_fix":""},
		{"id":"custom-id","verdict":"pass","flags":{},"issues":[],"suggested_fix":""},
		{"id":"R3","verdict":"pass","flags":{},"issues":[],"suggested_fix":""}
	]}`}

	run, err := NewRunner(eng).Rubrics(context.Background(), models.EvidenceContext{}, rubrics)
	require.NoError(t, err)
	require.True(t, run.Result.Clean())

	for i, item := range run.Result.Items {
		require.NotNil(t, item.Feedback)
		assert.Equal(t, rubrics[i].ID, item.Feedback.ID)
	}
}

func TestRubricsRunEngineFailureAborts(t *testing.T) {
	upstream := &engine.UpstreamError{Provider: "fake", Err: errors.New("rate limited")}
	eng := &fakeEngine{err: upstream}

	run, err := NewRunner(eng).Rubrics(context.Background(), models.EvidenceContext{}, []models.Rubric{{ID: "R1", Text: "x"}})
	require.Error(t, err)
	assert.Nil(t, run)

	var ue *engine.UpstreamError
	assert.ErrorAs(t, err, &ue)
}

func TestRubricsRunMalformedReplyStillSucceeds(t *testing.T) {
	eng := &fakeEngine{reply: "sorry, I can't do that"}

	run, err := NewRunner(eng).Rubrics(context.Background(), models.EvidenceContext{}, []models.Rubric{{ID: "R1", Text: "x"}})
	require.NoError(t, err, "engine-output irregularities never abort the run")
	require.Len(t, run.Result.Items, 1)
	assert.Nil(t, run.Result.Items[0].Feedback)
	assert.NotEmpty(t, run.Result.Diagnostics)
}

func TestRatingsRun(t *testing.T) {
	ratings := models.RatingSet{
		"resp-1": {"R1": {Title: "Pass", Score: "pass", Color: "green", Justification: "guard added"}},
	}
	eng := &fakeEngine{reply: `{"rating_feedback":[{"response_id":"resp-1","rubric_id":"R1","verdict":"ok","issues":["checked"],"suggested_fix":""}]}`}

	run, err := NewRunner(eng).Ratings(context.Background(), models.EvidenceContext{ResponseSummary: "added guard"}, ratings, nil)
	require.NoError(t, err)

	require.Len(t, eng.calls, 1)
	assert.Contains(t, eng.calls[0].User, "added guard")

	require.True(t, run.Result.Clean())
	require.Len(t, run.Result.Items, 1)
	require.NotNil(t, run.Result.Items[0].Feedback)
	assert.Equal(t, models.RatingVerdictOK, run.Result.Items[0].Feedback.Verdict)
}

func TestRunsAreIndependent(t *testing.T) {
	eng := &fakeEngine{reply: `{"rubric_feedback":[]}`}
	runner := NewRunner(eng)

	a, err := runner.Rubrics(context.Background(), models.EvidenceContext{}, nil)
	require.NoError(t, err)
	b, err := runner.Rubrics(context.Background(), models.EvidenceContext{}, nil)
	require.NoError(t, err)

	assert.NotEqual(t, a.RunID, b.RunID)
	assert.Equal(t, a.Document, b.Document, "identical inputs compile identically")
}
