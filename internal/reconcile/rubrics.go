package reconcile

import (
	"encoding/json"
	"fmt"

	"github.com/joescharf/rubriq/internal/models"
)

// RubricItem pairs one input rubric with the feedback the engine produced
// for it. Feedback is nil when none could be attached; Diagnostic then
// says why.
type RubricItem struct {
	Rubric     models.Rubric           `json:"rubric"`
	Feedback   *models.RubricFeedback  `json:"feedback"`
	Diagnostic string                  `json:"diagnostic,omitempty"`
}

// RubricResult is the reconciled outcome of one rubric audit. Items keeps
// the input order and always has one entry per input rubric.
type RubricResult struct {
	Items       []RubricItem            `json:"items"`
	Unmatched   []models.RubricFeedback `json:"unmatched,omitempty"`
	Diagnostics []Diagnostic            `json:"diagnostics,omitempty"`
	Raw         string                  `json:"-"`
}

// Clean reports whether every record reconciled with no diagnostics.
func (r RubricResult) Clean() bool {
	return len(r.Diagnostics) == 0 && len(r.Unmatched) == 0
}

// Rubrics parses the engine's raw text and attaches each feedback item to
// its originating rubric: by id first, by position as a fallback, with
// anything left over surfaced rather than discarded.
func Rubrics(raw string, rubrics []models.Rubric) RubricResult {
	result := RubricResult{Raw: raw}

	itemsRaw, err := extractList(raw, "rubric_feedback")
	if err != nil {
		return rubricParseFailure(raw, rubrics, err)
	}

	// Decode items individually so one malformed entry does not take the
	// rest of the list down with it.
	feedback := make([]*models.RubricFeedback, 0, len(itemsRaw))
	for idx, itemRaw := range itemsRaw {
		var fb models.RubricFeedback
		if err := json.Unmarshal(itemRaw, &fb); err != nil {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				Kind:    DiagnosticParse,
				Message: fmt.Sprintf("feedback item %d does not match the expected schema: %v", idx, err),
				Raw:     string(itemRaw),
			})
			feedback = append(feedback, nil)
			continue
		}
		feedback = append(feedback, &fb)
	}

	byID := make(map[string]int, len(rubrics))
	for idx, r := range rubrics {
		byID[r.ID] = idx
	}

	attached := make([]*models.RubricFeedback, len(rubrics))
	for idx, fb := range feedback {
		if fb == nil {
			continue
		}
		if pos, ok := byID[fb.ID]; ok && attached[pos] == nil {
			attached[pos] = fb
			continue
		}
		// No id match: pair by list position so nothing is dropped.
		if idx < len(rubrics) && attached[idx] == nil {
			attached[idx] = fb
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				Kind:    DiagnosticMatch,
				Message: fmt.Sprintf("feedback id %q matched rubric %q by position only", fb.ID, rubrics[idx].ID),
			})
			continue
		}
		result.Unmatched = append(result.Unmatched, *fb)
		result.Diagnostics = append(result.Diagnostics, Diagnostic{
			Kind:    DiagnosticMatch,
			Message: fmt.Sprintf("feedback id %q does not correspond to any input rubric", fb.ID),
		})
	}

	result.Items = make([]RubricItem, len(rubrics))
	for idx, r := range rubrics {
		item := RubricItem{Rubric: r, Feedback: attached[idx]}
		if item.Feedback == nil {
			item.Diagnostic = "no feedback received for this rubric"
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				Kind:    DiagnosticMatch,
				Message: fmt.Sprintf("rubric %q received no feedback", r.ID),
			})
		}
		result.Items[idx] = item
	}
	return result
}

// rubricParseFailure builds the degraded result for output that never
// parsed: one placeholder per rubric plus a single diagnostic that keeps
// the raw text verbatim.
func rubricParseFailure(raw string, rubrics []models.Rubric, cause error) RubricResult {
	result := RubricResult{
		Raw: raw,
		Diagnostics: []Diagnostic{{
			Kind:    DiagnosticParse,
			Message: cause.Error(),
			Raw:     raw,
		}},
	}
	result.Items = make([]RubricItem, len(rubrics))
	for idx, r := range rubrics {
		result.Items[idx] = RubricItem{
			Rubric:     r,
			Diagnostic: "engine output could not be parsed; see run diagnostics",
		}
	}
	return result
}
