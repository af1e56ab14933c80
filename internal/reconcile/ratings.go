package reconcile

import (
	"encoding/json"
	"fmt"

	"github.com/joescharf/rubriq/internal/models"
)

// RatingItem pairs one (response, rubric) rating with the feedback the
// engine produced for it.
type RatingItem struct {
	Key        models.RatingKey       `json:"key"`
	Rating     models.Rating          `json:"rating"`
	Feedback   *models.RatingFeedback `json:"feedback"`
	Diagnostic string                 `json:"diagnostic,omitempty"`
}

// RatingResult is the reconciled outcome of one rating audit, one item per
// (response, rubric) pair in the input.
type RatingResult struct {
	Items       []RatingItem            `json:"items"`
	Unmatched   []models.RatingFeedback `json:"unmatched,omitempty"`
	Diagnostics []Diagnostic            `json:"diagnostics,omitempty"`
	Raw         string                  `json:"-"`
}

// Clean reports whether every rating reconciled with no diagnostics.
func (r RatingResult) Clean() bool {
	return len(r.Diagnostics) == 0 && len(r.Unmatched) == 0
}

// Ratings parses the engine's raw text and attaches each feedback item to
// its (response, rubric) pair, falling back to positional pairing.
func Ratings(raw string, ratings models.RatingSet) RatingResult {
	keys := ratings.Pairs()
	result := RatingResult{Raw: raw}

	itemsRaw, err := extractList(raw, "rating_feedback")
	if err != nil {
		return ratingParseFailure(raw, ratings, keys, err)
	}

	feedback := make([]*models.RatingFeedback, 0, len(itemsRaw))
	for idx, itemRaw := range itemsRaw {
		var fb models.RatingFeedback
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

	byKey := make(map[models.RatingKey]int, len(keys))
	for idx, key := range keys {
		byKey[key] = idx
	}

	attached := make([]*models.RatingFeedback, len(keys))
	for idx, fb := range feedback {
		if fb == nil {
			continue
		}
		if pos, ok := byKey[fb.Key()]; ok && attached[pos] == nil {
			attached[pos] = fb
			continue
		}
		if idx < len(keys) && attached[idx] == nil {
			attached[idx] = fb
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				Kind: DiagnosticMatch,
				Message: fmt.Sprintf("feedback (%s, %s) matched rating (%s, %s) by position only",
					fb.ResponseID, fb.RubricID, keys[idx].ResponseID, keys[idx].RubricID),
			})
			continue
		}
		result.Unmatched = append(result.Unmatched, *fb)
		result.Diagnostics = append(result.Diagnostics, Diagnostic{
			Kind:    DiagnosticMatch,
			Message: fmt.Sprintf("feedback (%s, %s) does not correspond to any input rating", fb.ResponseID, fb.RubricID),
		})
	}

	result.Items = make([]RatingItem, len(keys))
	for idx, key := range keys {
		item := RatingItem{
			Key:      key,
			Rating:   ratings[key.ResponseID][key.RubricID],
			Feedback: attached[idx],
		}
		if item.Feedback == nil {
			item.Diagnostic = "no feedback received for this rating"
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				Kind:    DiagnosticMatch,
				Message: fmt.Sprintf("rating (%s, %s) received no feedback", key.ResponseID, key.RubricID),
			})
		}
		result.Items[idx] = item
	}
	return result
}

func ratingParseFailure(raw string, ratings models.RatingSet, keys []models.RatingKey, cause error) RatingResult {
	result := RatingResult{
		Raw: raw,
		Diagnostics: []Diagnostic{{
			Kind:    DiagnosticParse,
			Message: cause.Error(),
			Raw:     raw,
		}},
	}
	result.Items = make([]RatingItem, len(keys))
	for idx, key := range keys {
		result.Items[idx] = RatingItem{
			Key:        key,
			Rating:     ratings[key.ResponseID][key.RubricID],
			Diagnostic: "engine output could not be parsed; see run diagnostics",
		}
	}
	return result
}
