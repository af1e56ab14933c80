package models

import "sort"

// Rating is one scored application of a rubric to a response: the title,
// score, color, and justification the automated reviewer produced.
type Rating struct {
	Title         string `json:"title"`
	Score         string `json:"score"`
	Color         string `json:"color"`
	Justification string `json:"justification"`
}

// RatingSet maps response ids to rubric-id -> Rating tuples. It is
// read-only input to the audit core; the core never mutates it.
type RatingSet map[string]map[string]Rating

// Pairs returns the (response id, rubric id) pairs present in the set in
// sorted order. The rating-audit contract requires exactly one feedback
// item per pair.
func (rs RatingSet) Pairs() []RatingKey {
	keys := make([]RatingKey, 0, len(rs))
	for responseID, byRubric := range rs {
		for rubricID := range byRubric {
			keys = append(keys, RatingKey{ResponseID: responseID, RubricID: rubricID})
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].ResponseID != keys[j].ResponseID {
			return keys[i].ResponseID < keys[j].ResponseID
		}
		return keys[i].RubricID < keys[j].RubricID
	})
	return keys
}

// RatingKey identifies one (response, rubric) pair.
type RatingKey struct {
	ResponseID string `json:"response_id"`
	RubricID   string `json:"rubric_id"`
}
