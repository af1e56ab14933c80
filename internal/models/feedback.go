package models

// RubricVerdict is the engine's overall judgment of one rubric.
type RubricVerdict string

const (
	RubricVerdictPass RubricVerdict = "pass"
	RubricVerdictFail RubricVerdict = "fail"
)

// RatingVerdict is the engine's judgment of one rating.
type RatingVerdict string

const (
	RatingVerdictOK        RatingVerdict = "ok"
	RatingVerdictIncorrect RatingVerdict = "incorrect"
)

// FeedbackFlags holds the six binary quality criteria the audit contract
// applies to every rubric.
type FeedbackFlags struct {
	Atomic        bool `json:"atomic"`
	Specific      bool `json:"specific"`
	Accurate      bool `json:"accurate"`
	Categorized   bool `json:"categorized"`
	Grounded      bool `json:"grounded"`
	SelfContained bool `json:"self_contained"`
}

// RubricFeedback is the engine's verdict for one audited rubric.
type RubricFeedback struct {
	ID           string        `json:"id"`
	Verdict      RubricVerdict `json:"verdict"`
	Flags        FeedbackFlags `json:"flags"`
	Issues       []string      `json:"issues"`
	SuggestedFix string        `json:"suggested_fix"`
}

// RatingFeedback is the engine's verdict for one audited rating. Issues is
// non-empty even for ok verdicts; the contract requires confirmations.
type RatingFeedback struct {
	ResponseID   string        `json:"response_id"`
	RubricID     string        `json:"rubric_id"`
	Verdict      RatingVerdict `json:"verdict"`
	Issues       []string      `json:"issues"`
	SuggestedFix string        `json:"suggested_fix"`
}

// Key returns the (response, rubric) pair this feedback belongs to.
func (f RatingFeedback) Key() RatingKey {
	return RatingKey{ResponseID: f.ResponseID, RubricID: f.RubricID}
}
