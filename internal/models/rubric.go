package models

import "fmt"

// RubricType categorizes what aspect of a response a rubric evaluates.
type RubricType string

const (
	RubricTypeCorrectness   RubricType = "correctness"    // final-output function behavior
	RubricTypeStyle         RubricType = "style"          // final-output form
	RubricTypeAgentBehavior RubricType = "agent-behavior" // process/reasoning to locate the right area
	RubricTypeSummary       RubricType = "summary"        // final textual description of the change
	RubricTypeOther         RubricType = "other"
)

// ValidRubricType reports whether t is a member of the closed type set.
func ValidRubricType(t RubricType) bool {
	switch t {
	case RubricTypeCorrectness, RubricTypeStyle, RubricTypeAgentBehavior, RubricTypeSummary, RubricTypeOther:
		return true
	}
	return false
}

// RubricImportance represents how strongly a rubric binds the response.
type RubricImportance string

const (
	ImportanceMustFollow RubricImportance = "must-follow"
	ImportanceGoodToHave RubricImportance = "good-to-have"
	ImportanceUniversal  RubricImportance = "universal"
)

// ValidImportance reports whether i is a member of the importance set.
func ValidImportance(i RubricImportance) bool {
	switch i {
	case ImportanceMustFollow, ImportanceGoodToHave, ImportanceUniversal:
		return true
	}
	return false
}

// Rubric is a single grading criterion in canonical form.
type Rubric struct {
	ID         string           `json:"id"`
	Type       RubricType       `json:"type"`
	Importance RubricImportance `json:"importance"`
	Positive   bool             `json:"positive"`
	Text       string           `json:"text"`
}

// DefaultRubricID returns the deterministic identifier assigned to the
// rubric at the given zero-based position when the input carries none.
func DefaultRubricID(position int) string {
	return fmt.Sprintf("R%d", position+1)
}
