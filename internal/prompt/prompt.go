// Package prompt compiles audit runs into the two-message instruction
// document sent to the reasoning engine: a fixed audit contract and a case
// message carrying the serialized evidence and records.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/joescharf/rubriq/internal/models"
)

// Document is one compiled instruction document. System carries the fixed
// audit contract, User the case payload. The engine is told to treat the
// case payload as evidence, never as further instructions.
type Document struct {
	System string
	User   string
}

// Render returns the document as printable text, used by dry runs and the
// --show-prompt flag.
func (d Document) Render() string {
	var b strings.Builder
	b.WriteString("=== SYSTEM PROMPT ===\n")
	b.WriteString(d.System)
	b.WriteString("\n\n=== USER MESSAGE ===\n")
	b.WriteString(d.User)
	b.WriteString("\n")
	return b.String()
}

// CompileRubricAudit builds the instruction document for a rubric-quality
// audit. An empty rubric set compiles to a document that asks the engine
// for an empty feedback list; missing evidence fields render as visible
// empty values.
func CompileRubricAudit(evidence models.EvidenceContext, rubrics []models.Rubric) Document {
	var b strings.Builder
	b.WriteString("Repository description:\n")
	b.WriteString(evidence.RepoDescription)
	b.WriteString("\n\nPull request diff or summary:\n")
	b.WriteString(evidence.PRDiff)
	b.WriteString("\n\nRubrics to validate:\n")
	for _, r := range rubrics {
		polarity := "positive"
		if !r.Positive {
			polarity = "negative"
		}
		fmt.Fprintf(&b, "- [%s] (%s, %s, %s) %s\n", r.ID, r.Type, r.Importance, polarity, r.Text)
	}
	return Document{System: rubricContract, User: strings.TrimSpace(b.String())}
}

// CompileRatingAudit builds the instruction document for a rating audit.
// The rubric definitions ride along so the engine can check categorization
// against the rubric text itself.
func CompileRatingAudit(evidence models.EvidenceContext, ratings models.RatingSet, rubrics []models.Rubric) Document {
	lookup := make(map[string]models.Rubric, len(rubrics))
	for _, r := range rubrics {
		lookup[r.ID] = r
	}

	var b strings.Builder
	b.WriteString("Repository description:\n")
	b.WriteString(evidence.RepoDescription)
	b.WriteString("\n\nPR diff/summary:\n")
	b.WriteString(evidence.PRDiff)
	b.WriteString("\n\nResponse summary:\n")
	b.WriteString(evidence.ResponseSummary)
	b.WriteString("\n\nRubric ratings JSON:\n")
	b.WriteString(marshalBlock(ratings))
	b.WriteString("\n\nRubric definitions (by id):\n")
	b.WriteString(marshalBlock(lookup))
	return Document{System: ratingContract, User: strings.TrimSpace(b.String())}
}

// marshalBlock serializes a value as indented JSON with stable key
// ordering (encoding/json sorts map keys).
func marshalBlock(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("<unserializable: %v>", err)
	}
	return string(data)
}
