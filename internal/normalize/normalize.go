// Package normalize converts rubric records arriving in inconsistent
// shapes into the canonical Rubric schema. It is a pure transformation:
// no I/O beyond the file loader, no mutation of its inputs.
package normalize

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joescharf/rubriq/internal/models"
)

// Shape declares which input schema a record set uses. Dispatch is by
// declared shape, never by sniffing fields.
type Shape int

const (
	// ShapeNative is the canonical schema with optional fields and
	// documented defaults (id, type, importance, positive).
	ShapeNative Shape = iota
	// ShapeAnnotations is the export/import schema: the rubric text lives
	// in "title" and the metadata under a nested "annotations" object.
	ShapeAnnotations
)

// ErrEmptyResult reports that normalization yielded zero usable records
// from a non-empty input. An empty input is not an error.
var ErrEmptyResult = errors.New("no valid rubric records found")

// importanceAliases maps export spellings to canonical importance values.
var importanceAliases = map[string]models.RubricImportance{
	"must follow":  models.ImportanceMustFollow,
	"must-follow":  models.ImportanceMustFollow,
	"good to have": models.ImportanceGoodToHave,
	"good-to-have": models.ImportanceGoodToHave,
	"universal":    models.ImportanceUniversal,
}

// typeAliases maps accepted type spellings to canonical types. The spaced
// forms come from the interactive editor's vocabulary.
var typeAliases = map[string]models.RubricType{
	"correctness":    models.RubricTypeCorrectness,
	"style":          models.RubricTypeStyle,
	"code style":     models.RubricTypeStyle,
	"agent-behavior": models.RubricTypeAgentBehavior,
	"agent behavior": models.RubricTypeAgentBehavior,
	"summary":        models.RubricTypeSummary,
	"other":          models.RubricTypeOther,
}

// Rubrics normalizes a sequence of heterogeneous records into canonical
// rubrics. Records that are not structurally a mapping are skipped. A
// non-empty input that normalizes to nothing returns ErrEmptyResult.
func Rubrics(records []any, shape Shape) ([]models.Rubric, error) {
	out := make([]models.Rubric, 0, len(records))
	for idx, rec := range records {
		fields, ok := rec.(map[string]any)
		if !ok {
			continue
		}
		switch shape {
		case ShapeAnnotations:
			out = append(out, fromAnnotations(fields, idx))
		default:
			out = append(out, fromNative(fields, idx))
		}
	}
	if len(records) > 0 && len(out) == 0 {
		return nil, ErrEmptyResult
	}
	return out, nil
}

// fromNative applies the documented defaults to a canonical-shape record.
func fromNative(fields map[string]any, position int) models.Rubric {
	r := models.Rubric{
		ID:         stringField(fields, "id"),
		Text:       strings.TrimSpace(stringField(fields, "text")),
		Type:       normalizeType(stringField(fields, "type")),
		Importance: normalizeImportance(stringField(fields, "importance")),
		Positive:   boolField(fields, "positive"),
	}
	if r.ID == "" {
		r.ID = models.DefaultRubricID(position)
	}
	return r
}

// fromAnnotations maps the export schema onto the canonical one.
func fromAnnotations(fields map[string]any, position int) models.Rubric {
	annotations, _ := fields["annotations"].(map[string]any)

	r := models.Rubric{
		ID:         stringField(fields, "id"),
		Text:       strings.TrimSpace(stringField(fields, "title")),
		Type:       normalizeType(stringField(annotations, "type")),
		Importance: normalizeImportance(stringField(annotations, "importance")),
		Positive:   boolField(annotations, "is_positive"),
	}
	if r.ID == "" {
		r.ID = models.DefaultRubricID(position)
	}
	return r
}

func normalizeType(raw string) models.RubricType {
	key := strings.ToLower(strings.TrimSpace(raw))
	if t, ok := typeAliases[key]; ok {
		return t
	}
	return models.RubricTypeCorrectness
}

func normalizeImportance(raw string) models.RubricImportance {
	key := strings.ToLower(strings.TrimSpace(raw))
	if imp, ok := importanceAliases[key]; ok {
		return imp
	}
	return models.ImportanceMustFollow
}

func stringField(fields map[string]any, key string) string {
	if fields == nil {
		return ""
	}
	s, _ := fields[key].(string)
	return s
}

// boolField coerces the positivity flag: strings compare case-insensitively
// against "true", other present values coerce to their truthiness, absent
// defaults to true.
func boolField(fields map[string]any, key string) bool {
	if fields == nil {
		return true
	}
	raw, present := fields[key]
	if !present || raw == nil {
		return true
	}
	switch v := raw.(type) {
	case string:
		return strings.EqualFold(strings.TrimSpace(v), "true")
	case bool:
		return v
	case float64:
		return v != 0
	default:
		return true
	}
}

// LoadError reports a structurally invalid rubric input file. It aborts
// the run; nothing is retried.
type LoadError struct {
	Path   string
	Reason string
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid rubrics input: %s", e.Reason)
	}
	return fmt.Sprintf("invalid rubrics file %s: %s", e.Path, e.Reason)
}
