package normalize

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joescharf/rubriq/internal/models"
)

// ParseRubrics parses raw JSON as a rubric array and normalizes it under
// the given shape. A non-array document, or a native-shape element that is
// not an object or lacks its text, is a *LoadError.
func ParseRubrics(data []byte, shape Shape) ([]models.Rubric, error) {
	var records []any
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &LoadError{Reason: fmt.Sprintf("not a JSON array: %v", err)}
	}
	if shape == ShapeNative {
		for idx, rec := range records {
			fields, ok := rec.(map[string]any)
			if !ok {
				return nil, &LoadError{Reason: fmt.Sprintf("element %d is not an object", idx)}
			}
			if text, _ := fields["text"].(string); text == "" {
				return nil, &LoadError{Reason: fmt.Sprintf("element %d has no 'text' field", idx)}
			}
		}
	}
	return Rubrics(records, shape)
}

// LoadRubricsFile reads and parses a rubric input file.
func LoadRubricsFile(path string, shape Shape) ([]models.Rubric, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rubrics file: %w", err)
	}
	rubrics, err := ParseRubrics(data, shape)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
		}
		return nil, err
	}
	return rubrics, nil
}

// LoadRatingsFile reads a rating set: a JSON object mapping response ids
// to rubric-id -> rating tuples.
func LoadRatingsFile(path string) (models.RatingSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ratings file: %w", err)
	}
	var rs models.RatingSet
	if err := json.Unmarshal(data, &rs); err != nil {
		return nil, &LoadError{Path: path, Reason: fmt.Sprintf("not a response->rubric rating map: %v", err)}
	}
	return rs, nil
}

// LoadEvidenceFile reads a plain-text evidence file and trims it. An empty
// path yields an empty string; absent evidence becomes a visible empty
// value in the case message, not an error.
func LoadEvidenceFile(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read evidence file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
