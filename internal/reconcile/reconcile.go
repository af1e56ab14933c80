// Package reconcile merges the engine's structured verdict back onto the
// original records. Malformed engine output is data here, never an error:
// audit completeness outranks strict typing, so the caller always gets
// something to show for every record submitted.
package reconcile

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DiagnosticKind classifies a reconciliation irregularity.
type DiagnosticKind string

const (
	// DiagnosticParse marks engine output that was not the expected JSON.
	DiagnosticParse DiagnosticKind = "parse"
	// DiagnosticMatch marks feedback that could not be paired with a
	// record, or a record left without feedback.
	DiagnosticMatch DiagnosticKind = "match"
)

// Diagnostic is a non-fatal irregularity surfaced to the operator. On
// parse failures Raw preserves the engine's output verbatim.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind"`
	Message string         `json:"message"`
	Raw     string         `json:"raw,omitempty"`
}

// stripFences removes a markdown code fence wrapper if the engine added
// one around its JSON.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	lines := strings.SplitN(text, "\n", 2)
	if len(lines) > 1 {
		text = lines[1]
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

// extractList locates the expected feedback list inside the engine's raw
// text. The error describes why the output is unusable; callers convert it
// into a parse diagnostic rather than propagating it.
func extractList(raw, key string) ([]json.RawMessage, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal([]byte(stripFences(raw)), &envelope); err != nil {
		return nil, fmt.Errorf("engine output is not a JSON object: %w", err)
	}
	listRaw, ok := envelope[key]
	if !ok {
		return nil, fmt.Errorf("engine output has no %q list", key)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(listRaw, &items); err != nil {
		return nil, fmt.Errorf("engine output %q is not a list: %w", key, err)
	}
	return items, nil
}
