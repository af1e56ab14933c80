// Package engine is the boundary to the external reasoning engine. A
// compiled instruction document goes out, free-form text expected to parse
// as JSON comes back. Everything past Send is opaque to the audit core.
package engine

import (
	"context"
	"fmt"

	"github.com/joescharf/rubriq/internal/prompt"
)

// Engine sends one instruction document and returns the engine's raw text
// response. Implementations pin deterministic sampling (temperature zero)
// and request a structured output mode where the provider supports one.
// The call blocks for the network round trip; deadlines come from ctx.
type Engine interface {
	Name() string
	Send(ctx context.Context, doc prompt.Document) (string, error)
}

// TransportError reports that the engine could not be reached at all: no
// usable credential, or the client could not be constructed.
type TransportError struct {
	Reason string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("engine unreachable: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("engine unreachable: %s", e.Reason)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UpstreamError reports that the engine was reachable but the request
// failed or came back unusable. The run aborts; nothing is retried.
type UpstreamError struct {
	Provider string
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
