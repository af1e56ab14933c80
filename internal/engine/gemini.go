package engine

import (
	"context"
	"errors"

	genai "google.golang.org/genai"

	"github.com/joescharf/rubriq/internal/prompt"
)

var errNoText = errors.New("no text content in response")

// Gemini sends instruction documents to the Gemini API, requesting
// application/json output so the response arrives machine-parseable.
type Gemini struct {
	cli   *genai.Client
	model string
}

// NewGemini creates the Gemini engine.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, &TransportError{Reason: "no Gemini API key configured"}
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &TransportError{Reason: "create Gemini client", Err: err}
	}
	return &Gemini{cli: cli, model: model}, nil
}

func (g *Gemini) Name() string { return "gemini:" + g.model }

func (g *Gemini) Send(ctx context.Context, doc prompt.Document) (string, error) {
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: doc.User}}}},
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: doc.System}}},
			ResponseMIMEType:  "application/json",
			Temperature:       genai.Ptr[float32](0),
		},
	)
	if err != nil {
		return "", &UpstreamError{Provider: "gemini", Err: err}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", &UpstreamError{Provider: "gemini", Err: errNoText}
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
