package engine

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/joescharf/rubriq/internal/prompt"
)

// Anthropic sends instruction documents to the Anthropic Messages API.
type Anthropic struct {
	api   *anthropic.Client
	model anthropic.Model
}

// NewAnthropic creates the Anthropic engine. The key is required here:
// this constructor runs only when a boundary call is about to happen.
func NewAnthropic(apiKey, model string) (*Anthropic, error) {
	if apiKey == "" {
		return nil, &TransportError{Reason: "no Anthropic API key configured"}
	}
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &Anthropic{
		api:   &client,
		model: anthropic.Model(model),
	}, nil
}

func (a *Anthropic) Name() string { return "anthropic:" + string(a.model) }

// Send posts the two-message document with temperature pinned to zero so
// repeated runs on identical input are reproducible modulo the engine.
func (a *Anthropic) Send(ctx context.Context, doc prompt.Document) (string, error) {
	msg, err := a.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       a.model,
		MaxTokens:   8192,
		Temperature: anthropic.Float(0),
		System: []anthropic.TextBlockParam{
			{Text: doc.System},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(doc.User)),
		},
	})
	if err != nil {
		return "", &UpstreamError{Provider: "anthropic", Err: err}
	}

	for _, block := range msg.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", &UpstreamError{Provider: "anthropic", Err: errNoText}
}
