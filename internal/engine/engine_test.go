package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAnthropicRequiresKey(t *testing.T) {
	_, err := NewAnthropic("", "claude-haiku-4-5-20251001")
	require.Error(t, err)

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Contains(t, te.Error(), "no Anthropic API key")
}

func TestNewAnthropic(t *testing.T) {
	eng, err := NewAnthropic("sk-test", "claude-haiku-4-5-20251001")
	require.NoError(t, err)
	assert.Equal(t, "anthropic:claude-haiku-4-5-20251001", eng.Name())
}

func TestNewGeminiRequiresKey(t *testing.T) {
	_, err := NewGemini(t.Context(), "", "gemini-2.5-flash")
	require.Error(t, err)

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Contains(t, te.Error(), "no Gemini API key")
}

func TestTransportErrorUnwrap(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := &TransportError{Reason: "connect", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "engine unreachable")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestUpstreamErrorUnwrap(t *testing.T) {
	cause := errors.New("429 too many requests")
	err := &UpstreamError{Provider: "anthropic", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "anthropic request failed")
}
