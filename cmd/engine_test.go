package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joescharf/rubriq/internal/normalize"
)

// resetEngineFlags clears the shared engine flag vars between tests.
func resetEngineFlags(t *testing.T) {
	t.Helper()
	origKey, origModel := engineAPIKey, engineModel
	engineAPIKey, engineModel = "", ""
	t.Cleanup(func() {
		engineAPIKey, engineModel = origKey, origModel
	})
	viper.Reset()

	// Keep ambient credentials out of the resolution order under test.
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
}

func TestResolveAPIKey_FlagWins(t *testing.T) {
	resetEngineFlags(t)
	engineAPIKey = "from-flag"
	t.Setenv("ANTHROPIC_API_KEY", "from-env")
	viper.Set("anthropic.api_key", "from-config")

	assert.Equal(t, "from-flag", resolveAPIKey("ANTHROPIC_API_KEY", "anthropic.api_key"))
}

func TestResolveAPIKey_EnvBeatsConfig(t *testing.T) {
	resetEngineFlags(t)
	t.Setenv("ANTHROPIC_API_KEY", "from-env")
	viper.Set("anthropic.api_key", "from-config")

	assert.Equal(t, "from-env", resolveAPIKey("ANTHROPIC_API_KEY", "anthropic.api_key"))
}

func TestResolveAPIKey_ConfigBeatsEnvFile(t *testing.T) {
	resetEngineFlags(t)
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("ANTHROPIC_API_KEY=from-dotenv\n"), 0600))
	viper.Set("anthropic.api_key", "from-config")
	viper.Set("env_file", envFile)

	assert.Equal(t, "from-config", resolveAPIKey("ANTHROPIC_API_KEY", "anthropic.api_key"))
}

func TestResolveAPIKey_EnvFileFallback(t *testing.T) {
	resetEngineFlags(t)
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("ANTHROPIC_API_KEY=from-dotenv\n"), 0600))
	viper.Set("env_file", envFile)

	assert.Equal(t, "from-dotenv", resolveAPIKey("ANTHROPIC_API_KEY", "anthropic.api_key"))
}

func TestResolveAPIKey_NothingConfigured(t *testing.T) {
	resetEngineFlags(t)
	viper.Set("env_file", filepath.Join(t.TempDir(), "missing.env"))

	assert.Empty(t, resolveAPIKey("ANTHROPIC_API_KEY", "anthropic.api_key"))
}

func TestNewEngine_UnknownProvider(t *testing.T) {
	resetEngineFlags(t)
	viper.Set("engine.provider", "parrot")

	_, err := newEngine(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown engine provider: parrot")
}

func TestNewEngine_AnthropicMissingKey(t *testing.T) {
	resetEngineFlags(t)
	viper.Set("engine.provider", "anthropic")
	viper.Set("anthropic.model", "claude-haiku-4-5-20251001")
	viper.Set("env_file", filepath.Join(t.TempDir(), "missing.env"))

	_, err := newEngine(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no Anthropic API key")
}

func TestParseShape(t *testing.T) {
	shape, err := parseShape("native")
	require.NoError(t, err)
	assert.Equal(t, normalize.ShapeNative, shape)

	shape, err = parseShape("annotations")
	require.NoError(t, err)
	assert.Equal(t, normalize.ShapeAnnotations, shape)

	_, err = parseShape("yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown rubric shape: yaml")
}
