package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/joescharf/rubriq/internal/engine"
)

// Engine selection flags, shared by the audit commands.
var (
	engineAPIKey string
	engineModel  string
)

// resolveAPIKey finds a usable credential for the provider: the --api-key
// flag, then the process environment, then the config file, then a local
// .env-style file. Called only when a boundary call is about to happen.
func resolveAPIKey(envVar, configKey string) string {
	if engineAPIKey != "" {
		return engineAPIKey
	}
	if key := os.Getenv(envVar); key != "" {
		return key
	}
	if key := viper.GetString(configKey); key != "" {
		return key
	}
	if envFile := viper.GetString("env_file"); envFile != "" {
		if vars, err := godotenv.Read(envFile); err == nil {
			return vars[envVar]
		}
	}
	return ""
}

// newEngine constructs the configured reasoning engine, resolving the
// credential at this point and not before.
func newEngine(ctx context.Context) (engine.Engine, error) {
	provider := viper.GetString("engine.provider")
	switch provider {
	case "anthropic":
		model := engineModel
		if model == "" {
			model = viper.GetString("anthropic.model")
		}
		return engine.NewAnthropic(resolveAPIKey("ANTHROPIC_API_KEY", "anthropic.api_key"), model)
	case "gemini":
		model := engineModel
		if model == "" {
			model = viper.GetString("gemini.model")
		}
		return engine.NewGemini(ctx, resolveAPIKey("GEMINI_API_KEY", "gemini.api_key"), model)
	default:
		return nil, fmt.Errorf("unknown engine provider: %s", provider)
	}
}
