package cmd

import (
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/joescharf/rubriq/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start MCP stdio server exposing the audit tools",
	Long: `Start an MCP (Model Context Protocol) server on stdio.

This lets editor and agent frontends drive audit runs natively.
Configure in Claude Code with:

  {
    "mcpServers": {
      "rubriq": { "command": "rubriq", "args": ["serve"] }
    }
  }

Available tools: rubriq_audit_rubrics, rubriq_audit_ratings,
rubriq_compile_prompt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), shutdownSignals()...)
		defer stop()

		srv := mcp.NewServer(newEngine)
		return srv.ServeStdio(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&engineAPIKey, "api-key", "", "Override the configured API key")
	serveCmd.Flags().StringVar(&engineModel, "model", "", "Override the configured model")
	rootCmd.AddCommand(serveCmd)
}
