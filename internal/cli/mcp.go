package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	tvmcp "github.com/valter-silva-au/triagevault/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  "Commands for running the tvault MCP (Model Context Protocol) server.",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the tvault MCP server on stdio",
	Long: `Start the tvault MCP server on stdio transport.

The server exposes triage operations as MCP tools that AI assistants can
call: list_pending, process_item, process_all, list_approvals,
resolve_approval, get_metrics, get_alerts.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Vault == nil || Router == nil {
			return fmt.Errorf("vault not initialized")
		}

		srv := tvmcp.NewServer(Vault, Router, Metrics, AlertEngine, appVersion)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if err := srv.Run(ctx); err != nil {
			return fmt.Errorf("running MCP server: %w", err)
		}

		return nil
	},
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}
