package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/valter-silva-au/triagevault/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP API server exposing the triage engine as JSON
endpoints under /api. Runs until interrupted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Vault == nil || Router == nil {
			return fmt.Errorf("vault not initialized")
		}

		addr := serveAddr
		if addr == "" && Config != nil {
			addr = Config.HTTPAddr
		}
		if addr == "" {
			addr = ":8787"
		}

		owner, business := "", ""
		if Config != nil {
			owner, business = Config.Owner, Config.Business
		}

		srv := server.New(addr, Vault, Router, Metrics, AlertEngine, Simulator,
			server.WithIdentity(owner, business),
			server.WithLogger(log.New(os.Stderr, "tvault: ", log.LstdFlags)),
		)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if err := srv.Start(ctx); err != nil {
			return fmt.Errorf("starting server: %w", err)
		}
		fmt.Printf("Serving on http://%s. Press Ctrl+C to stop.\n", srv.Addr())

		<-ctx.Done()
		if err := srv.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (host:port)")
	rootCmd.AddCommand(serveCmd)
}
