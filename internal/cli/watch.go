package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/valter-silva-au/triagevault/internal/producer"
	"github.com/valter-silva-au/triagevault/internal/vault"
)

var watchDryRun bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the Inbox folder for dropped files",
	Long: `Watch the vault's Inbox folder and turn every dropped file into a
file_intake item in Needs_Action. Runs until interrupted.

With --dry-run, detected files are logged but no items are written.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Vault == nil {
			return fmt.Errorf("vault not initialized")
		}

		watcher := producer.NewInboxWatcher(Vault, watchDryRun, EventLog)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		fmt.Printf("Watching %s for new files. Press Ctrl+C to stop.\n", Vault.Dir(vault.FolderInbox))
		if watchDryRun {
			fmt.Println("Dry run: detected files will not be written.")
		}

		if err := watcher.Run(ctx); err != nil {
			return fmt.Errorf("running inbox watcher: %w", err)
		}
		return nil
	},
}

func init() {
	watchCmd.Flags().BoolVar(&watchDryRun, "dry-run", false, "Detect files without writing items")
	rootCmd.AddCommand(watchCmd)
}
