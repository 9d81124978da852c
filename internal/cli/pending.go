package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/valter-silva-au/triagevault/internal/triage"
)

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List items waiting in Needs_Action",
	Long: `List every item in the Needs_Action folder, sorted by priority.

Output is a table with columns: FILE, TYPE, PRI, FROM, SUBJECT.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Vault == nil {
			return fmt.Errorf("vault not initialized")
		}

		items, err := triage.ListPending(Vault)
		if err != nil {
			return fmt.Errorf("listing pending items: %w", err)
		}

		if len(items) == 0 {
			fmt.Println("Needs_Action is empty. Nothing to triage.")
			return nil
		}

		fmt.Printf("%d item(s) waiting:\n\n", len(items))
		fmt.Printf("  %-28s %-12s %-7s %-26s %s\n", "FILE", "TYPE", "PRI", "FROM", "SUBJECT")
		fmt.Printf("  %-28s %-12s %-7s %-26s %s\n", "----", "----", "---", "----", "-------")
		for _, item := range items {
			fmt.Printf("  %-28s %-12s %-7s %-26s %s\n",
				item.Filename, item.Type, item.Priority, truncate(item.Sender, 26), item.Subject)
		}

		return nil
	},
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

func init() {
	rootCmd.AddCommand(pendingCmd)
}
