package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/valter-silva-au/triagevault/internal/observability"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Recompute metrics and rewrite Dashboard.md",
	Long: `Recompute all vault metrics from current folder contents and rewrite
Dashboard.md with the fresh snapshot: pending counts, completions today,
revenue figures, alerts, and recent activity.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Vault == nil || Metrics == nil {
			return fmt.Errorf("vault not initialized")
		}

		m, err := Metrics.Compute()
		if err != nil {
			return fmt.Errorf("computing metrics: %w", err)
		}

		business := "My Business"
		if Config != nil && Config.Business != "" {
			business = Config.Business
		}
		if err := observability.RefreshDashboard(Vault, business, m); err != nil {
			return fmt.Errorf("refreshing dashboard: %w", err)
		}

		fmt.Println("Dashboard refreshed.")
		fmt.Printf("  Pending actions:    %d\n", m.NeedsAction)
		fmt.Printf("  Awaiting approval:  %d\n", m.PendingApproval)
		fmt.Printf("  Completed today:    %d\n", m.DoneToday)
		fmt.Printf("  Active plans:       %d\n", m.ActivePlans)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}
