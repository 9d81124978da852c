package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var recoverCmd = &cobra.Command{
	Use:   "recover",
	Short: "Finish items interrupted mid-processing",
	Long: `Scan In_Progress for items whose plan exists but whose routing never
completed (for example after a crash), and re-run the final move for
each one.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Router == nil {
			return fmt.Errorf("triage router not initialized")
		}

		actions, err := Router.Recover()
		if err != nil {
			return fmt.Errorf("recovering items: %w", err)
		}

		if len(actions) == 0 {
			fmt.Println("Nothing to recover.")
			return nil
		}

		fmt.Printf("Recovered %d item(s):\n", len(actions))
		for _, action := range actions {
			fmt.Printf("  %s\n", action)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(recoverCmd)
}
