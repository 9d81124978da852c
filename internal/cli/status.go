package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display vault folder and core file status",
	Long: `Display the vault layout: each state folder with its document count,
and whether the core files (handbook, goals, dashboard) exist.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Vault == nil {
			return fmt.Errorf("vault not initialized")
		}

		status := Vault.Status()
		if !status.Initialized {
			fmt.Printf("Vault at %s is not initialized. Run 'tvault init' first.\n", Vault.Root())
			return nil
		}

		fmt.Printf("Vault: %s\n\n", Vault.Root())
		fmt.Printf("  %-22s %s\n", "FOLDER", "ITEMS")
		fmt.Printf("  %-22s %s\n", "------", "-----")
		for _, f := range status.Folders {
			fmt.Printf("  %-22s %d\n", f.Name, f.Count)
		}

		fmt.Println()
		fmt.Printf("  %-22s %s\n", "CORE FILE", "STATUS")
		fmt.Printf("  %-22s %s\n", "---------", "------")
		for _, f := range status.CoreFiles {
			state := "missing"
			if f.Exists {
				state = "ok"
			}
			fmt.Printf("  %-22s %s\n", f.Name, state)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
