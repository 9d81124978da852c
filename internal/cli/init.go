package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/valter-silva-au/triagevault/internal/vault"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Initialize a new triage vault",
	Long: `Initialize a vault directory with the full folder layout and core
files: dashboard, company handbook, and business goals.

Safe to run on an existing vault -- folders that already exist are left
alone, but the core files are rewritten from their templates.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := Vault
		if len(args) > 0 {
			absPath, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			target = vault.New(absPath)
		}
		if target == nil {
			return fmt.Errorf("vault not initialized")
		}

		owner, _ := cmd.Flags().GetString("owner")
		business, _ := cmd.Flags().GetString("business")
		if owner == "" && Config != nil {
			owner = Config.Owner
		}
		if business == "" && Config != nil {
			business = Config.Business
		}

		message, err := target.Init(owner, business)
		if err != nil {
			return fmt.Errorf("initializing vault: %w", err)
		}

		fmt.Println(message)
		fmt.Printf("Vault ready at %s\n", target.Root())
		return nil
	},
}

func init() {
	initCmd.Flags().String("owner", "", "Owner name written into the handbook")
	initCmd.Flags().String("business", "", "Business name written into the handbook")
	rootCmd.AddCommand(initCmd)
}
