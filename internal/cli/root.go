// Package cli implements the tvault command tree. Commands operate on
// package-level service instances wired in during app initialization.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "tvault",
	Short: "Triage Vault - file-based inbox triage for a small business",
	Long: `Triage Vault (tvault) routes inbound work items through a folder-based
state machine inside a plain markdown vault.

Items land in Needs_Action, get classified and planned, and move to Done
or wait in Pending_Approval for human sign-off. Every state is a folder
and every record is a markdown file, so the vault stays readable without
any tooling.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tvault %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
