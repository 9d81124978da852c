package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var processAll bool

var processCmd = &cobra.Command{
	Use:   "process [filename]",
	Short: "Triage items from Needs_Action",
	Long: `Triage one item by filename, or every waiting item with --all.

Each item is classified, a plan is generated in Plans, and the item moves
to Done or to In_Progress with a matching approval request in
Pending_Approval.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Router == nil {
			return fmt.Errorf("triage router not initialized")
		}

		if processAll {
			if len(args) > 0 {
				return fmt.Errorf("cannot combine --all with a filename")
			}
			result, err := Router.ProcessAll()
			if err != nil {
				return fmt.Errorf("processing queue: %w", err)
			}
			if result.Processed == 0 {
				fmt.Println("Needs_Action is empty. Nothing to triage.")
				return nil
			}
			fmt.Printf("Processed %d item(s):\n", result.Processed)
			for _, action := range result.Actions {
				fmt.Printf("  %s\n", action)
			}
			return nil
		}

		if len(args) == 0 {
			return fmt.Errorf("provide an item filename or use --all")
		}

		message, err := Router.Process(args[0])
		if err != nil {
			return fmt.Errorf("processing %s: %w", args[0], err)
		}
		fmt.Println(message)
		return nil
	},
}

func init() {
	processCmd.Flags().BoolVar(&processAll, "all", false, "Process every item in Needs_Action")
	rootCmd.AddCommand(processCmd)
}
