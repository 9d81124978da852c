package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/valter-silva-au/triagevault/internal/triage"
	"github.com/valter-silva-au/triagevault/pkg/models"
)

var approvalsCmd = &cobra.Command{
	Use:   "approvals",
	Short: "List and resolve pending approvals",
	Long: `Without a subcommand, lists every approval waiting in Pending_Approval.

Use 'approvals approve <id>' or 'approvals reject <id>' to resolve one.
Omitting the id opens an interactive picker.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listApprovals()
	},
}

var approvalsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pending approvals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listApprovals()
	},
}

var approvalsApproveCmd = &cobra.Command{
	Use:   "approve [id]",
	Short: "Approve a pending approval",
	Long: `Approve a pending approval by id. The paired source item moves from
In_Progress to Done and the approval record moves to Approved.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return resolveApproval(args, models.DecisionApprove)
	},
}

var approvalsRejectCmd = &cobra.Command{
	Use:   "reject [id]",
	Short: "Reject a pending approval",
	Long: `Reject a pending approval by id. The paired source item returns to
Needs_Action for another pass and the approval record moves to Rejected.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return resolveApproval(args, models.DecisionReject)
	},
}

func listApprovals() error {
	if Vault == nil {
		return fmt.Errorf("vault not initialized")
	}

	approvals, err := triage.ListApprovals(Vault)
	if err != nil {
		return fmt.Errorf("listing approvals: %w", err)
	}

	if len(approvals) == 0 {
		fmt.Println("No pending approvals.")
		return nil
	}

	fmt.Printf("%d approval(s) waiting:\n\n", len(approvals))
	fmt.Printf("  %-10s %-24s %-7s %s\n", "ID", "SOURCE", "PRI", "REASON")
	fmt.Printf("  %-10s %-24s %-7s %s\n", "--", "------", "---", "------")
	for _, a := range approvals {
		fmt.Printf("  %-10s %-24s %-7s %s\n", a.ID, a.SourceFile, a.Priority, a.Reason)
	}
	return nil
}

func resolveApproval(args []string, decision models.Decision) error {
	if Router == nil {
		return fmt.Errorf("triage router not initialized")
	}

	var id string
	if len(args) > 0 {
		id = args[0]
	} else {
		picked, err := pickApproval()
		if err != nil {
			return err
		}
		id = picked
	}

	result, err := Router.Resolve(id, decision)
	if err != nil {
		return fmt.Errorf("resolving approval %s: %w", id, err)
	}

	verb := "Approved"
	if decision == models.DecisionReject {
		verb = "Rejected"
	}
	fmt.Printf("%s %s.\n", verb, result.ApprovalFile)
	if result.SourceMoved {
		fmt.Printf("Source item %s moved.\n", result.SourceFile)
	}
	if result.Warning != "" {
		fmt.Printf("Warning: %s\n", result.Warning)
	}
	return nil
}

func init() {
	approvalsCmd.AddCommand(approvalsListCmd)
	approvalsCmd.AddCommand(approvalsApproveCmd)
	approvalsCmd.AddCommand(approvalsRejectCmd)
	rootCmd.AddCommand(approvalsCmd)
}
