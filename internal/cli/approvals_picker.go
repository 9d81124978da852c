package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/valter-silva-au/triagevault/internal/triage"
)

// pickApproval shows an interactive list of pending approvals and
// returns the selected approval id. Returns an error if none are
// pending or the user cancels.
func pickApproval() (string, error) {
	if Vault == nil {
		return "", fmt.Errorf("vault not initialized")
	}

	approvals, err := triage.ListApprovals(Vault)
	if err != nil {
		return "", fmt.Errorf("listing approvals: %w", err)
	}
	if len(approvals) == 0 {
		return "", fmt.Errorf("no pending approvals")
	}

	fmt.Println("\nPending approvals:")
	fmt.Println()
	fmt.Printf("  %-4s %-10s %-24s %-7s %s\n", "#", "ID", "SOURCE", "PRI", "REASON")
	fmt.Printf("  %-4s %-10s %-24s %-7s %s\n", "---", "--", "------", "---", "------")
	for i, a := range approvals {
		fmt.Printf("  %-4d %-10s %-24s %-7s %s\n", i+1, a.ID, a.SourceFile, a.Priority, a.Reason)
	}
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Printf("Select approval [1-%d] (or 'q' to cancel): ", len(approvals))
		input, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "q" || input == "Q" {
			return "", fmt.Errorf("cancelled")
		}

		num, err := strconv.Atoi(input)
		if err != nil || num < 1 || num > len(approvals) {
			fmt.Printf("  Invalid selection. Enter a number between 1 and %d.\n", len(approvals))
			continue
		}

		return approvals[num-1].ID, nil
	}
}
