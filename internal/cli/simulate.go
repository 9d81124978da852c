package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/valter-silva-au/triagevault/pkg/models"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Generate simulated inbound items for testing",
	Long:  "Commands for writing realistic fake emails into Needs_Action.",
}

var simulateEmailCmd = &cobra.Command{
	Use:   "email",
	Short: "Write one simulated email into Needs_Action",
	Long: `Write one simulated email item. With no flags, a random message is
drawn from the built-in template pool; flags override individual fields.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Simulator == nil {
			return fmt.Errorf("simulator not initialized")
		}

		sender, _ := cmd.Flags().GetString("from")
		subject, _ := cmd.Flags().GetString("subject")
		body, _ := cmd.Flags().GetString("body")
		typeFlag, _ := cmd.Flags().GetString("type")
		priorityFlag, _ := cmd.Flags().GetString("priority")

		itemType := models.ItemEmail
		if typeFlag != "" {
			itemType = models.ParseItemType(typeFlag)
			if itemType == models.ItemUnknown {
				return fmt.Errorf("unknown item type %q", typeFlag)
			}
		}
		priority := models.PriorityNormal
		if priorityFlag != "" {
			switch p := models.Priority(priorityFlag); p {
			case models.PriorityHigh, models.PriorityMedium, models.PriorityNormal, models.PriorityLow:
				priority = p
			default:
				return fmt.Errorf("unknown priority %q", priorityFlag)
			}
		}

		filename, err := Simulator.SimulateEmail(sender, subject, body, itemType, priority)
		if err != nil {
			return fmt.Errorf("simulating email: %w", err)
		}
		fmt.Printf("Created %s\n", filename)
		return nil
	},
}

var simulateBatchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Write a batch of simulated emails into Needs_Action",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Simulator == nil {
			return fmt.Errorf("simulator not initialized")
		}

		count, _ := cmd.Flags().GetInt("count")
		if count < 1 || count > 50 {
			return fmt.Errorf("count must be between 1 and 50")
		}

		filenames, err := Simulator.SimulateBatch(count)
		if err != nil {
			return fmt.Errorf("simulating batch: %w", err)
		}
		fmt.Printf("Created %d item(s):\n", len(filenames))
		for _, name := range filenames {
			fmt.Printf("  %s\n", name)
		}
		return nil
	},
}

func init() {
	simulateEmailCmd.Flags().String("from", "", "Sender address")
	simulateEmailCmd.Flags().String("subject", "", "Subject line")
	simulateEmailCmd.Flags().String("body", "", "Message body")
	simulateEmailCmd.Flags().String("type", "", "Item type (email, payment, whatsapp, file_intake)")
	simulateEmailCmd.Flags().String("priority", "", "Priority (high, medium, normal, low)")
	simulateBatchCmd.Flags().Int("count", 5, "Number of items to generate")
	simulateCmd.AddCommand(simulateEmailCmd)
	simulateCmd.AddCommand(simulateBatchCmd)
	rootCmd.AddCommand(simulateCmd)
}
