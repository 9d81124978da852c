package observability

import (
	"fmt"
	"strings"

	"github.com/valter-silva-au/triagevault/internal/vault"
	"github.com/valter-silva-au/triagevault/pkg/models"
)

// RefreshDashboard rewrites Dashboard.md from a metrics snapshot. The
// dashboard is a projection of the snapshot; it is regenerated in full
// on every refresh, never edited in place.
func RefreshDashboard(v *vault.Vault, business string, m *models.Metrics) error {
	var b strings.Builder

	b.WriteString("---\n")
	b.WriteString("type: dashboard\n")
	fmt.Fprintf(&b, "last_updated: %s\n", vault.Timestamp())
	b.WriteString("---\n\n")

	fmt.Fprintf(&b, "# Triage Dashboard - %s\n\n", business)

	b.WriteString("## Status\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(&b, "| Last updated | %s |\n", vault.Timestamp())
	fmt.Fprintf(&b, "| Pending actions | %d |\n", m.NeedsAction)
	fmt.Fprintf(&b, "| Awaiting approval | %d |\n", m.PendingApproval)
	fmt.Fprintf(&b, "| Completed today | %d |\n", m.DoneToday)
	fmt.Fprintf(&b, "| Active plans | %d |\n", m.ActivePlans)
	fmt.Fprintf(&b, "| MTD Revenue | %s |\n", m.MTDRevenue)
	fmt.Fprintf(&b, "| Monthly target | %s |\n", m.MonthlyTarget)
	fmt.Fprintf(&b, "| Agent health | %s |\n", m.AgentHealth)

	b.WriteString("\n## Alerts\n\n")
	if len(m.Alerts) == 0 {
		b.WriteString("No alerts. All clear.\n")
	} else {
		for _, alert := range m.Alerts {
			fmt.Fprintf(&b, "- %s\n", alert)
		}
	}

	b.WriteString("\n## Recent Activity\n\n")
	if len(m.RecentActivity) == 0 {
		b.WriteString("No activity yet.\n")
	} else {
		for _, line := range m.RecentActivity {
			fmt.Fprintf(&b, "- %s\n", line)
		}
	}

	if err := v.Write("", "Dashboard.md", b.String()); err != nil {
		return fmt.Errorf("refreshing dashboard: %w", err)
	}
	return nil
}
