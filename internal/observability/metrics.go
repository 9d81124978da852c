package observability

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/valter-silva-au/triagevault/internal/vault"
	"github.com/valter-silva-au/triagevault/pkg/models"
)

// activityLimit caps the recent-activity feed.
const activityLimit = 10

// activityFolders are scanned for the recent-activity feed, newest
// documents first.
var activityFolders = []string{
	vault.FolderDone,
	vault.FolderApproved,
	vault.FolderRejected,
}

// monthRevenueRow matches the current-month row of the revenue table in
// Business_Goals.md: target column first, actual column second.
var monthRevenueRow = regexp.MustCompile(`\|\s*This Month\s*\|\s*(\$[\d,]+\.?\d*)\s*\|\s*(\$[\d,]+\.?\d*)\s*\|`)

// Aggregator derives the dashboard metrics snapshot from current folder
// contents.
type Aggregator interface {
	Compute() (*models.Metrics, error)
}

// aggregator implements Aggregator over a vault and an alert engine.
type aggregator struct {
	vault  *vault.Vault
	alerts AlertEngine
	now    func() time.Time
}

// NewAggregator creates an Aggregator. alerts may be nil, in which case
// the snapshot carries no alerts.
func NewAggregator(v *vault.Vault, alerts AlertEngine) Aggregator {
	return &aggregator{
		vault:  v,
		alerts: alerts,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Compute recounts every metric from the folder contents. Nothing is
// cached between calls, so the snapshot is always consistent with the
// filesystem at the time of the call.
func (a *aggregator) Compute() (*models.Metrics, error) {
	m := &models.Metrics{
		NeedsAction:     a.vault.CountMarkdown(vault.FolderNeedsAction),
		PendingApproval: a.vault.CountMarkdown(vault.FolderPendingApproval),
		ActivePlans:     a.vault.CountMarkdown(vault.FolderPlans),
		AgentHealth:     "Online",
	}

	doneToday, err := a.countDoneToday()
	if err != nil {
		return nil, err
	}
	m.DoneToday = doneToday

	m.RecentActivity = a.recentActivity()

	m.MTDRevenue, m.MonthlyTarget = a.revenueFigures()

	if a.alerts != nil {
		alerts, err := a.alerts.Evaluate()
		if err != nil {
			return nil, fmt.Errorf("evaluating alerts: %w", err)
		}
		for _, alert := range alerts {
			m.Alerts = append(m.Alerts, alert.Message)
		}
	}

	return m, nil
}

// countDoneToday counts Done documents whose modification time falls
// within the current UTC calendar day.
func (a *aggregator) countDoneToday() (int, error) {
	names, err := a.vault.ListMarkdown(vault.FolderDone)
	if err != nil {
		return 0, err
	}

	todayStart := a.now().Truncate(24 * time.Hour)
	count := 0
	for _, name := range names {
		modTime, err := a.vault.ModTime(vault.FolderDone, name)
		if err != nil {
			continue
		}
		if !modTime.Before(todayStart) {
			count++
		}
	}
	return count, nil
}

// recentActivity returns the newest documents across the terminal
// folders, ordered by modification time descending.
func (a *aggregator) recentActivity() []string {
	type entry struct {
		folder  string
		stem    string
		modTime time.Time
	}

	var entries []entry
	for _, folder := range activityFolders {
		names, err := a.vault.ListMarkdown(folder)
		if err != nil {
			continue
		}
		for _, name := range names {
			modTime, err := a.vault.ModTime(folder, name)
			if err != nil {
				continue
			}
			entries = append(entries, entry{
				folder:  folder,
				stem:    strings.TrimSuffix(name, ".md"),
				modTime: modTime,
			})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].modTime.After(entries[j].modTime)
	})
	if len(entries) > activityLimit {
		entries = entries[:activityLimit]
	}

	activity := make([]string, 0, len(entries))
	for _, e := range entries {
		activity = append(activity, fmt.Sprintf("[%s] %s - %s",
			e.folder, e.stem, e.modTime.Format("2006-01-02 15:04")))
	}
	return activity
}

// revenueFigures extracts the month-to-date revenue and monthly target
// from the Business_Goals.md revenue table. Missing or malformed goals
// fall back to zero revenue against the default $5,000.00 target.
func (a *aggregator) revenueFigures() (mtd, target string) {
	mtd, target = "$0.00", "$5,000.00"

	raw, err := a.vault.Read("", "Business_Goals.md")
	if err != nil {
		return mtd, target
	}

	match := monthRevenueRow.FindStringSubmatch(raw)
	if match == nil {
		return mtd, target
	}
	return match[2], match[1]
}
