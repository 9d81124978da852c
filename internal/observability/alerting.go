package observability

import (
	"fmt"
	"strings"
	"time"

	"github.com/valter-silva-au/triagevault/internal/vault"
)

// AlertSeverity represents the urgency of an alert.
type AlertSeverity string

const (
	SeverityHigh   AlertSeverity = "high"
	SeverityMedium AlertSeverity = "medium"
	SeverityLow    AlertSeverity = "low"
)

// Alert represents a triggered staleness condition.
type Alert struct {
	ID          string        `json:"id"`
	Condition   string        `json:"condition"`
	Severity    AlertSeverity `json:"severity"`
	Message     string        `json:"message"`
	TriggeredAt time.Time     `json:"triggered_at"`
}

// AlertThresholds configures when staleness alerts fire.
type AlertThresholds struct {
	ApprovalHours int `yaml:"approval_hours" json:"approval_hours"`
	PendingHours  int `yaml:"pending_hours" json:"pending_hours"`
}

// DefaultAlertThresholds returns the standard staleness thresholds.
func DefaultAlertThresholds() AlertThresholds {
	return AlertThresholds{
		ApprovalHours: 24,
		PendingHours:  12,
	}
}

// AlertEngine evaluates staleness conditions against the vault folders.
type AlertEngine interface {
	Evaluate() ([]Alert, error)
}

// alertEngine implements AlertEngine by checking document modification
// times in the state-bearing folders.
type alertEngine struct {
	vault      *vault.Vault
	thresholds AlertThresholds
	now        func() time.Time
}

// NewAlertEngine creates an AlertEngine over the given vault.
func NewAlertEngine(v *vault.Vault, thresholds AlertThresholds) AlertEngine {
	return &alertEngine{
		vault:      v,
		thresholds: thresholds,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Evaluate checks both staleness rules, returning any triggered alerts.
// The rules are independent: a stale approval and a stale pending item
// each produce their own alert.
func (ae *alertEngine) Evaluate() ([]Alert, error) {
	now := ae.now()
	var alerts []Alert

	approvalAlerts, err := ae.checkStaleFolder(now, vault.FolderPendingApproval,
		ae.thresholds.ApprovalHours, "approval_stale", SeverityHigh,
		"approval %s has been waiting for more than %d hours")
	if err != nil {
		return nil, fmt.Errorf("checking stale approvals: %w", err)
	}
	alerts = append(alerts, approvalAlerts...)

	pendingAlerts, err := ae.checkStaleFolder(now, vault.FolderNeedsAction,
		ae.thresholds.PendingHours, "item_unprocessed", SeverityMedium,
		"item %s has been unprocessed for more than %d hours")
	if err != nil {
		return nil, fmt.Errorf("checking stale pending items: %w", err)
	}
	alerts = append(alerts, pendingAlerts...)

	return alerts, nil
}

// checkStaleFolder alerts on every document in the folder whose
// modification time is older than the threshold.
func (ae *alertEngine) checkStaleFolder(now time.Time, folder string, hours int, condition string, severity AlertSeverity, format string) ([]Alert, error) {
	names, err := ae.vault.ListMarkdown(folder)
	if err != nil {
		return nil, err
	}

	threshold := time.Duration(hours) * time.Hour
	var alerts []Alert
	for _, name := range names {
		modTime, err := ae.vault.ModTime(folder, name)
		if err != nil {
			continue // the file disappeared between listing and stat
		}
		if now.Sub(modTime) > threshold {
			stem := strings.TrimSuffix(name, ".md")
			alerts = append(alerts, Alert{
				ID:          fmt.Sprintf("%s-%s", condition, stem),
				Condition:   condition,
				Severity:    severity,
				Message:     fmt.Sprintf(format, name, hours),
				TriggeredAt: now,
			})
		}
	}

	return alerts, nil
}
