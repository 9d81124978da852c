package triage

import (
	"fmt"
	"strconv"
	"time"

	"github.com/valter-silva-au/triagevault/internal/document"
	"github.com/valter-silva-au/triagevault/internal/vault"
	"github.com/valter-silva-au/triagevault/pkg/models"
)

const (
	planPrefix     = "PLAN_"
	approvalPrefix = "APPROVAL_"
	approvalTTL    = 24 * time.Hour
)

// Generator derives plan and approval documents from classified items.
type Generator struct {
	vault *vault.Vault
	now   func() time.Time
}

// NewGenerator creates a Generator writing into the given vault.
func NewGenerator(v *vault.Vault) *Generator {
	return &Generator{
		vault: v,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// planFilename returns PLAN_<id>.md, appending a numeric suffix when a
// document of that name already exists. Plans are an append-only history
// of decisions, so an existing plan is never overwritten.
func (g *Generator) planFilename(id string) string {
	name := planPrefix + id + ".md"
	if !g.vault.Exists(vault.FolderPlans, name) {
		return name
	}
	for i := 2; ; i++ {
		candidate := planPrefix + id + "_" + strconv.Itoa(i) + ".md"
		if !g.vault.Exists(vault.FolderPlans, candidate) {
			return candidate
		}
	}
}

// WritePlan generates the plan document for an item. The plan records
// the classification outcome, including whether approval was required.
func (g *Generator) WritePlan(item *models.ActionItem, c Classification) (*models.Plan, error) {
	created := g.now().Format("2006-01-02 15:04:05 UTC")

	status := models.PlanActive
	if c.NeedsApproval {
		status = models.PlanPendingApproval
	}

	meta := map[string]string{
		"type":              "plan",
		"source_file":       item.Filename,
		"subject":           item.Subject,
		"priority":          string(c.Priority),
		"created":           created,
		"status":            string(status),
		"requires_approval": strconv.FormatBool(c.NeedsApproval),
	}

	summary := item.Body
	if len(summary) > 500 {
		summary = summary[:500]
	}
	if summary == "" {
		summary = "No details available."
	}

	body := fmt.Sprintf(`
# Plan: %s

## Source

- **From**: %s
- **Type**: %s
- **Received**: %s
- **Priority**: %s

## Summary

%s

## Actions

1. Review the item and determine appropriate response.
2. Execute required actions per handbook rules.
3. Log outcome and update status.
`, item.Subject, item.Sender, item.Type, item.Received, c.Priority, summary)

	filename := g.planFilename(item.ID)
	if err := g.vault.Write(vault.FolderPlans, filename, document.Render(meta, body)); err != nil {
		return nil, fmt.Errorf("writing plan for %s: %w", item.Filename, err)
	}

	return &models.Plan{
		Filename:         filename,
		SourceFile:       item.Filename,
		Subject:          item.Subject,
		Priority:         c.Priority,
		Created:          created,
		Status:           status,
		RequiresApproval: c.NeedsApproval,
	}, nil
}

// WriteApproval generates the approval-request document for an item.
// Unlike plans there is no suffixing: an item is routed at most once
// before leaving the pending folder, so one approval per pass suffices.
func (g *Generator) WriteApproval(item *models.ActionItem, reason string) (*models.Approval, error) {
	now := g.now()
	created := now.Format("2006-01-02 15:04:05 UTC")
	expires := now.Add(approvalTTL).Format("2006-01-02 15:04:05 UTC")

	meta := map[string]string{
		"type":        "approval",
		"id":          item.ID,
		"action":      "review_and_respond",
		"source_file": item.Filename,
		"subject":     item.Subject,
		"priority":    string(item.Priority),
		"created":     created,
		"expires":     expires,
		"status":      string(models.ApprovalPending),
		"reason":      reason,
	}

	content := item.Body
	if len(content) > 500 {
		content = content[:500]
	}
	if content == "" {
		content = "No details available."
	}

	body := fmt.Sprintf(`
# Approval Required: %s

## Details

- **From**: %s
- **Type**: %s
- **Priority**: %s
- **Received**: %s

## Content

%s

## Reason for Approval

%s

## Actions

- **Approve**: Proceed with the recommended action.
- **Reject**: Cancel the action and return the item to the queue.
`, item.Subject, item.Sender, item.Type, item.Priority, item.Received, content, reason)

	filename := approvalPrefix + item.ID + ".md"
	if err := g.vault.Write(vault.FolderPendingApproval, filename, document.Render(meta, body)); err != nil {
		return nil, fmt.Errorf("writing approval for %s: %w", item.Filename, err)
	}

	return &models.Approval{
		ID:         item.ID,
		Filename:   filename,
		Action:     "review_and_respond",
		SourceFile: item.Filename,
		Created:    created,
		Expires:    expires,
		Status:     string(models.ApprovalPending),
		Priority:   item.Priority,
		Subject:    item.Subject,
		Reason:     reason,
	}, nil
}

// ApprovalFilename returns the conventional approval document name for
// an item id.
func ApprovalFilename(id string) string {
	return approvalPrefix + id + ".md"
}
