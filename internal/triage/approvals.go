package triage

import (
	"strings"

	"github.com/valter-silva-au/triagevault/internal/document"
	"github.com/valter-silva-au/triagevault/internal/vault"
	"github.com/valter-silva-au/triagevault/pkg/models"
)

// approvalFromDocument builds an Approval from a raw approval document.
func approvalFromDocument(filename, raw string) *models.Approval {
	meta, _ := document.Parse(raw)

	stem := strings.TrimSuffix(filename, ".md")
	id := meta["id"]
	if id == "" {
		id = stem
	}
	subject := meta["subject"]
	if subject == "" {
		subject = stem
	}
	action := meta["action"]
	if action == "" {
		action = "review_and_respond"
	}
	status := meta["status"]
	if status == "" {
		status = string(models.ApprovalPending)
	}
	priority := models.Priority(meta["priority"])
	if priority == "" {
		priority = models.PriorityNormal
	}

	return &models.Approval{
		ID:         id,
		Filename:   filename,
		Action:     action,
		SourceFile: meta["source_file"],
		Created:    meta["created"],
		Expires:    meta["expires"],
		Status:     status,
		Priority:   priority,
		Subject:    subject,
		Reason:     meta["reason"],
	}
}

// ListApprovals returns every approval waiting in Pending_Approval. A
// missing or empty folder yields an empty list.
func ListApprovals(v *vault.Vault) ([]*models.Approval, error) {
	names, err := v.ListMarkdown(vault.FolderPendingApproval)
	if err != nil {
		return nil, err
	}

	approvals := make([]*models.Approval, 0, len(names))
	for _, name := range names {
		raw, err := v.Read(vault.FolderPendingApproval, name)
		if err != nil {
			continue
		}
		approvals = append(approvals, approvalFromDocument(name, raw))
	}
	return approvals, nil
}

// findApproval resolves a pending approval by its frontmatter id,
// falling back to the APPROVAL_<id>.md filename convention. Failing
// both, it returns ErrNotFound.
func findApproval(v *vault.Vault, id string) (*models.Approval, error) {
	approvals, err := ListApprovals(v)
	if err != nil {
		return nil, err
	}
	for _, a := range approvals {
		if a.ID == id {
			return a, nil
		}
	}

	pattern := ApprovalFilename(id)
	if v.Exists(vault.FolderPendingApproval, pattern) {
		raw, err := v.Read(vault.FolderPendingApproval, pattern)
		if err != nil {
			return nil, err
		}
		return approvalFromDocument(pattern, raw), nil
	}

	return nil, ErrNotFound
}
