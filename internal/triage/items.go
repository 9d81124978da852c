package triage

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/valter-silva-au/triagevault/internal/document"
	"github.com/valter-silva-au/triagevault/internal/vault"
	"github.com/valter-silva-au/triagevault/pkg/models"
)

// interpretedKeys are the metadata fields the engine branches on; every
// other key is preserved in the item's Extra map untouched.
var interpretedKeys = map[string]bool{
	"id": true, "type": true, "from": true, "sender": true,
	"subject": true, "received": true, "date": true,
	"priority": true, "status": true,
}

// newItemID generates a short random id for items that arrive without one.
func newItemID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
}

// ItemFromDocument builds a typed ActionItem from a raw item document.
// Missing fields get the same defaults a producer would have written:
// the filename stem as subject, "unknown" as type and sender, and a
// priority detected from the keyword scan.
func ItemFromDocument(filename, raw string) *models.ActionItem {
	meta, body := document.Parse(raw)
	body = strings.TrimSpace(body)

	subject := meta["subject"]
	if subject == "" {
		subject = strings.TrimSuffix(filename, ".md")
	}

	sender := meta["from"]
	if sender == "" {
		sender = meta["sender"]
	}
	if sender == "" {
		sender = "unknown"
	}

	received := meta["received"]
	if received == "" {
		received = meta["date"]
	}

	id := meta["id"]
	if id == "" {
		id = newItemID()
	}

	priority := models.Priority(meta["priority"])
	if priority == "" {
		priority = detectPriority(subject, body)
	}

	status := meta["status"]
	if status == "" {
		status = "needs_action"
	}

	var extra map[string]string
	for k, v := range meta {
		if interpretedKeys[k] {
			continue
		}
		if extra == nil {
			extra = make(map[string]string)
		}
		extra[k] = v
	}

	snippet := body
	if len(snippet) > 200 {
		snippet = snippet[:200]
	}

	return &models.ActionItem{
		ID:       id,
		Filename: filename,
		Type:     models.ParseItemType(meta["type"]),
		Sender:   sender,
		Subject:  subject,
		Priority: priority,
		Received: received,
		Status:   status,
		Snippet:  snippet,
		Body:     body,
		Extra:    extra,
	}
}

// ListPending returns all items in Needs_Action sorted by priority, high
// first, with ties kept in file-name order. A missing folder yields an
// empty list.
func ListPending(v *vault.Vault) ([]*models.ActionItem, error) {
	names, err := v.ListMarkdown(vault.FolderNeedsAction)
	if err != nil {
		return nil, err
	}

	items := make([]*models.ActionItem, 0, len(names))
	for _, name := range names {
		raw, err := v.Read(vault.FolderNeedsAction, name)
		if err != nil {
			// The file disappeared between listing and reading; skip it.
			continue
		}
		items = append(items, ItemFromDocument(name, raw))
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Priority.Rank() < items[j].Priority.Rank()
	})
	return items, nil
}

// StateOf infers an item's processing state from folder membership.
// Folder placement is the projection of this state, so the scan order
// mirrors the item lifecycle.
func StateOf(v *vault.Vault, filename string) models.ItemState {
	switch {
	case v.Exists(vault.FolderNeedsAction, filename):
		return models.StatePending
	case v.Exists(vault.FolderInProgress, filename):
		return models.StateAwaitingApproval
	case v.Exists(vault.FolderDone, filename):
		return models.StateDone
	default:
		return models.StateUnknown
	}
}
