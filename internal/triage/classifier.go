package triage

import (
	"strings"

	"github.com/valter-silva-au/triagevault/pkg/models"
)

// PriorityKeywords is the fixed keyword set used for both priority
// detection and approval-requirement detection. Matching is a plain
// case-insensitive substring scan; intentionally simple.
var PriorityKeywords = []string{
	"urgent", "asap", "immediately", "emergency",
	"invoice", "payment", "overdue", "refund",
	"complaint", "unhappy", "cancel",
}

// Classification is the routing decision for one item.
type Classification struct {
	Priority      models.Priority
	NeedsApproval bool
	Reason        string
}

// containsKeyword reports whether any priority keyword occurs in the
// combined subject and body text.
func containsKeyword(subject, body string) bool {
	combined := strings.ToLower(subject + " " + body)
	for _, kw := range PriorityKeywords {
		if strings.Contains(combined, kw) {
			return true
		}
	}
	return false
}

// detectPriority derives a priority when the item metadata carries none:
// any keyword hit means high, otherwise normal.
func detectPriority(subject, body string) models.Priority {
	if containsKeyword(subject, body) {
		return models.PriorityHigh
	}
	return models.PriorityNormal
}

// Classify derives the priority and approval requirement for a parsed
// item document. An explicit metadata priority is used verbatim; the
// approval rules are evaluated in order and the first match wins, so a
// payment from an unknown sender reports the payment reason.
func Classify(meta map[string]string, body string) Classification {
	subject := meta["subject"]
	itemType := models.ParseItemType(meta["type"])

	priority := models.Priority(meta["priority"])
	if priority == "" {
		priority = detectPriority(subject, body)
	}

	c := Classification{Priority: priority}

	sender := meta["from"]
	if sender == "" {
		sender = meta["sender"]
	}

	switch {
	case itemType == models.ItemPayment:
		c.NeedsApproval = true
		c.Reason = "payment requires approval"
	case itemType == models.ItemEmail && (sender == "" || strings.Contains(sender, "unknown")):
		c.NeedsApproval = true
		c.Reason = "unverified sender"
	case (itemType == models.ItemEmail || itemType == models.ItemWhatsApp) && containsKeyword(subject, body):
		c.NeedsApproval = true
		c.Reason = "priority keyword detected"
	case itemType == models.ItemFileIntake:
		c.NeedsApproval = true
		c.Reason = "file intake requires review"
	}

	return c
}
