package triage

import (
	"testing"

	"github.com/valter-silva-au/triagevault/pkg/models"
)

func TestClassify_PaymentRequiresApproval(t *testing.T) {
	meta := map[string]string{
		"type":    "payment",
		"from":    "billing@vendor.com",
		"subject": "Monthly hosting invoice",
	}

	c := Classify(meta, "Please settle the attached invoice.")
	if !c.NeedsApproval {
		t.Fatal("payment item must require approval")
	}
	if c.Reason != "payment requires approval" {
		t.Fatalf("unexpected reason: %q", c.Reason)
	}
}

func TestClassify_PaymentReasonWinsOverUnknownSender(t *testing.T) {
	meta := map[string]string{
		"type":    "payment",
		"subject": "Wire transfer",
	}

	c := Classify(meta, "Transfer funds.")
	if c.Reason != "payment requires approval" {
		t.Fatalf("payment rule must win over sender rule, got reason %q", c.Reason)
	}
}

func TestClassify_UnverifiedEmailSender(t *testing.T) {
	tests := []struct {
		name   string
		sender string
	}{
		{"missing sender", ""},
		{"unknown sender", "unknown@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := map[string]string{
				"type":    "email",
				"subject": "Hello",
			}
			if tt.sender != "" {
				meta["from"] = tt.sender
			}

			c := Classify(meta, "Just checking in.")
			if !c.NeedsApproval {
				t.Fatal("email without a verified sender must require approval")
			}
			if c.Reason != "unverified sender" {
				t.Fatalf("unexpected reason: %q", c.Reason)
			}
		})
	}
}

func TestClassify_KeywordTriggersApproval(t *testing.T) {
	tests := []struct {
		name string
		meta map[string]string
		body string
	}{
		{
			"keyword in email subject",
			map[string]string{"type": "email", "from": "client@example.com", "subject": "URGENT: server down"},
			"The site is offline.",
		},
		{
			"keyword in whatsapp body",
			map[string]string{"type": "whatsapp", "from": "+15550100", "subject": "quick question"},
			"I want a refund for last week.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(tt.meta, tt.body)
			if !c.NeedsApproval {
				t.Fatal("keyword match must require approval")
			}
			if c.Reason != "priority keyword detected" {
				t.Fatalf("unexpected reason: %q", c.Reason)
			}
		})
	}
}

func TestClassify_FileIntakeRequiresReview(t *testing.T) {
	meta := map[string]string{
		"type":    "file_intake",
		"subject": "New file: report.pdf",
	}

	c := Classify(meta, "A file arrived in the inbox.")
	if !c.NeedsApproval {
		t.Fatal("file intake must require approval")
	}
	if c.Reason != "file intake requires review" {
		t.Fatalf("unexpected reason: %q", c.Reason)
	}
}

func TestClassify_CleanEmailNoApproval(t *testing.T) {
	meta := map[string]string{
		"type":    "email",
		"from":    "client@example.com",
		"subject": "Meeting notes",
	}

	c := Classify(meta, "Here are the notes from our last call.")
	if c.NeedsApproval {
		t.Fatalf("clean email must not require approval, reason %q", c.Reason)
	}
	if c.Reason != "" {
		t.Fatalf("expected empty reason, got %q", c.Reason)
	}
	if c.Priority != models.PriorityNormal {
		t.Fatalf("expected normal priority, got %q", c.Priority)
	}
}

func TestClassify_ExplicitPriorityPreserved(t *testing.T) {
	meta := map[string]string{
		"type":     "email",
		"from":     "client@example.com",
		"subject":  "Invoice attached",
		"priority": "low",
	}

	c := Classify(meta, "Non-urgent invoice for your records.")
	if c.Priority != models.PriorityLow {
		t.Fatalf("explicit priority must be preserved, got %q", c.Priority)
	}
	// The keyword still forces the approval route.
	if !c.NeedsApproval {
		t.Fatal("keyword match must still require approval")
	}
}

func TestClassify_KeywordDetectsHighPriority(t *testing.T) {
	meta := map[string]string{
		"type":    "email",
		"from":    "client@example.com",
		"subject": "Please respond ASAP",
	}

	c := Classify(meta, "Need this today.")
	if c.Priority != models.PriorityHigh {
		t.Fatalf("keyword hit must detect high priority, got %q", c.Priority)
	}
}

func TestContainsKeyword_CaseInsensitive(t *testing.T) {
	if !containsKeyword("URGENT request", "") {
		t.Fatal("keyword matching must be case-insensitive")
	}
	if !containsKeyword("", "the payment is OVERDUE") {
		t.Fatal("keywords must match in the body too")
	}
	if containsKeyword("weekly summary", "all quiet this week") {
		t.Fatal("unexpected keyword match")
	}
}

func TestDetectPriority(t *testing.T) {
	if got := detectPriority("emergency maintenance", ""); got != models.PriorityHigh {
		t.Fatalf("expected high, got %q", got)
	}
	if got := detectPriority("weekly summary", "nothing notable"); got != models.PriorityNormal {
		t.Fatalf("expected normal, got %q", got)
	}
}
