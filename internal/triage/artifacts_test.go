package triage

import (
	"strings"
	"testing"
	"time"

	"github.com/valter-silva-au/triagevault/internal/document"
	"github.com/valter-silva-au/triagevault/internal/vault"
	"github.com/valter-silva-au/triagevault/pkg/models"
)

func fixedGenerator(v *vault.Vault) *Generator {
	g := NewGenerator(v)
	g.now = func() time.Time {
		return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	}
	return g
}

func sampleItem(id string) *models.ActionItem {
	return &models.ActionItem{
		ID:       id,
		Filename: "EMAIL_" + id + ".md",
		Type:     models.ItemEmail,
		Sender:   "client@example.com",
		Subject:  "Quarterly review",
		Priority: models.PriorityNormal,
		Received: "2026-03-01 09:00:00 UTC",
		Body:     "Please schedule the quarterly review.",
	}
}

func TestWritePlan_Content(t *testing.T) {
	v := vault.New(t.TempDir())
	g := fixedGenerator(v)

	plan, err := g.WritePlan(sampleItem("q1"), Classification{Priority: models.PriorityNormal})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.Filename != "PLAN_q1.md" {
		t.Fatalf("unexpected plan filename: %q", plan.Filename)
	}
	if plan.Status != models.PlanActive {
		t.Fatalf("plan without approval must be active, got %q", plan.Status)
	}

	raw, err := v.Read(vault.FolderPlans, "PLAN_q1.md")
	if err != nil {
		t.Fatalf("reading plan: %v", err)
	}
	meta, body := document.Parse(raw)
	if meta["type"] != "plan" {
		t.Fatalf("unexpected type: %q", meta["type"])
	}
	if meta["created"] != "2026-03-01 12:00:00 UTC" {
		t.Fatalf("unexpected created: %q", meta["created"])
	}
	if meta["requires_approval"] != "false" {
		t.Fatalf("unexpected requires_approval: %q", meta["requires_approval"])
	}
	if !strings.Contains(body, "# Plan: Quarterly review") {
		t.Fatal("plan body must carry the subject heading")
	}
	if !strings.Contains(body, "Please schedule the quarterly review.") {
		t.Fatal("plan body must carry the item summary")
	}
}

func TestWritePlan_ConflictSuffix(t *testing.T) {
	v := vault.New(t.TempDir())
	g := fixedGenerator(v)

	item := sampleItem("dup")
	c := Classification{Priority: models.PriorityNormal}

	first, err := g.WritePlan(item, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := g.WritePlan(item, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	third, err := g.WritePlan(item, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.Filename != "PLAN_dup.md" {
		t.Fatalf("unexpected first filename: %q", first.Filename)
	}
	if second.Filename != "PLAN_dup_2.md" {
		t.Fatalf("unexpected second filename: %q", second.Filename)
	}
	if third.Filename != "PLAN_dup_3.md" {
		t.Fatalf("unexpected third filename: %q", third.Filename)
	}

	// The first plan is never overwritten.
	raw, err := v.Read(vault.FolderPlans, "PLAN_dup.md")
	if err != nil {
		t.Fatalf("reading first plan: %v", err)
	}
	if !strings.Contains(raw, "Quarterly review") {
		t.Fatal("original plan content lost")
	}
}

func TestWritePlan_LongBodyTruncated(t *testing.T) {
	v := vault.New(t.TempDir())
	g := fixedGenerator(v)

	item := sampleItem("big")
	item.Body = strings.Repeat("a", 600)

	if _, err := g.WritePlan(item, Classification{Priority: models.PriorityNormal}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, _ := v.Read(vault.FolderPlans, "PLAN_big.md")
	if strings.Contains(raw, strings.Repeat("a", 501)) {
		t.Fatal("summary must be capped at 500 characters")
	}
	if !strings.Contains(raw, strings.Repeat("a", 500)) {
		t.Fatal("summary must keep the first 500 characters")
	}
}

func TestWriteApproval_Content(t *testing.T) {
	v := vault.New(t.TempDir())
	g := fixedGenerator(v)

	approval, err := g.WriteApproval(sampleItem("ap1"), "payment requires approval")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if approval.Filename != "APPROVAL_ap1.md" {
		t.Fatalf("unexpected filename: %q", approval.Filename)
	}
	if approval.Created != "2026-03-01 12:00:00 UTC" {
		t.Fatalf("unexpected created: %q", approval.Created)
	}
	if approval.Expires != "2026-03-02 12:00:00 UTC" {
		t.Fatalf("expiry must be 24 hours after creation, got %q", approval.Expires)
	}

	raw, err := v.Read(vault.FolderPendingApproval, "APPROVAL_ap1.md")
	if err != nil {
		t.Fatalf("reading approval: %v", err)
	}
	meta, body := document.Parse(raw)
	if meta["id"] != "ap1" {
		t.Fatalf("unexpected id: %q", meta["id"])
	}
	if meta["source_file"] != "EMAIL_ap1.md" {
		t.Fatalf("unexpected source_file: %q", meta["source_file"])
	}
	if meta["status"] != "pending" {
		t.Fatalf("unexpected status: %q", meta["status"])
	}
	if !strings.Contains(body, "payment requires approval") {
		t.Fatal("approval body must carry the reason")
	}
	if !strings.Contains(body, "**Approve**") || !strings.Contains(body, "**Reject**") {
		t.Fatal("approval body must describe both decisions")
	}
}

func TestListApprovals(t *testing.T) {
	v := vault.New(t.TempDir())
	g := fixedGenerator(v)

	if _, err := g.WriteApproval(sampleItem("l1"), "unverified sender"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := g.WriteApproval(sampleItem("l2"), "priority keyword detected"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	approvals, err := ListApprovals(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(approvals) != 2 {
		t.Fatalf("expected 2 approvals, got %d", len(approvals))
	}
	if approvals[0].ID != "l1" || approvals[1].ID != "l2" {
		t.Fatalf("unexpected ids: %q, %q", approvals[0].ID, approvals[1].ID)
	}
}

func TestListApprovals_MissingFolder(t *testing.T) {
	v := vault.New(t.TempDir())

	approvals, err := ListApprovals(v)
	if err != nil {
		t.Fatalf("missing folder must not be an error: %v", err)
	}
	if len(approvals) != 0 {
		t.Fatalf("expected no approvals, got %d", len(approvals))
	}
}

func TestApprovalFromDocument_Defaults(t *testing.T) {
	a := approvalFromDocument("APPROVAL_bare.md", "no frontmatter here")

	if a.ID != "APPROVAL_bare" {
		t.Fatalf("id must default to the filename stem, got %q", a.ID)
	}
	if a.Action != "review_and_respond" {
		t.Fatalf("unexpected default action: %q", a.Action)
	}
	if a.Status != "pending" {
		t.Fatalf("unexpected default status: %q", a.Status)
	}
	if a.Priority != models.PriorityNormal {
		t.Fatalf("unexpected default priority: %q", a.Priority)
	}
}
