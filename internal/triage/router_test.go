package triage

import (
	"errors"
	"strings"
	"testing"

	"github.com/valter-silva-au/triagevault/internal/document"
	"github.com/valter-silva-au/triagevault/internal/vault"
	"github.com/valter-silva-au/triagevault/pkg/models"
)

// recordingLogger captures routing events for assertions.
type recordingLogger struct {
	events []string
}

func (l *recordingLogger) LogEvent(eventType string, data map[string]any) error {
	l.events = append(l.events, eventType)
	return nil
}

func setupRouter(t *testing.T) (*Router, *vault.Vault, *recordingLogger) {
	t.Helper()
	v := vault.New(t.TempDir())
	logger := &recordingLogger{}
	return NewRouter(v, logger), v, logger
}

func writePendingItem(t *testing.T, v *vault.Vault, filename string, meta map[string]string, body string) {
	t.Helper()
	if err := v.Write(vault.FolderNeedsAction, filename, document.Render(meta, body)); err != nil {
		t.Fatalf("writing pending item: %v", err)
	}
}

func TestProcess_CleanItemMovesToDone(t *testing.T) {
	r, v, logger := setupRouter(t)

	writePendingItem(t, v, "EMAIL_note1.md", map[string]string{
		"id":      "note1",
		"type":    "email",
		"from":    "client@example.com",
		"subject": "Weekly check-in",
	}, "All good on our side.")

	action, err := r.Process("EMAIL_note1.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(action, "Moved to Done") {
		t.Fatalf("unexpected action: %q", action)
	}

	if v.Exists(vault.FolderNeedsAction, "EMAIL_note1.md") {
		t.Fatal("item must leave Needs_Action")
	}
	if !v.Exists(vault.FolderDone, "EMAIL_note1.md") {
		t.Fatal("item must land in Done")
	}
	if !v.Exists(vault.FolderPlans, "PLAN_note1.md") {
		t.Fatal("plan must be written")
	}
	if v.CountMarkdown(vault.FolderPendingApproval) != 0 {
		t.Fatal("no approval must be created for a clean item")
	}
	if len(logger.events) != 1 || logger.events[0] != "item.processed" {
		t.Fatalf("expected one item.processed event, got %v", logger.events)
	}
}

func TestProcess_PaymentRoutesToApproval(t *testing.T) {
	r, v, _ := setupRouter(t)

	writePendingItem(t, v, "PAY_inv9.md", map[string]string{
		"id":      "inv9",
		"type":    "payment",
		"from":    "billing@vendor.com",
		"subject": "Hosting invoice",
	}, "Amount due: $250.00")

	action, err := r.Process("PAY_inv9.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(action, "Moved to In_Progress") {
		t.Fatalf("unexpected action: %q", action)
	}

	if !v.Exists(vault.FolderInProgress, "PAY_inv9.md") {
		t.Fatal("item must move to In_Progress")
	}
	if !v.Exists(vault.FolderPendingApproval, "APPROVAL_inv9.md") {
		t.Fatal("approval request must be written")
	}

	raw, err := v.Read(vault.FolderPlans, "PLAN_inv9.md")
	if err != nil {
		t.Fatalf("reading plan: %v", err)
	}
	meta, _ := document.Parse(raw)
	if meta["requires_approval"] != "true" {
		t.Fatalf("plan must record the approval decision, got %q", meta["requires_approval"])
	}
	if meta["status"] != string(models.PlanPendingApproval) {
		t.Fatalf("unexpected plan status: %q", meta["status"])
	}
	if meta["source_file"] != "PAY_inv9.md" {
		t.Fatalf("plan must reference the source file, got %q", meta["source_file"])
	}
}

func TestProcess_MissingFileReturnsNotFound(t *testing.T) {
	r, _, _ := setupRouter(t)

	_, err := r.Process("ghost.md")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProcessAll_MixedBatch(t *testing.T) {
	r, v, _ := setupRouter(t)

	writePendingItem(t, v, "PAY_a.md", map[string]string{
		"id": "a", "type": "payment", "from": "billing@vendor.com", "subject": "Invoice",
	}, "Pay me.")
	writePendingItem(t, v, "EMAIL_b.md", map[string]string{
		"id": "b", "type": "email", "from": "client@example.com", "subject": "Refund please",
	}, "I would like a refund.")
	writePendingItem(t, v, "EMAIL_c.md", map[string]string{
		"id": "c", "type": "email", "from": "client@example.com", "subject": "Meeting notes",
	}, "Notes attached.")

	result, err := r.ProcessAll()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Processed != 3 {
		t.Fatalf("expected 3 processed, got %d", result.Processed)
	}
	if len(result.Actions) != 3 {
		t.Fatalf("expected 3 actions, got %d", len(result.Actions))
	}

	if v.CountMarkdown(vault.FolderNeedsAction) != 0 {
		t.Fatal("Needs_Action must be empty after the batch")
	}
	if got := v.CountMarkdown(vault.FolderPendingApproval); got != 2 {
		t.Fatalf("expected 2 approvals, got %d", got)
	}
	if got := v.CountMarkdown(vault.FolderDone); got != 1 {
		t.Fatalf("expected 1 completed item, got %d", got)
	}
	if got := v.CountMarkdown(vault.FolderPlans); got != 3 {
		t.Fatalf("expected 3 plans, got %d", got)
	}
}

func TestResolve_ApproveCascadesToDone(t *testing.T) {
	r, v, logger := setupRouter(t)

	writePendingItem(t, v, "PAY_x1.md", map[string]string{
		"id": "x1", "type": "payment", "from": "billing@vendor.com", "subject": "Invoice",
	}, "Pay me.")
	if _, err := r.Process("PAY_x1.md"); err != nil {
		t.Fatalf("processing: %v", err)
	}

	result, err := r.Resolve("x1", models.DecisionApprove)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.SourceMoved {
		t.Fatal("source item must cascade")
	}
	if result.Warning != "" {
		t.Fatalf("unexpected warning: %q", result.Warning)
	}

	if !v.Exists(vault.FolderApproved, "APPROVAL_x1.md") {
		t.Fatal("approval must move to Approved")
	}
	if !v.Exists(vault.FolderDone, "PAY_x1.md") {
		t.Fatal("source item must move to Done")
	}

	var resolved bool
	for _, e := range logger.events {
		if e == "approval.resolved" {
			resolved = true
		}
		if e == "approval.cascade_skipped" {
			t.Fatal("cascade must not be skipped")
		}
	}
	if !resolved {
		t.Fatalf("expected approval.resolved event, got %v", logger.events)
	}
}

func TestResolve_RejectReturnsItemToQueue(t *testing.T) {
	r, v, _ := setupRouter(t)

	writePendingItem(t, v, "PAY_x2.md", map[string]string{
		"id": "x2", "type": "payment", "from": "billing@vendor.com", "subject": "Invoice",
	}, "Pay me.")
	if _, err := r.Process("PAY_x2.md"); err != nil {
		t.Fatalf("processing: %v", err)
	}

	result, err := r.Resolve("x2", models.DecisionReject)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.SourceMoved {
		t.Fatal("source item must cascade")
	}

	if !v.Exists(vault.FolderRejected, "APPROVAL_x2.md") {
		t.Fatal("approval must move to Rejected")
	}
	if !v.Exists(vault.FolderNeedsAction, "PAY_x2.md") {
		t.Fatal("rejected item must return to Needs_Action")
	}
}

func TestResolve_MissingSourceWarnsButResolves(t *testing.T) {
	r, v, logger := setupRouter(t)

	meta := map[string]string{
		"type":        "approval",
		"id":          "orphan",
		"source_file": "GONE.md",
		"status":      "pending",
	}
	if err := v.Write(vault.FolderPendingApproval, "APPROVAL_orphan.md", document.Render(meta, "body")); err != nil {
		t.Fatalf("writing approval: %v", err)
	}

	result, err := r.Resolve("orphan", models.DecisionApprove)
	if err != nil {
		t.Fatalf("a missing source must not fail the resolution: %v", err)
	}
	if result.SourceMoved {
		t.Fatal("source cannot have moved")
	}
	if result.Warning == "" {
		t.Fatal("expected a warning about the missing source")
	}
	if !v.Exists(vault.FolderApproved, "APPROVAL_orphan.md") {
		t.Fatal("approval must still transition")
	}

	var skipped bool
	for _, e := range logger.events {
		if e == "approval.cascade_skipped" {
			skipped = true
		}
	}
	if !skipped {
		t.Fatalf("expected approval.cascade_skipped event, got %v", logger.events)
	}
}

func TestResolve_FilenameFallback(t *testing.T) {
	r, v, _ := setupRouter(t)

	// No frontmatter id; only the filename convention identifies it.
	if err := v.Write(vault.FolderPendingApproval, "APPROVAL_legacy.md", "plain approval text"); err != nil {
		t.Fatalf("writing approval: %v", err)
	}

	result, err := r.Resolve("legacy", models.DecisionApprove)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ApprovalFile != "APPROVAL_legacy.md" {
		t.Fatalf("unexpected approval file: %q", result.ApprovalFile)
	}
	if !v.Exists(vault.FolderApproved, "APPROVAL_legacy.md") {
		t.Fatal("approval must move to Approved")
	}
}

func TestResolve_UnknownIDReturnsNotFound(t *testing.T) {
	r, _, _ := setupRouter(t)

	_, err := r.Resolve("nope", models.DecisionApprove)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRecover_FinishesInterruptedItems(t *testing.T) {
	r, v, logger := setupRouter(t)

	// A crash left both items in Needs_Action with their plans already
	// written but no move performed.
	writePendingItem(t, v, "PAY_r1.md", map[string]string{
		"id": "r1", "type": "payment", "from": "billing@vendor.com", "subject": "Invoice",
	}, "Pay me.")
	writePendingItem(t, v, "EMAIL_r2.md", map[string]string{
		"id": "r2", "type": "email", "from": "client@example.com", "subject": "Notes",
	}, "Nothing pressing.")
	writePendingItem(t, v, "EMAIL_r3.md", map[string]string{
		"id": "r3", "type": "email", "from": "client@example.com", "subject": "Notes",
	}, "No plan yet, must stay put.")

	gen := NewGenerator(v)
	for _, name := range []string{"PAY_r1.md", "EMAIL_r2.md"} {
		raw, err := v.Read(vault.FolderNeedsAction, name)
		if err != nil {
			t.Fatalf("reading item: %v", err)
		}
		meta, body := document.Parse(raw)
		if _, err := gen.WritePlan(ItemFromDocument(name, raw), Classify(meta, body)); err != nil {
			t.Fatalf("writing plan: %v", err)
		}
	}

	recovered, err := r.Recover()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recovered) != 2 {
		t.Fatalf("expected 2 recovered items, got %v", recovered)
	}

	if !v.Exists(vault.FolderInProgress, "PAY_r1.md") {
		t.Fatal("payment item must resume into In_Progress")
	}
	if !v.Exists(vault.FolderPendingApproval, "APPROVAL_r1.md") {
		t.Fatal("missing approval must be re-written during recovery")
	}
	if !v.Exists(vault.FolderDone, "EMAIL_r2.md") {
		t.Fatal("clean item must resume into Done")
	}
	if !v.Exists(vault.FolderNeedsAction, "EMAIL_r3.md") {
		t.Fatal("item without a plan must stay in Needs_Action")
	}

	var count int
	for _, e := range logger.events {
		if e == "item.recovered" {
			count++
		}
	}
	if count != 2 {
		t.Fatalf("expected 2 item.recovered events, got %v", logger.events)
	}
}

func TestRecover_NothingPending(t *testing.T) {
	r, _, _ := setupRouter(t)

	recovered, err := r.Recover()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recovered) != 0 {
		t.Fatalf("expected no recoveries, got %v", recovered)
	}
}
