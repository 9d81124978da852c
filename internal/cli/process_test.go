package cli

import (
	"strings"
	"testing"

	"github.com/valter-silva-au/triagevault/internal/vault"
)

func TestProcessCmd_NilRouter(t *testing.T) {
	orig := Router
	defer func() { Router = orig }()
	Router = nil

	err := processCmd.RunE(processCmd, []string{"EMAIL_x.md"})
	if err == nil {
		t.Fatal("expected error when Router is nil")
	}
	if !strings.Contains(err.Error(), "not initialized") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestProcessCmd_SingleItem(t *testing.T) {
	v := setupCLI(t)
	writeQueueItem(t, v, "EMAIL_a1.md", map[string]string{
		"type": "email", "from": "client@example.com", "subject": "Question",
	}, "Quick scope question.")

	if err := processCmd.RunE(processCmd, []string{"EMAIL_a1.md"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.CountMarkdown(vault.FolderDone) != 1 {
		t.Error("clean item must land in Done")
	}
}

func TestProcessCmd_MissingItem(t *testing.T) {
	setupCLI(t)

	err := processCmd.RunE(processCmd, []string{"NOPE.md"})
	if err == nil {
		t.Fatal("expected error for missing item")
	}
}

func TestProcessCmd_All(t *testing.T) {
	v := setupCLI(t)
	origAll := processAll
	defer func() { processAll = origAll }()
	processAll = true

	writeQueueItem(t, v, "EMAIL_a1.md", map[string]string{
		"type": "email", "from": "client@example.com", "subject": "Question",
	}, "Quick scope question.")
	writeQueueItem(t, v, "PAY_b2.md", map[string]string{
		"type": "payment", "from": "billing@vendor.com", "subject": "Invoice #7",
	}, "Please pay.")

	if err := processCmd.RunE(processCmd, []string{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.CountMarkdown(vault.FolderNeedsAction) != 0 {
		t.Error("queue must drain after --all")
	}
	if v.CountMarkdown(vault.FolderPendingApproval) != 1 {
		t.Error("payment item must generate an approval")
	}
}

func TestProcessCmd_AllWithFilenameRejected(t *testing.T) {
	setupCLI(t)
	origAll := processAll
	defer func() { processAll = origAll }()
	processAll = true

	err := processCmd.RunE(processCmd, []string{"EMAIL_a1.md"})
	if err == nil {
		t.Fatal("expected error combining --all with a filename")
	}
}

func TestProcessCmd_NoArgsNoAll(t *testing.T) {
	setupCLI(t)
	origAll := processAll
	defer func() { processAll = origAll }()
	processAll = false

	err := processCmd.RunE(processCmd, []string{})
	if err == nil {
		t.Fatal("expected error without a filename or --all")
	}
}

func TestRecoverCmd(t *testing.T) {
	v := setupCLI(t)

	// An item stuck in In_Progress without a plan stays put; recover
	// reports nothing.
	if err := v.Write(vault.FolderInProgress, "EMAIL_stuck.md", "---\ntype: email\n---\nbody"); err != nil {
		t.Fatalf("seeding item: %v", err)
	}
	if err := recoverCmd.RunE(recoverCmd, []string{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.CountMarkdown(vault.FolderInProgress) != 1 {
		t.Error("item without a plan must stay in In_Progress")
	}
}
