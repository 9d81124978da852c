package vault

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit_CreatesFoldersAndCoreFiles(t *testing.T) {
	dir := t.TempDir()
	v := New(filepath.Join(dir, "vault"))

	msg, err := v.Init("Alex", "Acme Studio")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(msg, "11 folders") || !strings.Contains(msg, "4 core files") {
		t.Fatalf("unexpected message: %q", msg)
	}

	for _, folder := range Folders {
		info, err := os.Stat(v.Dir(folder))
		if err != nil || !info.IsDir() {
			t.Fatalf("folder %s not created: %v", folder, err)
		}
	}
	for _, name := range CoreFiles {
		if _, err := os.Stat(v.Path("", name)); err != nil {
			t.Fatalf("core file %s not created: %v", name, err)
		}
	}

	data, _ := os.ReadFile(v.Path("", "Company_Handbook.md"))
	content := string(data)
	if !strings.Contains(content, "Alex") {
		t.Fatal("handbook must carry the owner name")
	}
	if !strings.Contains(content, "Acme Studio") {
		t.Fatal("handbook must carry the business name")
	}
}

func TestInit_Idempotent(t *testing.T) {
	v := New(t.TempDir())

	if _, err := v.Init("Alex", "Acme"); err != nil {
		t.Fatalf("first init: %v", err)
	}

	// Existing working documents survive a re-init.
	if err := v.Write(FolderNeedsAction, "item.md", "content"); err != nil {
		t.Fatalf("writing item: %v", err)
	}

	// Core files go back to their templates on re-init.
	if err := v.Write("", "Dashboard.md", "scribbles"); err != nil {
		t.Fatalf("editing dashboard: %v", err)
	}

	if _, err := v.Init("Alex", "Acme"); err != nil {
		t.Fatalf("second init: %v", err)
	}
	if !v.Exists(FolderNeedsAction, "item.md") {
		t.Fatal("re-init must not remove working documents")
	}
	content, err := v.Read("", "Dashboard.md")
	if err != nil {
		t.Fatalf("reading dashboard: %v", err)
	}
	if content == "scribbles" {
		t.Fatal("re-init must rewrite core files from templates")
	}
}

func TestStatus(t *testing.T) {
	v := New(t.TempDir())
	if _, err := v.Init("Alex", "Acme"); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := v.Write(FolderNeedsAction, "a.md", "x"); err != nil {
		t.Fatalf("writing: %v", err)
	}
	if err := v.Write(FolderNeedsAction, "b.md", "x"); err != nil {
		t.Fatalf("writing: %v", err)
	}

	status := v.Status()
	if !status.Initialized {
		t.Fatal("vault must report initialized")
	}
	if len(status.Folders) != len(Folders) {
		t.Fatalf("expected %d folder entries, got %d", len(Folders), len(status.Folders))
	}
	for _, f := range status.Folders {
		if f.Name == FolderNeedsAction && f.Count != 2 {
			t.Fatalf("expected 2 documents in %s, got %d", FolderNeedsAction, f.Count)
		}
	}
	for _, cf := range status.CoreFiles {
		if !cf.Exists {
			t.Fatalf("core file %s must exist after init", cf.Name)
		}
	}
}

func TestStatus_Uninitialized(t *testing.T) {
	v := New(filepath.Join(t.TempDir(), "missing"))

	status := v.Status()
	if status.Initialized {
		t.Fatal("missing vault must not report initialized")
	}
}

func TestListMarkdown(t *testing.T) {
	v := New(t.TempDir())

	if err := v.Write(FolderDone, "b.md", "x"); err != nil {
		t.Fatalf("writing: %v", err)
	}
	if err := v.Write(FolderDone, "a.md", "x"); err != nil {
		t.Fatalf("writing: %v", err)
	}
	if err := v.Write(FolderDone, "notes.txt", "x"); err != nil {
		t.Fatalf("writing: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(v.Dir(FolderDone), "subdir.md"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	names, err := v.ListMarkdown(FolderDone)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 2 || names[0] != "a.md" || names[1] != "b.md" {
		t.Fatalf("expected sorted [a.md b.md], got %v", names)
	}
}

func TestListMarkdown_MissingFolder(t *testing.T) {
	v := New(t.TempDir())

	names, err := v.ListMarkdown(FolderInbox)
	if err != nil {
		t.Fatalf("missing folder must not be an error: %v", err)
	}
	if names != nil {
		t.Fatalf("expected nil, got %v", names)
	}
}

func TestReadWriteMove(t *testing.T) {
	v := New(t.TempDir())

	if err := v.Write(FolderNeedsAction, "item.md", "hello"); err != nil {
		t.Fatalf("writing: %v", err)
	}

	content, err := v.Read(FolderNeedsAction, "item.md")
	if err != nil {
		t.Fatalf("reading: %v", err)
	}
	if content != "hello" {
		t.Fatalf("unexpected content: %q", content)
	}

	if err := v.Move(FolderNeedsAction, FolderDone, "item.md"); err != nil {
		t.Fatalf("moving: %v", err)
	}
	if v.Exists(FolderNeedsAction, "item.md") {
		t.Fatal("source must be gone after move")
	}

	content, err = v.Read(FolderDone, "item.md")
	if err != nil {
		t.Fatalf("reading after move: %v", err)
	}
	if content != "hello" {
		t.Fatalf("content changed during move: %q", content)
	}
}

func TestMove_OverwritesDestination(t *testing.T) {
	v := New(t.TempDir())

	if err := v.Write(FolderNeedsAction, "item.md", "rejected copy"); err != nil {
		t.Fatalf("writing source: %v", err)
	}
	if err := v.Write(FolderDone, "item.md", "stale copy"); err != nil {
		t.Fatalf("writing destination: %v", err)
	}

	if err := v.Move(FolderNeedsAction, FolderDone, "item.md"); err != nil {
		t.Fatalf("moving: %v", err)
	}

	content, err := v.Read(FolderDone, "item.md")
	if err != nil {
		t.Fatalf("reading after move: %v", err)
	}
	if content != "rejected copy" {
		t.Fatalf("moved file must replace the destination, got %q", content)
	}
	if v.Exists(FolderNeedsAction, "item.md") {
		t.Fatal("source must be gone after move")
	}
}

func TestRead_MissingFile(t *testing.T) {
	v := New(t.TempDir())

	_, err := v.Read(FolderDone, "ghost.md")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("error must wrap os.ErrNotExist, got %v", err)
	}
}

func TestMove_MissingFile(t *testing.T) {
	v := New(t.TempDir())

	err := v.Move(FolderNeedsAction, FolderDone, "ghost.md")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestCountMarkdown(t *testing.T) {
	v := New(t.TempDir())

	if got := v.CountMarkdown(FolderDone); got != 0 {
		t.Fatalf("missing folder must count zero, got %d", got)
	}
	if err := v.Write(FolderDone, "a.md", "x"); err != nil {
		t.Fatalf("writing: %v", err)
	}
	if got := v.CountMarkdown(FolderDone); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
}

func TestModTime(t *testing.T) {
	v := New(t.TempDir())
	if err := v.Write(FolderDone, "a.md", "x"); err != nil {
		t.Fatalf("writing: %v", err)
	}

	ts, err := v.ModTime(FolderDone, "a.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ts.IsZero() {
		t.Fatal("modification time must be set")
	}
	if ts.Location().String() != "UTC" {
		t.Fatalf("modification time must be UTC, got %s", ts.Location())
	}
}

func TestRenderTemplate(t *testing.T) {
	out := renderTemplate("{{OWNER}} runs {{BUSINESS}} as of {{TIMESTAMP}}", "Alex", "Acme")
	if strings.Contains(out, "{{") {
		t.Fatalf("placeholders left unrendered: %q", out)
	}
	if !strings.HasPrefix(out, "Alex runs Acme as of ") {
		t.Fatalf("unexpected render: %q", out)
	}
	if !strings.HasSuffix(out, " UTC") {
		t.Fatalf("timestamp must be UTC formatted: %q", out)
	}
}
