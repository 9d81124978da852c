// Package vault manages the on-disk layout of the triage vault: the fixed
// folder set, the core template files, and the primitive file operations
// (list, read, write, move) that the rest of the system builds on. The
// location of an item's file is a projection of its processing state, so
// all relocations funnel through Move to keep that projection consistent.
package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Folder names inside the vault. Needs_Action through Done carry item
// processing state; the remainder belong to producers and bookkeeping.
const (
	FolderInbox           = "Inbox"
	FolderNeedsAction     = "Needs_Action"
	FolderInProgress      = "In_Progress"
	FolderPlans           = "Plans"
	FolderPendingApproval = "Pending_Approval"
	FolderApproved        = "Approved"
	FolderRejected        = "Rejected"
	FolderDone            = "Done"
	FolderLogs            = "Logs"
	FolderBriefings       = "Briefings"
	FolderAccounting      = "Accounting"
)

// Folders lists every folder created on initialization, in display order.
var Folders = []string{
	FolderInbox,
	FolderNeedsAction,
	FolderInProgress,
	FolderPlans,
	FolderPendingApproval,
	FolderApproved,
	FolderRejected,
	FolderDone,
	FolderLogs,
	FolderBriefings,
	FolderAccounting,
}

// CoreFiles lists the files written at the vault root on initialization.
var CoreFiles = []string{
	"Dashboard.md",
	"Company_Handbook.md",
	"Business_Goals.md",
	".gitignore",
}

// Vault provides access to one vault directory.
type Vault struct {
	root string
}

// New returns a Vault rooted at the given directory. The directory does
// not need to exist yet; Init creates it.
func New(root string) *Vault {
	return &Vault{root: root}
}

// Root returns the vault's root directory.
func (v *Vault) Root() string {
	return v.root
}

// Dir returns the absolute path of a named folder.
func (v *Vault) Dir(folder string) string {
	return filepath.Join(v.root, folder)
}

// Path returns the absolute path of a file inside a named folder.
func (v *Vault) Path(folder, filename string) string {
	return filepath.Join(v.root, folder, filename)
}

// Exists reports whether the named file is present in the given folder.
func (v *Vault) Exists(folder, filename string) bool {
	_, err := os.Stat(v.Path(folder, filename))
	return err == nil
}

// ListMarkdown returns the names of all .md files in a folder, sorted by
// name. A missing folder is treated as empty, not as an error.
func (v *Vault) ListMarkdown(folder string) ([]string, error) {
	entries, err := os.ReadDir(v.Dir(folder))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing %s: %w", folder, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// CountMarkdown returns the number of .md files in a folder; a missing
// folder counts as zero.
func (v *Vault) CountMarkdown(folder string) int {
	names, err := v.ListMarkdown(folder)
	if err != nil {
		return 0
	}
	return len(names)
}

// Read returns the contents of a document.
func (v *Vault) Read(folder, filename string) (string, error) {
	data, err := os.ReadFile(v.Path(folder, filename))
	if err != nil {
		return "", fmt.Errorf("reading %s/%s: %w", folder, filename, err)
	}
	return string(data), nil
}

// Write stores a document, creating the folder if needed.
func (v *Vault) Write(folder, filename, content string) error {
	dir := v.Dir(folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", folder, err)
	}
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s/%s: %w", folder, filename, err)
	}
	return nil
}

// Move relocates a document between folders via rename, which is atomic
// within a single volume. The destination folder is created if needed.
func (v *Vault) Move(fromFolder, toFolder, filename string) error {
	if err := os.MkdirAll(v.Dir(toFolder), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", toFolder, err)
	}
	src := v.Path(fromFolder, filename)
	dst := v.Path(toFolder, filename)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s from %s to %s: %w", filename, fromFolder, toFolder, err)
	}
	return nil
}

// ModTime returns a document's modification time in UTC.
func (v *Vault) ModTime(folder, filename string) (time.Time, error) {
	info, err := os.Stat(v.Path(folder, filename))
	if err != nil {
		return time.Time{}, fmt.Errorf("stat %s/%s: %w", folder, filename, err)
	}
	return info.ModTime().UTC(), nil
}
