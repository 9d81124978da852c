package producer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/valter-silva-au/triagevault/internal/vault"
)

// EventLogger records producer events. A nil logger disables recording.
type EventLogger interface {
	LogEvent(eventType string, data map[string]any) error
}

// InboxWatcher turns files dropped into Inbox/ into file_intake items
// in Needs_Action.
type InboxWatcher struct {
	vault  *vault.Vault
	dryRun bool
	events EventLogger
	now    func() time.Time
}

// NewInboxWatcher creates an InboxWatcher. events may be nil.
func NewInboxWatcher(v *vault.Vault, dryRun bool, events EventLogger) *InboxWatcher {
	return &InboxWatcher{
		vault:  v,
		dryRun: dryRun,
		events: events,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (w *InboxWatcher) logEvent(eventType string, data map[string]any) {
	if w.events == nil {
		return
	}
	_ = w.events.LogEvent(eventType, data)
}

// Run watches the Inbox folder until the context is cancelled. Watch
// errors are recorded and do not stop the loop.
func (w *InboxWatcher) Run(ctx context.Context) error {
	inbox := w.vault.Dir(vault.FolderInbox)
	if err := os.MkdirAll(inbox, 0o755); err != nil {
		return fmt.Errorf("creating inbox: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting inbox watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(inbox); err != nil {
		return fmt.Errorf("watching %s: %w", inbox, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				w.handleFile(event.Name)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logEvent("producer.watch_error", map[string]any{"error": err.Error()})
		}
	}
}

// handleFile writes the FILE_<stem>.md intake item for one dropped
// file. Existing targets are skipped, so re-delivered events are
// harmless.
func (w *InboxWatcher) handleFile(path string) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return
	}

	name := filepath.Base(path)
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	safeStem := strings.ReplaceAll(stem, " ", "_")
	target := "FILE_" + safeStem + ".md"

	if w.vault.Exists(vault.FolderNeedsAction, target) {
		return
	}

	timestamp := w.now().Format("2006-01-02T15:04:05Z")
	content := fmt.Sprintf(`---
type: file_intake
source: inbox
original_name: %s
received: %s
priority: medium
status: pending
---

## File Received
- **Name**: %s
- **Size**: %d bytes
- **Received**: %s

## Suggested Actions
- [ ] Review file contents
- [ ] Route to appropriate folder
- [ ] Archive or delete after processing
`, name, timestamp, name, info.Size(), timestamp)

	if w.dryRun {
		w.logEvent("producer.file_skipped", map[string]any{
			"file": name, "target": target, "dry_run": true,
		})
		return
	}

	if err := w.vault.Write(vault.FolderNeedsAction, target, content); err != nil {
		w.logEvent("producer.write_failed", map[string]any{
			"file": name, "error": err.Error(),
		})
		return
	}
	w.logEvent("producer.file_intake", map[string]any{
		"file": name, "target": target,
	})
}
