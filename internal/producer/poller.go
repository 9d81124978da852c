package producer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/valter-silva-au/triagevault/internal/document"
	"github.com/valter-silva-au/triagevault/internal/triage"
	"github.com/valter-silva-au/triagevault/internal/vault"
)

// MailMessage is one inbound message fetched from a MailSource.
type MailMessage struct {
	ID      string
	Sender  string
	Subject string
	Snippet string
}

// MailSource fetches inbound messages from an external mailbox. The
// OAuth plumbing behind a concrete source is not this package's
// concern.
type MailSource interface {
	Fetch(ctx context.Context) ([]MailMessage, error)
}

// Poller periodically drains a MailSource into Needs_Action. Each poll
// cycle is isolated: a fetch failure is recorded and retried on the
// next interval.
type Poller struct {
	vault    *vault.Vault
	source   MailSource
	interval time.Duration
	dryRun   bool
	events   EventLogger
	seen     map[string]bool
}

// NewPoller creates a Poller. events may be nil.
func NewPoller(v *vault.Vault, source MailSource, interval time.Duration, dryRun bool, events EventLogger) *Poller {
	return &Poller{
		vault:    v,
		source:   source,
		interval: interval,
		dryRun:   dryRun,
		events:   events,
		seen:     make(map[string]bool),
	}
}

func (p *Poller) logEvent(eventType string, data map[string]any) {
	if p.events == nil {
		return
	}
	_ = p.events.LogEvent(eventType, data)
}

// Run polls immediately and then on every interval until the context
// is cancelled.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.pollOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			p.pollOnce(ctx)
		}
	}
}

// pollOnce fetches and writes new messages. Returns the number of new
// items written.
func (p *Poller) pollOnce(ctx context.Context) int {
	messages, err := p.source.Fetch(ctx)
	if err != nil {
		p.logEvent("producer.poll_failed", map[string]any{"error": err.Error()})
		return 0
	}

	written := 0
	for _, msg := range messages {
		if msg.ID == "" || p.seen[msg.ID] {
			continue
		}
		filename := "EMAIL_" + msg.ID + ".md"
		if p.vault.Exists(vault.FolderNeedsAction, filename) {
			p.seen[msg.ID] = true
			continue
		}

		if p.dryRun {
			p.seen[msg.ID] = true
			p.logEvent("producer.mail_skipped", map[string]any{
				"file": filename, "dry_run": true,
			})
			continue
		}

		if err := p.writeMessage(filename, msg); err != nil {
			p.logEvent("producer.write_failed", map[string]any{
				"file": filename, "error": err.Error(),
			})
			continue
		}
		p.seen[msg.ID] = true
		written++
		p.logEvent("producer.mail_intake", map[string]any{"file": filename})
	}
	return written
}

func (p *Poller) writeMessage(filename string, msg MailMessage) error {
	priority := "medium"
	combined := strings.ToLower(msg.Subject + " " + msg.Snippet)
	for _, kw := range triage.PriorityKeywords {
		if strings.Contains(combined, kw) {
			priority = "high"
			break
		}
	}

	sender := msg.Sender
	if sender == "" {
		sender = "Unknown"
	}
	subject := msg.Subject
	if subject == "" {
		subject = "No Subject"
	}

	meta := map[string]string{
		"type":       "email",
		"from":       sender,
		"subject":    subject,
		"received":   time.Now().UTC().Format("2006-01-02T15:04:05Z"),
		"message_id": msg.ID,
		"priority":   priority,
		"status":     "pending",
	}

	body := fmt.Sprintf(`
## Email Summary
%s

## Suggested Actions
- [ ] Review and draft reply
- [ ] Forward to relevant party
- [ ] Archive after processing
`, msg.Snippet)

	return p.vault.Write(vault.FolderNeedsAction, filename, document.Render(meta, body))
}
