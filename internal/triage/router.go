package triage

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/valter-silva-au/triagevault/internal/document"
	"github.com/valter-silva-au/triagevault/internal/vault"
	"github.com/valter-silva-au/triagevault/pkg/models"
)

// EventLogger records routing events for observability. A nil logger is
// valid and disables event recording.
type EventLogger interface {
	LogEvent(eventType string, data map[string]any) error
}

// Router owns every folder transition for items and approvals. The
// classifier and generator only read and write content; relocation is
// the router's job alone.
type Router struct {
	vault  *vault.Vault
	gen    *Generator
	events EventLogger
}

// NewRouter creates a Router over the given vault. events may be nil.
func NewRouter(v *vault.Vault, events EventLogger) *Router {
	return &Router{
		vault:  v,
		gen:    NewGenerator(v),
		events: events,
	}
}

func (r *Router) logEvent(eventType string, data map[string]any) {
	if r.events == nil {
		return
	}
	// Routing must not fail because the event log is unwritable.
	_ = r.events.LogEvent(eventType, data)
}

// Process classifies one item from Needs_Action, writes its plan (and
// approval request when required), and moves the item file to its next
// folder. The move is the last, decisive step: re-running after a crash
// mid-sequence is safe because only the move removes the item from the
// queue. Returns a human-readable action description, or ErrNotFound if
// the file is absent (first caller wins on concurrent requests).
func (r *Router) Process(filename string) (string, error) {
	raw, err := r.vault.Read(vault.FolderNeedsAction, filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("processing %s: %w", filename, ErrNotFound)
		}
		return "", err
	}

	meta, body := document.Parse(raw)
	item := ItemFromDocument(filename, raw)
	c := Classify(meta, body)

	plan, err := r.gen.WritePlan(item, c)
	if err != nil {
		return "", err
	}

	if c.NeedsApproval {
		approval, err := r.gen.WriteApproval(item, c.Reason)
		if err != nil {
			return "", err
		}
		if err := r.vault.Move(vault.FolderNeedsAction, vault.FolderInProgress, filename); err != nil {
			return "", err
		}
		r.logEvent("item.processed", map[string]any{
			"file": filename, "plan": plan.Filename,
			"approval": approval.Filename, "reason": c.Reason,
			"priority": string(c.Priority),
		})
		return fmt.Sprintf("Routed to approval (%s): %s. Plan: %s. Moved to In_Progress.",
			approval.Filename, c.Reason, plan.Filename), nil
	}

	if err := r.vault.Move(vault.FolderNeedsAction, vault.FolderDone, filename); err != nil {
		return "", err
	}
	r.logEvent("item.processed", map[string]any{
		"file": filename, "plan": plan.Filename,
		"priority": string(c.Priority),
	})
	return fmt.Sprintf("Completed. Plan: %s. Moved to Done.", plan.Filename), nil
}

// ProcessAll processes every item currently in Needs_Action. Failures
// are reported per item and do not abort the batch.
func (r *Router) ProcessAll() (*models.ProcessResult, error) {
	names, err := r.vault.ListMarkdown(vault.FolderNeedsAction)
	if err != nil {
		return nil, err
	}

	result := &models.ProcessResult{Processed: len(names)}
	for _, name := range names {
		action, err := r.Process(name)
		if err != nil {
			action = fmt.Sprintf("error: %v", err)
		}
		result.Actions = append(result.Actions, fmt.Sprintf("%s: %s", name, action))
	}
	return result, nil
}

// Resolve applies an approve/reject decision to a pending approval. The
// approval document moves to Approved or Rejected; the referenced source
// item cascades best-effort (Approved: In_Progress to Done; Rejected:
// In_Progress back to Needs_Action). When the source file is absent the
// approval still transitions and the result carries a warning instead of
// an error.
func (r *Router) Resolve(id string, decision models.Decision) (*models.ResolveResult, error) {
	approval, err := findApproval(r.vault, id)
	if err != nil {
		return nil, fmt.Errorf("resolving approval %s: %w", id, err)
	}

	dest := vault.FolderApproved
	itemDest := vault.FolderDone
	if decision == models.DecisionReject {
		dest = vault.FolderRejected
		itemDest = vault.FolderNeedsAction
	}

	if err := r.vault.Move(vault.FolderPendingApproval, dest, approval.Filename); err != nil {
		return nil, err
	}

	result := &models.ResolveResult{
		ApprovalFile: approval.Filename,
		SourceFile:   approval.SourceFile,
	}

	if approval.SourceFile != "" && r.vault.Exists(vault.FolderInProgress, approval.SourceFile) {
		if err := r.vault.Move(vault.FolderInProgress, itemDest, approval.SourceFile); err != nil {
			result.Warning = fmt.Sprintf("approval resolved but source move failed: %v", err)
		} else {
			result.SourceMoved = true
		}
	} else if approval.SourceFile != "" {
		result.Warning = fmt.Sprintf("approval resolved but source file %s was not in %s",
			approval.SourceFile, vault.FolderInProgress)
	}

	r.logEvent("approval.resolved", map[string]any{
		"id": approval.ID, "decision": string(decision),
		"source_moved": result.SourceMoved,
	})
	if result.Warning != "" {
		r.logEvent("approval.cascade_skipped", map[string]any{
			"id": approval.ID, "warning": result.Warning,
		})
	}

	return result, nil
}

// Recover finds items still sitting in Needs_Action whose plan was
// already written (a crash between plan write and file move) and
// re-runs only the move step, driven by the requires_approval decision
// recorded in the plan. The approval document is re-written if required
// and missing. Returns a description per recovered item.
func (r *Router) Recover() ([]string, error) {
	pending, err := r.vault.ListMarkdown(vault.FolderNeedsAction)
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		return nil, nil
	}

	plans, err := r.vault.ListMarkdown(vault.FolderPlans)
	if err != nil {
		return nil, err
	}

	// Index the recorded requires_approval decision per source file.
	decisions := make(map[string]bool)
	for _, planName := range plans {
		raw, err := r.vault.Read(vault.FolderPlans, planName)
		if err != nil {
			continue
		}
		meta, _ := document.Parse(raw)
		source := meta["source_file"]
		if source == "" {
			continue
		}
		decisions[source], _ = strconv.ParseBool(meta["requires_approval"])
	}

	var recovered []string
	for _, name := range pending {
		requiresApproval, ok := decisions[name]
		if !ok {
			continue
		}

		if requiresApproval {
			raw, err := r.vault.Read(vault.FolderNeedsAction, name)
			if err != nil {
				continue
			}
			meta, body := document.Parse(raw)
			item := ItemFromDocument(name, raw)
			if !r.vault.Exists(vault.FolderPendingApproval, ApprovalFilename(item.ID)) {
				c := Classify(meta, body)
				if _, err := r.gen.WriteApproval(item, c.Reason); err != nil {
					continue
				}
			}
			if err := r.vault.Move(vault.FolderNeedsAction, vault.FolderInProgress, name); err != nil {
				continue
			}
			recovered = append(recovered, fmt.Sprintf("%s: re-routed to In_Progress", name))
		} else {
			if err := r.vault.Move(vault.FolderNeedsAction, vault.FolderDone, name); err != nil {
				continue
			}
			recovered = append(recovered, fmt.Sprintf("%s: re-routed to Done", name))
		}
		r.logEvent("item.recovered", map[string]any{"file": name})
	}

	return recovered, nil
}
