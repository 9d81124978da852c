// Package mcp provides an MCP (Model Context Protocol) server that exposes
// triage operations as MCP tools for AI assistants.
package mcp

import (
	"context"
	"fmt"
	"time"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/valter-silva-au/triagevault/internal/observability"
	"github.com/valter-silva-au/triagevault/internal/triage"
	"github.com/valter-silva-au/triagevault/internal/vault"
	"github.com/valter-silva-au/triagevault/pkg/models"
)

// Server wraps the triage engine and exposes it as MCP tools.
type Server struct {
	server      *gomcp.Server
	vault       *vault.Vault
	router      *triage.Router
	metrics     observability.Aggregator
	alertEngine observability.AlertEngine
}

// NewServer creates a new MCP server over the shared engine components.
// metrics and alertEngine may be nil if observability is disabled.
func NewServer(v *vault.Vault, router *triage.Router, metrics observability.Aggregator, alertEngine observability.AlertEngine, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{
		vault:       v,
		router:      router,
		metrics:     metrics,
		alertEngine: alertEngine,
	}

	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "tvault", Version: version},
		nil,
	)

	s.registerTools()

	return s
}

// Run starts the MCP server on stdio, blocking until the client
// disconnects or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type listPendingInput struct{}

type itemOutput struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Type     string `json:"type"`
	Sender   string `json:"sender"`
	Subject  string `json:"subject"`
	Priority string `json:"priority"`
	Received string `json:"received,omitempty"`
	Snippet  string `json:"snippet,omitempty"`
}

type listPendingOutput struct {
	Items []itemOutput `json:"items"`
	Count int          `json:"count"`
}

type processItemInput struct {
	Filename string `json:"filename" jsonschema:"required,the item filename in Needs_Action (e.g. EMAIL_a1b2c3d4.md)"`
}

type processItemOutput struct {
	Message string `json:"message"`
}

type processAllInput struct{}

type processAllOutput struct {
	Processed int      `json:"processed"`
	Actions   []string `json:"actions"`
}

type listApprovalsInput struct{}

type approvalOutput struct {
	ID         string `json:"id"`
	Filename   string `json:"filename"`
	Action     string `json:"action"`
	SourceFile string `json:"source_file,omitempty"`
	Subject    string `json:"subject,omitempty"`
	Priority   string `json:"priority"`
	Reason     string `json:"reason,omitempty"`
	Created    string `json:"created,omitempty"`
	Expires    string `json:"expires,omitempty"`
}

type listApprovalsOutput struct {
	Approvals []approvalOutput `json:"approvals"`
	Count     int              `json:"count"`
}

type resolveApprovalInput struct {
	ApprovalID string `json:"approval_id" jsonschema:"required,the approval id or its APPROVAL_<id>.md filename stem"`
	Decision   string `json:"decision" jsonschema:"required,approve or reject"`
}

type resolveApprovalOutput struct {
	ApprovalFile string `json:"approval_file"`
	SourceFile   string `json:"source_file,omitempty"`
	SourceMoved  bool   `json:"source_moved"`
	Warning      string `json:"warning,omitempty"`
}

type getMetricsInput struct{}

type metricsOutput struct {
	NeedsAction     int      `json:"needs_action"`
	PendingApproval int      `json:"pending_approval"`
	DoneToday       int      `json:"done_today"`
	ActivePlans     int      `json:"active_plans"`
	MTDRevenue      string   `json:"mtd_revenue"`
	MonthlyTarget   string   `json:"monthly_target"`
	RecentActivity  []string `json:"recent_activity,omitempty"`
	AgentHealth     string   `json:"agent_health"`
}

type getAlertsInput struct{}

type alertOutput struct {
	ID          string `json:"id"`
	Condition   string `json:"condition"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	TriggeredAt string `json:"triggered_at"`
}

type getAlertsOutput struct {
	Alerts []alertOutput `json:"alerts"`
	Count  int           `json:"count"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "list_pending",
		Description: "List items waiting in Needs_Action, sorted by priority. Returns filename, sender, subject, and a body snippet per item.",
	}, s.handleListPending)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "process_item",
		Description: "Triage one Needs_Action item by filename: classify it, generate a plan, and move it to In_Progress (awaiting approval) or Done.",
	}, s.handleProcessItem)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "process_all",
		Description: "Triage every item in Needs_Action. Returns the per-item routing outcomes.",
	}, s.handleProcessAll)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "list_approvals",
		Description: "List approval requests waiting in Pending_Approval, including the reason each one needs sign-off.",
	}, s.handleListApprovals)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "resolve_approval",
		Description: "Approve or reject a pending approval by id. Approving moves the source item to Done; rejecting returns it to Needs_Action.",
	}, s.handleResolveApproval)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_metrics",
		Description: "Get the current vault metrics: pending counts, completions today, active plans, and month-to-date revenue.",
	}, s.handleGetMetrics)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_alerts",
		Description: "Evaluate and return active alerts (stale approvals, unprocessed items).",
	}, s.handleGetAlerts)
}

// --- Tool handlers ---

func (s *Server) handleListPending(_ context.Context, _ *gomcp.CallToolRequest, _ listPendingInput) (*gomcp.CallToolResult, listPendingOutput, error) {
	items, err := triage.ListPending(s.vault)
	if err != nil {
		return errorResult(fmt.Sprintf("listing pending items: %s", err)), listPendingOutput{}, nil
	}

	out := listPendingOutput{
		Items: make([]itemOutput, len(items)),
		Count: len(items),
	}
	for i, item := range items {
		out.Items[i] = itemToOutput(item)
	}
	return nil, out, nil
}

func (s *Server) handleProcessItem(_ context.Context, _ *gomcp.CallToolRequest, input processItemInput) (*gomcp.CallToolResult, processItemOutput, error) {
	if input.Filename == "" {
		return errorResult("filename is required"), processItemOutput{}, nil
	}

	message, err := s.router.Process(input.Filename)
	if err != nil {
		return errorResult(fmt.Sprintf("processing %s: %s", input.Filename, err)), processItemOutput{}, nil
	}
	return nil, processItemOutput{Message: message}, nil
}

func (s *Server) handleProcessAll(_ context.Context, _ *gomcp.CallToolRequest, _ processAllInput) (*gomcp.CallToolResult, processAllOutput, error) {
	result, err := s.router.ProcessAll()
	if err != nil {
		return errorResult(fmt.Sprintf("processing queue: %s", err)), processAllOutput{}, nil
	}
	return nil, processAllOutput{Processed: result.Processed, Actions: result.Actions}, nil
}

func (s *Server) handleListApprovals(_ context.Context, _ *gomcp.CallToolRequest, _ listApprovalsInput) (*gomcp.CallToolResult, listApprovalsOutput, error) {
	approvals, err := triage.ListApprovals(s.vault)
	if err != nil {
		return errorResult(fmt.Sprintf("listing approvals: %s", err)), listApprovalsOutput{}, nil
	}

	out := listApprovalsOutput{
		Approvals: make([]approvalOutput, len(approvals)),
		Count:     len(approvals),
	}
	for i, a := range approvals {
		out.Approvals[i] = approvalOutput{
			ID:         a.ID,
			Filename:   a.Filename,
			Action:     a.Action,
			SourceFile: a.SourceFile,
			Subject:    a.Subject,
			Priority:   string(a.Priority),
			Reason:     a.Reason,
			Created:    a.Created,
			Expires:    a.Expires,
		}
	}
	return nil, out, nil
}

func (s *Server) handleResolveApproval(_ context.Context, _ *gomcp.CallToolRequest, input resolveApprovalInput) (*gomcp.CallToolResult, resolveApprovalOutput, error) {
	if input.ApprovalID == "" {
		return errorResult("approval_id is required"), resolveApprovalOutput{}, nil
	}

	var decision models.Decision
	switch input.Decision {
	case "approve":
		decision = models.DecisionApprove
	case "reject":
		decision = models.DecisionReject
	default:
		return errorResult(fmt.Sprintf("invalid decision %q: must be approve or reject", input.Decision)), resolveApprovalOutput{}, nil
	}

	result, err := s.router.Resolve(input.ApprovalID, decision)
	if err != nil {
		return errorResult(fmt.Sprintf("resolving approval %s: %s", input.ApprovalID, err)), resolveApprovalOutput{}, nil
	}
	return nil, resolveApprovalOutput{
		ApprovalFile: result.ApprovalFile,
		SourceFile:   result.SourceFile,
		SourceMoved:  result.SourceMoved,
		Warning:      result.Warning,
	}, nil
}

func (s *Server) handleGetMetrics(_ context.Context, _ *gomcp.CallToolRequest, _ getMetricsInput) (*gomcp.CallToolResult, metricsOutput, error) {
	if s.metrics == nil {
		return errorResult("metrics aggregator not available (observability may be disabled)"), metricsOutput{}, nil
	}

	m, err := s.metrics.Compute()
	if err != nil {
		return errorResult(fmt.Sprintf("computing metrics: %s", err)), metricsOutput{}, nil
	}
	return nil, metricsOutput{
		NeedsAction:     m.NeedsAction,
		PendingApproval: m.PendingApproval,
		DoneToday:       m.DoneToday,
		ActivePlans:     m.ActivePlans,
		MTDRevenue:      m.MTDRevenue,
		MonthlyTarget:   m.MonthlyTarget,
		RecentActivity:  m.RecentActivity,
		AgentHealth:     m.AgentHealth,
	}, nil
}

func (s *Server) handleGetAlerts(_ context.Context, _ *gomcp.CallToolRequest, _ getAlertsInput) (*gomcp.CallToolResult, getAlertsOutput, error) {
	if s.alertEngine == nil {
		return errorResult("alert engine not available (observability may be disabled)"), getAlertsOutput{}, nil
	}

	alerts, err := s.alertEngine.Evaluate()
	if err != nil {
		return errorResult(fmt.Sprintf("evaluating alerts: %s", err)), getAlertsOutput{}, nil
	}

	out := getAlertsOutput{
		Alerts: make([]alertOutput, len(alerts)),
		Count:  len(alerts),
	}
	for i, a := range alerts {
		out.Alerts[i] = alertOutput{
			ID:          a.ID,
			Condition:   a.Condition,
			Severity:    string(a.Severity),
			Message:     a.Message,
			TriggeredAt: a.TriggeredAt.Format(time.RFC3339),
		}
	}
	return nil, out, nil
}

// --- Helpers ---

func itemToOutput(item *models.ActionItem) itemOutput {
	return itemOutput{
		ID:       item.ID,
		Filename: item.Filename,
		Type:     string(item.Type),
		Sender:   item.Sender,
		Subject:  item.Subject,
		Priority: string(item.Priority),
		Received: item.Received,
		Snippet:  item.Snippet,
	}
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}
