package server

import (
	"net/http"

	"github.com/valter-silva-au/triagevault/internal/observability"
	"github.com/valter-silva-au/triagevault/internal/triage"
	"github.com/valter-silva-au/triagevault/pkg/models"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   s.clock().Format("2006-01-02T15:04:05Z"),
	})
}

func (s *Server) handleVaultStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.vault.Status())
}

type initRequest struct {
	Owner    string `json:"owner"`
	Business string `json:"business"`
}

func (s *Server) handleVaultInit(w http.ResponseWriter, r *http.Request) {
	req := initRequest{Owner: s.owner, Business: s.business}
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.Owner == "" {
			req.Owner = s.owner
		}
		if req.Business == "" {
			req.Business = s.business
		}
	}
	message, err := s.vault.Init(req.Owner, req.Business)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}

func (s *Server) handleListPending(w http.ResponseWriter, r *http.Request) {
	items, err := triage.ListPending(s.vault)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	if items == nil {
		items = []*models.ActionItem{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"count": len(items),
	})
}

type processRequest struct {
	Filename string `json:"filename"`
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	var req processRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Filename == "" {
		writeError(w, http.StatusBadRequest, "filename is required")
		return
	}
	message, err := s.router.Process(req.Filename)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"filename": req.Filename,
		"message":  message,
	})
}

func (s *Server) handleProcessAll(w http.ResponseWriter, r *http.Request) {
	result, err := s.router.ProcessAll()
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleListApprovals(w http.ResponseWriter, r *http.Request) {
	approvals, err := triage.ListApprovals(s.vault)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	if approvals == nil {
		approvals = []*models.Approval{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"approvals": approvals,
		"count":     len(approvals),
	})
}

func (s *Server) handleApprove(w http.ResponseWriter, r *http.Request) {
	s.resolveApproval(w, r, models.DecisionApprove)
}

func (s *Server) handleReject(w http.ResponseWriter, r *http.Request) {
	s.resolveApproval(w, r, models.DecisionReject)
}

func (s *Server) resolveApproval(w http.ResponseWriter, r *http.Request, decision models.Decision) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "approval id is required")
		return
	}
	result, err := s.router.Resolve(id, decision)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	m, ok := s.computeMetrics(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleDashboardRefresh(w http.ResponseWriter, r *http.Request) {
	m, ok := s.computeMetrics(w)
	if !ok {
		return
	}
	if err := observability.RefreshDashboard(s.vault, s.business, m); err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Dashboard refreshed",
		"metrics": m,
	})
}

func (s *Server) handleGetHandbook(w http.ResponseWriter, r *http.Request) {
	data, err := s.vault.ReadHandbook()
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

type handbookRequest struct {
	Content string `json:"content"`
}

func (s *Server) handlePutHandbook(w http.ResponseWriter, r *http.Request) {
	var req handbookRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Content == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}
	if err := s.vault.UpdateHandbook(req.Content); err != nil {
		s.writeEngineError(w, err)
		return
	}
	data, err := s.vault.ReadHandbook()
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) handleValidateHandbook(w http.ResponseWriter, r *http.Request) {
	data, err := s.vault.ReadHandbook()
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"validation":  data.Validation,
		"is_complete": data.IsComplete,
	})
}

type simulateEmailRequest struct {
	Sender   string `json:"sender"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	Type     string `json:"type"`
	Priority string `json:"priority"`
}

func (s *Server) handleSimulateEmail(w http.ResponseWriter, r *http.Request) {
	var req simulateEmailRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	itemType := models.ItemEmail
	if req.Type != "" {
		itemType = models.ParseItemType(req.Type)
		if itemType == models.ItemUnknown {
			writeError(w, http.StatusBadRequest, "unknown item type: "+req.Type)
			return
		}
	}
	priority := models.PriorityNormal
	if req.Priority != "" {
		switch models.Priority(req.Priority) {
		case models.PriorityHigh, models.PriorityMedium, models.PriorityNormal, models.PriorityLow:
			priority = models.Priority(req.Priority)
		default:
			writeError(w, http.StatusBadRequest, "unknown priority: "+req.Priority)
			return
		}
	}
	filename, err := s.simulator.SimulateEmail(req.Sender, req.Subject, req.Body, itemType, priority)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"filename": filename})
}

type simulateBatchRequest struct {
	Count int `json:"count"`
}

func (s *Server) handleSimulateBatch(w http.ResponseWriter, r *http.Request) {
	req := simulateBatchRequest{Count: 5}
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if req.Count < 1 || req.Count > 50 {
		writeError(w, http.StatusBadRequest, "count must be between 1 and 50")
		return
	}
	filenames, err := s.simulator.SimulateBatch(req.Count)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"filenames": filenames,
		"count":     len(filenames),
	})
}
