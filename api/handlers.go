/*
handlers.go - HTTP API handlers for the attribution engine

PURPOSE:
  Exposes the attribution engine via REST API. Handles HTTP
  request/response, JSON serialization, row validation, and delegates
  the actual math to the report builder.

ENDPOINTS:
  Ingestion:
    POST   /api/time-logs            Ingest a time-log entry
    POST   /api/assignments          Upsert an employee assignment
    POST   /api/clients              Upsert a client
    POST   /api/candidates           Ingest a hired candidate

  Reports:
    GET    /api/reports/attribution?start=&end=   Full report (both tracks)
    GET    /api/reports/projects/{id}?start=&end= One project's labor rollup
    GET    /api/reports/clients/{id}?start=&end=  One client's rollup
    GET    /api/candidates?start=&end=            Candidates with profit annotation

  Configuration:
    GET    /api/config               Current engine constants
    PUT    /api/config               Replace engine constants

  Scenarios:
    GET    /api/scenarios            List demo scenarios
    POST   /api/scenarios/load       Load a demo scenario

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input (negative amounts rejected with 400)
  3. Load pre-filtered rows from the store
  4. Build the report (pure computation)
  5. Serialize response

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input, inverted windows
  - 404: Unknown project/client/scenario
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/warp/attribution-engine/engine"
	"github.com/warp/attribution-engine/factory"
	"github.com/warp/attribution-engine/labor"
	"github.com/warp/attribution-engine/placement"
	"github.com/warp/attribution-engine/report"
	"github.com/warp/attribution-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store *sqlite.Store

	// Engine config is replaceable at runtime via PUT /api/config.
	mu  sync.RWMutex
	cfg engine.Config

	currentScenario string
}

// NewHandler creates a new handler with the given store and engine config.
func NewHandler(store *sqlite.Store, cfg engine.Config) *Handler {
	return &Handler{Store: store, cfg: cfg}
}

// Config returns the current engine configuration.
func (h *Handler) Config() engine.Config {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cfg
}

// =============================================================================
// INGESTION HANDLERS
// =============================================================================

// CreateTimeLog ingests a time-log entry.
func (h *Handler) CreateTimeLog(w http.ResponseWriter, r *http.Request) {
	var req CreateTimeLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	entry := labor.TimeLogEntry{
		ID:         orNewID(req.ID),
		EmployeeID: req.EmployeeID,
		Date:       date,
		Approved:   req.Approved,
		Projects:   make([]labor.ProjectHours, len(req.Projects)),
	}
	for i, p := range req.Projects {
		entry.Projects[i] = labor.ProjectHours{
			ProjectID: p.ProjectID,
			Hours:     decimal.NewFromFloat(p.Hours),
		}
	}

	if err := entry.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid time log", err)
		return
	}

	if err := h.Store.SaveTimeLog(r.Context(), entry); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save time log", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": entry.ID})
}

// CreateAssignment upserts an employee assignment.
func (h *Handler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	var req CreateAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if req.EmployeeID == "" || req.ProjectID == "" {
		writeError(w, http.StatusBadRequest, "employee_id and project_id are required", nil)
		return
	}

	a := labor.EmployeeAssignment{
		ID:             orNewID(req.ID),
		EmployeeID:     req.EmployeeID,
		ProjectID:      req.ProjectID,
		ClientID:       req.ClientID,
		ClientBilling:  decimal.NewFromFloat(req.ClientBilling),
		BillingType:    engine.Periodicity(req.BillingType),
		ClientCurrency: engine.Currency(req.ClientCurrency),
		Salary:         decimal.NewFromFloat(req.Salary),
		SalaryType:     engine.Periodicity(req.SalaryType),
		SalaryCurrency: engine.Currency(req.SalaryCurrency),
		WorkingHours:   decimal.NewFromFloat(req.WorkingHours),
		WorkingDays:    engine.WorkingDaysConfig(req.WorkingDays),
	}

	if err := a.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid assignment", err)
		return
	}

	if err := h.Store.SaveAssignment(r.Context(), a); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save assignment", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": a.ID})
}

// CreateClient upserts a client's commission configuration.
func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	c := placement.Client{
		ID:              orNewID(req.ID),
		Name:            req.Name,
		Currency:        engine.Currency(req.Currency),
		CommissionType:  placement.CommissionType(req.CommissionType),
		CommissionValue: decimal.NewFromFloat(req.CommissionValue),
	}

	if err := c.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid client", err)
		return
	}

	if err := h.Store.SaveClient(r.Context(), c); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save client", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": c.ID})
}

// CreateCandidate ingests a hired candidate.
func (h *Handler) CreateCandidate(w http.ResponseWriter, r *http.Request) {
	var req CreateCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	joiningDate, err := parseDate(req.JoiningDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid joining_date format (use YYYY-MM-DD)", err)
		return
	}

	c := placement.Candidate{
		ID:              orNewID(req.ID),
		Name:            req.Name,
		ClientID:        req.ClientID,
		CTC:             req.CTC,
		AccrualCTC:      req.AccrualCTC,
		JobTypeCategory: placement.JobCategory(req.JobTypeCategory),
		JoiningDate:     joiningDate,
	}

	if err := h.Store.SaveCandidate(r.Context(), c); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save candidate", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": c.ID})
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// GetAttributionReport returns the full report for a date window.
func (h *Handler) GetAttributionReport(w http.ResponseWriter, r *http.Request) {
	window, ok := h.parseWindow(w, r)
	if !ok {
		return
	}

	rep, err := h.buildReport(r.Context(), window)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build report", err)
		return
	}

	writeJSON(w, http.StatusOK, toReportDTO(window, rep))
}

// GetProjectReport returns the labor rollup for one project.
func (h *Handler) GetProjectReport(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "id")
	window, ok := h.parseWindow(w, r)
	if !ok {
		return
	}

	rep, err := h.buildReport(r.Context(), window)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build report", err)
		return
	}

	st, found := rep.ByProject[projectID]
	if !found {
		// Distinguish "no activity in window" from "no such project".
		known, err := h.projectKnown(r.Context(), projectID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to look up project", err)
			return
		}
		if !known {
			writeError(w, http.StatusNotFound, "Project not found", nil)
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"project_id": projectID,
		"start":      window.Start.Format("2006-01-02"),
		"end":        window.End.Format("2006-01-02"),
		"totals":     toSubtotalDTO(st),
		"warnings":   warningStrings(rep.Warnings),
	})
}

// GetClientReport returns the combined labor + placement rollup for one client.
func (h *Handler) GetClientReport(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "id")
	window, ok := h.parseWindow(w, r)
	if !ok {
		return
	}

	client, err := h.Store.GetClient(r.Context(), clientID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to look up client", err)
		return
	}
	if client == nil {
		writeError(w, http.StatusNotFound, "Client not found", nil)
		return
	}

	rep, err := h.buildReport(r.Context(), window)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build report", err)
		return
	}

	var candidates []CandidateProfitDTO
	for _, cp := range rep.Candidates {
		if cp.Candidate.ClientID == clientID {
			candidates = append(candidates, toCandidateDTO(cp))
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"client_id":  clientID,
		"start":      window.Start.Format("2006-01-02"),
		"end":        window.End.Format("2006-01-02"),
		"totals":     toSubtotalDTO(rep.ByClient[clientID]),
		"candidates": candidates,
		"warnings":   warningStrings(rep.Warnings),
	})
}

// ListCandidates returns candidates in the window with profit annotations.
func (h *Handler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	window, ok := h.parseWindow(w, r)
	if !ok {
		return
	}

	rep, err := h.buildReport(r.Context(), window)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build report", err)
		return
	}

	writeJSON(w, http.StatusOK, toCandidateDTOs(rep.Candidates))
}

func (h *Handler) buildReport(ctx context.Context, window engine.Window) (report.Report, error) {
	assignments, err := h.Store.ListAssignments(ctx)
	if err != nil {
		return report.Report{}, err
	}
	logs, err := h.Store.ListTimeLogsInRange(ctx, window)
	if err != nil {
		return report.Report{}, err
	}
	clients, err := h.Store.ListClients(ctx)
	if err != nil {
		return report.Report{}, err
	}
	candidates, err := h.Store.ListCandidatesJoinedInRange(ctx, window)
	if err != nil {
		return report.Report{}, err
	}

	return report.Build(report.Input{
		Config:      h.Config(),
		Assignments: assignments,
		TimeLogs:    logs,
		Clients:     clients,
		Candidates:  candidates,
	}), nil
}

func (h *Handler) projectKnown(ctx context.Context, projectID string) (bool, error) {
	assignments, err := h.Store.ListAssignments(ctx)
	if err != nil {
		return false, err
	}
	for _, a := range assignments {
		if a.ProjectID == projectID {
			return true, nil
		}
	}
	return false, nil
}

func (h *Handler) parseWindow(w http.ResponseWriter, r *http.Request) (engine.Window, bool) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")
	if startStr == "" || endStr == "" {
		writeError(w, http.StatusBadRequest, "start and end query parameters are required (YYYY-MM-DD)", nil)
		return engine.Window{}, false
	}

	start, err := parseDate(startStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start date (use YYYY-MM-DD)", err)
		return engine.Window{}, false
	}
	end, err := parseDate(endStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end date (use YYYY-MM-DD)", err)
		return engine.Window{}, false
	}

	window, err := engine.NewWindow(start, end)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid window", err)
		return engine.Window{}, false
	}
	return window, true
}

// =============================================================================
// CONFIG HANDLERS
// =============================================================================

// GetConfig returns the current engine constants.
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, factory.ToJSON(h.Config()))
}

// PutConfig replaces the engine constants.
func (h *Handler) PutConfig(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read request body", err)
		return
	}

	cfg, err := factory.ParseConfig(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid engine configuration", err)
		return
	}

	h.mu.Lock()
	h.cfg = cfg
	h.mu.Unlock()

	writeJSON(w, http.StatusOK, factory.ToJSON(cfg))
}

// =============================================================================
// ADMIN HANDLERS
// =============================================================================

// ResetDatabase clears all data. Development and demo use only.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.currentScenario = ""
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

func orNewID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}
