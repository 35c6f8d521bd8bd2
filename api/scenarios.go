/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	data for testing and demos. Each scenario creates assignments, time
	logs, clients, and candidates that demonstrate specific features.

AVAILABLE SCENARIOS:

	consulting-basic:   One employee, one project, LPA salary vs monthly billing
	multi-currency:     USD client billing against a base-currency salary
	placement-mix:      Internal, percentage, and fixed commission clients
	full-book:          Both tracks together across several months

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Create clients and assignments
 3. Add approved time logs across the demo window
 4. Add hired candidates with CTC strings

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "full-book"}

ADDING NEW SCENARIOS:
 1. Add to 'scenarios' slice with ID, name, description
 2. Create loader function: loadXxxScenario(ctx)
 3. Add case to LoadScenario handler

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: LoadScenario, ListScenarios handlers
  - report/report.go: The report these scenarios feed
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/attribution-engine/engine"
	"github.com/warp/attribution-engine/labor"
	"github.com/warp/attribution-engine/placement"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "consulting-basic",
		Name:        "Consulting Basic",
		Description: "One consultant on one project: LPA salary against monthly client billing",
		Category:    "labor",
	},
	{
		ID:          "multi-currency",
		Name:        "Multi-Currency",
		Description: "USD-billed client with base-currency salaries, normalization in action",
		Category:    "labor",
	},
	{
		ID:          "placement-mix",
		Name:        "Placement Mix",
		Description: "Hired candidates across internal cost-plus, percentage, and fixed commission clients",
		Category:    "placement",
	},
	{
		ID:          "full-book",
		Name:        "Full Book",
		Description: "Labor and placement tracks together across several months",
		Category:    "combined",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	if h.currentScenario == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	for _, s := range scenarios {
		if s.ID == h.currentScenario {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}

	writeJSON(w, http.StatusOK, ScenarioDTO{
		ID:          h.currentScenario,
		Name:        h.currentScenario,
		Description: "Currently loaded scenario",
	})
}

// LoadScenario loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ScenarioID string `json:"scenario_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()

	// Reset first
	if err := h.Store.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.currentScenario = ""

	var err error
	switch req.ScenarioID {
	case "consulting-basic":
		err = h.loadConsultingBasicScenario(ctx)
	case "multi-currency":
		err = h.loadMultiCurrencyScenario(ctx)
	case "placement-mix":
		err = h.loadPlacementMixScenario(ctx)
	case "full-book":
		err = h.loadFullBookScenario(ctx)
	default:
		writeError(w, http.StatusBadRequest, "Unknown scenario", nil)
		return
	}

	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load scenario: %v", err), err)
		return
	}

	h.currentScenario = req.ScenarioID

	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "scenario": req.ScenarioID})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

func (h *Handler) loadConsultingBasicScenario(ctx context.Context) error {
	year := time.Now().Year()

	client := placement.Client{
		ID:              "client-acme",
		Name:            "Acme Corp",
		Currency:        engine.CurrencyINR,
		CommissionType:  placement.CommissionPercentage,
		CommissionValue: decimal.NewFromInt(10),
	}
	if err := h.Store.SaveClient(ctx, client); err != nil {
		return err
	}

	// Salary 9 LPA, billed 1.2 lakh per month. Same currency, so the
	// margin comes entirely from the rate spread.
	assignment := labor.EmployeeAssignment{
		ID:             "assign-priya-acme",
		EmployeeID:     "emp-priya",
		ProjectID:      "proj-acme-portal",
		ClientID:       "client-acme",
		ClientBilling:  decimal.NewFromInt(120000),
		BillingType:    engine.PeriodicityMonthly,
		ClientCurrency: engine.CurrencyINR,
		Salary:         decimal.NewFromInt(900000),
		SalaryType:     engine.PeriodicityLPA,
		SalaryCurrency: engine.CurrencyINR,
		WorkingHours:   decimal.NewFromInt(8),
		WorkingDays:    engine.WorkingWeekdaysOnly,
	}
	if err := h.Store.SaveAssignment(ctx, assignment); err != nil {
		return err
	}

	// Three months of 8-hour days, weekdays only.
	return h.seedWeekdayLogs(ctx, "emp-priya", "proj-acme-portal",
		time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(year, time.March, 31, 0, 0, 0, 0, time.UTC), 8)
}

func (h *Handler) loadMultiCurrencyScenario(ctx context.Context) error {
	year := time.Now().Year()

	client := placement.Client{
		ID:              "client-globex",
		Name:            "Globex Inc",
		Currency:        engine.CurrencyUSD,
		CommissionType:  placement.CommissionFixed,
		CommissionValue: decimal.NewFromInt(2000),
	}
	if err := h.Store.SaveClient(ctx, client); err != nil {
		return err
	}

	// Billed $4000/month, paid 12 LPA in base currency.
	assignment := labor.EmployeeAssignment{
		ID:             "assign-ravi-globex",
		EmployeeID:     "emp-ravi",
		ProjectID:      "proj-globex-etl",
		ClientID:       "client-globex",
		ClientBilling:  decimal.NewFromInt(4000),
		BillingType:    engine.PeriodicityMonthly,
		ClientCurrency: engine.CurrencyUSD,
		Salary:         decimal.NewFromInt(1200000),
		SalaryType:     engine.PeriodicityLPA,
		SalaryCurrency: engine.CurrencyINR,
		WorkingHours:   decimal.NewFromInt(8),
		WorkingDays:    engine.WorkingWeekdaysOnly,
	}
	if err := h.Store.SaveAssignment(ctx, assignment); err != nil {
		return err
	}

	return h.seedWeekdayLogs(ctx, "emp-ravi", "proj-globex-etl",
		time.Date(year, time.February, 1, 0, 0, 0, 0, time.UTC),
		time.Date(year, time.April, 30, 0, 0, 0, 0, time.UTC), 8)
}

func (h *Handler) loadPlacementMixScenario(ctx context.Context) error {
	year := time.Now().Year()

	clients := []placement.Client{
		{
			ID:             "client-internal",
			Name:           "Internal Staffing Desk",
			Currency:       engine.CurrencyINR,
			CommissionType: placement.CommissionPercentage,
			// Commission config unused for internal hires; profit is the
			// accrual spread.
			CommissionValue: decimal.Zero,
		},
		{
			ID:              "client-initech",
			Name:            "Initech",
			Currency:        engine.CurrencyINR,
			CommissionType:  placement.CommissionPercentage,
			CommissionValue: decimal.NewFromFloat(8.33),
		},
		{
			ID:              "client-umbrella",
			Name:            "Umbrella Ltd",
			Currency:        engine.CurrencyUSD,
			CommissionType:  placement.CommissionFixed,
			CommissionValue: decimal.NewFromInt(1500),
		},
	}
	for _, c := range clients {
		if err := h.Store.SaveClient(ctx, c); err != nil {
			return err
		}
	}

	candidates := []placement.Candidate{
		{
			ID:              "cand-asha",
			Name:            "Asha Nair",
			ClientID:        "client-internal",
			CTC:             "9,00,000 lpa",
			AccrualCTC:      "12,00,000 lpa",
			JobTypeCategory: placement.JobInternal,
			JoiningDate:     time.Date(year, time.January, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:              "cand-vikram",
			Name:            "Vikram Shah",
			ClientID:        "client-initech",
			CTC:             "18,00,000 lpa",
			JobTypeCategory: placement.JobExternal,
			JoiningDate:     time.Date(year, time.February, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:              "cand-meera",
			Name:            "Meera Iyer",
			ClientID:        "client-umbrella",
			CTC:             "$95000 lpa",
			JobTypeCategory: placement.JobExternal,
			JoiningDate:     time.Date(year, time.March, 9, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, c := range candidates {
		if err := h.Store.SaveCandidate(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) loadFullBookScenario(ctx context.Context) error {
	if err := h.loadConsultingBasicScenario(ctx); err != nil {
		return err
	}
	if err := h.loadMultiCurrencyScenario(ctx); err != nil {
		return err
	}
	return h.loadPlacementMixScenario(ctx)
}

// seedWeekdayLogs writes one approved time log per weekday in [start, end].
func (h *Handler) seedWeekdayLogs(ctx context.Context, employeeID, projectID string, start, end time.Time, hoursPerDay int64) error {
	hours := decimal.NewFromInt(hoursPerDay)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		entry := labor.TimeLogEntry{
			ID:         fmt.Sprintf("log-%s-%s", employeeID, d.Format("20060102")),
			EmployeeID: employeeID,
			Date:       d,
			Approved:   true,
			Projects: []labor.ProjectHours{
				{ProjectID: projectID, Hours: hours},
			},
		}
		if err := h.Store.SaveTimeLog(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}
