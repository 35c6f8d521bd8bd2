/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal decimal-based model from the external API contract: amounts
  cross the wire as float64 for client convenience, but all arithmetic
  stays in decimal internally.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

SEE ALSO:
  - handlers.go: Uses these types
  - report/report.go: The internal shapes these mirror
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/attribution-engine/engine"
	"github.com/warp/attribution-engine/report"
)

// =============================================================================
// INGESTION REQUEST TYPES
// =============================================================================

// ProjectHoursDTO is one project line of a time-log entry.
type ProjectHoursDTO struct {
	ProjectID string  `json:"project_id"`
	Hours     float64 `json:"hours"`
}

// CreateTimeLogRequest is the request to ingest a time-log entry.
type CreateTimeLogRequest struct {
	ID         string            `json:"id,omitempty"`
	EmployeeID string            `json:"employee_id"`
	Date       string            `json:"date"` // YYYY-MM-DD
	Approved   bool              `json:"approved"`
	Projects   []ProjectHoursDTO `json:"projects"`
}

// CreateAssignmentRequest is the request to upsert an employee assignment.
type CreateAssignmentRequest struct {
	ID             string  `json:"id,omitempty"`
	EmployeeID     string  `json:"employee_id"`
	ProjectID      string  `json:"project_id"`
	ClientID       string  `json:"client_id"`
	ClientBilling  float64 `json:"client_billing"`
	BillingType    string  `json:"billing_type"`
	ClientCurrency string  `json:"client_currency"`
	Salary         float64 `json:"salary"`
	SalaryType     string  `json:"salary_type"`
	SalaryCurrency string  `json:"salary_currency"`
	WorkingHours   float64 `json:"working_hours,omitempty"`
	WorkingDays    string  `json:"working_days"`
}

// CreateClientRequest is the request to upsert a client.
type CreateClientRequest struct {
	ID              string  `json:"id,omitempty"`
	Name            string  `json:"name"`
	Currency        string  `json:"currency"`
	CommissionType  string  `json:"commission_type"`
	CommissionValue float64 `json:"commission_value"`
}

// CreateCandidateRequest is the request to ingest a hired candidate.
type CreateCandidateRequest struct {
	ID              string `json:"id,omitempty"`
	Name            string `json:"name"`
	ClientID        string `json:"client_id"`
	CTC             string `json:"ctc"`
	AccrualCTC      string `json:"accrual_ctc,omitempty"`
	JobTypeCategory string `json:"job_type_category"`
	JoiningDate     string `json:"joining_date"` // YYYY-MM-DD
}

// =============================================================================
// REPORT RESPONSE TYPES
// =============================================================================

// MonthlyBucketDTO is one calendar month of aggregated results.
type MonthlyBucketDTO struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
	Hires   int     `json:"hires"`
}

// SubtotalDTO is a per-project or per-client rollup.
type SubtotalDTO struct {
	Revenue float64 `json:"revenue"`
	Cost    float64 `json:"cost"`
	Profit  float64 `json:"profit"`
	Hours   float64 `json:"hours"`
}

// CandidateProfitDTO is a candidate record annotated with computed figures.
type CandidateProfitDTO struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	ClientID        string  `json:"client_id"`
	JobTypeCategory string  `json:"job_type_category"`
	JoiningDate     string  `json:"joining_date"`
	Salary          float64 `json:"salary"`
	Profit          float64 `json:"profit"`
	Revenue         float64 `json:"revenue"`
}

// ReportDTO is the full attribution report.
type ReportDTO struct {
	Start          string                 `json:"start"`
	End            string                 `json:"end"`
	TotalRevenue   float64                `json:"total_revenue"`
	TotalProfit    float64                `json:"total_profit"`
	MonthlyBuckets []MonthlyBucketDTO     `json:"monthly_buckets"`
	ByProject      map[string]SubtotalDTO `json:"by_project,omitempty"`
	ByClient       map[string]SubtotalDTO `json:"by_client,omitempty"`
	Candidates     []CandidateProfitDTO   `json:"candidates,omitempty"`
	Warnings       []string               `json:"warnings,omitempty"`
}

// ScenarioDTO represents a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func f64(d decimal.Decimal) float64 {
	v, _ := d.Float64()
	return v
}

func toBucketDTOs(buckets []engine.MonthlyBucket) []MonthlyBucketDTO {
	dtos := make([]MonthlyBucketDTO, len(buckets))
	for i, b := range buckets {
		dtos[i] = MonthlyBucketDTO{
			Month:   b.Month,
			Revenue: f64(b.Revenue),
			Profit:  f64(b.Profit),
			Hires:   b.Hires,
		}
	}
	return dtos
}

func toSubtotalDTOs(subtotals map[string]report.Subtotal) map[string]SubtotalDTO {
	if len(subtotals) == 0 {
		return nil
	}
	dtos := make(map[string]SubtotalDTO, len(subtotals))
	for id, st := range subtotals {
		dtos[id] = toSubtotalDTO(st)
	}
	return dtos
}

func toSubtotalDTO(st report.Subtotal) SubtotalDTO {
	return SubtotalDTO{
		Revenue: f64(st.Revenue),
		Cost:    f64(st.Cost),
		Profit:  f64(st.Profit),
		Hours:   f64(st.Hours),
	}
}

func toCandidateDTOs(candidates []report.CandidateProfit) []CandidateProfitDTO {
	dtos := make([]CandidateProfitDTO, len(candidates))
	for i, cp := range candidates {
		dtos[i] = toCandidateDTO(cp)
	}
	return dtos
}

func toCandidateDTO(cp report.CandidateProfit) CandidateProfitDTO {
	return CandidateProfitDTO{
		ID:              cp.Candidate.ID,
		Name:            cp.Candidate.Name,
		ClientID:        cp.Candidate.ClientID,
		JobTypeCategory: string(cp.Candidate.JobTypeCategory),
		JoiningDate:     cp.Candidate.JoiningDate.Format("2006-01-02"),
		Salary:          f64(cp.Salary),
		Profit:          f64(cp.Profit),
		Revenue:         f64(cp.Revenue),
	}
}

func toReportDTO(w engine.Window, r report.Report) ReportDTO {
	return ReportDTO{
		Start:          w.Start.Format("2006-01-02"),
		End:            w.End.Format("2006-01-02"),
		TotalRevenue:   f64(r.TotalRevenue),
		TotalProfit:    f64(r.TotalProfit),
		MonthlyBuckets: toBucketDTOs(r.MonthlyBuckets),
		ByProject:      toSubtotalDTOs(r.ByProject),
		ByClient:       toSubtotalDTOs(r.ByClient),
		Candidates:     toCandidateDTOs(r.Candidates),
		Warnings:       warningStrings(r.Warnings),
	}
}

func warningStrings(list []engine.Warning) []string {
	if len(list) == 0 {
		return nil
	}
	out := make([]string, len(list))
	for i, w := range list {
		out[i] = w.String()
	}
	return out
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
