package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/attribution-engine/api"
	"github.com/warp/attribution-engine/engine"
	"github.com/warp/attribution-engine/store/sqlite"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func newTestServer(t *testing.T) *httptest.Server {
	store, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	handler := api.NewHandler(store, engine.DefaultConfig())
	srv := httptest.NewServer(api.NewRouter(handler))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, srv *httptest.Server, path string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(srv.URL+path, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func getJSON(t *testing.T, srv *httptest.Server, path string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func seedAssignment(t *testing.T, srv *httptest.Server) {
	resp := postJSON(t, srv, "/api/assignments", map[string]any{
		"id":              "assign-1",
		"employee_id":     "emp-1",
		"project_id":      "proj-a",
		"client_id":       "client-1",
		"client_billing":  120000,
		"billing_type":    "Monthly",
		"client_currency": "INR",
		"salary":          900000,
		"salary_type":     "LPA",
		"salary_currency": "INR",
		"working_hours":   8,
		"working_days":    "weekdays_only",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func seedTimeLog(t *testing.T, srv *httptest.Server, id, date string, hours float64) {
	resp := postJSON(t, srv, "/api/time-logs", map[string]any{
		"id":          id,
		"employee_id": "emp-1",
		"date":        date,
		"approved":    true,
		"projects":    []map[string]any{{"project_id": "proj-a", "hours": hours}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

// =============================================================================
// INGESTION
// =============================================================================

func TestCreateTimeLog_NegativeHoursRejected(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv, "/api/time-logs", map[string]any{
		"employee_id": "emp-1",
		"date":        "2025-01-06",
		"approved":    true,
		"projects":    []map[string]any{{"project_id": "proj-a", "hours": -4}},
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateTimeLog_BadDateRejected(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv, "/api/time-logs", map[string]any{
		"employee_id": "emp-1",
		"date":        "06/01/2025",
		"approved":    true,
		"projects":    []map[string]any{{"project_id": "proj-a", "hours": 8}},
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateTimeLog_GeneratesIDWhenMissing(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv, "/api/time-logs", map[string]any{
		"employee_id": "emp-1",
		"date":        "2025-01-06",
		"approved":    true,
		"projects":    []map[string]any{{"project_id": "proj-a", "hours": 8}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.NotEmpty(t, created["id"])
}

func TestCreateAssignment_MissingPairRejected(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv, "/api/assignments", map[string]any{
		"employee_id": "emp-1",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateClient_NegativeCommissionRejected(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv, "/api/clients", map[string]any{
		"id":               "client-1",
		"name":             "Initech",
		"currency":         "INR",
		"commission_type":  "percentage",
		"commission_value": -5,
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// =============================================================================
// REPORTS
// =============================================================================

func TestAttributionReport_EndToEnd(t *testing.T) {
	// GIVEN: One assignment with 160 approved January hours
	// WHEN: Requesting the January report
	// THEN: Totals, buckets, and subtotals come back populated
	srv := newTestServer(t)
	seedAssignment(t, srv)
	seedTimeLog(t, srv, "log-1", "2025-01-06", 80)
	seedTimeLog(t, srv, "log-2", "2025-01-13", 80)

	var rep api.ReportDTO
	resp := getJSON(t, srv, "/api/reports/attribution?start=2025-01-01&end=2025-01-31", &rep)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.InDelta(t, 110769.23, rep.TotalRevenue, 0.01)
	assert.InDelta(t, 41538.46, rep.TotalProfit, 0.01)
	require.Len(t, rep.MonthlyBuckets, 1)
	assert.Equal(t, "Jan 2025", rep.MonthlyBuckets[0].Month)
	assert.Contains(t, rep.ByProject, "proj-a")
	assert.Contains(t, rep.ByClient, "client-1")
	assert.Empty(t, rep.Warnings)
}

func TestAttributionReport_WindowExcludesOutsideRows(t *testing.T) {
	srv := newTestServer(t)
	seedAssignment(t, srv)
	seedTimeLog(t, srv, "log-1", "2025-01-06", 80)
	seedTimeLog(t, srv, "log-2", "2025-03-06", 80)

	var rep api.ReportDTO
	resp := getJSON(t, srv, "/api/reports/attribution?start=2025-01-01&end=2025-01-31", &rep)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.Len(t, rep.MonthlyBuckets, 1)
	assert.Equal(t, "Jan 2025", rep.MonthlyBuckets[0].Month)
}

func TestAttributionReport_InvertedWindowRejected(t *testing.T) {
	srv := newTestServer(t)

	resp := getJSON(t, srv, "/api/reports/attribution?start=2025-06-01&end=2025-01-01", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAttributionReport_MissingWindowRejected(t *testing.T) {
	srv := newTestServer(t)

	resp := getJSON(t, srv, "/api/reports/attribution", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProjectReport_UnknownProjectIs404(t *testing.T) {
	srv := newTestServer(t)
	seedAssignment(t, srv)

	resp := getJSON(t, srv, "/api/reports/projects/proj-ghost?start=2025-01-01&end=2025-01-31", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProjectReport_KnownProjectWithoutActivityIsZero(t *testing.T) {
	srv := newTestServer(t)
	seedAssignment(t, srv)

	var body struct {
		Totals api.SubtotalDTO `json:"totals"`
	}
	resp := getJSON(t, srv, "/api/reports/projects/proj-a?start=2025-01-01&end=2025-01-31", &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Zero(t, body.Totals.Revenue)
}

func TestClientReport_UnknownClientIs404(t *testing.T) {
	srv := newTestServer(t)

	resp := getJSON(t, srv, "/api/reports/clients/client-ghost?start=2025-01-01&end=2025-01-31", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCandidates_PlacementFlow(t *testing.T) {
	// GIVEN: A percentage client and a hired candidate
	// WHEN: Listing candidates for the joining window
	// THEN: The annotation carries commission profit
	srv := newTestServer(t)

	resp := postJSON(t, srv, "/api/clients", map[string]any{
		"id":               "client-1",
		"name":             "Initech",
		"currency":         "INR",
		"commission_type":  "percentage",
		"commission_value": 10,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, srv, "/api/candidates", map[string]any{
		"id":                "cand-1",
		"name":              "Vikram Shah",
		"client_id":         "client-1",
		"ctc":               "18,00,000",
		"job_type_category": "External",
		"joining_date":      "2025-02-03",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var got []api.CandidateProfitDTO
	gresp := getJSON(t, srv, "/api/candidates?start=2025-01-01&end=2025-12-31", &got)
	require.Equal(t, http.StatusOK, gresp.StatusCode)

	require.Len(t, got, 1)
	assert.InDelta(t, 180000, got[0].Profit, 0.01)
	assert.InDelta(t, 1800000, got[0].Salary, 0.01)
}

// =============================================================================
// CONFIG
// =============================================================================

func TestConfig_GetAndPut(t *testing.T) {
	srv := newTestServer(t)

	var cfg map[string]any
	resp := getJSON(t, srv, "/api/config", &cfg)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 84, cfg["usd_to_base_rate"])

	req, err := http.NewRequest(http.MethodPut, srv.URL+"/api/config",
		bytes.NewReader([]byte(`{"usd_to_base_rate": 85}`)))
	require.NoError(t, err)
	putResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer putResp.Body.Close()
	require.Equal(t, http.StatusOK, putResp.StatusCode)

	resp = getJSON(t, srv, "/api/config", &cfg)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 85, cfg["usd_to_base_rate"])
}

func TestConfig_InvalidPutRejected(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodPut, srv.URL+"/api/config",
		bytes.NewReader([]byte(`{"usd_to_base_rate": 0}`)))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// =============================================================================
// SCENARIOS
// =============================================================================

func TestScenarios_LoadAndReport(t *testing.T) {
	srv := newTestServer(t)

	var list []api.ScenarioDTO
	resp := getJSON(t, srv, "/api/scenarios/", &list)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, list)

	loadResp := postJSON(t, srv, "/api/scenarios/load", map[string]string{"scenario_id": "placement-mix"})
	require.Equal(t, http.StatusOK, loadResp.StatusCode)

	var rep api.ReportDTO
	resp = getJSON(t, srv, "/api/reports/attribution?start=2020-01-01&end=2030-12-31", &rep)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, rep.Candidates, 3)
	assert.Greater(t, rep.TotalProfit, 0.0)
}

func TestScenarios_UnknownIDRejected(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv, "/api/scenarios/load", map[string]string{"scenario_id": "nope"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
