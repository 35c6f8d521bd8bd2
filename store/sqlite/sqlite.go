/*
Package sqlite provides SQLite-backed persistence for attribution rows.

PURPOSE:
  Stores the raw rows the attribution engine consumes: time-log entries,
  employee assignments, client commission configuration, and hired
  candidates. The engine itself never touches this package - reporting
  callers load pre-filtered rows here and hand them to report.Build.

DATE-WINDOW PRE-FILTERING:
  The report window only decides which rows are considered. That filtering
  is this layer's responsibility (ListTimeLogsInRange,
  ListCandidatesJoinedInRange); the calculators assume pre-filtered input.

PRECISION:
  Monetary columns are stored as TEXT and round-tripped through
  decimal.Decimal, never float64.

KEY TABLES:
  assignments: One row per (employee, project) pair; upserted when billing
               or salary terms change (no historical versioning)
  time_logs:   One row per entry; project hour lines as JSON
  clients:     Commission configuration per recruiting client
  candidates:  Hired candidates with free-form compensation strings

CONCURRENCY:
  Uses sync.RWMutex for thread-safety and WAL mode for concurrent readers,
  matching the rest of the system's single-writer usage.

USAGE:
  store, err := sqlite.New("./data/attribution.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - report/report.go: Consumes the loaded rows
  - api/handlers.go: Ingestion and report endpoints over this store
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/attribution-engine/engine"
	"github.com/warp/attribution-engine/labor"
	"github.com/warp/attribution-engine/placement"
)

const dateLayout = "2006-01-02"

// Store persists attribution rows in SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Employee assignments: one per (employee, project) pair
	CREATE TABLE IF NOT EXISTS assignments (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		project_id TEXT NOT NULL,
		client_id TEXT NOT NULL,
		client_billing TEXT NOT NULL,
		billing_type TEXT NOT NULL,
		client_currency TEXT NOT NULL,
		salary TEXT NOT NULL,
		salary_type TEXT NOT NULL,
		salary_currency TEXT NOT NULL,
		working_hours TEXT NOT NULL,
		working_days TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		UNIQUE(employee_id, project_id)
	);

	CREATE INDEX IF NOT EXISTS idx_assignments_client
		ON assignments(client_id);

	-- Time logs: immutable once approved; project hour lines as JSON
	CREATE TABLE IF NOT EXISTS time_logs (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		date TEXT NOT NULL,
		approved INTEGER NOT NULL DEFAULT 0,
		projects_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	-- Range filtering is the hot path for report requests
	CREATE INDEX IF NOT EXISTS idx_time_logs_date
		ON time_logs(date);
	CREATE INDEX IF NOT EXISTS idx_time_logs_employee_date
		ON time_logs(employee_id, date);

	-- Clients: commission configuration
	CREATE TABLE IF NOT EXISTS clients (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		currency TEXT NOT NULL,
		commission_type TEXT NOT NULL,
		commission_value TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	-- Candidates: hired candidates keyed by joining date for bucketing
	CREATE TABLE IF NOT EXISTS candidates (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		client_id TEXT NOT NULL,
		ctc TEXT NOT NULL,
		accrual_ctc TEXT NOT NULL,
		job_category TEXT NOT NULL,
		joining_date TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_candidates_joining_date
		ON candidates(joining_date);
	CREATE INDEX IF NOT EXISTS idx_candidates_client
		ON candidates(client_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// ASSIGNMENTS
// =============================================================================

// SaveAssignment upserts the assignment for its (employee, project) pair.
// Terms are used as-is afterward; past months recompute against the new
// terms (no historical versioning).
func (s *Store) SaveAssignment(ctx context.Context, a labor.EmployeeAssignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	query := `
		INSERT INTO assignments
		(id, employee_id, project_id, client_id, client_billing, billing_type, client_currency,
		 salary, salary_type, salary_currency, working_hours, working_days, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(employee_id, project_id) DO UPDATE SET
			client_id = excluded.client_id,
			client_billing = excluded.client_billing,
			billing_type = excluded.billing_type,
			client_currency = excluded.client_currency,
			salary = excluded.salary,
			salary_type = excluded.salary_type,
			salary_currency = excluded.salary_currency,
			working_hours = excluded.working_hours,
			working_days = excluded.working_days,
			updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		a.ID, a.EmployeeID, a.ProjectID, a.ClientID,
		a.ClientBilling.String(), string(a.BillingType), string(a.ClientCurrency),
		a.Salary.String(), string(a.SalaryType), string(a.SalaryCurrency),
		a.WorkingHours.String(), string(a.WorkingDays),
		now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to save assignment: %w", err)
	}
	return nil
}

// ListAssignments returns all assignments.
func (s *Store) ListAssignments(ctx context.Context) ([]labor.EmployeeAssignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, employee_id, project_id, client_id, client_billing, billing_type, client_currency,
		       salary, salary_type, salary_currency, working_hours, working_days
		FROM assignments
		ORDER BY employee_id, project_id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []labor.EmployeeAssignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

func scanAssignment(rows *sql.Rows) (labor.EmployeeAssignment, error) {
	var (
		a              labor.EmployeeAssignment
		clientBilling  string
		billingType    string
		clientCurrency string
		salary         string
		salaryType     string
		salaryCurrency string
		workingHours   string
		workingDays    string
	)

	err := rows.Scan(
		&a.ID, &a.EmployeeID, &a.ProjectID, &a.ClientID,
		&clientBilling, &billingType, &clientCurrency,
		&salary, &salaryType, &salaryCurrency,
		&workingHours, &workingDays,
	)
	if err != nil {
		return a, fmt.Errorf("failed to scan assignment: %w", err)
	}

	a.ClientBilling = parseDecimal(clientBilling)
	a.BillingType = engine.Periodicity(billingType)
	a.ClientCurrency = engine.Currency(clientCurrency)
	a.Salary = parseDecimal(salary)
	a.SalaryType = engine.Periodicity(salaryType)
	a.SalaryCurrency = engine.Currency(salaryCurrency)
	a.WorkingHours = parseDecimal(workingHours)
	a.WorkingDays = engine.WorkingDaysConfig(workingDays)
	return a, nil
}

// =============================================================================
// TIME LOGS
// =============================================================================

type projectHoursJSON struct {
	ProjectID string `json:"project_id"`
	Hours     string `json:"hours"`
}

// SaveTimeLog persists a time-log entry.
func (s *Store) SaveTimeLog(ctx context.Context, e labor.TimeLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]projectHoursJSON, len(e.Projects))
	for i, p := range e.Projects {
		lines[i] = projectHoursJSON{ProjectID: p.ProjectID, Hours: p.Hours.String()}
	}
	projectsJSON, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("failed to encode project hours: %w", err)
	}

	query := `
		INSERT INTO time_logs (id, employee_id, date, approved, projects_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.ExecContext(ctx, query,
		e.ID, e.EmployeeID, e.Date.Format(dateLayout), boolToInt(e.Approved),
		string(projectsJSON), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save time log: %w", err)
	}
	return nil
}

// ListTimeLogsInRange returns entries with dates inside the window.
// This is the date pre-filter for report requests.
func (s *Store) ListTimeLogsInRange(ctx context.Context, w engine.Window) ([]labor.TimeLogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, employee_id, date, approved, projects_json
		FROM time_logs
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC
	`

	rows, err := s.db.QueryContext(ctx, query, w.Start.Format(dateLayout), w.End.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to query time logs: %w", err)
	}
	defer rows.Close()

	var entries []labor.TimeLogEntry
	for rows.Next() {
		var (
			e            labor.TimeLogEntry
			date         string
			approved     int
			projectsJSON string
		)
		if err := rows.Scan(&e.ID, &e.EmployeeID, &date, &approved, &projectsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan time log: %w", err)
		}

		e.Date, _ = time.Parse(dateLayout, date)
		e.Approved = approved != 0

		var lines []projectHoursJSON
		if err := json.Unmarshal([]byte(projectsJSON), &lines); err != nil {
			return nil, fmt.Errorf("failed to decode project hours: %w", err)
		}
		e.Projects = make([]labor.ProjectHours, len(lines))
		for i, l := range lines {
			e.Projects[i] = labor.ProjectHours{ProjectID: l.ProjectID, Hours: parseDecimal(l.Hours)}
		}

		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// =============================================================================
// CLIENTS
// =============================================================================

// SaveClient upserts a client's commission configuration.
func (s *Store) SaveClient(ctx context.Context, c placement.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO clients (id, name, currency, commission_type, commission_value, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			currency = excluded.currency,
			commission_type = excluded.commission_type,
			commission_value = excluded.commission_value
	`

	_, err := s.db.ExecContext(ctx, query,
		c.ID, c.Name, string(c.Currency), string(c.CommissionType),
		c.CommissionValue.String(), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save client: %w", err)
	}
	return nil
}

// GetClient returns a single client, or nil if not found.
func (s *Store) GetClient(ctx context.Context, id string) (*placement.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, currency, commission_type, commission_value FROM clients WHERE id = ?", id)

	var (
		c               placement.Client
		currency        string
		commissionType  string
		commissionValue string
	)
	err := row.Scan(&c.ID, &c.Name, &currency, &commissionType, &commissionValue)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	c.Currency = engine.Currency(currency)
	c.CommissionType = placement.CommissionType(commissionType)
	c.CommissionValue = parseDecimal(commissionValue)
	return &c, nil
}

// ListClients returns all clients.
func (s *Store) ListClients(ctx context.Context) ([]placement.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, currency, commission_type, commission_value FROM clients ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	var clients []placement.Client
	for rows.Next() {
		var (
			c               placement.Client
			currency        string
			commissionType  string
			commissionValue string
		)
		if err := rows.Scan(&c.ID, &c.Name, &currency, &commissionType, &commissionValue); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		c.Currency = engine.Currency(currency)
		c.CommissionType = placement.CommissionType(commissionType)
		c.CommissionValue = parseDecimal(commissionValue)
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

// =============================================================================
// CANDIDATES
// =============================================================================

// SaveCandidate persists a hired candidate.
func (s *Store) SaveCandidate(ctx context.Context, c placement.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO candidates (id, name, client_id, ctc, accrual_ctc, job_category, joining_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			client_id = excluded.client_id,
			ctc = excluded.ctc,
			accrual_ctc = excluded.accrual_ctc,
			job_category = excluded.job_category,
			joining_date = excluded.joining_date
	`

	_, err := s.db.ExecContext(ctx, query,
		c.ID, c.Name, c.ClientID, c.CTC, c.AccrualCTC,
		string(c.JobTypeCategory), c.JoiningDate.Format(dateLayout),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save candidate: %w", err)
	}
	return nil
}

// ListCandidatesJoinedInRange returns candidates whose joining date falls
// inside the window. This is the placement-track date pre-filter.
func (s *Store) ListCandidatesJoinedInRange(ctx context.Context, w engine.Window) ([]placement.Candidate, error) {
	return s.queryCandidates(ctx,
		`SELECT id, name, client_id, ctc, accrual_ctc, job_category, joining_date
		 FROM candidates WHERE joining_date >= ? AND joining_date <= ?
		 ORDER BY joining_date ASC`,
		w.Start.Format(dateLayout), w.End.Format(dateLayout))
}

// ListCandidates returns all candidates.
func (s *Store) ListCandidates(ctx context.Context) ([]placement.Candidate, error) {
	return s.queryCandidates(ctx,
		`SELECT id, name, client_id, ctc, accrual_ctc, job_category, joining_date
		 FROM candidates ORDER BY joining_date ASC`)
}

func (s *Store) queryCandidates(ctx context.Context, query string, args ...any) ([]placement.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	var candidates []placement.Candidate
	for rows.Next() {
		var (
			c           placement.Candidate
			jobCategory string
			joiningDate string
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.ClientID, &c.CTC, &c.AccrualCTC, &jobCategory, &joiningDate); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		c.JobTypeCategory = placement.JobCategory(jobCategory)
		c.JoiningDate, _ = time.Parse(dateLayout, joiningDate)
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// =============================================================================
// MAINTENANCE
// =============================================================================

// Reset clears all rows. Used by scenario loading in development.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"assignments", "time_logs", "clients", "candidates"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to reset %s: %w", table, err)
		}
	}
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
