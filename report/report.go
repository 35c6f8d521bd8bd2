/*
Package report assembles the two attribution tracks into reporting output.

PURPOSE:
  Takes already-fetched rows (time logs, assignments, clients, candidates),
  runs the labor and placement calculators over them, and produces the
  aggregate a reporting caller consumes: total revenue, total profit,
  calendar-month buckets with hire counts, per-project and per-client
  subtotals, and a per-candidate profit annotation for downstream display.

DESIGN:
  - The builder is pure: no I/O, no clocks. Date-window pre-filtering of the
    input rows is the storage layer's job, not this package's.
  - Labor contributions are bucketed per time-log entry at the assignment's
    hourly rate. Summing per-entry contributions equals applying the rate to
    the summed hours, so monthly buckets and grand totals always agree.
  - Placement contributions are bucketed by candidate joining date.
  - Every degradation (unmatched hours, unknown periodicity, unparseable
    CTC, missing client) lands in the Warnings list.

SEE ALSO:
  - labor/calc.go: Rates used for per-entry bucketing
  - placement/commission.go: Candidate profit computation
  - engine/monthly.go: The shared month aggregator
*/
package report

import (
	"github.com/shopspring/decimal"

	"github.com/warp/attribution-engine/engine"
	"github.com/warp/attribution-engine/labor"
	"github.com/warp/attribution-engine/placement"
)

// =============================================================================
// INPUT / OUTPUT TYPES
// =============================================================================

// Input is the pre-filtered row set for one report request.
type Input struct {
	Config      engine.Config
	Assignments []labor.EmployeeAssignment
	TimeLogs    []labor.TimeLogEntry
	Clients     []placement.Client
	Candidates  []placement.Candidate
}

// Subtotal is an accumulated rollup for one project or client.
type Subtotal struct {
	Revenue decimal.Decimal
	Cost    decimal.Decimal
	Profit  decimal.Decimal
	Hours   decimal.Decimal
}

// CandidateProfit annotates a candidate record with its computed figures.
type CandidateProfit struct {
	Candidate placement.Candidate
	Profit    decimal.Decimal
	Revenue   decimal.Decimal
	Salary    decimal.Decimal
}

// Report is the full attribution output for one request. Transient:
// recomputed from rows on every query, never persisted.
type Report struct {
	TotalRevenue   decimal.Decimal
	TotalProfit    decimal.Decimal
	MonthlyBuckets []engine.MonthlyBucket
	Candidates     []CandidateProfit
	ByProject      map[string]Subtotal
	ByClient       map[string]Subtotal
	Warnings       []engine.Warning
}

// =============================================================================
// BUILDER
// =============================================================================

// Build computes the full report. Deterministic for a given input; safe to
// call concurrently from multiple report requests.
func Build(in Input) Report {
	warn := &engine.Warnings{}
	agg := engine.NewMonthlyAggregator()

	byProject := make(map[string]Subtotal)
	byClient := make(map[string]Subtotal)

	buildLabor(in, agg, byProject, byClient, warn)
	candidates := buildPlacements(in, agg, byClient, warn)

	totalRevenue, totalProfit := agg.Totals()

	return Report{
		TotalRevenue:   totalRevenue,
		TotalProfit:    totalProfit,
		MonthlyBuckets: agg.Buckets(),
		Candidates:     candidates,
		ByProject:      byProject,
		ByClient:       byClient,
		Warnings:       warn.List(),
	}
}

// assignmentRates caches the derived hourly rates per assignment so rate
// warnings fire once per assignment, not once per time-log entry.
type assignmentRates struct {
	assignment labor.EmployeeAssignment
	billRate   decimal.Decimal
	costRate   decimal.Decimal
}

func buildLabor(in Input, agg *engine.MonthlyAggregator, byProject, byClient map[string]Subtotal, warn *engine.Warnings) {
	calc := labor.NewCalculator(in.Config)

	rates := make(map[labor.Pair]*assignmentRates, len(in.Assignments))
	for _, a := range in.Assignments {
		bill, cost := calc.Rates(a, warn)
		rates[a.Key()] = &assignmentRates{assignment: a, billRate: bill, costRate: cost}
	}

	unmatched := make(map[labor.Pair]bool)

	for _, entry := range in.TimeLogs {
		if !entry.Approved {
			continue
		}
		for _, line := range entry.Projects {
			if !line.Hours.IsPositive() {
				continue
			}
			pair := labor.Pair{EmployeeID: entry.EmployeeID, ProjectID: line.ProjectID}
			r, ok := rates[pair]
			if !ok {
				// Hours with no assignment are excluded, not an error.
				if !unmatched[pair] {
					unmatched[pair] = true
					warn.Add(engine.WarnUnmatchedHours, pair.String(), "logged hours have no matching assignment")
				}
				continue
			}

			revenue := line.Hours.Mul(r.billRate)
			cost := line.Hours.Mul(r.costRate)
			profit := revenue.Sub(cost)

			agg.Add(entry.Date, revenue, profit)

			p := byProject[r.assignment.ProjectID]
			p.Revenue = p.Revenue.Add(revenue)
			p.Cost = p.Cost.Add(cost)
			p.Profit = p.Profit.Add(profit)
			p.Hours = p.Hours.Add(line.Hours)
			byProject[r.assignment.ProjectID] = p

			cl := byClient[r.assignment.ClientID]
			cl.Revenue = cl.Revenue.Add(revenue)
			cl.Cost = cl.Cost.Add(cost)
			cl.Profit = cl.Profit.Add(profit)
			cl.Hours = cl.Hours.Add(line.Hours)
			byClient[r.assignment.ClientID] = cl
		}
	}
}

func buildPlacements(in Input, agg *engine.MonthlyAggregator, byClient map[string]Subtotal, warn *engine.Warnings) []CandidateProfit {
	eng := placement.NewEngine(in.Config)

	clients := make(map[string]placement.Client, len(in.Clients))
	for _, c := range in.Clients {
		clients[c.ID] = c
	}

	out := make([]CandidateProfit, 0, len(in.Candidates))
	for _, cand := range in.Candidates {
		var res placement.Result
		client, ok := clients[cand.ClientID]
		if !ok {
			warn.Add(engine.WarnMissingClient, cand.ID, "candidate references unknown client "+cand.ClientID)
		} else {
			res = eng.CandidateProfit(cand, client, warn)
		}

		agg.Add(cand.JoiningDate, res.Revenue, res.Profit)
		agg.AddHire(cand.JoiningDate)

		if ok {
			cl := byClient[client.ID]
			cl.Revenue = cl.Revenue.Add(res.Revenue)
			cl.Profit = cl.Profit.Add(res.Profit)
			byClient[client.ID] = cl
		}

		out = append(out, CandidateProfit{
			Candidate: cand,
			Profit:    res.Profit,
			Revenue:   res.Revenue,
			Salary:    res.Salary,
		})
	}
	return out
}
