/*
Package factory provides JSON to engine.Config conversion.

PURPOSE:
  Converts JSON configuration into an engine.Config. This keeps the
  attribution constants (exchange rate, daily hours, working-days table,
  candidate annual hours) out of code - operations can adjust them per
  deployment, and the admin API can inspect and replace them at runtime.

JSON SCHEMA:
  {
    "base_currency": "INR",
    "usd_to_base_rate": 84,
    "default_daily_hours": 8,
    "working_days": {
      "all_days": 365,
      "weekdays_only": 260,
      "saturday_working": 312
    },
    "candidate_annual_hours": 2016
  }

DEFAULTS:
  Every field is optional. Missing fields take the production defaults from
  engine.DefaultConfig(), so "{}" is a valid configuration.

USAGE:
  cfg, err := factory.ParseConfig(jsonBytes)

SEE ALSO:
  - engine/config.go: The target type and its validation rules
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/attribution-engine/engine"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// ConfigJSON is the JSON representation of the engine configuration.
type ConfigJSON struct {
	BaseCurrency         string           `json:"base_currency,omitempty"`
	USDToBaseRate        *float64         `json:"usd_to_base_rate,omitempty"`
	DefaultDailyHours    *float64         `json:"default_daily_hours,omitempty"`
	WorkingDays          map[string]int   `json:"working_days,omitempty"`
	CandidateAnnualHours *float64         `json:"candidate_annual_hours,omitempty"`
}

// =============================================================================
// CONVERSION
// =============================================================================

// ParseConfig parses JSON bytes into a validated engine.Config.
func ParseConfig(data []byte) (engine.Config, error) {
	var cj ConfigJSON
	if err := json.Unmarshal(data, &cj); err != nil {
		return engine.Config{}, fmt.Errorf("failed to parse engine config JSON: %w", err)
	}
	return FromJSON(cj)
}

// FromJSON converts ConfigJSON to engine.Config, applying defaults for
// missing fields and validating the result.
func FromJSON(cj ConfigJSON) (engine.Config, error) {
	cfg := engine.DefaultConfig()

	if cj.BaseCurrency != "" {
		cfg.BaseCurrency = engine.Currency(cj.BaseCurrency)
	}
	if cj.USDToBaseRate != nil {
		cfg.USDToBaseRate = decimal.NewFromFloat(*cj.USDToBaseRate)
	}
	if cj.DefaultDailyHours != nil {
		cfg.DefaultDailyHours = decimal.NewFromFloat(*cj.DefaultDailyHours)
	}
	if cj.CandidateAnnualHours != nil {
		cfg.CandidateAnnualHours = decimal.NewFromFloat(*cj.CandidateAnnualHours)
	}
	if len(cj.WorkingDays) > 0 {
		table := make(map[engine.WorkingDaysConfig]int, len(cj.WorkingDays))
		for conv, days := range cj.WorkingDays {
			table[engine.WorkingDaysConfig(conv)] = days
		}
		// A partial table still needs the fallback convention.
		if _, ok := table[engine.WorkingAllDays]; !ok {
			table[engine.WorkingAllDays] = engine.DefaultConfig().WorkingDays[engine.WorkingAllDays]
		}
		cfg.WorkingDays = table
	}

	if err := cfg.Validate(); err != nil {
		return engine.Config{}, err
	}
	return cfg, nil
}

// ToJSON renders a Config back to its JSON form (for the admin API).
func ToJSON(cfg engine.Config) ConfigJSON {
	rate, _ := cfg.USDToBaseRate.Float64()
	hours, _ := cfg.DefaultDailyHours.Float64()
	annual, _ := cfg.CandidateAnnualHours.Float64()

	table := make(map[string]int, len(cfg.WorkingDays))
	for conv, days := range cfg.WorkingDays {
		table[string(conv)] = days
	}

	return ConfigJSON{
		BaseCurrency:         string(cfg.BaseCurrency),
		USDToBaseRate:        &rate,
		DefaultDailyHours:    &hours,
		WorkingDays:          table,
		CandidateAnnualHours: &annual,
	}
}
