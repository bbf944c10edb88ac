package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hanvion/healthcost/internal/domain"
	"github.com/hanvion/healthcost/internal/reference"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of scenario files
type InputParser struct {
	tables *reference.Tables
}

// NewInputParser creates a parser that validates against the embedded reference data
func NewInputParser() *InputParser {
	return &InputParser{tables: reference.DefaultTables()}
}

// NewInputParserWithTables creates a parser that validates state names
// against the given tables
func NewInputParserWithTables(tables *reference.Tables) *InputParser {
	if tables == nil {
		tables = reference.DefaultTables()
	}
	return &InputParser{tables: tables}
}

// LoadFromFile loads a scenario from a YAML file. Relative reference
// dataset paths are resolved against the directory of the file.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	config, err := ip.parse(data)
	if err != nil {
		return nil, err
	}
	resolveReferencePaths(&config.Reference, filepath.Dir(filename))

	if err := ip.ValidateConfiguration(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

// Parse decodes and validates a scenario from YAML bytes
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	config, err := ip.parse(data)
	if err != nil {
		return nil, err
	}
	if err := ip.ValidateConfiguration(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

func (ip *InputParser) parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &config, nil
}

func resolveReferencePaths(src *domain.ReferenceSources, dir string) {
	for _, p := range []*string{&src.StatesCSV, &src.MedicationsCSV, &src.Procedures} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
}

// ValidateConfiguration validates a scenario. All problems are reported
// together, joined with errors.Join.
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if config == nil {
		return fmt.Errorf("configuration is empty")
	}
	if len(config.Visits) == 0 && config.Usage == nil && config.Person == nil {
		return fmt.Errorf("scenario must define at least one of visits, usage or person")
	}

	var errs []error
	if err := ip.validateCoverage(&config.Coverage); err != nil {
		errs = append(errs, fmt.Errorf("coverage: %w", err))
	}
	for i, visit := range config.Visits {
		if err := ip.validateVisit(visit, config.Rates); err != nil {
			errs = append(errs, fmt.Errorf("visit %d: %w", i, err))
		}
	}
	for vt, amount := range config.Rates {
		if !amount.IsPositive() {
			errs = append(errs, fmt.Errorf("billed_rates: %s must be positive, got %s", vt, amount))
		}
	}
	if config.Usage != nil {
		if err := validateUsage(config.Usage); err != nil {
			errs = append(errs, fmt.Errorf("usage: %w", err))
		}
	}
	if config.Person != nil {
		if err := ip.validatePerson(config.Person, config.Reference.StatesCSV != ""); err != nil {
			errs = append(errs, fmt.Errorf("person: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (ip *InputParser) validateCoverage(c *domain.CoverageParameters) error {
	money := map[string]decimal.Decimal{
		"deductible":        c.Deductible,
		"deductible_met":    c.DeductibleMet,
		"out_of_pocket_max": c.OutOfPocketMax,
		"copay":             c.Copay,
	}
	for _, name := range []string{"deductible", "deductible_met", "out_of_pocket_max", "copay"} {
		if money[name].IsNegative() {
			return fmt.Errorf("%s cannot be negative, got %s", name, money[name])
		}
	}
	if c.CoinsurancePercent.IsNegative() || c.CoinsurancePercent.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("coinsurance_percent must be between 0 and 100, got %s", c.CoinsurancePercent)
	}
	return nil
}

func (ip *InputParser) validateVisit(visit domain.PlannedVisit, overrides map[domain.VisitType]decimal.Decimal) error {
	if visit.Type == "" {
		return fmt.Errorf("type is required")
	}
	if visit.Count < 0 {
		return fmt.Errorf("count cannot be negative, got %d", visit.Count)
	}
	vt, ok := domain.ParseVisitType(string(visit.Type))
	if ok {
		return nil
	}
	for key := range overrides {
		if k, _ := domain.ParseVisitType(string(key)); k == vt {
			return nil
		}
	}
	return fmt.Errorf("unknown visit type %q (add it to billed_rates to price it)", visit.Type)
}

func validateUsage(u *domain.AnnualUsage) error {
	counts := []struct {
		name  string
		value int
	}{
		{"primary_care_visits", u.PrimaryCareVisits},
		{"urgent_care_visits", u.UrgentCareVisits},
		{"er_visits", u.ERVisits},
		{"monthly_prescriptions", u.MonthlyPrescriptions},
	}
	for _, c := range counts {
		if c.value < 0 {
			return fmt.Errorf("%s cannot be negative, got %d", c.name, c.value)
		}
	}
	return nil
}

func (ip *InputParser) validatePerson(p *domain.LikelihoodInput, customStates bool) error {
	if p.Age < 0 || p.Age > 120 {
		return fmt.Errorf("age must be between 0 and 120, got %d", p.Age)
	}
	if p.State == "" {
		return fmt.Errorf("state is required")
	}
	// states from an external dataset are only known once the engine loads it
	if customStates {
		return nil
	}
	if _, err := ip.tables.State(p.State); err != nil {
		return fmt.Errorf("state %q: %w", p.State, err)
	}
	return nil
}
