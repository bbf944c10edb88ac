package domain

import "github.com/shopspring/decimal"

// Configuration is the top-level scenario file
type Configuration struct {
	Name      string                        `yaml:"name" json:"name"`
	Coverage  CoverageParameters            `yaml:"coverage" json:"coverage"`
	Visits    []PlannedVisit                `yaml:"visits" json:"visits"`
	Usage     *AnnualUsage                  `yaml:"usage,omitempty" json:"usage,omitempty"`
	Person    *LikelihoodInput              `yaml:"person,omitempty" json:"person,omitempty"`
	Rates     map[VisitType]decimal.Decimal `yaml:"billed_rates,omitempty" json:"billedRates,omitempty"`
	Reference ReferenceSources              `yaml:"reference_data,omitempty" json:"referenceData,omitempty"`
}

// PlannedVisit is one visit to simulate, optionally repeated
type PlannedVisit struct {
	Type  VisitType `yaml:"type" json:"type"`
	Count int       `yaml:"count,omitempty" json:"count,omitempty"` // 0 is treated as 1
}

// Times returns how many times the visit is simulated
func (p PlannedVisit) Times() int {
	if p.Count <= 0 {
		return 1
	}
	return p.Count
}

// ReferenceSources points at external datasets that replace the built-ins
type ReferenceSources struct {
	StatesCSV      string `yaml:"states_csv,omitempty" json:"statesCsv,omitempty"`
	MedicationsCSV string `yaml:"medications_csv,omitempty" json:"medicationsCsv,omitempty"`
	Procedures     string `yaml:"procedures,omitempty" json:"procedures,omitempty"` // .csv or .parquet
}

// VisitLine is a simulated visit in a report
type VisitLine struct {
	VisitPaymentResult
	Count int `json:"count"`
}

// EstimateTotals sums the visit lines of a report
type EstimateTotals struct {
	Billed      decimal.Decimal `json:"billed"`
	Allowed     decimal.Decimal `json:"allowed"`
	PlanPaid    decimal.Decimal `json:"planPaid"`
	PatientPaid decimal.Decimal `json:"patientPaid"`
}

// EstimateReport is the result of running a scenario file
type EstimateReport struct {
	Name       string             `json:"name"`
	Coverage   CoverageParameters `json:"coverage"`
	Visits     []VisitLine        `json:"visits"`
	Totals     EstimateTotals     `json:"totals"`
	Annual     *AnnualSpendResult `json:"annual,omitempty"`
	Likelihood *LikelihoodResult  `json:"likelihood,omitempty"`
	Notes      []string           `json:"notes,omitempty"`
}

// DeepCopy returns a copy that shares no slices, maps or pointers with c
func (c *Configuration) DeepCopy() *Configuration {
	if c == nil {
		return nil
	}
	out := *c
	if c.Visits != nil {
		out.Visits = append([]PlannedVisit(nil), c.Visits...)
	}
	if c.Usage != nil {
		u := *c.Usage
		out.Usage = &u
	}
	if c.Person != nil {
		p := *c.Person
		out.Person = &p
	}
	if c.Rates != nil {
		out.Rates = make(map[VisitType]decimal.Decimal, len(c.Rates))
		for k, v := range c.Rates {
			out.Rates[k] = v
		}
	}
	return &out
}
