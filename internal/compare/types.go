package compare

import (
	"fmt"

	"github.com/hanvion/healthcost/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult holds the key totals of one scenario run
type ComparisonResult struct {
	ScenarioName string                `json:"scenarioName"`
	Description  string                `json:"description,omitempty"`
	Report       *domain.EstimateReport `json:"-"`

	// Key Metrics
	BilledTotal  decimal.Decimal  `json:"billedTotal"`
	PlanTotal    decimal.Decimal  `json:"planTotal"`
	PatientTotal decimal.Decimal  `json:"patientTotal"`
	CapApplied   bool             `json:"capApplied"`
	AnnualTotal  *decimal.Decimal `json:"annualTotal,omitempty"` // insured estimate, or self-pay when uninsured

	// Comparison to Base
	PatientDiffFromBase decimal.Decimal `json:"patientDiffFromBase"`
	PatientPctFromBase  decimal.Decimal `json:"patientPctFromBase"`
	PlanDiffFromBase    decimal.Decimal `json:"planDiffFromBase"`
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath,omitempty"`
}

// MetricsCalculator extracts key metrics from estimate reports
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the comparison metrics of one report
func (mc *MetricsCalculator) CalculateMetrics(name string, report *domain.EstimateReport) ComparisonResult {
	result := ComparisonResult{
		ScenarioName: name,
		Report:       report,
		BilledTotal:  report.Totals.Billed,
		PlanTotal:    report.Totals.PlanPaid,
		PatientTotal: report.Totals.PatientPaid,
	}

	for _, v := range report.Visits {
		if v.CapApplied {
			result.CapApplied = true
			break
		}
	}

	if report.Annual != nil {
		annual := report.Annual.SelfPayTotal
		if report.Annual.InsuredTotal != nil {
			annual = *report.Annual.InsuredTotal
		}
		result.AnnualTotal = &annual
	}

	return result
}

// CalculateComparison fills in the deltas of a scenario against the base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.PatientDiffFromBase = scenario.PatientTotal.Sub(base.PatientTotal)

	if !base.PatientTotal.IsZero() {
		scenario.PatientPctFromBase = scenario.PatientDiffFromBase.
			Div(base.PatientTotal).
			Mul(decimal.NewFromInt(100)).
			Round(1)
	}

	scenario.PlanDiffFromBase = scenario.PlanTotal.Sub(base.PlanTotal)

	return scenario
}

// GenerateRecommendations summarizes which alternative is cheapest for the patient
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	cheapest := -1
	for i, alt := range compSet.AlternativeResults {
		best := compSet.BaseResult.PatientTotal
		if cheapest >= 0 {
			best = compSet.AlternativeResults[cheapest].PatientTotal
		}
		if alt.PatientTotal.LessThan(best) {
			cheapest = i
		}
	}

	if cheapest >= 0 {
		alt := compSet.AlternativeResults[cheapest]
		recommendations = append(recommendations, fmt.Sprintf(
			"Lowest Cost: %s saves $%s out of pocket compared with %s",
			alt.ScenarioName, alt.PatientDiffFromBase.Neg().StringFixed(2), compSet.BaseScenarioName))
	} else {
		recommendations = append(recommendations, fmt.Sprintf(
			"Lowest Cost: %s is already the cheapest option for these visits", compSet.BaseScenarioName))
	}

	for _, alt := range compSet.AlternativeResults {
		if alt.CapApplied {
			recommendations = append(recommendations, fmt.Sprintf(
				"Out-of-Pocket Cap: %s reaches the out-of-pocket maximum on at least one visit", alt.ScenarioName))
		}
	}

	return recommendations
}
