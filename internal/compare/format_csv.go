package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Billed",
		"Plan Pays",
		"Patient Pays",
		"Cap Applied",
		"Annual Estimate",
		"Patient Diff from Base",
		"Patient % Change",
		"Plan Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	annual := ""
	if result.AnnualTotal != nil {
		annual = result.AnnualTotal.StringFixed(2)
	}
	return []string{
		result.ScenarioName,
		scenarioType,
		result.BilledTotal.StringFixed(2),
		result.PlanTotal.StringFixed(2),
		result.PatientTotal.StringFixed(2),
		strconv.FormatBool(result.CapApplied),
		annual,
		result.PatientDiffFromBase.StringFixed(2),
		result.PatientPctFromBase.StringFixed(1),
		result.PlanDiffFromBase.StringFixed(2),
	}
}
