package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/hanvion/healthcost/internal/domain"
)

// CSVFormatter writes one row per visit followed by a totals row
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *domain.EstimateReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "VisitType", "Count", "Billed", "Allowed", "PlanPaid", "PatientPaid", "CapApplied"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, v := range report.Visits {
		row := []string{
			report.Name,
			string(v.VisitType),
			strconv.Itoa(v.Count),
			v.BilledAmount.StringFixed(2),
			v.AllowedAmount.StringFixed(2),
			v.PlanPaid.StringFixed(2),
			v.PatientPaid.StringFixed(2),
			strconv.FormatBool(v.CapApplied),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	totals := []string{
		report.Name,
		"TOTAL",
		strconv.Itoa(visitCount(report)),
		report.Totals.Billed.StringFixed(2),
		report.Totals.Allowed.StringFixed(2),
		report.Totals.PlanPaid.StringFixed(2),
		report.Totals.PatientPaid.StringFixed(2),
		"",
	}
	if err := w.Write(totals); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
