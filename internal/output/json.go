package output

import (
	"github.com/goccy/go-json"
	"github.com/hanvion/healthcost/internal/domain"
)

// JSONFormatter renders the report as indented JSON
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.EstimateReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
