package calculation

import (
	"sort"
	"strings"

	"github.com/hanvion/healthcost/internal/domain"
	"github.com/hanvion/healthcost/internal/reference"
)

// SummarizeService derives the averages and estimated savings of a service
func SummarizeService(s domain.ServiceCost) domain.ServiceCostSummary {
	avgCash := s.Cash.Midpoint()
	avgAllowed := s.Allowed.Midpoint()
	return domain.ServiceCostSummary{
		ServiceCost:      s,
		AverageCash:      avgCash,
		AverageAllowed:   avgAllowed,
		EstimatedSavings: avgCash.Sub(avgAllowed),
	}
}

// ServiceCostSummary looks up a service by name and summarizes it
func ServiceCostSummary(tables *reference.Tables, name string) (domain.ServiceCostSummary, error) {
	s, err := tables.Service(name)
	if err != nil {
		return domain.ServiceCostSummary{}, err
	}
	return SummarizeService(s), nil
}

// AllSettings matches every care setting in SearchProcedures
const AllSettings = "All"

// SearchProcedures filters procedures by a case-insensitive substring of the
// description or code and by care setting, cheapest median first. An empty
// query matches everything; an empty setting or "All" disables the filter.
func SearchProcedures(procs []domain.Procedure, query, setting string) []domain.Procedure {
	q := strings.ToLower(strings.TrimSpace(query))
	setting = strings.TrimSpace(setting)
	filterSetting := setting != "" && !strings.EqualFold(setting, AllSettings)

	out := make([]domain.Procedure, 0, len(procs))
	for _, p := range procs {
		if filterSetting && !strings.EqualFold(p.Setting, setting) {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Description), q) &&
			!strings.Contains(strings.ToLower(p.Code), q) {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].MedianPrice.LessThan(out[j].MedianPrice) })
	return out
}

// Settings returns the distinct care settings, sorted
func Settings(procs []domain.Procedure) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range procs {
		if p.Setting != "" && !seen[p.Setting] {
			seen[p.Setting] = true
			out = append(out, p.Setting)
		}
	}
	sort.Strings(out)
	return out
}
