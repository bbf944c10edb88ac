package reference

import (
	"fmt"

	"github.com/hanvion/healthcost/internal/domain"
)

// Apply returns base with every dataset named in src replaced by the
// contents of that file. Empty paths keep the base dataset.
func Apply(base *Tables, src domain.ReferenceSources) (*Tables, error) {
	t := base
	if src.StatesCSV != "" {
		states, err := LoadStatesCSV(src.StatesCSV)
		if err != nil {
			return nil, fmt.Errorf("load states: %w", err)
		}
		t = t.WithStates(states)
	}
	if src.MedicationsCSV != "" {
		meds, err := LoadMedicationsCSV(src.MedicationsCSV)
		if err != nil {
			return nil, fmt.Errorf("load medications: %w", err)
		}
		t = t.WithMedications(meds)
	}
	if src.Procedures != "" {
		procs, err := LoadProcedures(src.Procedures)
		if err != nil {
			return nil, fmt.Errorf("load procedures: %w", err)
		}
		t = t.WithProcedures(procs)
	}
	return t, nil
}
