package reference

import (
	"errors"
	"sort"
	"strings"

	"github.com/hanvion/healthcost/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrUnknownState      = errors.New("unknown state")
	ErrUnknownSymptom    = errors.New("unknown symptom")
	ErrUnknownService    = errors.New("unknown service")
	ErrUnknownMedication = errors.New("unknown medication")
)

// RateProvider is the key->value contract the cost calculators depend on
type RateProvider interface {
	// BilledAmount returns the list price for a visit type
	BilledAmount(visit domain.VisitType) (decimal.Decimal, bool)
	// UninsuredRate returns the uninsured percentage for a state
	UninsuredRate(state string) (decimal.Decimal, bool)
}

// Tables holds every reference dataset. A Tables value is never mutated
// after construction; the With* methods return modified copies, so a single
// instance can be shared across goroutines.
type Tables struct {
	billed      map[domain.VisitType]decimal.Decimal
	states      []domain.StateRate
	stateIndex  map[string]int
	medications []domain.Medication
	procedures  []domain.Procedure
	services    []domain.ServiceCost
	symptoms    []domain.Symptom
}

var _ RateProvider = (*Tables)(nil)

// NewTables builds reference tables from the given datasets. Services and
// symptoms always come from the built-in tables.
func NewTables(
	billed map[domain.VisitType]decimal.Decimal,
	states []domain.StateRate,
	medications []domain.Medication,
	procedures []domain.Procedure,
) *Tables {
	t := &Tables{
		billed:      make(map[domain.VisitType]decimal.Decimal, len(billed)),
		medications: append([]domain.Medication(nil), medications...),
		procedures:  append([]domain.Procedure(nil), procedures...),
		services:    defaultServiceCosts(),
		symptoms:    defaultSymptoms(),
	}
	for k, v := range billed {
		t.billed[k] = v
	}
	t.setStates(states)
	return t
}

func (t *Tables) setStates(states []domain.StateRate) {
	t.states = append([]domain.StateRate(nil), states...)
	sort.Slice(t.states, func(i, j int) bool { return t.states[i].Name < t.states[j].Name })
	t.stateIndex = make(map[string]int, len(t.states)*2)
	for i, s := range t.states {
		if s.Code != "" {
			t.stateIndex[normalize(s.Code)] = i
		}
		if s.Name != "" {
			t.stateIndex[normalize(s.Name)] = i
		}
	}
}

func (t *Tables) clone() *Tables {
	c := *t
	c.billed = make(map[domain.VisitType]decimal.Decimal, len(t.billed))
	for k, v := range t.billed {
		c.billed[k] = v
	}
	return &c
}

// WithBilledOverrides returns a copy whose billed amounts are replaced by
// the given entries. Keys are resolved through domain.ParseVisitType.
func (t *Tables) WithBilledOverrides(overrides map[domain.VisitType]decimal.Decimal) *Tables {
	c := t.clone()
	for k, v := range overrides {
		vt, _ := domain.ParseVisitType(string(k))
		c.billed[vt] = v
	}
	return c
}

// WithStates returns a copy using the given state dataset
func (t *Tables) WithStates(states []domain.StateRate) *Tables {
	c := t.clone()
	c.setStates(states)
	return c
}

// WithMedications returns a copy using the given medication dataset
func (t *Tables) WithMedications(meds []domain.Medication) *Tables {
	c := t.clone()
	c.medications = append([]domain.Medication(nil), meds...)
	return c
}

// WithProcedures returns a copy using the given procedure dataset
func (t *Tables) WithProcedures(procs []domain.Procedure) *Tables {
	c := t.clone()
	c.procedures = append([]domain.Procedure(nil), procs...)
	return c
}

func (t *Tables) BilledAmount(visit domain.VisitType) (decimal.Decimal, bool) {
	amount, ok := t.billed[visit]
	return amount, ok
}

func (t *Tables) UninsuredRate(state string) (decimal.Decimal, bool) {
	s, err := t.State(state)
	if err != nil {
		return decimal.Zero, false
	}
	return s.UninsuredRate, true
}

// State looks up a state by two-letter code or full name, ignoring case
func (t *Tables) State(state string) (domain.StateRate, error) {
	i, ok := t.stateIndex[normalize(state)]
	if !ok {
		return domain.StateRate{}, ErrUnknownState
	}
	return t.states[i], nil
}

// States returns the state dataset sorted by name
func (t *Tables) States() []domain.StateRate {
	return append([]domain.StateRate(nil), t.states...)
}

// Symptoms returns the symptom map sorted by name
func (t *Tables) Symptoms() []domain.Symptom {
	out := append([]domain.Symptom(nil), t.symptoms...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Symptom looks up a symptom by name, ignoring case
func (t *Tables) Symptom(name string) (domain.Symptom, error) {
	key := normalize(name)
	for _, s := range t.symptoms {
		if normalize(s.Name) == key {
			return s, nil
		}
	}
	return domain.Symptom{}, ErrUnknownSymptom
}

// Services returns the service cost table in its display order
func (t *Tables) Services() []domain.ServiceCost {
	return append([]domain.ServiceCost(nil), t.services...)
}

// Service looks up a service by name, ignoring case
func (t *Tables) Service(name string) (domain.ServiceCost, error) {
	key := normalize(name)
	for _, s := range t.services {
		if normalize(s.Name) == key {
			return s, nil
		}
	}
	return domain.ServiceCost{}, ErrUnknownService
}

// Medications returns the sorted, de-duplicated drug names
func (t *Tables) Medications() []string {
	seen := make(map[string]bool, len(t.medications))
	names := make([]string, 0, len(t.medications))
	for _, m := range t.medications {
		if !seen[m.Drug] {
			seen[m.Drug] = true
			names = append(names, m.Drug)
		}
	}
	sort.Strings(names)
	return names
}

// Medication returns the first dataset row for a drug, ignoring case
func (t *Tables) Medication(drug string) (domain.Medication, error) {
	key := normalize(drug)
	for _, m := range t.medications {
		if normalize(m.Drug) == key {
			return m, nil
		}
	}
	return domain.Medication{}, ErrUnknownMedication
}

// Procedures returns a copy of the procedure dataset in file order
func (t *Tables) Procedures() []domain.Procedure {
	return append([]domain.Procedure(nil), t.procedures...)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
