package reference

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/hanvion/healthcost/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultBilledAmount is charged for visit types missing from the rate table
var DefaultBilledAmount = decimal.NewFromInt(150)

// NationalUninsuredRate is used when a state has no entry in the dataset
var NationalUninsuredRate = decimal.NewFromFloat(12.0)

//go:embed data/states.csv
var statesCSV []byte

//go:embed data/medications.csv
var medicationsCSV []byte

//go:embed data/procedures.csv
var proceduresCSV []byte

// DefaultBilledAmounts returns the list price of each visit type
func DefaultBilledAmounts() map[domain.VisitType]decimal.Decimal {
	return map[domain.VisitType]decimal.Decimal{
		domain.VisitPrimaryCare:   decimal.NewFromInt(140),
		domain.VisitUrgentCare:    decimal.NewFromInt(220),
		domain.VisitSpecialist:    decimal.NewFromInt(260),
		domain.VisitTelehealth:    decimal.NewFromInt(75),
		domain.VisitEmergencyRoom: decimal.NewFromInt(1800),
	}
}

var defaultTables = sync.OnceValue(func() *Tables {
	states, err := ReadStatesCSV(bytes.NewReader(statesCSV))
	if err != nil {
		panic(fmt.Sprintf("embedded states dataset: %v", err))
	}
	meds, err := ReadMedicationsCSV(bytes.NewReader(medicationsCSV))
	if err != nil {
		panic(fmt.Sprintf("embedded medications dataset: %v", err))
	}
	procs, err := ReadProceduresCSV(bytes.NewReader(proceduresCSV))
	if err != nil {
		panic(fmt.Sprintf("embedded procedures dataset: %v", err))
	}
	return NewTables(DefaultBilledAmounts(), states, meds, procs)
})

// DefaultTables returns the shared tables built from the embedded datasets
func DefaultTables() *Tables {
	return defaultTables()
}

func defaultServiceCosts() []domain.ServiceCost {
	r := func(lo, hi int64) domain.PriceRange {
		return domain.PriceRange{Low: decimal.NewFromInt(lo), High: decimal.NewFromInt(hi)}
	}
	return []domain.ServiceCost{
		{Name: "Primary Care Visit", Cash: r(120, 180), Allowed: r(65, 95)},
		{Name: "Specialist Visit", Cash: r(180, 300), Allowed: r(90, 140)},
		{Name: "Urgent Care Visit", Cash: r(160, 280), Allowed: r(85, 130)},
		{Name: "ER Visit", Cash: r(1400, 2600), Allowed: r(450, 850)},
		{Name: "MRI Scan", Cash: r(900, 1800), Allowed: r(350, 700)},
		{Name: "CT Scan", Cash: r(700, 1500), Allowed: r(300, 600)},
		{Name: "Blood Panel", Cash: r(80, 180), Allowed: r(22, 55)},
		{Name: "X-Ray", Cash: r(80, 180), Allowed: r(30, 75)},
	}
}

func defaultSymptoms() []domain.Symptom {
	return []domain.Symptom{
		{
			Name:           "Chest pain",
			System:         "Cardiovascular",
			PossibleCauses: []string{"Muscle strain", "Acid reflux", "Anxiety or stress", "Costochondritis", "Angina"},
			SeekCare:       true,
			Notes:          "Chest pain can be caused by harmless conditions, but sudden or severe pain needs urgent evaluation.",
		},
		{
			Name:           "Shortness of breath",
			System:         "Respiratory",
			PossibleCauses: []string{"Asthma", "Viral infection", "Allergies", "Anemia", "Heart or lung conditions"},
			SeekCare:       true,
			Notes:          "If breathing difficulty is new or worsening, seek medical attention.",
		},
		{
			Name:           "Headache",
			System:         "Neurological",
			PossibleCauses: []string{"Migraine", "Tension headache", "Dehydration", "Eye strain"},
			Notes:          "Severe, sudden-onset headache or neurological symptoms require urgent care.",
		},
		{
			Name:           "Fever",
			System:         "General / Infectious",
			PossibleCauses: []string{"Viral infection", "Flu", "COVID-19", "Sinus infection"},
			Notes:          "Persistent high fever or fever in children may need evaluation.",
		},
		{
			Name:           "Stomach pain",
			System:         "Gastrointestinal",
			PossibleCauses: []string{"Indigestion", "Food poisoning", "Constipation", "Gastritis"},
			Notes:          "Severe or persistent abdominal pain should be evaluated.",
		},
		{
			Name:           "Back pain",
			System:         "Musculoskeletal",
			PossibleCauses: []string{"Muscle strain", "Poor posture", "Disc issue"},
			Notes:          "Back pain with numbness or weakness may need medical review.",
		},
		{
			Name:           "Dizziness",
			System:         "Neurological",
			PossibleCauses: []string{"Dehydration", "Low blood pressure", "Inner ear issues"},
			Notes:          "If dizziness is persistent or severe, seek care.",
		},
	}
}
