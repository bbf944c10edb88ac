package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// VisitType identifies the kind of medical visit being priced
type VisitType string

const (
	VisitPrimaryCare   VisitType = "primary_care"
	VisitUrgentCare    VisitType = "urgent_care"
	VisitSpecialist    VisitType = "specialist"
	VisitTelehealth    VisitType = "telehealth"
	VisitEmergencyRoom VisitType = "emergency_room"
)

// AllVisitTypes lists every visit type in display order
var AllVisitTypes = []VisitType{
	VisitPrimaryCare,
	VisitUrgentCare,
	VisitSpecialist,
	VisitTelehealth,
	VisitEmergencyRoom,
}

var visitTypeAliases = map[string]VisitType{
	"primary_care":       VisitPrimaryCare,
	"primary care":       VisitPrimaryCare,
	"primary care visit": VisitPrimaryCare,
	"pcp":                VisitPrimaryCare,
	"urgent_care":        VisitUrgentCare,
	"urgent care":        VisitUrgentCare,
	"urgent care visit":  VisitUrgentCare,
	"specialist":         VisitSpecialist,
	"specialist visit":   VisitSpecialist,
	"telehealth":         VisitTelehealth,
	"telehealth visit":   VisitTelehealth,
	"emergency_room":     VisitEmergencyRoom,
	"emergency room":     VisitEmergencyRoom,
	"er":                 VisitEmergencyRoom,
	"er visit":           VisitEmergencyRoom,
}

// ParseVisitType resolves a canonical key or display label to a VisitType.
// Unrecognized input is returned as-is with ok=false; pricing falls back to
// the default billed amount for such values.
func ParseVisitType(s string) (VisitType, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	if vt, ok := visitTypeAliases[key]; ok {
		return vt, true
	}
	return VisitType(key), false
}

// Label returns the human-readable name of the visit type
func (v VisitType) Label() string {
	switch v {
	case VisitPrimaryCare:
		return "Primary Care Visit"
	case VisitUrgentCare:
		return "Urgent Care Visit"
	case VisitSpecialist:
		return "Specialist Visit"
	case VisitTelehealth:
		return "Telehealth Visit"
	case VisitEmergencyRoom:
		return "ER Visit"
	default:
		return string(v)
	}
}

// IsKnown reports whether v is one of the enumerated visit types
func (v VisitType) IsKnown() bool {
	for _, known := range AllVisitTypes {
		if v == known {
			return true
		}
	}
	return false
}

// CoverageParameters describes the plan terms applied to a single visit
type CoverageParameters struct {
	InNetwork          bool            `yaml:"in_network" json:"inNetwork"`
	HasInsurance       bool            `yaml:"has_insurance" json:"hasInsurance"`
	Deductible         decimal.Decimal `yaml:"deductible" json:"deductible"`
	DeductibleMet      decimal.Decimal `yaml:"deductible_met" json:"deductibleMet"`           // may exceed Deductible
	OutOfPocketMax     decimal.Decimal `yaml:"out_of_pocket_max" json:"outOfPocketMax"`       // 0 means no cap
	CoinsurancePercent decimal.Decimal `yaml:"coinsurance_percent" json:"coinsurancePercent"` // 0-100
	Copay              decimal.Decimal `yaml:"copay" json:"copay"`
}

// VisitPaymentResult is the payer/patient split of one visit
type VisitPaymentResult struct {
	VisitType     VisitType       `json:"visitType"`
	BilledAmount  decimal.Decimal `json:"billedAmount"`
	AllowedAmount decimal.Decimal `json:"allowedAmount"`
	PlanPaid      decimal.Decimal `json:"planPaid"`
	PatientPaid   decimal.Decimal `json:"patientPaid"`

	// CapApplied is set when the out-of-pocket maximum lowered PatientPaid.
	// PlanPaid is not raised to compensate, so PlanPaid+PatientPaid can be
	// less than AllowedAmount.
	CapApplied bool `json:"capApplied"`
}

// Unallocated returns the part of the allowed amount neither side pays.
// It is non-zero only when the out-of-pocket cap clamped the patient share.
func (r VisitPaymentResult) Unallocated() decimal.Decimal {
	rest := r.AllowedAmount.Sub(r.PlanPaid).Sub(r.PatientPaid)
	if rest.IsNegative() {
		return decimal.Zero
	}
	return rest
}
