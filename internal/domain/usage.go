package domain

import "github.com/shopspring/decimal"

// AnnualUsage holds expected yearly utilization
type AnnualUsage struct {
	PrimaryCareVisits    int  `yaml:"primary_care_visits" json:"primaryCareVisits"`
	UrgentCareVisits     int  `yaml:"urgent_care_visits" json:"urgentCareVisits"`
	ERVisits             int  `yaml:"er_visits" json:"erVisits"`
	MonthlyPrescriptions int  `yaml:"monthly_prescriptions" json:"monthlyPrescriptions"`
	HasInsurance         bool `yaml:"has_insurance" json:"hasInsurance"`
}

// AnnualSpendResult compares self-pay against a coarse insured estimate.
// InsuredTotal is nil when the person has no insurance.
type AnnualSpendResult struct {
	SelfPayTotal decimal.Decimal  `json:"selfPayTotal"`
	InsuredTotal *decimal.Decimal `json:"insuredTotal,omitempty"`
}

// Savings returns SelfPayTotal minus InsuredTotal, or zero without insurance
func (r AnnualSpendResult) Savings() decimal.Decimal {
	if r.InsuredTotal == nil {
		return decimal.Zero
	}
	return r.SelfPayTotal.Sub(*r.InsuredTotal)
}
