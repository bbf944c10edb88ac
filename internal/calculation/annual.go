package calculation

import (
	"github.com/hanvion/healthcost/internal/domain"
	"github.com/hanvion/healthcost/internal/reference"
	"github.com/shopspring/decimal"
)

var (
	// MonthlyMedicationCost is the assumed cash price of one monthly prescription
	MonthlyMedicationCost = decimal.NewFromInt(40)

	// InsuredCostMultiplier is the flat share of self-pay an insured person is
	// assumed to pay. It is deliberately independent of SimulateVisitPayment.
	InsuredCostMultiplier = decimal.NewFromFloat(0.35)
)

// EstimateAnnualSpend projects a year of care at cash prices and, for
// insured users, a coarse insured total rounded half-to-even to whole dollars.
// Negative counts are treated as zero.
func EstimateAnnualSpend(rates reference.RateProvider, usage domain.AnnualUsage) domain.AnnualSpendResult {
	count := func(n int) decimal.Decimal {
		if n < 0 {
			n = 0
		}
		return decimal.NewFromInt(int64(n))
	}

	selfPay := count(usage.PrimaryCareVisits).Mul(BilledAmount(rates, domain.VisitPrimaryCare)).
		Add(count(usage.UrgentCareVisits).Mul(BilledAmount(rates, domain.VisitUrgentCare))).
		Add(count(usage.ERVisits).Mul(BilledAmount(rates, domain.VisitEmergencyRoom))).
		Add(count(usage.MonthlyPrescriptions).Mul(decimal.NewFromInt(12)).Mul(MonthlyMedicationCost))

	result := domain.AnnualSpendResult{SelfPayTotal: selfPay}
	if !usage.HasInsurance {
		return result
	}

	insured := selfPay.Mul(InsuredCostMultiplier).RoundBank(0)
	result.InsuredTotal = &insured
	return result
}
