package calculation

import (
	"github.com/hanvion/healthcost/internal/domain"
	"github.com/hanvion/healthcost/internal/reference"
	"github.com/shopspring/decimal"
)

var (
	// InNetworkAllowedFactor is the share of the billed amount allowed in-network
	InNetworkAllowedFactor = decimal.NewFromFloat(0.6)

	hundred = decimal.NewFromInt(100)
)

// BilledAmount resolves the list price of a visit, falling back to
// reference.DefaultBilledAmount for types the provider does not know.
func BilledAmount(rates reference.RateProvider, visit domain.VisitType) decimal.Decimal {
	if rates == nil {
		rates = reference.DefaultTables()
	}
	if amount, ok := rates.BilledAmount(visit); ok {
		return amount
	}
	if vt, ok := domain.ParseVisitType(string(visit)); ok {
		if amount, ok := rates.BilledAmount(vt); ok {
			return amount
		}
	}
	return reference.DefaultBilledAmount
}

// ClampCoverage forces coverage parameters into their valid ranges:
// money amounts are floored at zero and coinsurance is kept within 0-100.
func ClampCoverage(c domain.CoverageParameters) domain.CoverageParameters {
	c.Deductible = nonNegative(c.Deductible)
	c.DeductibleMet = nonNegative(c.DeductibleMet)
	c.OutOfPocketMax = nonNegative(c.OutOfPocketMax)
	c.Copay = nonNegative(c.Copay)
	c.CoinsurancePercent = decimal.Min(nonNegative(c.CoinsurancePercent), hundred)
	return c
}

// SimulateVisitPayment splits one visit's charge between plan and patient.
//
// Without insurance the patient pays the billed amount in cash. With
// insurance the allowed amount is the billed amount, discounted to 60%
// in-network, and is split by the remaining deductible, then copay or
// coinsurance. The out-of-pocket maximum clamps only the patient share;
// PlanPaid is left as computed and CapApplied is set.
//
// The function never fails: out-of-range inputs are clamped first.
func SimulateVisitPayment(rates reference.RateProvider, visit domain.VisitType, coverage domain.CoverageParameters) domain.VisitPaymentResult {
	billed := BilledAmount(rates, visit)
	result := domain.VisitPaymentResult{
		VisitType:    visit,
		BilledAmount: billed,
	}

	if !coverage.HasInsurance {
		result.AllowedAmount = billed
		result.PlanPaid = decimal.Zero
		result.PatientPaid = billed
		return result
	}

	c := ClampCoverage(coverage)
	allowed := billed
	if c.InNetwork {
		allowed = billed.Mul(InNetworkAllowedFactor)
	}
	result.AllowedAmount = allowed

	coinsurance := c.CoinsurancePercent.Div(hundred)
	remaining := nonNegative(c.Deductible.Sub(c.DeductibleMet))

	var patient, plan decimal.Decimal
	switch {
	case remaining.IsPositive() && allowed.LessThanOrEqual(remaining):
		patient = allowed
		plan = decimal.Zero
	case remaining.IsPositive():
		rest := allowed.Sub(remaining)
		patient = remaining.Add(rest.Mul(coinsurance))
		plan = rest.Mul(decimal.NewFromInt(1).Sub(coinsurance))
	case c.Copay.IsPositive():
		patient = decimal.Min(c.Copay, allowed)
		plan = nonNegative(allowed.Sub(c.Copay))
	default:
		patient = allowed.Mul(coinsurance)
		plan = allowed.Mul(decimal.NewFromInt(1).Sub(coinsurance))
	}

	if c.OutOfPocketMax.IsPositive() && patient.GreaterThan(c.OutOfPocketMax) {
		patient = c.OutOfPocketMax
		result.CapApplied = true
	}

	result.PlanPaid = plan
	result.PatientPaid = patient
	return result
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
