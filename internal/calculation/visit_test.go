package calculation

import (
	"testing"

	"github.com/hanvion/healthcost/internal/domain"
	"github.com/hanvion/healthcost/internal/reference"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, d(expected).Equal(actual), append([]interface{}{"expected %s, got %s", expected, actual}, msgAndArgs...)...)
}

func specialistCoverage() domain.CoverageParameters {
	return domain.CoverageParameters{
		InNetwork:          true,
		HasInsurance:       true,
		Deductible:         d("1500"),
		DeductibleMet:      d("0"),
		OutOfPocketMax:     d("5000"),
		CoinsurancePercent: d("20"),
		Copay:              d("0"),
	}
}

func TestSimulateVisitPayment_Scenarios(t *testing.T) {
	rates := reference.DefaultTables()

	t.Run("uninsured primary care pays billed in cash", func(t *testing.T) {
		result := SimulateVisitPayment(rates, domain.VisitPrimaryCare, domain.CoverageParameters{})

		assertDecimal(t, "140", result.BilledAmount)
		assertDecimal(t, "140", result.AllowedAmount)
		assertDecimal(t, "0", result.PlanPaid)
		assertDecimal(t, "140", result.PatientPaid)
		assert.False(t, result.CapApplied)
	})

	t.Run("allowed amount absorbed by remaining deductible", func(t *testing.T) {
		result := SimulateVisitPayment(rates, domain.VisitSpecialist, specialistCoverage())

		assertDecimal(t, "156", result.AllowedAmount)
		assertDecimal(t, "156", result.PatientPaid)
		assertDecimal(t, "0", result.PlanPaid)
	})

	t.Run("deductible met with copay", func(t *testing.T) {
		c := specialistCoverage()
		c.DeductibleMet = d("1500")
		c.Copay = d("45")

		result := SimulateVisitPayment(rates, domain.VisitSpecialist, c)

		assertDecimal(t, "156", result.AllowedAmount)
		assertDecimal(t, "45", result.PatientPaid)
		assertDecimal(t, "111", result.PlanPaid)
	})

	t.Run("deductible met with coinsurance", func(t *testing.T) {
		c := specialistCoverage()
		c.DeductibleMet = d("1500")

		result := SimulateVisitPayment(rates, domain.VisitSpecialist, c)

		assertDecimal(t, "156", result.AllowedAmount)
		assertDecimal(t, "31.2", result.PatientPaid)
		assertDecimal(t, "124.8", result.PlanPaid)
	})
}

func TestSimulateVisitPayment_Branches(t *testing.T) {
	rates := reference.DefaultTables()

	tests := []struct {
		name        string
		visit       domain.VisitType
		coverage    domain.CoverageParameters
		allowed     string
		plan        string
		patient     string
		capApplied  bool
		unallocated string
	}{
		{
			name:  "partial deductible then coinsurance",
			visit: domain.VisitEmergencyRoom,
			coverage: domain.CoverageParameters{
				InNetwork: true, HasInsurance: true,
				Deductible: d("1000"), DeductibleMet: d("600"),
				CoinsurancePercent: d("20"),
			},
			// allowed 1080, remaining 400, rest 680
			allowed: "1080", plan: "544", patient: "536", unallocated: "0",
		},
		{
			name:  "out of network keeps billed as allowed",
			visit: domain.VisitUrgentCare,
			coverage: domain.CoverageParameters{
				HasInsurance: true, CoinsurancePercent: d("30"),
			},
			allowed: "220", plan: "154", patient: "66", unallocated: "0",
		},
		{
			name:  "copay larger than allowed",
			visit: domain.VisitTelehealth,
			coverage: domain.CoverageParameters{
				InNetwork: true, HasInsurance: true, Copay: d("60"),
			},
			allowed: "45", plan: "0", patient: "45", unallocated: "0",
		},
		{
			name:  "deductible met beyond deductible counts as met",
			visit: domain.VisitPrimaryCare,
			coverage: domain.CoverageParameters{
				InNetwork: true, HasInsurance: true,
				Deductible: d("500"), DeductibleMet: d("900"), Copay: d("25"),
			},
			allowed: "84", plan: "59", patient: "25", unallocated: "0",
		},
		{
			name:  "out of pocket cap clamps only the patient share",
			visit: domain.VisitEmergencyRoom,
			coverage: domain.CoverageParameters{
				HasInsurance: true, Deductible: d("3000"), OutOfPocketMax: d("1000"),
				CoinsurancePercent: d("20"),
			},
			allowed: "1800", plan: "0", patient: "1000", capApplied: true, unallocated: "800",
		},
		{
			name:  "unknown visit type uses the default billed amount",
			visit: domain.VisitType("acupuncture"),
			coverage: domain.CoverageParameters{
				InNetwork: true, HasInsurance: true, CoinsurancePercent: d("50"),
			},
			allowed: "90", plan: "45", patient: "45", unallocated: "0",
		},
		{
			name:  "display label resolves to the visit type",
			visit: domain.VisitType("ER Visit"),
			coverage: domain.CoverageParameters{
				HasInsurance: true, CoinsurancePercent: d("10"),
			},
			allowed: "1800", plan: "1620", patient: "180", unallocated: "0",
		},
		{
			name:  "out of range inputs are clamped",
			visit: domain.VisitPrimaryCare,
			coverage: domain.CoverageParameters{
				InNetwork: true, HasInsurance: true,
				Deductible: d("-200"), Copay: d("-5"),
				CoinsurancePercent: d("150"), OutOfPocketMax: d("-1"),
			},
			allowed: "84", plan: "0", patient: "84", unallocated: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SimulateVisitPayment(rates, tt.visit, tt.coverage)

			assertDecimal(t, tt.allowed, result.AllowedAmount, "allowed")
			assertDecimal(t, tt.plan, result.PlanPaid, "plan")
			assertDecimal(t, tt.patient, result.PatientPaid, "patient")
			assert.Equal(t, tt.capApplied, result.CapApplied)
			assertDecimal(t, tt.unallocated, result.Unallocated(), "unallocated")
		})
	}
}

func TestSimulateVisitPayment_Properties(t *testing.T) {
	rates := reference.DefaultTables()
	amounts := []string{"0", "50", "100", "500", "1500", "5000"}
	coinsurances := []string{"0", "20", "50", "100"}

	for _, vt := range domain.AllVisitTypes {
		billed := BilledAmount(rates, vt)

		for _, network := range []bool{true, false} {
			for _, deductible := range amounts {
				for _, met := range amounts {
					for _, coins := range coinsurances {
						for _, oop := range []string{"0", "100", "1000"} {
							c := domain.CoverageParameters{
								InNetwork:          network,
								HasInsurance:       true,
								Deductible:         d(deductible),
								DeductibleMet:      d(met),
								OutOfPocketMax:     d(oop),
								CoinsurancePercent: d(coins),
							}
							result := SimulateVisitPayment(rates, vt, c)

							assert.False(t, result.PlanPaid.IsNegative())
							assert.False(t, result.AllowedAmount.IsNegative())
							if c.OutOfPocketMax.IsPositive() {
								assert.True(t, result.PatientPaid.LessThanOrEqual(c.OutOfPocketMax))
							}

							uninsured := c
							uninsured.HasInsurance = false
							cash := SimulateVisitPayment(rates, vt, uninsured)
							assert.True(t, cash.AllowedAmount.Equal(billed))
							assert.True(t, cash.PlanPaid.IsZero())
							assert.True(t, cash.PatientPaid.Equal(billed))

							if d(met).GreaterThanOrEqual(d(deductible)) {
								expected := result.AllowedAmount.Mul(d(coins)).Div(d("100"))
								if !result.CapApplied {
									assert.True(t, result.PatientPaid.Equal(expected),
										"%s met deductible: expected %s got %s", vt, expected, result.PatientPaid)
								}
							}
						}
					}
				}
			}
		}
	}
}

func TestSimulateVisitPayment_NetworkDiscount(t *testing.T) {
	rates := reference.DefaultTables()
	for _, vt := range domain.AllVisitTypes {
		c := specialistCoverage()
		in := SimulateVisitPayment(rates, vt, c)
		c.InNetwork = false
		out := SimulateVisitPayment(rates, vt, c)

		assert.True(t, in.AllowedAmount.Equal(out.AllowedAmount.Mul(d("0.6"))), "%s", vt)
		assert.True(t, out.AllowedAmount.Equal(BilledAmount(rates, vt)), "%s", vt)
	}
}

func TestSimulateVisitPayment_MonotonicInDeductibleMet(t *testing.T) {
	rates := reference.DefaultTables()

	for _, vt := range domain.AllVisitTypes {
		for _, coins := range []string{"0", "20", "80", "100"} {
			c := domain.CoverageParameters{
				InNetwork:          true,
				HasInsurance:       true,
				Deductible:         d("2000"),
				CoinsurancePercent: d(coins),
			}
			previous := SimulateVisitPayment(rates, vt, c).PatientPaid
			for met := int64(0); met <= 2500; met += 50 {
				c.DeductibleMet = decimal.NewFromInt(met)
				current := SimulateVisitPayment(rates, vt, c).PatientPaid
				assert.True(t, current.LessThanOrEqual(previous),
					"%s coinsurance %s: patient share rose from %s to %s at met=%d", vt, coins, previous, current, met)
				previous = current
			}
		}
	}
}

type fixedRates map[domain.VisitType]decimal.Decimal

func (f fixedRates) BilledAmount(v domain.VisitType) (decimal.Decimal, bool) {
	a, ok := f[v]
	return a, ok
}

func (f fixedRates) UninsuredRate(string) (decimal.Decimal, bool) {
	return decimal.Zero, false
}

func TestSimulateVisitPayment_UsesProvider(t *testing.T) {
	rates := fixedRates{domain.VisitPrimaryCare: d("200")}

	result := SimulateVisitPayment(rates, domain.VisitPrimaryCare, domain.CoverageParameters{})
	assertDecimal(t, "200", result.PatientPaid)

	result = SimulateVisitPayment(rates, domain.VisitSpecialist, domain.CoverageParameters{})
	assertDecimal(t, "150", result.PatientPaid, "missing entries fall back to the default")

	result = SimulateVisitPayment(nil, domain.VisitSpecialist, domain.CoverageParameters{})
	assertDecimal(t, "260", result.PatientPaid, "nil provider uses the embedded tables")
}
