package calculation

import (
	"strings"

	"github.com/hanvion/healthcost/internal/domain"
	"github.com/hanvion/healthcost/internal/reference"
	"github.com/shopspring/decimal"
)

var (
	likelihoodFloor   = decimal.NewFromInt(25)
	likelihoodCeiling = decimal.NewFromInt(98)
)

// InsuranceLikelihood estimates the chance, in percent, that a person holds
// health insurance. It starts from the insured share of the person's state,
// or reference.NationalUninsuredRate when the state is unknown, then adjusts
// for age and sex and clamps the result to 25-98.
func InsuranceLikelihood(rates reference.RateProvider, in domain.LikelihoodInput) domain.LikelihoodResult {
	if rates == nil {
		rates = reference.DefaultTables()
	}
	result := domain.LikelihoodResult{State: strings.TrimSpace(in.State)}

	uninsured, ok := rates.UninsuredRate(in.State)
	if !ok {
		uninsured = reference.NationalUninsuredRate
		result.UsedFallback = true
	}
	result.UninsuredRate = uninsured
	result.InsuredRate = hundred.Sub(uninsured)

	base := result.InsuredRate
	if in.Age < 26 {
		base = base.Sub(decimal.NewFromInt(4))
	}
	if in.Age > 55 {
		base = base.Add(decimal.NewFromInt(6))
	}
	if strings.EqualFold(strings.TrimSpace(in.Sex), "female") {
		base = base.Add(decimal.NewFromInt(2))
	}
	result.Likelihood = decimal.Max(decimal.Min(base, likelihoodCeiling), likelihoodFloor)
	return result
}
