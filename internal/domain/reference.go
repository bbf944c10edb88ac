package domain

import (
	"github.com/shopspring/decimal"
)

// StateRate is one row of the state coverage dataset
type StateRate struct {
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	UninsuredRate decimal.Decimal `json:"uninsuredRate"` // percent
	InsuredRate   decimal.Decimal `json:"insuredRate"`   // percent
}

// PriceRange is an inclusive low/high dollar range
type PriceRange struct {
	Low  decimal.Decimal `json:"low"`
	High decimal.Decimal `json:"high"`
}

// Midpoint returns the truncated whole-dollar average of the range
func (p PriceRange) Midpoint() decimal.Decimal {
	return p.Low.Add(p.High).Div(decimal.NewFromInt(2)).Truncate(0)
}

// ServiceCost holds the cash and insurer-allowed ranges for a service
type ServiceCost struct {
	Name    string     `json:"name"`
	Cash    PriceRange `json:"cash"`
	Allowed PriceRange `json:"allowed"`
}

// ServiceCostSummary is the explorer view of a ServiceCost
type ServiceCostSummary struct {
	ServiceCost
	AverageCash      decimal.Decimal `json:"averageCash"`
	AverageAllowed   decimal.Decimal `json:"averageAllowed"`
	EstimatedSavings decimal.Decimal `json:"estimatedSavings"`
}

// Medication is one row of the medication price dataset
type Medication struct {
	Drug     string          `json:"drug"`
	Strength string          `json:"strength"`
	Cash     PriceRange      `json:"cash"`
	Discount PriceRange      `json:"discount"`
	Copay    decimal.Decimal `json:"copay"`
}

// Procedure is one benchmark row of the procedure price dataset
type Procedure struct {
	Code        string          `json:"code"`
	Description string          `json:"description"`
	Setting     string          `json:"setting"`
	MedianPrice decimal.Decimal `json:"medianPrice"`
	MinPrice    decimal.Decimal `json:"minPrice"`
	MaxPrice    decimal.Decimal `json:"maxPrice"`
	SampleSize  int             `json:"sampleSize"`
}

// PriceSpread returns MaxPrice minus MinPrice
func (p Procedure) PriceSpread() decimal.Decimal {
	return p.MaxPrice.Sub(p.MinPrice)
}

// VariationRatio returns MaxPrice/MinPrice rounded to one decimal place,
// or zero when MinPrice is not positive.
func (p Procedure) VariationRatio() decimal.Decimal {
	if !p.MinPrice.IsPositive() {
		return decimal.Zero
	}
	return p.MaxPrice.Div(p.MinPrice).Round(1)
}

// Symptom maps a complaint to a body system with canned guidance
type Symptom struct {
	Name           string   `json:"name"`
	System         string   `json:"system"`
	PossibleCauses []string `json:"possibleCauses"`
	SeekCare       bool     `json:"seekCare"`
	Notes          string   `json:"notes"`
}
