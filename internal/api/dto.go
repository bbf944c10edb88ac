package api

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/hanvion/healthcost/internal/domain"
	"github.com/shopspring/decimal"
)

// newValidator returns a validator that checks decimal fields as numbers
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	return v
}

type VisitSimulationRequest struct {
	VisitType          string          `json:"visitType" validate:"required"`
	InNetwork          bool            `json:"inNetwork"`
	HasInsurance       bool            `json:"hasInsurance"`
	Deductible         decimal.Decimal `json:"deductible" validate:"gte=0"`
	DeductibleMet      decimal.Decimal `json:"deductibleMet" validate:"gte=0"`
	OutOfPocketMax     decimal.Decimal `json:"outOfPocketMax" validate:"gte=0"`
	CoinsurancePercent decimal.Decimal `json:"coinsurancePercent" validate:"gte=0,lte=100"`
	Copay              decimal.Decimal `json:"copay" validate:"gte=0"`
}

func (r VisitSimulationRequest) coverage() domain.CoverageParameters {
	return domain.CoverageParameters{
		InNetwork:          r.InNetwork,
		HasInsurance:       r.HasInsurance,
		Deductible:         r.Deductible,
		DeductibleMet:      r.DeductibleMet,
		OutOfPocketMax:     r.OutOfPocketMax,
		CoinsurancePercent: r.CoinsurancePercent,
		Copay:              r.Copay,
	}
}

// VisitSimulationResponse adds the unallocated remainder to the split
type VisitSimulationResponse struct {
	domain.VisitPaymentResult
	Label       string          `json:"label"`
	Unallocated decimal.Decimal `json:"unallocated"`
}

type AnnualEstimateRequest struct {
	PrimaryCareVisits    int  `json:"primaryCareVisits" validate:"gte=0"`
	UrgentCareVisits     int  `json:"urgentCareVisits" validate:"gte=0"`
	ERVisits             int  `json:"erVisits" validate:"gte=0"`
	MonthlyPrescriptions int  `json:"monthlyPrescriptions" validate:"gte=0"`
	HasInsurance         bool `json:"hasInsurance"`
}

func (r AnnualEstimateRequest) usage() domain.AnnualUsage {
	return domain.AnnualUsage{
		PrimaryCareVisits:    r.PrimaryCareVisits,
		UrgentCareVisits:     r.UrgentCareVisits,
		ERVisits:             r.ERVisits,
		MonthlyPrescriptions: r.MonthlyPrescriptions,
		HasInsurance:         r.HasInsurance,
	}
}

type AnnualEstimateResponse struct {
	domain.AnnualSpendResult
	Savings decimal.Decimal `json:"savings"`
}

type LikelihoodRequest struct {
	Age   int    `json:"age" validate:"gte=0,lte=120"`
	Sex   string `json:"sex" validate:"omitempty,oneof=Male Female Other male female other"`
	State string `json:"state" validate:"required"`
}

type ProfileRequest struct {
	Age          int     `json:"age" validate:"gte=0,lte=120"`
	Sex          string  `json:"sex"`
	HeightCm     float64 `json:"heightCm" validate:"gt=0,lte=300"`
	WeightKg     float64 `json:"weightKg" validate:"gt=0,lte=500"`
	SleepHours   float64 `json:"sleepHours" validate:"gte=0,lte=24"`
	ActivityDays int     `json:"activityDays" validate:"gte=0,lte=7"`
	Stress       string  `json:"stress" validate:"omitempty,oneof=Low Medium High"`
	Smoking      bool    `json:"smoking"`
	Alcohol      string  `json:"alcohol" validate:"omitempty,oneof=None Occasional Frequent"`
}

func (r ProfileRequest) input() domain.HealthProfileInput {
	return domain.HealthProfileInput{
		Age:          r.Age,
		Sex:          r.Sex,
		HeightCm:     r.HeightCm,
		WeightKg:     r.WeightKg,
		SleepHours:   r.SleepHours,
		ActivityDays: r.ActivityDays,
		Stress:       r.Stress,
		Smoking:      r.Smoking,
		Alcohol:      r.Alcohol,
	}
}

// ProfileResponse carries the fallback message when nothing is recommended
type ProfileResponse struct {
	domain.HealthProfileResult
	Message string `json:"message,omitempty"`
}

// ProcedureView is a procedure with its derived price statistics
type ProcedureView struct {
	domain.Procedure
	PriceSpread    decimal.Decimal `json:"priceSpread"`
	VariationRatio decimal.Decimal `json:"variationRatio"`
}

type ProceduresResponse struct {
	Settings   []string        `json:"settings"`
	Procedures []ProcedureView `json:"procedures"`
}

// CompareRequest runs a scenario against templates and transform specs
// such as "set_deductible:amount=3000".
type CompareRequest struct {
	Scenario   domain.Configuration `json:"scenario"`
	Templates  []string             `json:"templates"`
	Transforms []string             `json:"transforms"`
}
