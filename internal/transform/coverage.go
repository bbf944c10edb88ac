package transform

import (
	"fmt"

	"github.com/hanvion/healthcost/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// SetNetwork switches every visit between in-network and out-of-network pricing
type SetNetwork struct {
	InNetwork bool
}

func (t *SetNetwork) Name() string { return "set_network" }

func (t *SetNetwork) Description() string {
	if t.InNetwork {
		return "Use in-network providers"
	}
	return "Use out-of-network providers"
}

func (t *SetNetwork) Validate(base *domain.Configuration) error { return nil }

func (t *SetNetwork) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	out := base.DeepCopy()
	out.Coverage.InNetwork = t.InNetwork
	return out, nil
}

// SetInsurance toggles insurance for the visits and the annual estimate
type SetInsurance struct {
	Insured bool
}

func (t *SetInsurance) Name() string { return "set_insurance" }

func (t *SetInsurance) Description() string {
	if t.Insured {
		return "Insured"
	}
	return "No insurance, pay cash"
}

func (t *SetInsurance) Validate(base *domain.Configuration) error { return nil }

func (t *SetInsurance) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	out := base.DeepCopy()
	out.Coverage.HasInsurance = t.Insured
	if out.Usage != nil {
		out.Usage.HasInsurance = t.Insured
	}
	return out, nil
}

// SetAmount replaces one dollar field of the coverage
type SetAmount struct {
	Field  AmountField
	Amount decimal.Decimal
}

// AmountField names a dollar field of CoverageParameters
type AmountField string

const (
	FieldDeductible     AmountField = "deductible"
	FieldDeductibleMet  AmountField = "deductible_met"
	FieldCopay          AmountField = "copay"
	FieldOutOfPocketMax AmountField = "out_of_pocket_max"
)

func (t *SetAmount) Name() string { return "set_" + string(t.Field) }

func (t *SetAmount) Description() string {
	return fmt.Sprintf("Set %s to $%s", t.Field, t.Amount.StringFixed(2))
}

func (t *SetAmount) Validate(base *domain.Configuration) error {
	if t.Amount.IsNegative() {
		return NewTransformError(t.Name(), "validate", "amount cannot be negative", nil)
	}
	switch t.Field {
	case FieldDeductible, FieldDeductibleMet, FieldCopay, FieldOutOfPocketMax:
		return nil
	}
	return NewTransformError(t.Name(), "validate", fmt.Sprintf("unknown coverage field %q", t.Field), nil)
}

func (t *SetAmount) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	out := base.DeepCopy()
	switch t.Field {
	case FieldDeductible:
		out.Coverage.Deductible = t.Amount
	case FieldDeductibleMet:
		out.Coverage.DeductibleMet = t.Amount
	case FieldCopay:
		out.Coverage.Copay = t.Amount
	case FieldOutOfPocketMax:
		out.Coverage.OutOfPocketMax = t.Amount
	default:
		return nil, NewTransformError(t.Name(), "apply", fmt.Sprintf("unknown coverage field %q", t.Field), nil)
	}
	return out, nil
}

// MeetDeductible marks the whole deductible as already met
type MeetDeductible struct{}

func (t *MeetDeductible) Name() string        { return "meet_deductible" }
func (t *MeetDeductible) Description() string { return "Deductible already met this year" }

func (t *MeetDeductible) Validate(base *domain.Configuration) error { return nil }

func (t *MeetDeductible) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	out := base.DeepCopy()
	out.Coverage.DeductibleMet = out.Coverage.Deductible
	return out, nil
}

// SetCoinsurance replaces the coinsurance percent
type SetCoinsurance struct {
	Percent decimal.Decimal
}

func (t *SetCoinsurance) Name() string { return "set_coinsurance" }

func (t *SetCoinsurance) Description() string {
	return fmt.Sprintf("Coinsurance at %s%%", t.Percent.String())
}

func (t *SetCoinsurance) Validate(base *domain.Configuration) error {
	if t.Percent.IsNegative() || t.Percent.GreaterThan(hundred) {
		return NewTransformError(t.Name(), "validate", "percent must be between 0 and 100", nil)
	}
	return nil
}

func (t *SetCoinsurance) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	out := base.DeepCopy()
	out.Coverage.CoinsurancePercent = t.Percent
	return out, nil
}
