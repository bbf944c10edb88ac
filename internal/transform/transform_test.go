package transform

import (
	"testing"

	"github.com/hanvion/healthcost/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseScenario() *domain.Configuration {
	return &domain.Configuration{
		Name: "Base",
		Coverage: domain.CoverageParameters{
			InNetwork:          true,
			HasInsurance:       true,
			Deductible:         decimal.NewFromInt(1500),
			CoinsurancePercent: decimal.NewFromInt(20),
			OutOfPocketMax:     decimal.NewFromInt(6000),
		},
		Visits: []domain.PlannedVisit{{Type: domain.VisitSpecialist, Count: 2}},
		Usage:  &domain.AnnualUsage{PrimaryCareVisits: 2, HasInsurance: true},
		Rates:  map[domain.VisitType]decimal.Decimal{domain.VisitSpecialist: decimal.NewFromInt(300)},
	}
}

func TestApplyTransforms_DoesNotMutateBase(t *testing.T) {
	base := baseScenario()

	out, err := ApplyTransforms(base, []CoverageTransform{
		&SetNetwork{InNetwork: false},
		&SetInsurance{Insured: false},
	})

	require.NoError(t, err)
	assert.False(t, out.Coverage.InNetwork)
	assert.False(t, out.Coverage.HasInsurance)
	assert.False(t, out.Usage.HasInsurance, "annual usage follows the insurance switch")

	assert.True(t, base.Coverage.InNetwork)
	assert.True(t, base.Coverage.HasInsurance)
	assert.True(t, base.Usage.HasInsurance)

	out.Visits[0].Count = 9
	out.Rates[domain.VisitSpecialist] = decimal.Zero
	assert.Equal(t, 2, base.Visits[0].Count)
	assert.True(t, base.Rates[domain.VisitSpecialist].Equal(decimal.NewFromInt(300)))
}

func TestApplyTransforms_Errors(t *testing.T) {
	_, err := ApplyTransforms(nil, nil)
	assert.Error(t, err)

	_, err = ApplyTransforms(baseScenario(), []CoverageTransform{nil})
	assert.ErrorContains(t, err, "index 0 is nil")

	_, err = ApplyTransforms(baseScenario(), []CoverageTransform{&SetCoinsurance{Percent: decimal.NewFromInt(120)}})
	var terr *TransformError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "set_coinsurance", terr.TransformName)

	_, err = ApplyTransforms(baseScenario(), []CoverageTransform{&SetAmount{Field: FieldCopay, Amount: decimal.NewFromInt(-1)}})
	assert.ErrorContains(t, err, "amount cannot be negative")
}

func TestMeetDeductible(t *testing.T) {
	out, err := ApplyTransforms(baseScenario(), []CoverageTransform{&MeetDeductible{}})

	require.NoError(t, err)
	assert.True(t, out.Coverage.DeductibleMet.Equal(decimal.NewFromInt(1500)))
}

func TestRegistry_ParseTransformSpec(t *testing.T) {
	r := NewTransformRegistry()

	tests := []struct {
		spec    string
		name    string
		wantErr string
	}{
		{spec: "set_deductible:amount=3000", name: "set_deductible"},
		{spec: "set_network:in_network=false", name: "set_network"},
		{spec: "set_coinsurance:percent=25", name: "set_coinsurance"},
		{spec: "meet_deductible", name: "meet_deductible"},
		{spec: "set_copay:amount=abc", wantErr: "invalid amount value"},
		{spec: "set_copay:amount", wantErr: "expected 'key=value'"},
		{spec: "set_insurance:", wantErr: "requires 'insured' parameter"},
		{spec: "raise_premium:amount=10", wantErr: "unknown transform"},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			tr, err := r.ParseTransformSpec(tt.spec)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.name, tr.Name())
		})
	}

	assert.Contains(t, r.List(), "set_out_of_pocket_max")
}

func TestBuiltInTemplates(t *testing.T) {
	templates := CreateBuiltInTemplates()

	assert.Equal(t, []string{"copay_plan", "deductible_met", "high_deductible", "in_network", "out_of_network", "uninsured"}, templates.List())

	hd, ok := templates.Get("HIGH_DEDUCTIBLE")
	require.True(t, ok)
	out, err := ApplyTemplate(baseScenario(), hd)
	require.NoError(t, err)
	assert.True(t, out.Coverage.Deductible.Equal(decimal.NewFromInt(5000)))
	assert.True(t, out.Coverage.CoinsurancePercent.Equal(decimal.NewFromInt(30)))
	assert.True(t, out.Coverage.OutOfPocketMax.Equal(decimal.NewFromInt(7500)))

	cp, _ := templates.Get("copay_plan")
	out, err = ApplyTemplate(baseScenario(), cp)
	require.NoError(t, err)
	assert.True(t, out.Coverage.DeductibleMet.Equal(decimal.NewFromInt(500)), "deductible met after it is lowered")
	assert.True(t, out.Coverage.Copay.Equal(decimal.NewFromInt(30)))
}
