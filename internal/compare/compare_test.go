package compare

import (
	"context"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/hanvion/healthcost/internal/calculation"
	"github.com/hanvion/healthcost/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func specialistScenario() *domain.Configuration {
	return &domain.Configuration{
		Name: "Specialist",
		Coverage: domain.CoverageParameters{
			InNetwork:          true,
			HasInsurance:       true,
			Deductible:         decimal.NewFromInt(1500),
			DeductibleMet:      decimal.NewFromInt(1500),
			CoinsurancePercent: decimal.NewFromInt(20),
		},
		Visits: []domain.PlannedVisit{{Type: domain.VisitSpecialist, Count: 2}},
	}
}

func assertMoney(t *testing.T, expected string, actual decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, actual.Equal(decimal.RequireFromString(expected)), "%s: expected %s, got %s", msg, expected, actual)
}

func TestCompare_Templates(t *testing.T) {
	ce := NewCompareEngine(calculation.NewEngine())

	set, err := ce.Compare(context.Background(), specialistScenario(), CompareOptions{
		Templates: []string{"out_of_network", "uninsured"},
	})
	require.NoError(t, err)

	require.NotNil(t, set.BaseResult)
	assertMoney(t, "520", set.BaseResult.BilledTotal, "base billed")
	assertMoney(t, "62.4", set.BaseResult.PatientTotal, "base patient")
	assertMoney(t, "249.6", set.BaseResult.PlanTotal, "base plan")

	require.Len(t, set.AlternativeResults, 2)
	oon := set.AlternativeResults[0]
	assert.Equal(t, "Specialist_out_of_network", oon.ScenarioName)
	assertMoney(t, "104", oon.PatientTotal, "out-of-network patient")
	assertMoney(t, "41.6", oon.PatientDiffFromBase, "out-of-network diff")
	assertMoney(t, "66.7", oon.PatientPctFromBase, "out-of-network pct")

	cash := set.AlternativeResults[1]
	assertMoney(t, "520", cash.PatientTotal, "uninsured patient")
	assertMoney(t, "-249.6", cash.PlanDiffFromBase, "uninsured plan diff")

	require.NotEmpty(t, set.Recommendations)
	assert.Contains(t, set.Recommendations[0], "Specialist is already the cheapest option")
}

func TestCompare_TransformSpec(t *testing.T) {
	ce := NewCompareEngine(calculation.NewEngine())

	set, err := ce.Compare(context.Background(), specialistScenario(), CompareOptions{
		Transforms: []string{"set_coinsurance:percent=10"},
	})
	require.NoError(t, err)

	require.Len(t, set.AlternativeResults, 1)
	alt := set.AlternativeResults[0]
	assertMoney(t, "31.2", alt.PatientTotal, "lower coinsurance")
	assert.Equal(t, "Lowest Cost: Specialist_set_coinsurance saves $31.20 out of pocket compared with Specialist", set.Recommendations[0])
}

func TestCompare_Errors(t *testing.T) {
	ce := NewCompareEngine(calculation.NewEngine())
	ctx := context.Background()

	_, err := ce.Compare(ctx, specialistScenario(), CompareOptions{})
	assert.ErrorContains(t, err, "at least one template")

	_, err = ce.Compare(ctx, specialistScenario(), CompareOptions{Templates: []string{"platinum"}})
	assert.ErrorContains(t, err, "template platinum not found")

	_, err = ce.Compare(ctx, specialistScenario(), CompareOptions{Transforms: []string{"set_copay:amount=-5"}})
	assert.ErrorContains(t, err, "amount cannot be negative")

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = ce.Compare(cancelled, specialistScenario(), CompareOptions{Templates: []string{"uninsured"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompare_CapFlagAndAnnual(t *testing.T) {
	cfg := specialistScenario()
	cfg.Usage = &domain.AnnualUsage{PrimaryCareVisits: 2, UrgentCareVisits: 1, MonthlyPrescriptions: 1, HasInsurance: true}
	cfg.Coverage.OutOfPocketMax = decimal.NewFromInt(40)

	ce := NewCompareEngine(calculation.NewEngine())
	set, err := ce.Compare(context.Background(), cfg, CompareOptions{Templates: []string{"out_of_network"}})
	require.NoError(t, err)

	require.NotNil(t, set.BaseResult.AnnualTotal)
	assertMoney(t, "343", *set.BaseResult.AnnualTotal, "insured annual estimate")
	assert.False(t, set.BaseResult.CapApplied)
	assert.True(t, set.AlternativeResults[0].CapApplied, "out-of-network share of 52 exceeds the 40 cap")
	assert.Contains(t, strings.Join(set.Recommendations, "\n"), "reaches the out-of-pocket maximum")
}

func sampleSet() *ComparisonSet {
	return &ComparisonSet{
		BaseScenarioName: "Base",
		ConfigPath:       "scenario.yaml",
		BaseResult: &ComparisonResult{
			ScenarioName: "Base",
			BilledTotal:  decimal.NewFromInt(520),
			PlanTotal:    decimal.RequireFromString("249.6"),
			PatientTotal: decimal.RequireFromString("62.4"),
		},
		AlternativeResults: []ComparisonResult{{
			ScenarioName:        "Base_out_of_network",
			Description:         "See the same providers out of network",
			BilledTotal:         decimal.NewFromInt(520),
			PlanTotal:           decimal.NewFromInt(416),
			PatientTotal:        decimal.NewFromInt(104),
			CapApplied:          true,
			PatientDiffFromBase: decimal.RequireFromString("41.6"),
			PatientPctFromBase:  decimal.RequireFromString("66.7"),
			PlanDiffFromBase:    decimal.RequireFromString("166.4"),
		}},
		Recommendations: []string{"Lowest Cost: Base is already the cheapest option for these visits"},
	}
}

func TestTableFormatter_Format(t *testing.T) {
	out := (&TableFormatter{}).Format(sampleSet())

	for _, want := range []string{
		"COVERAGE SCENARIO COMPARISON",
		"Base Scenario: Base",
		"Configuration: scenario.yaml",
		"Base (base)",
		"$104.00*",
		"You Pay:    +$41.60 (66.7%)",
		"Plan Pays:  +$166.40",
		"RECOMMENDATIONS",
	} {
		assert.Contains(t, out, want)
	}

	assert.Equal(t, "Base: Base | Base_out_of_network: +$41.60", (&TableFormatter{}).FormatCompact(sampleSet()))
}

func TestCSVFormatter_Format(t *testing.T) {
	out, err := (&CSVFormatter{}).Format(sampleSet())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Scenario,Type,Billed"))
	assert.Equal(t, "Base,base,520.00,249.60,62.40,false,,0.00,0.0,0.00", lines[1])
	assert.Equal(t, "Base_out_of_network,alternative,520.00,416.00,104.00,true,,41.60,66.7,166.40", lines[2])
}

func TestJSONFormatter_Format(t *testing.T) {
	out, err := (&JSONFormatter{Pretty: true}).Format(sampleSet())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "Base", decoded["baseScenarioName"])
	alts, ok := decoded["alternativeResults"].([]any)
	require.True(t, ok)
	assert.Len(t, alts, 1)
	assert.Contains(t, out, "\n  ")
}
