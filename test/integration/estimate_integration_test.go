package integration

import (
	"context"
	"testing"

	"github.com/hanvion/healthcost/internal/calculation"
	"github.com/hanvion/healthcost/internal/compare"
	"github.com/hanvion/healthcost/internal/config"
	"github.com/hanvion/healthcost/internal/output"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleScenario = "../testdata/example_scenario.yaml"

func assertMoney(t *testing.T, expected string, actual decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, actual.Equal(decimal.RequireFromString(expected)), "%s: expected %s, got %s", msg, expected, actual)
}

// TestEstimatePipeline runs a scenario file from parsing through every report format
func TestEstimatePipeline(t *testing.T) {
	engine := calculation.NewEngine()
	cfg, err := config.NewInputParserWithTables(engine.Tables).LoadFromFile(exampleScenario)
	require.NoError(t, err, "Should load configuration successfully")

	report, err := engine.RunScenario(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, report)

	t.Run("totals", func(t *testing.T) {
		require.Len(t, report.Visits, 2)
		assertMoney(t, "740", report.Totals.Billed, "billed")
		assertMoney(t, "88.8", report.Totals.PatientPaid, "patient")
		assertMoney(t, "355.2", report.Totals.PlanPaid, "plan")
	})

	t.Run("annual_and_likelihood", func(t *testing.T) {
		require.NotNil(t, report.Annual)
		assertMoney(t, "980", report.Annual.SelfPayTotal, "self-pay")
		require.NotNil(t, report.Annual.InsuredTotal)
		assertMoney(t, "343", *report.Annual.InsuredTotal, "insured")

		require.NotNil(t, report.Likelihood)
		assertMoney(t, "85.4", report.Likelihood.Likelihood, "likelihood")
	})

	t.Run("formats", func(t *testing.T) {
		for _, name := range output.AvailableFormatterNames() {
			f := output.GetFormatterByName(name)
			require.NotNil(t, f, name)
			out, err := f.Format(report)
			require.NoError(t, err, "Should render %s output", name)
			assert.Contains(t, string(out), "Specialist follow-up", name)
		}
	})
}

// TestComparePipeline compares the example scenario against coverage changes
func TestComparePipeline(t *testing.T) {
	engine := calculation.NewEngine()
	cfg, err := config.NewInputParser().LoadFromFile(exampleScenario)
	require.NoError(t, err)

	set, err := compare.NewCompareEngine(engine).Compare(context.Background(), cfg, compare.CompareOptions{
		Templates:  []string{"out_of_network"},
		Transforms: []string{"set_coinsurance:percent=10"},
	})
	require.NoError(t, err)
	require.Len(t, set.AlternativeResults, 2)

	assertMoney(t, "88.8", set.BaseResult.PatientTotal, "base patient")
	assertMoney(t, "148", set.AlternativeResults[0].PatientTotal, "out-of-network patient")
	assertMoney(t, "44.4", set.AlternativeResults[1].PatientTotal, "10% coinsurance patient")
	assert.Contains(t, set.Recommendations[0], "Specialist follow-up_set_coinsurance saves $44.40")

	// alternatives work on copies
	assert.True(t, cfg.Coverage.InNetwork)
	assertMoney(t, "20", cfg.Coverage.CoinsurancePercent, "base coinsurance")
}
