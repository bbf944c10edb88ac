package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/hanvion/healthcost/internal/reference"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

const scenarioYAML = `
name: Test scenario
coverage:
  in_network: true
  has_insurance: true
  deductible: 1500
  deductible_met: 1500
  coinsurance_percent: 20
visits:
  - type: primary_care
    count: 2
  - type: urgent_care
usage:
  primary_care_visits: 2
  urgent_care_visits: 1
  monthly_prescriptions: 1
  has_insurance: true
person:
  age: 40
  sex: Female
  state: TX
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()

	assert.Equal(t, "hanvion", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	out, err := execute(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
}

func TestCommandSubcommands(t *testing.T) {
	expected := []string{
		"visit", "annual", "likelihood", "profile",
		"symptom", "services", "medication", "procedures",
		"estimate", "validate", "compare", "serve", "version",
	}

	registered := map[string]bool{}
	for _, c := range newRootCmd().Commands() {
		registered[c.Name()] = true
	}
	for _, name := range expected {
		assert.True(t, registered[name], "missing command %s", name)
	}
}

func TestVisitCommand(t *testing.T) {
	out, err := execute(t, "visit", "--deductible", "1500", "--deductible-met", "1500", "--coinsurance", "20")

	require.NoError(t, err)
	assert.Contains(t, out, "Billed:        $140.00")
	assert.Contains(t, out, "Allowed:       $84.00")
	assert.Contains(t, out, "Plan pays:     $67.20")
	assert.Contains(t, out, "You pay:       $16.80")
}

func TestVisitCommand_Uninsured(t *testing.T) {
	out, err := execute(t, "visit", "--type", "ER Visit", "--insured=false", "--json")

	require.NoError(t, err)
	assert.Contains(t, out, `"billedAmount": "1800"`)
	assert.Contains(t, out, `"patientPaid": "1800"`)
}

func TestVisitCommand_InvalidNumber(t *testing.T) {
	_, err := execute(t, "visit", "--copay", "lots")

	assert.EqualError(t, err, `invalid --copay "lots": must be a number`)
}

func TestAnnualCommand(t *testing.T) {
	out, err := execute(t, "annual", "--primary-care", "2", "--urgent-care", "1", "--prescriptions", "1", "--insured")

	require.NoError(t, err)
	assert.Contains(t, out, "$980.00")
	assert.Contains(t, out, "$343.00")
	assert.Contains(t, out, "$637.00")
}

func TestLikelihoodCommand(t *testing.T) {
	out, err := execute(t, "likelihood", "--age", "40", "--sex", "Female", "--state", "TX")
	require.NoError(t, err)
	assert.Contains(t, out, "Likelihood of coverage: 85.40%")

	out, err = execute(t, "likelihood", "--state", "Atlantis")
	require.NoError(t, err)
	assert.Contains(t, out, "national uninsured rate used")
}

func TestProfileCommand(t *testing.T) {
	out, err := execute(t, "profile", "--height", "0")
	assert.Error(t, err)

	out, err = execute(t, "profile", "--height", "180", "--weight", "72", "--sleep", "8", "--activity", "5", "--stress", "Low")
	require.NoError(t, err)
	assert.Contains(t, out, "BMI:              22.2 (Normal)")
	assert.Contains(t, out, "Lifestyle score:  100/100")
}

func TestLookupCommands(t *testing.T) {
	out, err := execute(t, "symptom", "Chest pain")
	require.NoError(t, err)
	assert.Contains(t, out, "Cardiovascular")

	_, err = execute(t, "symptom", "hiccups")
	assert.ErrorIs(t, err, reference.ErrUnknownSymptom)

	out, err = execute(t, "services")
	require.NoError(t, err)
	assert.Contains(t, out, "Primary Care Visit")

	_, err = execute(t, "medication", "unobtainium")
	assert.ErrorIs(t, err, reference.ErrUnknownMedication)

	out, err = execute(t, "procedures", "--settings")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestEstimateCommand(t *testing.T) {
	path := writeFile(t, "scenario.yaml", scenarioYAML)

	out, err := execute(t, "estimate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "HEALTHCARE COST ESTIMATE")
	assert.Contains(t, out, "Test scenario")

	out, err = execute(t, "estimate", path, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "Test scenario"`)

	_, err = execute(t, "estimate", path, "--format", "pdf")
	assert.ErrorContains(t, err, `unknown format "pdf"`)
}

func TestValidateCommand(t *testing.T) {
	good := writeFile(t, "good.yaml", scenarioYAML)
	out, err := execute(t, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")

	bad := writeFile(t, "bad.yaml", "coverage:\n  coinsurance_percent: 150\nvisits:\n  - type: specialist\n")
	_, err = execute(t, "validate", bad)
	assert.ErrorContains(t, err, "configuration validation failed")

	_, err = execute(t, "validate", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read file")
}

func TestDatasetFlag(t *testing.T) {
	states := writeFile(t, "states.csv", "code,state,uninsured_rate\nZZ,Zedland,20\n")

	out, err := execute(t, "likelihood", "--states", states, "--state", "ZZ", "--age", "40")
	require.NoError(t, err)
	assert.Contains(t, out, "Likelihood of coverage: 80.00%")

	_, err = execute(t, "likelihood", "--states", filepath.Join(t.TempDir(), "nope.csv"))
	assert.ErrorContains(t, err, "failed to load reference data")
}

func TestCompareCommand(t *testing.T) {
	path := writeFile(t, "scenario.yaml", scenarioYAML)

	out, err := execute(t, "compare", path, "--with", "out_of_network,uninsured")
	require.NoError(t, err)
	assert.Contains(t, out, "COVERAGE SCENARIO COMPARISON")
	assert.Contains(t, out, "Test scenario_out_of_network")
	assert.Contains(t, out, "Test scenario_uninsured")

	out, err = execute(t, "compare", path, "--transform", "set_coinsurance:percent=0", "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "Test scenario_set_coinsurance,alternative")

	out, err = execute(t, "compare", "--list-templates")
	require.NoError(t, err)
	assert.Contains(t, out, "high_deductible")
	assert.Contains(t, out, "set_deductible")

	_, err = execute(t, "compare", path)
	assert.ErrorContains(t, err, "at least one template")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "hanvion dev")
}

func TestFlagOrEnv(t *testing.T) {
	cmd := &cobra.Command{Use: "x"}
	cmd.Flags().String("addr", ":8080", "")

	assert.Equal(t, ":8080", flagOrEnv(cmd, "addr", "HANVION_TEST_ADDR"))

	t.Setenv("HANVION_TEST_ADDR", ":9090")
	assert.Equal(t, ":9090", flagOrEnv(cmd, "addr", "HANVION_TEST_ADDR"))

	require.NoError(t, cmd.Flags().Set("addr", ":7070"))
	assert.Equal(t, ":7070", flagOrEnv(cmd, "addr", "HANVION_TEST_ADDR"), "explicit flag wins")
}
