package main

import (
	"fmt"
	"strings"

	"github.com/hanvion/healthcost/internal/calculation"
	"github.com/hanvion/healthcost/internal/domain"
	"github.com/hanvion/healthcost/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func visitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "visit",
		Short: "Split one visit's cost between the plan and the patient",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, log, err := newEngine(cmd)
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			raw, _ := cmd.Flags().GetString("type")
			vt, known := domain.ParseVisitType(raw)
			if !known {
				if _, ok := engine.Tables.BilledAmount(vt); !ok {
					log.Sugar().Warnf("unknown visit type %q, pricing at the default billed amount", raw)
				}
			}

			var cov domain.CoverageParameters
			cov.HasInsurance, _ = cmd.Flags().GetBool("insured")
			cov.InNetwork, _ = cmd.Flags().GetBool("in-network")
			for _, f := range []struct {
				name string
				dst  *decimal.Decimal
			}{
				{"deductible", &cov.Deductible},
				{"deductible-met", &cov.DeductibleMet},
				{"coinsurance", &cov.CoinsurancePercent},
				{"copay", &cov.Copay},
				{"oop-max", &cov.OutOfPocketMax},
			} {
				if *f.dst, err = decimalFlag(cmd, f.name); err != nil {
					return err
				}
			}

			result := engine.SimulateVisitPayment(vt, cov)
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Visit:         %s\n", vt.Label())
			fmt.Fprintf(w, "Billed:        %s\n", output.FormatCurrency(result.BilledAmount))
			fmt.Fprintf(w, "Allowed:       %s\n", output.FormatCurrency(result.AllowedAmount))
			fmt.Fprintf(w, "Plan pays:     %s\n", output.FormatCurrency(result.PlanPaid))
			fmt.Fprintf(w, "You pay:       %s\n", output.FormatCurrency(result.PatientPaid))
			if result.CapApplied {
				fmt.Fprintf(w, "Out-of-pocket maximum reached; %s of the allowed amount is not allocated\n",
					output.FormatCurrency(result.Unallocated()))
			}
			return nil
		},
	}

	cmd.Flags().StringP("type", "t", string(domain.VisitPrimaryCare), "Visit type ("+joinVisitTypes()+")")
	cmd.Flags().Bool("insured", true, "Patient has insurance")
	cmd.Flags().Bool("in-network", true, "Provider is in network")
	cmd.Flags().String("deductible", "0", "Annual deductible in dollars")
	cmd.Flags().String("deductible-met", "0", "Deductible already met this year")
	cmd.Flags().String("coinsurance", "0", "Coinsurance percent (0-100)")
	cmd.Flags().String("copay", "0", "Copay in dollars")
	cmd.Flags().String("oop-max", "0", "Out-of-pocket maximum (0 for none)")
	cmd.Flags().Bool("json", false, "Print the result as JSON")
	return cmd
}

func joinVisitTypes() string {
	names := make([]string, len(domain.AllVisitTypes))
	for i, vt := range domain.AllVisitTypes {
		names[i] = string(vt)
	}
	return strings.Join(names, ", ")
}

func annualCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "annual",
		Short: "Compare a year of self-pay care with an insured estimate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, log, err := newEngine(cmd)
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			var u domain.AnnualUsage
			u.PrimaryCareVisits, _ = cmd.Flags().GetInt("primary-care")
			u.UrgentCareVisits, _ = cmd.Flags().GetInt("urgent-care")
			u.ERVisits, _ = cmd.Flags().GetInt("er")
			u.MonthlyPrescriptions, _ = cmd.Flags().GetInt("prescriptions")
			u.HasInsurance, _ = cmd.Flags().GetBool("insured")

			result := engine.EstimateAnnualSpend(u)
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Self-pay total:     %s\n", output.FormatCurrency(result.SelfPayTotal))
			if result.InsuredTotal != nil {
				fmt.Fprintf(w, "Insured estimate:   %s\n", output.FormatCurrency(*result.InsuredTotal))
				fmt.Fprintf(w, "Estimated savings:  %s\n", output.FormatCurrency(result.Savings()))
			}
			return nil
		},
	}

	cmd.Flags().Int("primary-care", 0, "Primary care visits per year")
	cmd.Flags().Int("urgent-care", 0, "Urgent care visits per year")
	cmd.Flags().Int("er", 0, "Emergency room visits per year")
	cmd.Flags().Int("prescriptions", 0, "Ongoing monthly prescriptions")
	cmd.Flags().Bool("insured", false, "Include the insured estimate")
	cmd.Flags().Bool("json", false, "Print the result as JSON")
	return cmd
}

func likelihoodCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "likelihood",
		Short: "Estimate the chance that a person holds health insurance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, log, err := newEngine(cmd)
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			var in domain.LikelihoodInput
			in.Age, _ = cmd.Flags().GetInt("age")
			in.Sex, _ = cmd.Flags().GetString("sex")
			in.State, _ = cmd.Flags().GetString("state")

			result := engine.InsuranceLikelihood(in)
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Likelihood of coverage: %s\n", output.FormatPercentage(result.Likelihood))
			fmt.Fprintf(w, "State uninsured rate:   %s\n", output.FormatPercentage(result.UninsuredRate))
			if result.UsedFallback {
				fmt.Fprintf(w, "State %q not found; national uninsured rate used\n", in.State)
			}
			return nil
		},
	}

	cmd.Flags().Int("age", 35, "Age in years")
	cmd.Flags().String("sex", "", "Sex (Female, Male, Other)")
	cmd.Flags().String("state", "", "State name or two-letter code")
	cmd.Flags().Bool("json", false, "Print the result as JSON")
	return cmd
}

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Compute BMI, a lifestyle score and prevention tips",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, log, err := newEngine(cmd)
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			var in domain.HealthProfileInput
			in.Age, _ = cmd.Flags().GetInt("age")
			in.Sex, _ = cmd.Flags().GetString("sex")
			in.HeightCm, _ = cmd.Flags().GetFloat64("height")
			in.WeightKg, _ = cmd.Flags().GetFloat64("weight")
			in.SleepHours, _ = cmd.Flags().GetFloat64("sleep")
			in.ActivityDays, _ = cmd.Flags().GetInt("activity")
			in.Stress, _ = cmd.Flags().GetString("stress")
			in.Smoking, _ = cmd.Flags().GetBool("smoking")
			in.Alcohol, _ = cmd.Flags().GetString("alcohol")

			result, err := engine.AssessHealthProfile(in)
			if err != nil {
				return err
			}
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "BMI:              %.1f (%s)\n", result.BMI, result.Category)
			fmt.Fprintf(w, "Lifestyle score:  %d/100\n", result.LifestyleScore)
			if len(result.Recommendations) == 0 {
				fmt.Fprintln(w, calculation.HealthyBalanceMessage)
			}
			for _, r := range result.Recommendations {
				fmt.Fprintf(w, "• %s\n", r)
			}
			return nil
		},
	}

	cmd.Flags().Int("age", 35, "Age in years")
	cmd.Flags().String("sex", "", "Sex (Female, Male, Other)")
	cmd.Flags().Float64("height", 170, "Height in centimeters")
	cmd.Flags().Float64("weight", 70, "Weight in kilograms")
	cmd.Flags().Float64("sleep", 7, "Average hours of sleep per night")
	cmd.Flags().Int("activity", 3, "Days of exercise per week")
	cmd.Flags().String("stress", "Medium", "Stress level (Low, Medium, High)")
	cmd.Flags().Bool("smoking", false, "Currently smokes")
	cmd.Flags().String("alcohol", "None", "Alcohol use (None, Occasional, Frequent)")
	cmd.Flags().Bool("json", false, "Print the result as JSON")
	return cmd
}
