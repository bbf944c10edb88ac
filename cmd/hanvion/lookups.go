package main

import (
	"fmt"
	"strings"

	"github.com/hanvion/healthcost/internal/calculation"
	"github.com/hanvion/healthcost/internal/domain"
	"github.com/hanvion/healthcost/internal/output"
	"github.com/spf13/cobra"
)

func symptomCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "symptom [name]",
		Short: "Show the body system and guidance for a symptom, or list symptoms",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, log, err := newEngine(cmd)
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			w := cmd.OutOrStdout()
			if len(args) == 0 {
				for _, s := range engine.Tables.Symptoms() {
					fmt.Fprintln(w, s.Name)
				}
				return nil
			}

			s, err := engine.LookupSymptom(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "Symptom:          %s\n", s.Name)
			fmt.Fprintf(w, "Body system:      %s\n", s.System)
			fmt.Fprintf(w, "Possible causes:  %s\n", strings.Join(s.PossibleCauses, ", "))
			if s.SeekCare {
				fmt.Fprintln(w, "Guidance:         seek medical care")
			} else {
				fmt.Fprintln(w, "Guidance:         self-care is usually enough")
			}
			if s.Notes != "" {
				fmt.Fprintf(w, "Notes:            %s\n", s.Notes)
			}
			return nil
		},
	}
}

func servicesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "services [name]",
		Short: "Compare cash and insurer-allowed prices for common services",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, log, err := newEngine(cmd)
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			var summaries []domain.ServiceCostSummary
			if len(args) == 1 {
				s, err := engine.ServiceCostSummary(args[0])
				if err != nil {
					return err
				}
				summaries = []domain.ServiceCostSummary{s}
			} else {
				summaries = engine.ServiceCostSummaries()
			}

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return writeJSON(cmd.OutOrStdout(), summaries)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-32s %-20s %-20s %12s\n", "Service", "Cash", "Allowed", "Savings")
			for _, s := range summaries {
				fmt.Fprintf(w, "%-32s %-20s %-20s %12s\n", s.Name,
					priceRange(s.Cash), priceRange(s.Allowed), output.FormatCurrency(s.EstimatedSavings))
			}
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "Print the summaries as JSON")
	return cmd
}

func priceRange(r domain.PriceRange) string {
	return output.FormatCurrency(r.Low) + "-" + output.FormatCurrency(r.High)
}

func medicationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "medication [drug]",
		Short: "Show cash, discount card and copay prices for a drug, or list drugs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, log, err := newEngine(cmd)
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			w := cmd.OutOrStdout()
			if len(args) == 0 {
				for _, name := range engine.Tables.Medications() {
					fmt.Fprintln(w, name)
				}
				return nil
			}

			m, err := engine.Tables.Medication(args[0])
			if err != nil {
				return err
			}
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return writeJSON(w, m)
			}
			fmt.Fprintf(w, "Drug:           %s %s\n", m.Drug, m.Strength)
			fmt.Fprintf(w, "Cash price:     %s\n", priceRange(m.Cash))
			fmt.Fprintf(w, "Discount card:  %s\n", priceRange(m.Discount))
			fmt.Fprintf(w, "Typical copay:  %s\n", output.FormatCurrency(m.Copay))
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "Print the medication as JSON")
	return cmd
}

func proceduresCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "procedures [query]",
		Short: "Search procedure price benchmarks by code or description",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, log, err := newEngine(cmd)
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			w := cmd.OutOrStdout()
			if list, _ := cmd.Flags().GetBool("settings"); list {
				for _, s := range engine.ProcedureSettings() {
					fmt.Fprintln(w, s)
				}
				return nil
			}

			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			setting, _ := cmd.Flags().GetString("setting")
			procs := engine.SearchProcedures(query, setting)

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return writeJSON(w, procs)
			}
			if len(procs) == 0 {
				fmt.Fprintln(w, "No procedures match")
				return nil
			}
			fmt.Fprintf(w, "%-7s %-34s %-20s %10s %10s %10s %6s\n", "Code", "Description", "Setting", "Median", "Min", "Max", "Ratio")
			for _, p := range procs {
				fmt.Fprintf(w, "%-7s %-34s %-20s %10s %10s %10s %5sx\n", p.Code, p.Description, p.Setting,
					output.FormatCurrency(p.MedianPrice), output.FormatCurrency(p.MinPrice), output.FormatCurrency(p.MaxPrice),
					p.VariationRatio().StringFixed(1))
			}
			return nil
		},
	}
	cmd.Flags().String("setting", calculation.AllSettings, "Care setting filter")
	cmd.Flags().Bool("settings", false, "List the available care settings")
	cmd.Flags().Bool("json", false, "Print the matches as JSON")
	return cmd
}
