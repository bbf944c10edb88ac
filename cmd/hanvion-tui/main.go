package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/hanvion/healthcost/internal/calculation"
	"github.com/hanvion/healthcost/internal/domain"
	"github.com/hanvion/healthcost/internal/reference"
	"github.com/hanvion/healthcost/internal/tui"
)

func main() {
	var src domain.ReferenceSources

	cmd := &cobra.Command{
		Use:          "hanvion-tui",
		Short:        "Interactive healthcare cost calculators",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, err := reference.Apply(reference.DefaultTables(), src)
			if err != nil {
				return fmt.Errorf("failed to load reference data: %w", err)
			}

			model := tui.NewModel(calculation.NewEngineWithTables(tables))
			if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&src.StatesCSV, "states", "", "CSV file replacing the built-in state uninsured rates")
	cmd.Flags().StringVar(&src.MedicationsCSV, "medications", "", "CSV file replacing the built-in medication prices")
	cmd.Flags().StringVar(&src.Procedures, "procedures", "", "CSV or Parquet file replacing the built-in procedure benchmarks")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
