package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/goccy/go-json"
	"github.com/hanvion/healthcost/internal/calculation"
	"github.com/hanvion/healthcost/internal/domain"
	"github.com/hanvion/healthcost/internal/logger"
	"github.com/hanvion/healthcost/internal/reference"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "hanvion %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.Main.Version
	}
	return ""
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hanvion",
		Short:         "Healthcare cost estimation CLI",
		Long:          "Estimate visit costs, annual healthcare spend and insurance coverage, and browse reference prices",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.String("states", "", "CSV file replacing the built-in state uninsured rates")
	flags.String("medications", "", "CSV file replacing the built-in medication prices")
	flags.String("procedures", "", "CSV or Parquet file replacing the built-in procedure benchmarks")
	flags.String("log-level", "warn", "Log level (debug, info, warn, error)")
	flags.Bool("debug", false, "Enable debug logging of every calculation")

	root.AddCommand(visitCmd())
	root.AddCommand(annualCmd())
	root.AddCommand(likelihoodCmd())
	root.AddCommand(profileCmd())
	root.AddCommand(symptomCmd())
	root.AddCommand(servicesCmd())
	root.AddCommand(medicationCmd())
	root.AddCommand(proceduresCmd())
	root.AddCommand(estimateCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(compareCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(versionCmd())
	return root
}

// referenceSources reads the dataset flags
func referenceSources(cmd *cobra.Command) domain.ReferenceSources {
	states, _ := cmd.Flags().GetString("states")
	meds, _ := cmd.Flags().GetString("medications")
	procs, _ := cmd.Flags().GetString("procedures")
	return domain.ReferenceSources{StatesCSV: states, MedicationsCSV: meds, Procedures: procs}
}

func loadTables(cmd *cobra.Command) (*reference.Tables, error) {
	tables, err := reference.Apply(reference.DefaultTables(), referenceSources(cmd))
	if err != nil {
		return nil, fmt.Errorf("failed to load reference data: %w", err)
	}
	return tables, nil
}

func buildLogger(cmd *cobra.Command, env string) (*zap.Logger, error) {
	level, _ := cmd.Flags().GetString("log-level")
	if dbg, _ := cmd.Flags().GetBool("debug"); dbg {
		level = "debug"
	}
	return logger.New(level, env)
}

// newEngine builds an engine over the flag-selected datasets with a zap logger
func newEngine(cmd *cobra.Command) (*calculation.Engine, *zap.Logger, error) {
	tables, err := loadTables(cmd)
	if err != nil {
		return nil, nil, err
	}
	log, err := buildLogger(cmd, "development")
	if err != nil {
		return nil, nil, err
	}
	engine := calculation.NewEngineWithTables(tables)
	engine.SetLogger(log.Sugar())
	return engine, log, nil
}

func decimalFlag(cmd *cobra.Command, name string) (decimal.Decimal, error) {
	raw, _ := cmd.Flags().GetString(name)
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s %q: must be a number", name, raw)
	}
	return d, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
