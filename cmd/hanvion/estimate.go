package main

import (
	"fmt"
	"strings"

	"github.com/hanvion/healthcost/internal/config"
	"github.com/hanvion/healthcost/internal/output"
	"github.com/spf13/cobra"
)

var formatExtensions = map[string]string{
	"console":      "txt",
	"console-lite": "txt",
	"csv":          "csv",
	"json":         "json",
	"html":         "html",
}

func estimateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estimate [input-file]",
		Short: "Price every visit of a scenario file and report the totals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatName, _ := cmd.Flags().GetString("format")
			f := output.GetFormatterByName(formatName)
			if f == nil {
				return fmt.Errorf("unknown format %q (available: %s; aliases: %s)", formatName,
					strings.Join(output.AvailableFormatterNames(), ", "), strings.Join(output.AvailableFormatAliases(), ", "))
			}

			engine, log, err := newEngine(cmd)
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			parser := config.NewInputParserWithTables(engine.Tables)
			cfg, err := parser.LoadFromFile(args[0])
			if err != nil {
				return err
			}

			report, err := engine.RunScenario(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			if save, _ := cmd.Flags().GetBool("save"); save {
				name, err := output.WriteFormatted(f, report, formatExtensions[f.Name()])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", name)
				return nil
			}

			data, err := f.Format(report)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringP("format", "f", "console", "Output format ("+strings.Join(output.AvailableFormatterNames(), ", ")+")")
	cmd.Flags().Bool("save", false, "Write the report to a timestamped file instead of stdout")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, err := loadTables(cmd)
			if err != nil {
				return err
			}
			parser := config.NewInputParserWithTables(tables)
			if _, err := parser.LoadFromFile(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file %s is valid\n", args[0])
			return nil
		},
	}
}
