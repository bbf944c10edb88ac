package main

import (
	"fmt"
	"strings"

	"github.com/hanvion/healthcost/internal/compare"
	"github.com/hanvion/healthcost/internal/config"
	"github.com/hanvion/healthcost/internal/transform"
	"github.com/spf13/cobra"
)

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [input-file]",
		Short: "Compare a scenario against what-if coverage changes",
		Long: "Run a scenario file as the base and once more per template or transform, " +
			"then compare what the patient and the plan pay.\n\n" +
			"Transform specs look like name:param=value, for example set_deductible:amount=3000.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			if list, _ := cmd.Flags().GetBool("list-templates"); list {
				templates := transform.CreateBuiltInTemplates()
				fmt.Fprintln(w, "Templates:")
				for _, name := range templates.List() {
					t, _ := templates.Get(name)
					fmt.Fprintf(w, "  %-18s %s\n", name, t.Description)
				}
				fmt.Fprintln(w, "\nTransforms:")
				for _, name := range transform.NewTransformRegistry().List() {
					fmt.Fprintf(w, "  %s\n", name)
				}
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("an input file is required")
			}

			with, _ := cmd.Flags().GetString("with")
			specs, _ := cmd.Flags().GetStringArray("transform")
			var templates []string
			for _, name := range strings.Split(with, ",") {
				if name = strings.TrimSpace(name); name != "" {
					templates = append(templates, name)
				}
			}

			engine, log, err := newEngine(cmd)
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			cfg, err := config.NewInputParserWithTables(engine.Tables).LoadFromFile(args[0])
			if err != nil {
				return err
			}

			set, err := compare.NewCompareEngine(engine).Compare(cmd.Context(), cfg, compare.CompareOptions{
				Templates:  templates,
				Transforms: specs,
			})
			if err != nil {
				return err
			}
			set.ConfigPath = args[0]

			format, _ := cmd.Flags().GetString("format")
			switch format {
			case "table":
				fmt.Fprint(w, (&compare.TableFormatter{}).Format(set))
			case "compact":
				fmt.Fprintln(w, (&compare.TableFormatter{}).FormatCompact(set))
			case "csv":
				out, err := (&compare.CSVFormatter{}).Format(set)
				if err != nil {
					return err
				}
				fmt.Fprint(w, out)
			case "json":
				out, err := (&compare.JSONFormatter{Pretty: true}).Format(set)
				if err != nil {
					return err
				}
				fmt.Fprintln(w, out)
			default:
				return fmt.Errorf("unknown format %q (table, compact, csv, json)", format)
			}
			return nil
		},
	}

	cmd.Flags().String("with", "", "Comma-separated list of templates to compare")
	cmd.Flags().StringArray("transform", nil, "Transform spec to compare, repeatable")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	cmd.Flags().Bool("list-templates", false, "List the available templates and transforms")
	return cmd
}
