package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/regime7/internal/compare"
	"github.com/rgehrsitz/regime7/internal/transform"
)

var compareCmd = &cobra.Command{
	Use:   "compare [input-file]",
	Short: "Compare a base scenario against alternatives",
	Long: `Compare a base scenario against alternatives built from templates or transforms.
Without --with or --transform the other scenarios of the configuration are compared.

Examples:
  regime7 compare config.yaml
  regime7 compare config.yaml --base Base --with short_regime,rental_foreign
  regime7 compare config.yaml --transform set_regime_years:years=5,keep_horizon=true --format csv
  regime7 compare --list-templates`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()

		if listTemplates, _ := cmd.Flags().GetBool("list-templates"); listTemplates {
			fmt.Fprint(out, transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
			return
		}
		if listTransforms, _ := cmd.Flags().GetBool("list-transforms"); listTransforms {
			fmt.Fprintln(out, "Available transforms:")
			for _, name := range transform.NewTransformRegistry().List() {
				fmt.Fprintf(out, "  %s\n", name)
			}
			fmt.Fprintln(out, "\nUsage: --transform name:key=value,key=value")
			return
		}
		if len(args) == 0 {
			log.Fatal("compare requires an input file")
		}

		cfg := loadConfig(args[0])
		base, _ := cmd.Flags().GetString("base")
		with, _ := cmd.Flags().GetString("with")
		transforms, _ := cmd.Flags().GetStringSlice("transform")
		format, _ := cmd.Flags().GetString("format")

		engine := compare.NewCompareEngine(newEngine(cmd))
		ctx := context.Background()

		var (
			compSet *compare.ComparisonSet
			err     error
		)
		templates := transform.ParseTemplateList(with)
		if len(templates) == 0 && len(transforms) == 0 {
			compSet, err = engine.CompareScenarios(ctx, cfg, base, nil)
		} else {
			compSet, err = engine.Compare(ctx, cfg, compare.CompareOptions{
				BaseScenarioName: base,
				Templates:        templates,
				Transforms:       transforms,
			})
		}
		if err != nil {
			log.Fatal(err)
		}
		compSet.ConfigPath = args[0]

		var result string
		switch strings.ToLower(format) {
		case "table", "console":
			result = (&compare.TableFormatter{}).Format(compSet)
		case "compact":
			result = (&compare.TableFormatter{}).FormatCompact(compSet)
		case "csv":
			result, err = (&compare.CSVFormatter{}).Format(compSet)
		case "json":
			result, err = (&compare.JSONFormatter{Pretty: true}).Format(compSet)
		default:
			log.Fatalf("unknown format %s (use table, compact, csv or json)", format)
		}
		if err != nil {
			log.Fatal(err)
		}
		fmt.Fprint(out, result)
	},
}
