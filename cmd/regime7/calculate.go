package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rgehrsitz/regime7/internal/calculation"
	"github.com/rgehrsitz/regime7/internal/config"
	"github.com/rgehrsitz/regime7/internal/domain"
	"github.com/rgehrsitz/regime7/internal/output"
)

var calculateCmd = &cobra.Command{
	Use:   "calculate [input-file]",
	Short: "Project every scenario of a configuration",
	Long: `Project every scenario of a configuration and print the year-by-year table.

Examples:
  regime7 calculate config.yaml
  regime7 calculate config.yaml --scenario Base --format csv-regime
  regime7 calculate config.yaml --currency source --format json`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(args[0])
		set := runProjection(cmd, cfg)

		format, _ := cmd.Flags().GetString("format")
		if format == "pdf" {
			log.Fatal("pdf output is binary; use 'regime7 export --format pdf' instead")
		}

		var formatter output.Formatter
		if f := output.GetFormatterByName(format); f != nil && f.Name() == "console" {
			formatter = output.ConsoleFormatter{Styled: isTerminal(cmd.OutOrStdout())}
		} else if f != nil {
			formatter = f
		} else {
			log.Fatalf("unknown format %s (available: %s)", format, strings.Join(output.AvailableFormatterNames(), ", "))
		}

		data, err := formatter.Format(set)
		if err != nil {
			log.Fatal(err)
		}
		cmd.OutOrStdout().Write(data)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [input-file]",
	Short: "Write a projection report to a file",
	Long: `Write a projection report to a file.

Examples:
  regime7 export config.yaml                      # PDF report of all scenarios
  regime7 export config.yaml --format csv --view post -o post.csv
  regime7 export config.yaml --scenario Base --format html`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(args[0])
		set := runProjection(cmd, cfg)

		format, _ := cmd.Flags().GetString("format")
		viewName, _ := cmd.Flags().GetString("view")
		out, _ := cmd.Flags().GetString("out")

		formatter := output.GetFormatterByName(format)
		if formatter == nil {
			log.Fatalf("unknown format %s (available: %s)", format, strings.Join(output.AvailableFormatterNames(), ", "))
		}
		if formatter.Name() == "csv" {
			view, err := output.ParseView(viewName)
			if err != nil {
				log.Fatal(err)
			}
			formatter = output.CSVFormatter{View: view}
		}

		ext := strings.SplitN(formatter.Name(), "-", 2)[0]
		if ext == "console" {
			ext = "txt"
		}

		if out == "" {
			filename, err := output.WriteFormatted(formatter, set, ext)
			if err != nil {
				log.Fatal(err)
			}
			out = filename
		} else if err := output.WriteFormattedFile(formatter, set, out); err != nil {
			log.Fatal(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", out)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate a configuration file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(args[0])
		out := cmd.OutOrStdout()

		for _, s := range cfg.Scenarios {
			if w := calculation.AllocationWarning(s.Strategies); w != "" {
				fmt.Fprintf(out, "Warning: scenario %s: %s\n", s.Name, w)
			}
		}
		fmt.Fprintf(out, "Configuration file %s is valid (%d scenarios)\n", args[0], len(cfg.Scenarios))
	},
}

var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the default configuration as YAML",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.DefaultConfiguration()
		out, _ := cmd.Flags().GetString("out")
		if out != "" {
			if err := output.SaveConfiguration(cfg, out); err != nil {
				log.Fatal(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Default configuration written to %s\n", out)
			return
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			log.Fatal(err)
		}
		cmd.OutOrStdout().Write(data)
	},
}

// runProjection projects the configuration honouring --scenario and --currency
func runProjection(cmd *cobra.Command, cfg *domain.Configuration) *domain.ProjectionSet {
	engine := newEngine(cmd)
	ctx := context.Background()

	var set *domain.ProjectionSet
	if name, _ := cmd.Flags().GetString("scenario"); name != "" {
		table, err := engine.RunScenarioByName(ctx, cfg, name)
		if err != nil {
			log.Fatal(err)
		}
		set = &domain.ProjectionSet{
			Tables:      []domain.ProjectionTable{*table},
			Assumptions: calculation.DescribeAssumptions(cfg.GlobalAssumptions),
		}
	} else {
		var err error
		set, err = engine.RunScenarios(ctx, cfg)
		if err != nil {
			log.Fatal(err)
		}
	}

	currency, _ := cmd.Flags().GetString("currency")
	switch strings.ToLower(currency) {
	case "", "eur":
	case "source":
		ga := cfg.GlobalAssumptions
		for i := range set.Tables {
			set.Tables[i] = *calculation.ConvertTable(&set.Tables[i], ga.FXRate, ga.Currency)
		}
	default:
		log.Fatalf("unknown currency %s (use eur or source)", currency)
	}
	return set
}
