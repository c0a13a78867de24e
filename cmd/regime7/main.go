package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rgehrsitz/regime7/internal/calculation"
	"github.com/rgehrsitz/regime7/internal/config"
	"github.com/rgehrsitz/regime7/internal/domain"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

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
			fmt.Fprintf(cmd.OutOrStdout(), "regime7 %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

var rootCmd = &cobra.Command{
	Use:   "regime7",
	Short: "Italy 7% regime retirement projection CLI",
	Long: `Projects a retired household's income, Italian tax and capital year by year,
first under the 7% flat-tax regime for foreign-source income and then under
progressive IRPEF with regional and municipal surcharges.`,
}

// loadConfig reads and validates a configuration file or exits
func loadConfig(path string) *domain.Configuration {
	cfg, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

// newEngine builds a calculation engine honouring the --debug flag
func newEngine(cmd *cobra.Command) *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine()
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		engine.SetLogger(simpleCLILogger{})
		engine.Debug = true
	}
	return engine
}

// isTerminal reports whether w is an interactive terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func init() {
	calculateCmd.Flags().StringP("format", "f", "console", "Output format (console, csv, csv-regime, csv-post, csv-sources, json, html)")
	calculateCmd.Flags().StringP("scenario", "s", "", "Only project the named scenario")
	calculateCmd.Flags().String("currency", "eur", "Currency of reported amounts: eur or source (the household currency)")
	calculateCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")

	exportCmd.Flags().StringP("format", "f", "pdf", "Export format (pdf, csv, html, json)")
	exportCmd.Flags().String("view", "full", "CSV view: full, regime, post or sources")
	exportCmd.Flags().StringP("scenario", "s", "", "Only export the named scenario")
	exportCmd.Flags().String("currency", "eur", "Currency of reported amounts: eur or source")
	exportCmd.Flags().StringP("out", "o", "", "Output file (default: timestamped file in the working directory)")
	exportCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")

	compareCmd.Flags().String("base", "", "Base scenario name (default: first scenario)")
	compareCmd.Flags().String("with", "", "Comma-separated list of templates to compare")
	compareCmd.Flags().StringSlice("transform", nil, "Ad-hoc transform, e.g. set_regime_years:years=5 (repeatable)")
	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	compareCmd.Flags().Bool("list-templates", false, "List all available scenario templates")
	compareCmd.Flags().Bool("list-transforms", false, "List all available transforms")
	compareCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")

	serveCmd.Flags().String("addr", ":8080", "Listen address")
	serveCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")

	defaultsCmd.Flags().StringP("out", "o", "", "Write the configuration to a file instead of stdout")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(defaultsCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
