package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/edp1096/toy-engineer/configs"
	"github.com/edp1096/toy-engineer/internal/config"
	"github.com/edp1096/toy-engineer/pkg/calc"
	"github.com/edp1096/toy-engineer/pkg/newton"
	"github.com/edp1096/toy-engineer/pkg/valueset"
	"github.com/spf13/cobra"
)

var (
	cfgFile     string
	catalogFile string
	verbose     bool
)

// Loaded once by the root command before any subcommand runs.
var (
	cfg      *config.Config
	catalog  *valueset.Catalog
	registry *calc.Registry
)

var rootCmd = &cobra.Command{
	Use:   "engineer",
	Short: "Electronics engineering calculators",
	Long: `engineer sizes everyday circuit parts and matches them to standard
component values (E-series and custom catalogs).

Calculators:
  ohm, parallel, divider, series, rc, marking, eseries,
  ne555, lm2596, mp2307, pll, avr-uart, avr-timer, deunify,
  trace, thread, ic`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError("engineer", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $"+config.EnvVar+" or ./configs/config.toml)")
	rootCmd.PersistentFlags().StringVar(&catalogFile, "catalog", "", "value-set catalog (.json, .yaml, .toml); overrides the config")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}
	verbose = verbose || cfg.General.Verbose

	path := cfg.Catalog.Path
	if catalogFile != "" {
		path = catalogFile
	}
	if path == "" {
		logf("using built-in catalog %s", configs.CatalogName)
		catalog, err = valueset.ParseCatalog(configs.Catalog, valueset.FormatJSON)
	} else {
		logf("loading catalog %s", path)
		catalog, err = valueset.LoadCatalog(path)
	}
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}

	registry = calc.Builtin(newEnv(cfg, catalog))
	return nil
}

func newEnv(cfg *config.Config, catalog *valueset.Catalog) *calc.Env {
	env := calc.DefaultEnv(catalog)
	env.Solver = &newton.Solver{
		MaxResidual:   cfg.Newton.MaxResidual,
		MaxIterations: cfg.Newton.MaxIterations,
	}
	env.TopK = cfg.Search.TopK
	env.Digits = cfg.Output.SignificantDigits
	env.MaxParallelError = cfg.Search.MaxParallelError
	env.DividerTolerance = cfg.Search.DividerTolerance
	env.ResistorSet = cfg.Catalog.ResistorSet
	env.CapacitorSet = cfg.Catalog.CapacitorSet
	return env
}

func logf(format string, args ...any) {
	if verbose {
		log.Printf(format, args...)
	}
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
}
