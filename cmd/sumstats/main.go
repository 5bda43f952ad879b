// Package main provides the sumstats command-line tool.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/statgen/sumstats/internal/gwas"
	"github.com/statgen/sumstats/internal/manifest"
	"github.com/statgen/sumstats/internal/tabix"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// logger is configured once in the root command's PersistentPreRunE.
var logger = zap.NewNop()

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sumstats",
		Short:   "Query and harmonize GWAS summary statistics",
		Long:    "Extract association records for variants or regions from tabix-indexed GWAS summary-statistics files, harmonized to a requested coded allele.",
		Version: fmt.Sprintf("%s (%s) built %s", version, commit, date),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("root", "", "Root directory to search for dataset manifests")
	cmd.PersistentFlags().String("tabix", "", "Path to the tabix executable")
	viper.BindPFlag("manifest.root", cmd.PersistentFlags().Lookup("root"))
	viper.BindPFlag("tabix.path", cmd.PersistentFlags().Lookup("tabix"))

	cmd.AddCommand(newRegionCmd())
	cmd.AddCommand(newVariantCmd())
	cmd.AddCommand(newDatasetsCmd())
	cmd.AddCommand(newImportCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// initConfig loads ~/.sumstats.yaml if present and sets up the logger.
func initConfig() error {
	home, err := os.UserHomeDir()
	if err == nil {
		viper.SetConfigFile(filepath.Join(home, ".sumstats.yaml"))
		viper.SetConfigType("yaml")
		if err := viper.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !os.IsNotExist(err) {
				return fmt.Errorf("reading config: %w", err)
			}
		}
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	logger, err = cfg.Build()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	return nil
}

// newEngine builds a query engine honoring the configured tabix path.
func newEngine() *gwas.Engine {
	engine := gwas.NewEngine()
	engine.SetLogger(logger)

	if path := viper.GetString("tabix.path"); path != "" {
		engine.SetStreamOpener(func(file, region string) (gwas.LineStream, error) {
			return tabix.NewRegionStream(file, region, tabix.WithExecutable(path))
		})
	}

	return engine
}

// loadDatasets discovers datasets under the configured manifest root.
func loadDatasets() ([]*gwas.Dataset, error) {
	root := viper.GetString("manifest.root")
	if root == "" {
		return nil, fmt.Errorf("no manifest root configured (use --root or set manifest.root)")
	}

	datasets, err := manifest.Discover(root, logger)
	if err != nil {
		return nil, err
	}
	if len(datasets) == 0 {
		logger.Warn("no dataset manifests found", zap.String("root", root))
	}
	return datasets, nil
}

// buildFilter turns CLI allow-list flags into a component filter.
func buildFilter(traits, sexes, populations []string) (*manifest.Filter, error) {
	f := &manifest.Filter{Traits: traits}

	for _, s := range sexes {
		switch gwas.Sex(s) {
		case gwas.SexMale, gwas.SexFemale, gwas.SexBoth:
			f.Sexes = append(f.Sexes, gwas.Sex(s))
		default:
			return nil, fmt.Errorf("unknown sex %q (expected Male, Female or Both)", s)
		}
	}

	for _, p := range populations {
		switch gwas.Population(p) {
		case gwas.PopulationEUR, gwas.PopulationAIS, gwas.PopulationAFR, gwas.PopulationTRANS:
			f.Populations = append(f.Populations, gwas.Population(p))
		default:
			return nil, fmt.Errorf("unknown population %q (expected EUR, AIS, AFR or TRANS)", p)
		}
	}

	return f, nil
}

// openOutput returns the writer for -o/--output, defaulting to stdout.
func openOutput(path string) (*os.File, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}
