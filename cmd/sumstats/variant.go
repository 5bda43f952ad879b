package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/statgen/sumstats/internal/gwas"
	"github.com/statgen/sumstats/internal/output"
)

func newVariantCmd() *cobra.Command {
	var (
		codedAllele string
		outputPath  string
		traits      []string
		sexes       []string
		populations []string
	)

	cmd := &cobra.Command{
		Use:   "variant <chrom:pos:A1/A2>",
		Short: "Look up one variant across datasets, harmonized to a coded allele",
		Long: `Retrieve the single association record each matching component has for
the variant and re-express its effect for the requested coded allele.
Components without the variant, or with duplicate entries for it, are
reported and skipped.`,
		Example: `  sumstats variant 3:12345:G/C --coded-allele G
  sumstats variant chr3:12345:G/C --coded-allele C --traits CAD,MI`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := gwas.ParseSpec(args[0])
			if err != nil {
				return err
			}
			if !v.HasAllele(codedAllele) {
				return fmt.Errorf("coded allele %q is not an allele of %s", codedAllele, v)
			}

			filter, err := buildFilter(traits, sexes, populations)
			if err != nil {
				return err
			}

			datasets, err := loadDatasets()
			if err != nil {
				return err
			}

			out, closeOut, err := openOutput(outputPath)
			if err != nil {
				return err
			}
			defer closeOut()

			return runVariant(newEngine(), filter.Apply(datasets), v, codedAllele, output.NewCSVWriter(out))
		},
	}

	cmd.Flags().StringVar(&codedAllele, "coded-allele", "", "Allele to report the effect for (required)")
	cmd.MarkFlagRequired("coded-allele")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringSliceVar(&traits, "traits", nil, "Only query components for these traits")
	cmd.Flags().StringSliceVar(&sexes, "sex", nil, "Only query components for these sex strata")
	cmd.Flags().StringSliceVar(&populations, "population", nil, "Only query components for these populations")

	return cmd
}

func runVariant(engine *gwas.Engine, datasets []*gwas.Dataset, v *gwas.Variant, codedAllele string, writer *output.CSVWriter) error {
	if err := writer.WriteHeader(); err != nil {
		return err
	}

	for _, dataset := range datasets {
		for _, component := range dataset.Components {
			stat, err := engine.VariantStats(&component, v, codedAllele)
			if err != nil {
				// A component configured with an unflippable effect
				// type is a setup defect: abort instead of skipping.
				var undefined *gwas.UndefinedFlipError
				if errors.As(err, &undefined) {
					return fmt.Errorf("component %s/%s: %w", dataset.Name, component.TraitName, err)
				}

				logger.Warn("no harmonized record for component",
					zap.String("dataset", dataset.Name),
					zap.String("trait", component.TraitName),
					zap.Error(err))
				continue
			}

			if err := writer.Write(dataset.Name, component.TraitName, stat); err != nil {
				return err
			}
		}
	}

	return writer.Flush()
}
