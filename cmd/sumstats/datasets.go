package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/statgen/sumstats/internal/manifest"
)

func newDatasetsCmd() *cobra.Command {
	var showIndexed bool

	cmd := &cobra.Command{
		Use:   "datasets",
		Short: "List datasets and components found under the manifest root",
		RunE: func(cmd *cobra.Command, args []string) error {
			datasets, err := loadDatasets()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DATASET\tTRAIT\tPOPULATION\tSEX\tEFFECT\tFILE")
			for _, dataset := range datasets {
				for _, c := range dataset.Components {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
						dataset.Name,
						c.TraitName,
						c.PopulationOrDefault(),
						c.SexOrDefault(),
						c.EffectType,
						c.FormattedFile,
					)
				}
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if !showIndexed {
				return nil
			}

			// Indexed files without a manifest, found by their .tbi index.
			indexed, err := manifest.FindIndexed(viper.GetString("manifest.root"))
			if err != nil {
				return err
			}
			if len(indexed) > 0 {
				fmt.Println()
				fmt.Println("Indexed files without a manifest:")
				for name, file := range indexed {
					fmt.Printf("  %s\t%s\n", name, file)
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&showIndexed, "indexed", false, "Also list indexed files that have no manifest")

	return cmd
}
