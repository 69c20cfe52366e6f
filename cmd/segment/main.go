package main

import (
	"context"
	"fmt"
	"os"

	"gosegment/adapters/excel"
	"gosegment/adapters/postgres"
	"gosegment/app"
	"gosegment/internal"
	"gosegment/internal/config"
	"gosegment/ports"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// .env is optional; environment variables win either way
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "segment",
		Short: "Survey market-segmentation pipeline (k-means over Likert attribute ratings)",
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newElbowCmd(),
		newInspectCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildPipeline loads config, applies the --input override and wires the
// reader plus the optional Postgres store.
func buildPipeline(inputOverride string) (*app.Pipeline, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if inputOverride != "" {
		cfg.Data.SurveyFile = inputOverride
	}

	logger := internal.NewDefaultLogger()
	reader := excel.NewDataReader(cfg.Data.SurveyFile)

	var store ports.RunStore
	cleanup := func() {}
	if cfg.Database.URL != "" {
		store, err = postgres.NewRunRepository(cfg.Database.URL)
		if err != nil {
			return nil, nil, err
		}
		cleanup = func() { _ = store.Close() }
	}

	return app.NewPipeline(cfg, reader, store, logger), cleanup, nil
}

func newRunCmd() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline: clean, standardize, cluster, validate, report",
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline, cleanup, err := buildPipeline(input)
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := pipeline.Run(context.Background())
			if err != nil {
				return err
			}

			fmt.Printf("run %s: %d respondents across %d clusters, mean silhouette %.3f\n",
				result.Manifest.RunID, result.Manifest.RowsRetained,
				len(result.Summaries), result.Silhouette.Mean)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "survey file (overrides SURVEY_FILE)")
	return cmd
}

func newElbowCmd() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "elbow",
		Short: "Compute the within-cluster sum-of-squares curve for k=1..max",
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline, cleanup, err := buildPipeline(input)
			if err != nil {
				return err
			}
			defer cleanup()

			elbow, err := pipeline.RunElbow(context.Background())
			if err != nil {
				return err
			}

			fmt.Println("k\tWSS")
			for _, pt := range elbow {
				fmt.Printf("%d\t%.3f\n", pt.K, pt.WSS)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "survey file (overrides SURVEY_FILE)")
	return cmd
}

func newInspectCmd() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Load and clean only, printing the column profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline, cleanup, err := buildPipeline(input)
			if err != nil {
				return err
			}
			defer cleanup()

			profiles, stats, err := pipeline.Inspect(context.Background())
			if err != nil {
				return err
			}

			fmt.Printf("rows: %d loaded, %d retained, %d dropped\n\n",
				stats.RowsLoaded, stats.RowsRetained, stats.RowsDropped)
			fmt.Println("column\ttype\tdistinct")
			for _, p := range profiles {
				fmt.Printf("%s\t%s\t%d\n", p.Name, p.Type, p.Distinct)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "survey file (overrides SURVEY_FILE)")
	return cmd
}
