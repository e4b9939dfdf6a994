package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"dredge/adapters/postgres"
	"dredge/adapters/stats"
	"dredge/domain/sim"
	"dredge/internal/config"
	"dredge/internal/generator"
	"dredge/internal/report"
	"dredge/internal/rng"
	"dredge/internal/runner"
	"dredge/ports"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "dredge",
		Short: "Monte Carlo demonstration of false-positive inflation from flexible analysis",
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newHistoryCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var (
		trials       int
		observations int
		covariates   int
		workers      int
		seed         int64
		alpha        float64
		baseline     bool
		save         bool
		excelPath    string
		htmlPath     string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the simulation and print the flagged-trial summary",
		Long: `Run many independent trials against null data. Each trial generates a
dataset with no true effect, applies the full battery of alternative analyses
(covariate stacking, subgroup slicing, response transforms), and records
whether any analysis crossed the significance threshold.

Example: dredge run --trials 1000 --observations 1000 --seed 12345`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			simCfg := cfg.Simulation
			if cmd.Flags().Changed("trials") {
				simCfg.Trials = trials
			}
			if cmd.Flags().Changed("observations") {
				simCfg.Observations = observations
			}
			if cmd.Flags().Changed("covariates") {
				simCfg.Covariates = covariates
			}
			if cmd.Flags().Changed("workers") {
				simCfg.Workers = workers
			}
			if cmd.Flags().Changed("seed") {
				simCfg.Seed = seed
			}
			if cmd.Flags().Changed("alpha") {
				simCfg.Alpha = alpha
			}
			if err := simCfg.Validate(); err != nil {
				return err
			}

			evaluator := stats.NewEvaluator(simCfg.Alpha)
			var battery ports.BatteryPort = stats.NewBattery(evaluator)
			if baseline {
				battery = stats.NewBaselineBattery(evaluator)
			}

			run := runner.New(simCfg, generator.New(), battery, rng.NewProvider(simCfg.Seed))
			result, err := run.Run(cmd.Context())
			if err != nil {
				return err
			}

			summary := report.Summarize(result)
			fmt.Print(summary.RenderText())

			if excelPath != "" {
				if err := report.WriteWorkbook(summary, excelPath); err != nil {
					return err
				}
				fmt.Printf("wrote %s\n", excelPath)
			}
			if htmlPath != "" {
				if err := os.WriteFile(htmlPath, summary.RenderHTML(), 0o644); err != nil {
					return fmt.Errorf("writing HTML report: %w", err)
				}
				fmt.Printf("wrote %s\n", htmlPath)
			}
			if save {
				if err := saveRun(cmd.Context(), cfg, result); err != nil {
					return err
				}
				fmt.Printf("saved run %s\n", result.RunID)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&trials, "trials", config.DefaultTrials, "Number of independent trials")
	cmd.Flags().IntVar(&observations, "observations", config.DefaultObservations, "Rows per generated dataset")
	cmd.Flags().IntVar(&covariates, "covariates", config.DefaultCovariates, "Nuisance covariates per dataset")
	cmd.Flags().IntVar(&workers, "workers", config.DefaultWorkers, "Concurrent trial workers")
	cmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "Base seed for deterministic runs")
	cmd.Flags().Float64Var(&alpha, "alpha", config.DefaultAlpha, "Significance threshold")
	cmd.Flags().BoolVar(&baseline, "baseline", false, "Run only the single honest y ~ x test per trial")
	cmd.Flags().BoolVar(&save, "save", false, "Persist the run summary (requires DATABASE_URL)")
	cmd.Flags().StringVar(&excelPath, "excel", "", "Write an Excel workbook with the result chart to this path")
	cmd.Flags().StringVar(&htmlPath, "html", "", "Write an HTML report to this path")

	return cmd
}

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent persisted runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			repo, err := openRepository(cfg)
			if err != nil {
				return err
			}
			records, err := repo.ListRecent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			for _, r := range records {
				fmt.Printf("%s  seed=%-12d trials=%-6d n=%-6d k=%-3d flagged=%d (%.1f%%)\n",
					r.CreatedAt.Format("2006-01-02 15:04:05"),
					r.Seed, r.Trials, r.Observations, r.Covariates,
					r.FlaggedCount, 100*r.Fraction())
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum runs to list")
	return cmd
}

func openRepository(cfg *config.Config) (*postgres.RunRepository, error) {
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not configured")
	}
	db, err := postgres.Connect(cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	return postgres.NewRunRepository(db), nil
}

func saveRun(ctx context.Context, cfg *config.Config, result *sim.RunResult) error {
	repo, err := openRepository(cfg)
	if err != nil {
		return err
	}
	if err := repo.EnsureSchema(ctx); err != nil {
		return err
	}
	return repo.Save(ctx, ports.NewRunRecord(result))
}
