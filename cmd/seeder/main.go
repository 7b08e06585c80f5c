package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"business_reviews/internal/adapters/observability"
	"business_reviews/internal/app"
	"business_reviews/internal/shared"
	"business_reviews/internal/storage/sqlstore"
)

var (
	file    string
	workers int
	migrate bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "seeder",
		Short:        "Load businesses, reviews and lodgings from a JSON fixture",
		SilenceUsage: true,
		RunE:         run,
	}
	rootCmd.Flags().StringVarP(&file, "file", "f", "", "fixture file (required)")
	rootCmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent businesses (overrides SEED_WORKERS)")
	rootCmd.Flags().BoolVar(&migrate, "migrate", true, "apply schema migrations first")
	_ = rootCmd.MarkFlagRequired("file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel, cfg.LogFile)
	if workers > 0 {
		cfg.SeedWorkers = workers
	}

	raw, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read fixture: %w", err)
	}
	var fx app.Fixture
	if err := json.Unmarshal(raw, &fx); err != nil {
		return fmt.Errorf("parse fixture %s: %w", file, err)
	}

	log.Info().
		Str("file", file).
		Int("workers", cfg.SeedWorkers).
		Int("businesses", len(fx.Businesses)).
		Int("lodgings", len(fx.Lodgings)).
		Msg("seeder starting")

	db, err := sqlstore.Open(ctx, cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return err
	}
	defer db.Close()
	store := sqlstore.New(db, cfg.DBDriver)
	if migrate {
		if err := store.Migrate(ctx); err != nil {
			return err
		}
	}

	// no submission guard: the seeder is the only writer for its own fixture
	s := app.NewSeeder(
		app.NewBusinessService(store),
		app.NewReviewService(store, nil, 0),
		app.NewLodgingService(store),
	)
	rep, err := s.Run(ctx, fx, cfg.SeedWorkers)
	if err != nil {
		return err
	}
	log.Info().
		Int64("businesses", rep.Businesses).
		Int64("reviews", rep.Reviews).
		Int64("lodgings", rep.Lodgings).
		Int64("skipped", rep.Skipped).
		Int64("failed", rep.Failed).
		Msg("seeding completed")
	if rep.Failed > 0 {
		return fmt.Errorf("%d fixture entries failed", rep.Failed)
	}
	return nil
}
