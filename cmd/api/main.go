package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	server "business_reviews/internal/adapters/http_server"
	"business_reviews/internal/adapters/observability"
	redisad "business_reviews/internal/adapters/redis"
	"business_reviews/internal/app"
	"business_reviews/internal/domain"
	"business_reviews/internal/shared"
	"business_reviews/internal/storage/sqlstore"
)

// CLI flags
var (
	addr    string
	migrate bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "api",
		Short:        "Business and review REST API",
		SilenceUsage: true,
		RunE:         serve,
	}
	rootCmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides HTTP_ADDR)")
	rootCmd.Flags().BoolVar(&migrate, "migrate", false, "apply schema migrations before serving (or set MIGRATE_ON_START)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Apply schema migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := setup()
			db, store, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer db.Close()
			return store.Migrate(cmd.Context())
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup() shared.Config {
	cfg := shared.Load()
	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel, cfg.LogFile)
	return cfg
}

func openStore(ctx context.Context, cfg shared.Config) (*sql.DB, *sqlstore.Store, error) {
	db, err := sqlstore.Open(ctx, cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Str("driver", cfg.DBDriver).Msg("database connection ok")
	return db, sqlstore.New(db, cfg.DBDriver), nil
}

func serve(cmd *cobra.Command, args []string) error {
	cfg := setup()
	if addr != "" {
		cfg.HTTPAddr = addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	observability.Serve(cfg.MetricsAddr)

	// db
	db, store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	if migrate || cfg.MigrateOnStart {
		if err := store.Migrate(ctx); err != nil {
			return err
		}
	}

	// deps
	var guard domain.SubmissionGuard
	if cfg.RedisAddr != "" {
		g := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer g.Close()
		if err := g.Ping(ctx); err != nil {
			// the unique index still holds; the guard fails open per request
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis ping failed")
		}
		guard = g
	}

	// http
	srv := server.New(server.Options{
		RequestTimeout: cfg.RequestTimeout,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Businesses: app.NewBusinessService(store),
		Reviews:    app.NewReviewService(store, guard, cfg.GuardTTL),
		Lodgings:   app.NewLodgingService(store),
		Ping:       db.PingContext,
	})

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}
