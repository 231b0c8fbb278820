// Package main provides the entry point for the dashboard API service.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/mlb-trends/internal/analytics"
	"github.com/yourusername/mlb-trends/internal/config"
	"github.com/yourusername/mlb-trends/internal/database"
	applogger "github.com/yourusername/mlb-trends/internal/logger"
	"github.com/yourusername/mlb-trends/internal/repository"
	"github.com/yourusername/mlb-trends/internal/scheduler"
	"github.com/yourusername/mlb-trends/internal/server"
	"github.com/yourusername/mlb-trends/internal/service"
	"github.com/yourusername/mlb-trends/internal/statsapi"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	noSync     bool
	cfg        *config.Config
	appLog     *logrus.Logger
	db         *database.DB
	repos      *repository.Repositories
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().BoolVar(&noSync, "no-sync", false, "Disable the scheduled background sync")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := setup(cmd.Context()); err != nil {
			return err
		}
		return nil
	}
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	}
}

var rootCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Serve the MLB trends dashboard API",
	Long:  `Serve rolling team form, run differentials and win-probability model views over the local game store.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func setup(ctx context.Context) error {
	// Optional .env for local development; missing file is fine.
	_ = godotenv.Load()

	// An explicit --config must exist; the conventional path falls back to
	// built-in defaults when absent.
	loadCfg := config.LoadWithDefaults
	if rootCmd.PersistentFlags().Changed("config") {
		loadCfg = config.Load
	}

	var err error
	cfg, err = loadCfg(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	appLog = applogger.New(cfg.App.LogLevel, cfg.App.Environment)
	appLog.WithFields(logrus.Fields{
		"version":     Version,
		"environment": cfg.App.Environment,
		"store":       cfg.Store.Path,
	}).Info("MLB trends dashboard starting")

	// The dashboard only reads; it refuses to start against a missing store
	// rather than silently creating an empty one.
	db, err = database.Open(ctx, &cfg.Store)
	if err != nil {
		return fmt.Errorf("failed to open game store: %w", err)
	}

	repos = repository.NewRepositories(db)
	return nil
}

func run(ctx context.Context) error {
	defer func() {
		if err := db.Close(); err != nil {
			appLog.WithError(err).Error("Failed to close game store")
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	teams, err := repos.Teams.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load team directory: %w", err)
	}
	directory := analytics.NewTeamDirectory(teams)
	appLog.WithField("teams", len(teams)).Info("Team directory loaded")

	srv := server.New(cfg, repos, directory, db, appLog)
	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("failed to start API server: %w", err)
	}

	var sched *scheduler.Scheduler
	if !noSync {
		apiClient := statsapi.NewClient(statsapi.Config{
			BaseURL: cfg.StatsAPI.BaseURL,
			HTTP: statsapi.HTTPClientConfig{
				Timeout:           time.Duration(cfg.StatsAPI.TimeoutSeconds) * time.Second,
				MaxRetries:        cfg.StatsAPI.MaxRetries,
				RetryWaitMin:      100 * time.Millisecond,
				RetryWaitMax:      5 * time.Second,
				RateLimit:         cfg.StatsAPI.RateLimit,
				CircuitBreakerMax: 5,
			},
			CacheTTL: time.Duration(cfg.StatsAPI.CacheTTLSeconds) * time.Second,
			Logger:   applogger.Component(appLog, "statsapi"),
		})
		defer apiClient.Close()

		ingestion := service.NewIngestionService(
			apiClient,
			repos,
			applogger.Component(appLog, "ingestion"),
			cfg.Ingestion.BatchSize,
			time.Duration(cfg.Ingestion.SleepMillis)*time.Millisecond,
		)

		sched = scheduler.NewScheduler(ingestion, srv.Hub(), applogger.Component(appLog, "scheduler"))
		if err := sched.ScheduleDailySync(cfg.Ingestion.Schedule, cfg.Ingestion.SyncDays); err != nil {
			return fmt.Errorf("failed to schedule sync: %w", err)
		}
		if err := sched.Start(); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
		appLog.WithField("next_run", sched.NextRun().Format(time.RFC3339)).Info("Background sync scheduled")
	} else {
		appLog.Info("Background sync disabled")
	}

	srv.SetReady(true)
	appLog.WithField("port", cfg.Server.Port).Info("Dashboard ready")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	appLog.WithField("signal", sig.String()).Info("Shutdown signal received")

	srv.SetReady(false)
	if sched != nil {
		if err := sched.Stop(); err != nil {
			appLog.WithError(err).Error("Error stopping scheduler")
		}
	}
	cancel()
	if err := srv.Shutdown(); err != nil {
		appLog.WithError(err).Error("Error during server shutdown")
	}

	appLog.Info("Dashboard shut down successfully")
	return nil
}
