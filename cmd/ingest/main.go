// Package main provides the data ingestion CLI for the game store.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/mlb-trends/internal/config"
	"github.com/yourusername/mlb-trends/internal/database"
	applogger "github.com/yourusername/mlb-trends/internal/logger"
	"github.com/yourusername/mlb-trends/internal/repository"
	"github.com/yourusername/mlb-trends/internal/service"
	"github.com/yourusername/mlb-trends/internal/statsapi"
)

const dateLayout = "2006-01-02"

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	startFlag  string
	endFlag    string
	daysFlag   int
	cfg        *config.Config
	appLog     *logrus.Logger
	db         *database.DB
	ingestion  *service.IngestionService
	apiClient  *statsapi.Client
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	for _, cmd := range []*cobra.Command{gamesCmd, statsCmd, allCmd} {
		cmd.Flags().StringVar(&startFlag, "start", "", "Range start (YYYY-MM-DD)")
		cmd.Flags().StringVar(&endFlag, "end", "", "Range end (YYYY-MM-DD), defaults to today")
		cmd.Flags().IntVar(&daysFlag, "days", 0, "Trailing days to sync when --start is not given")
	}
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return setup(cmd.Context())
	}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		teardown()
	}
}

var rootCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Load MLB Stats API data into the local game store",
	Long:  `Fetch teams, players, game results and box scores from the MLB Stats API and upsert them into the local SQLite store.`,
}

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "Sync the team directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		return report(ingestion.SyncTeams(cmd.Context()))
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "Sync rosters and player bios",
	RunE: func(cmd *cobra.Command, args []string) error {
		return report(ingestion.SyncPlayers(cmd.Context()))
	},
}

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "Sync game results for a date range",
	RunE: func(cmd *cobra.Command, args []string) error {
		start, end, err := dateRange()
		if err != nil {
			return err
		}
		return report(ingestion.SyncGames(cmd.Context(), start, end))
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Sync box scores for completed games in a date range",
	RunE: func(cmd *cobra.Command, args []string) error {
		start, end, err := dateRange()
		if err != nil {
			return err
		}
		return report(ingestion.SyncBoxscores(cmd.Context(), start, end))
	},
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Sync teams, players, games and box scores",
	RunE: func(cmd *cobra.Command, args []string) error {
		start, end, err := dateRange()
		if err != nil {
			return err
		}
		return report(ingestion.SyncAll(cmd.Context(), start, end))
	},
}

func main() {
	rootCmd.AddCommand(teamsCmd, playersCmd, gamesCmd, statsCmd, allCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func setup(ctx context.Context) error {
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
		"version": Version,
		"store":   cfg.Store.Path,
	}).Info("MLB trends ingestion starting")

	// Unlike the dashboard, the loader creates the store on first run.
	db, err = database.OpenOrCreate(ctx, &cfg.Store)
	if err != nil {
		return fmt.Errorf("failed to open game store: %w", err)
	}

	apiClient = statsapi.NewClient(statsapi.Config{
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

	ingestion = service.NewIngestionService(
		apiClient,
		repository.NewRepositories(db),
		applogger.Component(appLog, "ingestion"),
		cfg.Ingestion.BatchSize,
		time.Duration(cfg.Ingestion.SleepMillis)*time.Millisecond,
	)
	return nil
}

func teardown() {
	if apiClient != nil {
		apiClient.Close()
	}
	if db != nil {
		if err := db.Close(); err != nil {
			appLog.WithError(err).Error("Failed to close game store")
		}
	}
}

// dateRange resolves the --start/--end/--days flags, defaulting to the
// configured trailing sync window ending today.
func dateRange() (time.Time, time.Time, error) {
	end := time.Now().UTC().Truncate(24 * time.Hour)
	if endFlag != "" {
		t, err := time.Parse(dateLayout, endFlag)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --end value %q: %w", endFlag, err)
		}
		end = t
	}

	days := daysFlag
	if days <= 0 {
		days = cfg.Ingestion.SyncDays
	}
	start := end.AddDate(0, 0, -days)
	if startFlag != "" {
		t, err := time.Parse(dateLayout, startFlag)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --start value %q: %w", startFlag, err)
		}
		start = t
	}

	if start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("start %s is after end %s", start.Format(dateLayout), end.Format(dateLayout))
	}
	return start, end, nil
}

func report(r *service.RunReport, err error) error {
	if err != nil {
		return err
	}
	appLog.Info(r.String())
	fmt.Println(r.String())
	return nil
}
