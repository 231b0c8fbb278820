// Package config provides configuration management for the MLB trends service.
package config

// Config represents the complete application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app" validate:"required"`
	Store     StoreConfig     `mapstructure:"store" validate:"required"`
	StatsAPI  StatsAPIConfig  `mapstructure:"stats_api" validate:"required"`
	Dashboard DashboardConfig `mapstructure:"dashboard" validate:"required"`
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Metrics   MetricsConfig   `mapstructure:"metrics" validate:"required"`
	Ingestion IngestionConfig `mapstructure:"ingestion" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// StoreConfig locates the SQLite game store on disk.
type StoreConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// StatsAPIConfig represents MLB Stats API client configuration
type StatsAPIConfig struct {
	BaseURL         string  `mapstructure:"base_url" validate:"required,url"`
	TimeoutSeconds  int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	MaxRetries      int     `mapstructure:"max_retries" validate:"gte=0"`
	RateLimit       float64 `mapstructure:"rate_limit" validate:"required,gt=0"`
	CacheTTLSeconds int     `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
}

// DashboardConfig holds the defaults the presentation layer starts from.
type DashboardConfig struct {
	DefaultWindow  int `mapstructure:"default_window" validate:"required,min=5,max=30"`
	LookbackDays   int `mapstructure:"lookback_days" validate:"required,gt=0"`
	RecentEvalRows int `mapstructure:"recent_eval_rows" validate:"required,gt=0"`
}

// ServerConfig represents the HTTP API server configuration
type ServerConfig struct {
	Port int `mapstructure:"port" validate:"required,min=1,max=65535"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required"`
}

// IngestionConfig represents data ingestion configuration
type IngestionConfig struct {
	SyncDays    int    `mapstructure:"sync_days" validate:"required,gt=0"`
	BatchSize   int    `mapstructure:"batch_size" validate:"required,gt=0"`
	Schedule    string `mapstructure:"schedule" validate:"required"`
	SleepMillis int    `mapstructure:"sleep_millis" validate:"gte=0"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}
