// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	// Base config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like SINK_SHEETS_SPREADSHEET_ID
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment overlay, ignored when absent
	envConfigFile := fmt.Sprintf("config.%s", env)
	viper.SetConfigName(envConfigFile)
	_ = viper.MergeInConfig()

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	downgradeUnreachableSink(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile loads .env from the first location that has one, so the binary
// and the tests can both find it.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up the directory tree looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars resolves ${VAR} placeholders in every string value.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.Contains(val, "${") {
			v.Set(key, os.ExpandEnv(val))
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "aiready-check"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.MetricsPort == 0 {
		cfg.Server.MetricsPort = 9090
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10000
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15000
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
	if cfg.Session.Backend == "" {
		cfg.Session.Backend = "memory"
	}
	if cfg.Session.TTLMinutes == 0 {
		cfg.Session.TTLMinutes = 120
	}
	if cfg.Submission.MaxAttempts == 0 {
		cfg.Submission.MaxAttempts = 3
	}
	if cfg.Submission.BackoffBaseMS == 0 {
		cfg.Submission.BackoffBaseMS = 1000
	}
	if cfg.Submission.TimezoneName == "" {
		cfg.Submission.TimezoneName = "JST"
		cfg.Submission.UTCOffsetMin = 9 * 60
	}
	if cfg.Sink.Backend == "" {
		cfg.Sink.Backend = "sheets"
	}
	if cfg.Sink.Sheets.Worksheet == "" {
		cfg.Sink.Sheets.Worksheet = "responses"
	}
	if cfg.Sink.Postgres.Table == "" {
		cfg.Sink.Postgres.Table = "ai_ready_responses"
	}
	if cfg.Sink.Postgres.Port == 0 {
		cfg.Sink.Postgres.Port = 5432
	}
	if cfg.Sink.Postgres.SSLMode == "" {
		cfg.Sink.Postgres.SSLMode = "disable"
	}
	if cfg.Sink.Postgres.MaxConnections == 0 {
		cfg.Sink.Postgres.MaxConnections = 10
	}
	if cfg.Sink.Postgres.MaxIdle == 0 {
		cfg.Sink.Postgres.MaxIdle = 5
	}
}

// downgradeUnreachableSink disables the sink when its target or credentials
// are missing. Missing secrets mean "submission disabled", never a crash.
func downgradeUnreachableSink(cfg *Config) {
	switch cfg.Sink.Backend {
	case "sheets":
		if !cfg.Sink.Sheets.Configured() {
			cfg.Sink.Backend = "disabled"
		}
	case "postgres":
		if !cfg.Sink.Postgres.Configured() {
			cfg.Sink.Backend = "disabled"
		}
	}
}

func validateConfig(cfg *Config) error {
	switch cfg.Session.Backend {
	case "memory":
	case "redis":
		if cfg.Session.Redis.Address == "" {
			return fmt.Errorf("session backend is redis but session.redis.address is empty")
		}
	default:
		return fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}

	switch cfg.Sink.Backend {
	case "sheets", "postgres", "disabled":
	default:
		return fmt.Errorf("unknown sink backend %q", cfg.Sink.Backend)
	}

	if cfg.Submission.MaxAttempts < 1 {
		return fmt.Errorf("submission.max_attempts must be at least 1")
	}

	return nil
}
