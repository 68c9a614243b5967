// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Session    SessionConfig    `mapstructure:"session"`
	Submission SubmissionConfig `mapstructure:"submission"`
	Sink       SinkConfig       `mapstructure:"sink"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	MetricsPort  int    `mapstructure:"metrics_port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // milliseconds
	WriteTimeout int    `mapstructure:"write_timeout"` // milliseconds
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func (s ServerConfig) MetricsAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.MetricsPort)
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// --- Session Store Config ---

// SessionConfig selects where in-progress wizard sessions live. The memory
// backend is the default; redis keeps sessions across process restarts.
type SessionConfig struct {
	Backend    string      `mapstructure:"backend"` // "memory" or "redis"
	TTLMinutes int         `mapstructure:"ttl_minutes"`
	Redis      RedisConfig `mapstructure:"redis"`
}

func (s SessionConfig) TTL() time.Duration {
	return time.Duration(s.TTLMinutes) * time.Minute
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// --- Submission Pipeline Config ---

// SubmissionConfig tunes the retry schedule and the fixed timestamp offset
// stamped onto persisted rows.
type SubmissionConfig struct {
	MaxAttempts   int    `mapstructure:"max_attempts"`
	BackoffBaseMS int    `mapstructure:"backoff_base_ms"`
	TimezoneName  string `mapstructure:"timezone_name"`
	UTCOffsetMin  int    `mapstructure:"utc_offset_minutes"`
}

func (s SubmissionConfig) BackoffBase() time.Duration {
	return time.Duration(s.BackoffBaseMS) * time.Millisecond
}

// Location returns the fixed-offset zone used for row timestamps.
func (s SubmissionConfig) Location() *time.Location {
	return time.FixedZone(s.TimezoneName, s.UTCOffsetMin*60)
}

// --- Sink Config ---

// SinkConfig selects the external append-only row store. Absent credentials
// or target identifiers downgrade the backend to "disabled" instead of
// failing startup; the scoring experience stays available.
type SinkConfig struct {
	Backend  string         `mapstructure:"backend"` // "sheets", "postgres" or "disabled"
	Sheets   SheetsConfig   `mapstructure:"sheets"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type SheetsConfig struct {
	CredentialsJSON string `mapstructure:"credentials_json"`
	SpreadsheetID   string `mapstructure:"spreadsheet_id"`
	Worksheet       string `mapstructure:"worksheet"`
}

// Configured reports whether enough settings exist to reach the spreadsheet.
func (s SheetsConfig) Configured() bool {
	return s.CredentialsJSON != "" && s.SpreadsheetID != "" && s.Worksheet != ""
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	Table          string `mapstructure:"table"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

// Configured reports whether enough settings exist to reach the database.
func (p PostgresConfig) Configured() bool {
	return p.Host != "" && p.Database != "" && p.User != ""
}
