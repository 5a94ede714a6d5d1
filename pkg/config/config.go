package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// State backend selectors.
const (
	StateBackendFile     = "file"
	StateBackendRedis    = "redis"
	StateBackendPostgres = "postgres"
)

type Config struct {
	Env  string
	Port int

	GreatDay   GreatDayConfig
	Webhook    WebhookConfig
	State      StateConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Server     ServerConfig
	Log        LogConfig
	Exclusions ExclusionsConfig
	Report     ReportConfig
	Export     ExportConfig
}

// GreatDayConfig carries the upstream HR API credentials.
type GreatDayConfig struct {
	BaseURL      string `validate:"required,url"`
	SecretKey    string
	AccessSecret string
	Timeout      time.Duration
	PageLimit    int `validate:"min=1"`
}

// WebhookConfig points at the Discord sink.
type WebhookConfig struct {
	URL     string `validate:"omitempty,url"`
	Timeout time.Duration
}

// StateConfig selects and locates the publish-state store.
type StateConfig struct {
	Backend  string `validate:"oneof=file redis postgres"`
	File     string
	RedisKey string
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// ServerConfig guards the HTTP trigger surface.
type ServerConfig struct {
	APIKey         string
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// ExclusionsConfig is the denylist removing employees from every recap.
type ExclusionsConfig struct {
	EmpIDs []string
	EmpNos []string
}

// ReportConfig tunes rendering and ranking.
type ReportConfig struct {
	TopN               int
	MaxLinesPerSection int
}

// ExportConfig controls optional monthly report artifacts.
type ExportConfig struct {
	Enabled    bool
	StorageDir string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")

	cfg.GreatDay = GreatDayConfig{
		BaseURL:      v.GetString("BASE_URL"),
		SecretKey:    v.GetString("SECRET_KEY"),
		AccessSecret: v.GetString("ACCESS_SECRET"),
		Timeout:      parseDuration(v.GetString("GREATDAY_TIMEOUT"), 30*time.Second),
		PageLimit:    v.GetInt("GREATDAY_PAGE_LIMIT"),
	}

	cfg.Webhook = WebhookConfig{
		URL:     v.GetString("DISCORD_WEBHOOK_URL"),
		Timeout: parseDuration(v.GetString("WEBHOOK_TIMEOUT"), 15*time.Second),
	}

	cfg.State = StateConfig{
		Backend:  v.GetString("STATE_BACKEND"),
		File:     v.GetString("STATE_FILE"),
		RedisKey: v.GetString("STATE_REDIS_KEY"),
	}

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Server = ServerConfig{
		APIKey:         v.GetString("API_KEY"),
		AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS")),
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Exclusions = ExclusionsConfig{
		EmpIDs: splitAndTrim(v.GetString("EXCLUDED_EMP_IDS")),
		EmpNos: splitAndTrim(v.GetString("EXCLUDED_EMP_NOS")),
	}

	cfg.Report = ReportConfig{
		TopN:               v.GetInt("REPORT_TOP_N"),
		MaxLinesPerSection: v.GetInt("REPORT_MAX_LINES_PER_SECTION"),
	}

	cfg.Export = ExportConfig{
		Enabled:    v.GetBool("ENABLE_EXPORTS"),
		StorageDir: v.GetString("EXPORTS_STORAGE_DIR"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 3002)

	v.SetDefault("BASE_URL", "https://dev.greatdayhr.com/api")
	v.SetDefault("SECRET_KEY", "")
	v.SetDefault("ACCESS_SECRET", "")
	v.SetDefault("GREATDAY_TIMEOUT", "30s")
	v.SetDefault("GREATDAY_PAGE_LIMIT", 100)

	v.SetDefault("DISCORD_WEBHOOK_URL", "")
	v.SetDefault("WEBHOOK_TIMEOUT", "15s")

	v.SetDefault("STATE_BACKEND", StateBackendFile)
	v.SetDefault("STATE_FILE", "state.json")
	v.SetDefault("STATE_REDIS_KEY", "recap:publish_state")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "greatday_recap")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("API_KEY", "")
	v.SetDefault("ALLOWED_ORIGINS", "")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("EXCLUDED_EMP_IDS", "DO230167")
	v.SetDefault("EXCLUDED_EMP_NOS", "2022 - 078")

	v.SetDefault("REPORT_TOP_N", 5)
	v.SetDefault("REPORT_MAX_LINES_PER_SECTION", 30)

	v.SetDefault("ENABLE_EXPORTS", false)
	v.SetDefault("EXPORTS_STORAGE_DIR", "./exports")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
