// Package config loads runtime settings from the environment, an optional
// .env file and an optional application.yml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"rms_backend/internal/database"

	"github.com/joho/godotenv"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

const cfgName = "application"

// Config is the resolved runtime configuration.
type Config struct {
	Port               string
	LogLevel           string
	LogPretty          bool
	CORSAllowedOrigins []string
	Location           *time.Location

	RestaurantName string
	PublicBaseURL  string
	UPIID          string

	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string
	GeminiTimeout time.Duration

	AMQPURL      string
	AMQPExchange string

	DBEnabled    bool
	DB           database.Config
	DBSchemaPath string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", true)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("TIMEZONE", "Local")
	v.SetDefault("RESTAURANT_NAME", "RMS Pro")
	v.SetDefault("PUBLIC_BASE_URL", "http://localhost:5173")
	v.SetDefault("UPI_ID", "restaurant@example")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com")
	v.SetDefault("GEMINI_TIMEOUT", "30s")
	v.SetDefault("AMQP_EXCHANGE", "rms.events")
	v.SetDefault("DB_ENABLED", false)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "rms_ledger")
	v.SetDefault("DB_SSLMODE", "disable")
}

// Load reads the configuration. A missing .env or application.yml is not an error.
func Load() mo.Result[*Config] {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return mo.Err[*Config](fmt.Errorf("load .env: %w", err))
	}

	v := viper.New()
	v.SetConfigName(cfgName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return mo.Err[*Config](fmt.Errorf("read %s: %w", cfgName, err))
		}
	}
	v.AutomaticEnv()
	setDefaults(v)

	return FromViper(v)
}

// FromViper resolves a Config from an already populated viper instance.
func FromViper(v *viper.Viper) mo.Result[*Config] {
	loc, err := time.LoadLocation(v.GetString("TIMEZONE"))
	if err != nil {
		return mo.Err[*Config](fmt.Errorf("invalid TIMEZONE: %w", err))
	}

	cfg := &Config{
		Port:               v.GetString("PORT"),
		LogLevel:           strings.ToLower(v.GetString("LOG_LEVEL")),
		LogPretty:          v.GetBool("LOG_PRETTY"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		Location:           loc,
		RestaurantName:     v.GetString("RESTAURANT_NAME"),
		PublicBaseURL:      v.GetString("PUBLIC_BASE_URL"),
		UPIID:              v.GetString("UPI_ID"),
		GeminiAPIKey:       v.GetString("GEMINI_API_KEY"),
		GeminiModel:        v.GetString("GEMINI_MODEL"),
		GeminiBaseURL:      v.GetString("GEMINI_BASE_URL"),
		GeminiTimeout:      v.GetDuration("GEMINI_TIMEOUT"),
		AMQPURL:            v.GetString("AMQP_URL"),
		AMQPExchange:       v.GetString("AMQP_EXCHANGE"),
		DBEnabled:          v.GetBool("DB_ENABLED"),
		DB: database.Config{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		DBSchemaPath: v.GetString("DB_SCHEMA_PATH"),
	}
	if err := cfg.Validate(); err != nil {
		return mo.Err[*Config](err)
	}
	return mo.Ok(cfg)
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return errors.New("PORT must not be empty")
	}
	if c.DBEnabled && (c.DB.Host == "" || c.DB.Name == "") {
		return errors.New("DB_HOST and DB_NAME are required when DB_ENABLED is set")
	}
	return nil
}

// SpecialsEnabled reports whether a Gemini API key is configured.
func (c *Config) SpecialsEnabled() bool {
	return strings.TrimSpace(c.GeminiAPIKey) != ""
}

// viper's GetStringSlice splits env values on whitespace, origins are comma separated
func splitList(raw string) []string {
	return lo.Compact(lo.Map(strings.Split(raw, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	}))
}
