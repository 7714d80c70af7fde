package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TIMEZONE", "UTC")

	res := Load()
	require.True(t, res.IsOk(), "%v", res.Error())
	cfg := res.MustGet()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "RMS Pro", cfg.RestaurantName)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Equal(t, 30*time.Second, cfg.GeminiTimeout)
	assert.Equal(t, "rms.events", cfg.AMQPExchange)
	assert.False(t, cfg.DBEnabled)
	assert.Equal(t, time.UTC, cfg.Location)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,,")
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("GEMINI_TIMEOUT", "5s")
	t.Setenv("DB_ENABLED", "true")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("TIMEZONE", "Asia/Kolkata")

	cfg := Load().MustGet()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.SpecialsEnabled())
	assert.Equal(t, 5*time.Second, cfg.GeminiTimeout)
	assert.True(t, cfg.DBEnabled)
	assert.Equal(t, "host=db port=5432 user=postgres password=pw dbname=rms_ledger sslmode=disable", cfg.DB.DSN())
	assert.Equal(t, "Asia/Kolkata", cfg.Location.String())
}

func TestFromViperRejectsInvalidSettings(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("TIMEZONE", "Mars/Olympus")
	assert.True(t, FromViper(v).IsError())

	v = viper.New()
	setDefaults(v)
	v.Set("TIMEZONE", "UTC")
	v.Set("DB_ENABLED", true)
	v.Set("DB_HOST", "")
	assert.True(t, FromViper(v).IsError())
}
