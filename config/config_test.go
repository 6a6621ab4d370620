package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "product-catalog", cfg.AppName)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "catalog", cfg.DBName)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Equal(t, "products", cfg.ESProductsIndex)
	assert.Equal(t, "catalog.events", cfg.RabbitMQEventQueue)
	assert.False(t, cfg.MailSendEnabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_TTL", "30m")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("MAIL_SEND_ENABLED", "true")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 30*time.Minute, cfg.JWTTTL)
	assert.Equal(t, int32(25), cfg.DBMaxConns)
	assert.True(t, cfg.MailSendEnabled)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_TTL", "soon")
	t.Setenv("DB_MAX_CONNS", "many")
	t.Setenv("MAIL_SEND_ENABLED", "yep")

	cfg := Load()

	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Equal(t, int32(10), cfg.DBMaxConns)
	assert.False(t, cfg.MailSendEnabled)
}

func TestValidate(t *testing.T) {
	cfg := &Config{JWTSecret: "s3cret", JWTTTL: time.Hour}
	require.NoError(t, cfg.Validate())

	cfg = &Config{JWTTTL: time.Hour}
	assert.EqualError(t, cfg.Validate(), "JWT_SECRET is required")

	cfg = &Config{JWTSecret: "s3cret"}
	assert.EqualError(t, cfg.Validate(), "JWT_TTL must be positive")
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{
		DBUser:     "app",
		DBPassword: "pw",
		DBHost:     "db.internal",
		DBPort:     "5433",
		DBName:     "catalog",
		DBSSLMode:  "require",
	}
	assert.Equal(t, "postgres://app:pw@db.internal:5433/catalog?sslmode=require", cfg.PostgresDSN())
}

func TestSplitCSV(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: "https://a.example, https://b.example ,"}
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins())

	cfg = &Config{ElasticsearchAddrs: ""}
	assert.Empty(t, cfg.ESAddrs())
}
