package config_test

import (
	"log/slog"
	"testing"

	"github.com/flash-erp/erp-backend-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_SQLite(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/payroll.db")
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("ALLOWED_ORIGINS", "https://erp.example.com, http://localhost:5173,")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/tmp/payroll.db", cfg.Database.SQLitePath)
	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, []string{"https://erp.example.com", "http://localhost:5173"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "12h", cfg.JWT.AccessExpiration)
}

func TestLoad_PostgresRequiresPassword(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_PASSWORD", "")
	t.Setenv("JWT_SECRET_KEY", "secret")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PASSWORD")
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("APP_PORT", "eighty")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APP_PORT")
}

func TestValidate(t *testing.T) {
	cfg := config.Config{
		Database: config.DatabaseConfig{Driver: "mysql"},
		JWT:      config.JWTConfig{Secret: "x"},
	}
	assert.ErrorContains(t, cfg.Validate(), "DB_DRIVER")

	cfg.Database.Driver = config.DriverPostgres
	cfg.Database.Password = "pw"
	cfg.JWT.Secret = ""
	assert.ErrorContains(t, cfg.Validate(), "JWT_SECRET_KEY")
}

func TestDatabaseURL(t *testing.T) {
	cfg := config.Config{Database: config.DatabaseConfig{
		User: "erp", Password: "pw", Host: "db", Port: 5433, Name: "payroll", SSLMode: "require",
	}}
	assert.Equal(t, "postgres://erp:pw@db:5433/payroll?sslmode=require", cfg.DatabaseURL())
}
