package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngandu/barresto-api/pkg/config"
)

func TestLoad_ValeursParDefaut(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, "barresto", cfg.DB.DBName)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, int64(20000), cfg.Loyalty.Divisor)
	assert.Empty(t, cfg.Redis.Addr, "cache désactivé par défaut")
}

func TestLoad_EnvVarsPrioritaires(t *testing.T) {
	t.Setenv("DB_HOST", "db.example.com")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("LOYALTY_DIVISOR_CDF", "10000")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "db.example.com", cfg.DB.Host)
	assert.Equal(t, 5433, cfg.DB.Port)
	assert.Equal(t, int64(10000), cfg.Loyalty.Divisor)
}

func TestDSN_EncodeLeMotDePasse(t *testing.T) {
	db := config.DBConfig{
		Host: "localhost", Port: 5432, User: "postgres",
		Password: "p@ss/w#rd", DBName: "barresto", SSLMode: "disable",
	}
	dsn := db.DSN()
	assert.Contains(t, dsn, "p%40ss%2Fw%23rd")
	assert.Contains(t, dsn, "sslmode=disable")
}

func TestConnectionString_DatabaseURLPrioritaire(t *testing.T) {
	db := config.DBConfig{
		DatabaseURL: "postgresql://u:p@remote:5432/x?sslmode=require",
		Host:        "localhost",
	}
	assert.Equal(t, db.DatabaseURL, db.ConnectionString())
}

func TestAddr(t *testing.T) {
	h := config.HTTPConfig{Host: "0.0.0.0", Port: 8080}
	assert.Equal(t, "0.0.0.0:8080", h.Addr())
}
