package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_LayersBaseEnvFileAndVars(t *testing.T) {
	t.Setenv("STOREAPI_REDIS__PASSWORD", "hunter2")
	t.Setenv("STOREAPI_CHECKOUT__TIMEOUT", "3s")

	cfg, err := Load(".", "dev")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.App.HTTPAddr)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, 200*time.Millisecond, cfg.Checkout.PaymentDelay)
	assert.Equal(t, 3*time.Second, cfg.Checkout.Timeout)
	assert.Equal(t, "hunter2", cfg.Redis.Password)
	assert.Equal(t, 15.0, cfg.Pricing.Shipping)
	assert.Equal(t, "reject", cfg.Store.QuantityPolicy)
	assert.Equal(t, time.Hour, cfg.Security.TTL)
}

func TestLoad_MissingEnvFileIsFine(t *testing.T) {
	cfg, err := Load(".", "staging")
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Storage.Driver)
}

func TestLoad_MissingBase(t *testing.T) {
	_, err := Load(t.TempDir(), "dev")
	assert.Error(t, err)
}

func TestLoad_InvalidDriver(t *testing.T) {
	dir := t.TempDir()
	base, err := os.ReadFile("base.yaml")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "base.yaml"), base, 0o644))

	t.Setenv("STOREAPI_STORAGE__DRIVER", "mongo")
	_, err = Load(dir, "dev")
	assert.ErrorContains(t, err, "storage.driver")
}

func TestValidate(t *testing.T) {
	var cfg Config
	cfg.App.HTTPAddr = ":8080"
	cfg.Security.JWTSecret = "x"
	assert.NoError(t, cfg.Validate())

	cfg.Events.Driver = "kafka"
	assert.Error(t, cfg.Validate())

	cfg.Events.Driver = "none"
	cfg.Store.QuantityPolicy = "clamp"
	assert.Error(t, cfg.Validate())
}
