// internal/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "greeniecart", cfg.Database.Database)
	assert.True(t, cfg.Database.SeedDemoData)
}

func TestSeedDemoDataToggle(t *testing.T) {
	t.Setenv("DB_SEED_DEMO", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.Database.SeedDemoData)

	t.Setenv("DB_SEED_DEMO", "TRUE")
	cfg, err = Load()
	require.NoError(t, err)
	assert.True(t, cfg.Database.SeedDemoData)
}

func TestProductionRequiresSecrets(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	_, err := Load()
	assert.Error(t, err)
}
