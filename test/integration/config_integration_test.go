//go:build integration

package integration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotes-api/internal/platform/config"
)

// writeConfigs lays out a configs/ directory in a temp working directory so
// config.Load resolves its relative paths against it.
func writeConfigs(t *testing.T, base, profile string) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "configs"), 0o755))

	if base != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", "base.yaml"), []byte(base), 0o600))
	}

	if profile != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", "qa.yaml"), []byte(profile), 0o600))
	}

	t.Chdir(dir)
}

func TestConfigLoad_FileLayering(t *testing.T) {
	writeConfigs(t, `
server:
  port: 9000
database:
  host: db.internal
  user: quotes
  password: base-secret
`, `
app:
  environment: qa
database:
  password: qa-secret
`)

	cfg, err := config.Load("qa")
	require.NoError(t, err)

	// Profile overrides base, base overrides defaults.
	assert.Equal(t, "qa", cfg.App.Environment)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "qa-secret", cfg.Database.Password)

	// Untouched values keep their defaults.
	assert.Equal(t, "quotes", cfg.Database.User)
	assert.Equal(t, "quotes-api", cfg.App.Name)
	assert.Equal(t, 10*time.Second, cfg.Webhook.Timeout)
}

func TestConfigLoad_EnvOverridesFiles(t *testing.T) {
	writeConfigs(t, `
database:
  host: db.internal
`, "")

	t.Setenv("APP_DATABASE_HOST", "db.override")
	t.Setenv("APP_SERVER_PORT", "9999")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "db.override", cfg.Database.Host)
	assert.Equal(t, 9999, cfg.Server.Port)
}

func TestConfigLoad_MissingFilesFallBackToDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load("local")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "quotes", cfg.Database.Name)
	assert.True(t, cfg.Database.Migrate)
	assert.False(t, cfg.Auth.Enabled)
}

func TestConfigLoad_ValidationRejectsPartialAuth(t *testing.T) {
	writeConfigs(t, `
auth:
  enabled: true
`, "")

	cfg, err := config.Load("")
	require.NoError(t, err)

	// Enabled auth without a token must fail validation, not limp along.
	require.Error(t, cfg.Validate())
}
