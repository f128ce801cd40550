package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "DB_TYPE", "DB_DATABASE", "DB_USER", "AUTH_MODE", "JWT_SECRET", "AUTHZ_URL", "AUTHZ_CLIENT_ID", "ENV_FILE", "SEED_DATA"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBType)
	assert.Equal(t, "jwt", cfg.AuthMode)
	assert.True(t, cfg.SeedData)
	assert.True(t, cfg.IsSQLite())
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadRequiresDBUserForServerDatabases(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_TYPE", "Postgres")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_USER")
}

func TestLoadAuthorizerMode(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("AUTH_MODE", "authorizer")
	t.Setenv("AUTHZ_URL", "http://localhost:8080")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTHZ_CLIENT_ID")

	t.Setenv("AUTHZ_CLIENT_ID", "client")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "authorizer", cfg.AuthMode)
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("JWT_SECRET=fromfile\nPORT=4000\n"), 0o600))
	t.Setenv("ENV_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "fromfile", cfg.JWTSecret)
	assert.Equal(t, "4000", cfg.Port)
}
