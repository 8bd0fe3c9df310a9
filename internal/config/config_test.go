package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowfold/rowfold/internal/config"
)

func withMemFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	orig := config.AppFs
	config.AppFs = fs
	t.Cleanup(func() { config.AppFs = orig })
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	withMemFs(t)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "schema.rf", cfg.SchemaPath)
	assert.Equal(t, "pgx", cfg.Provider)
	assert.Equal(t, 20, cfg.BatchSize)
	assert.False(t, cfg.Debug)
}

func TestLoad_ProjectFile(t *testing.T) {
	fs := withMemFs(t)
	cwd, err := os.Getwd()
	require.NoError(t, err)
	yaml := []byte(`
schema:
  path: library.rf
database:
  url: postgres://localhost:5432/library
  provider: sql
  batch_size: 50
debug: true
`)
	require.NoError(t, afero.WriteFile(fs, filepath.Join(cwd, ".rowfold.yaml"), yaml, 0o644))

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "library.rf", cfg.SchemaPath)
	assert.Equal(t, "postgres://localhost:5432/library", cfg.DatabaseURL)
	assert.Equal(t, "sql", cfg.Provider)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.True(t, cfg.Debug)
}

func TestLoad_EnvironmentWins(t *testing.T) {
	fs := withMemFs(t)
	cwd, err := os.Getwd()
	require.NoError(t, err)
	yaml := []byte("database:\n  provider: sql\n")
	require.NoError(t, afero.WriteFile(fs, filepath.Join(cwd, ".rowfold.yaml"), yaml, 0o644))

	t.Setenv("ROWFOLD_DATABASE_PROVIDER", "pgx")
	t.Setenv("ROWFOLD_DATABASE_URL", "postgres://db:5432/env")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "pgx", cfg.Provider)
	assert.Equal(t, "postgres://db:5432/env", cfg.DatabaseURL)
}

func TestLoad_DatabaseURLFallback(t *testing.T) {
	withMemFs(t)
	t.Setenv("DATABASE_URL", "postgres://db:5432/plain")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://db:5432/plain", cfg.DatabaseURL)
}

func TestSaveRoundTrip(t *testing.T) {
	fs := withMemFs(t)
	cwd, err := os.Getwd()
	require.NoError(t, err)

	want := &config.Config{
		SchemaPath:  "models/library.rf",
		DatabaseURL: "postgres://localhost:5432/library",
		Provider:    "pgx",
		BatchSize:   30,
		Debug:       true,
	}
	path := filepath.Join(cwd, ".rowfold.yaml")
	require.NoError(t, config.Save(want, path))

	exists, err := afero.Exists(fs, path)
	require.NoError(t, err)
	require.True(t, exists)

	got, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
