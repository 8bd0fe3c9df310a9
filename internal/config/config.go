// Package config resolves CLI configuration from config files, dotenv
// files and the environment.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// AppFs is the filesystem the package reads and writes through. Tests
// swap in a memory filesystem.
var AppFs = afero.NewOsFs()

// DefaultFile is the project-local config file name.
const DefaultFile = ".rowfold.yaml"

// Config is the resolved CLI configuration.
type Config struct {
	SchemaPath  string
	DatabaseURL string
	Provider    string
	BatchSize   int
	Debug       bool
}

// Load resolves configuration in precedence order: environment variables
// (prefix ROWFOLD, dots become underscores), then the first .rowfold.yaml
// found in the working directory, the home directory or ~/.config/rowfold,
// then defaults. A .env file fills the plain environment first, with
// .env.local overriding it; DATABASE_URL is the fallback for an unset
// database.url.
func Load() (*Config, error) {
	loadDotenv()

	v := viper.New()
	v.SetFs(AppFs)
	v.SetConfigName(".rowfold")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
		v.AddConfigPath(filepath.Join(home, ".config", "rowfold"))
	}

	v.SetEnvPrefix("ROWFOLD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("schema.path", "schema.rf")
	v.SetDefault("database.provider", "pgx")
	v.SetDefault("database.batch_size", 20)
	v.SetDefault("debug", false)

	// A missing config file is fine; the defaults and environment carry.
	_ = v.ReadInConfig()

	cfg := &Config{
		SchemaPath:  v.GetString("schema.path"),
		DatabaseURL: v.GetString("database.url"),
		Provider:    v.GetString("database.provider"),
		BatchSize:   v.GetInt("database.batch_size"),
		Debug:       v.GetBool("debug"),
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	return cfg, nil
}

// Save writes the configuration to path as YAML.
func Save(cfg *Config, path string) error {
	v := viper.New()
	v.SetFs(AppFs)
	v.SetConfigType("yaml")
	v.Set("schema.path", cfg.SchemaPath)
	v.Set("database.url", cfg.DatabaseURL)
	v.Set("database.provider", cfg.Provider)
	v.Set("database.batch_size", cfg.BatchSize)
	v.Set("debug", cfg.Debug)
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := AppFs.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return v.WriteConfigAs(path)
}

func loadDotenv() {
	if _, err := AppFs.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}
	if _, err := AppFs.Stat(".env.local"); err == nil {
		_ = godotenv.Overload(".env.local")
	}
}
