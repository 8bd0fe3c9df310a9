package commands

import (
	"errors"

	"github.com/rowfold/rowfold/client"
	"github.com/rowfold/rowfold/internal/config"
	"github.com/rowfold/rowfold/schema"
	"github.com/rowfold/rowfold/schema/parser"
)

// schemaSource resolves the schema path: a positional argument wins over the
// configured path.
func schemaSource(args []string, cfg *config.Config) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.SchemaPath
}

func parseSchema(path string) (*schema.Registry, error) {
	f, err := config.AppFs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parser.Parse(path, f)
}

func newClient(cfg *config.Config, extra ...client.Option) (*client.Client, error) {
	if cfg.DatabaseURL == "" {
		return nil, errors.New("no database URL configured, set database.url in .rowfold.yaml or DATABASE_URL")
	}
	opts := []client.Option{
		client.WithDSN(cfg.DatabaseURL),
		client.WithProvider(client.Provider(cfg.Provider)),
		client.WithBatchSize(cfg.BatchSize),
		client.WithDebug(cfg.Debug),
	}
	return client.New(append(opts, extra...)...), nil
}
