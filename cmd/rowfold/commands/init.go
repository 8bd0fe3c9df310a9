package commands

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/rowfold/rowfold/internal/config"
	"github.com/rowfold/rowfold/internal/ui"
)

const starterSchema = `// Rowfold schema. One block per table; every table gets a serial id
// primary key unless a field declares serial or bigserial itself.

table author {
    name varchar(64) unique
}

table book {
    name varchar(100)
    synopsis text null
    pages integer default 0
    price decimal(10,2) null
    published date null
    author fk(author) null
}
`

func newInitCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a rowfold project",
		Long:  "Write a starter schema and a .rowfold.yaml configuration file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(yes)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "accept defaults without prompting")

	return cmd
}

func runInit(yes bool) error {
	ui.PrintHeader("rowfold init", "tables in, SQL out")

	cfg := &config.Config{
		SchemaPath: "schema.rf",
		Provider:   "pgx",
		BatchSize:  20,
	}

	if !yes {
		questions := []*survey.Question{
			{
				Name:     "schemapath",
				Prompt:   &survey.Input{Message: "Schema file:", Default: cfg.SchemaPath},
				Validate: survey.Required,
			},
			{
				Name: "provider",
				Prompt: &survey.Select{
					Message: "Driver:",
					Options: []string{"pgx", "sql"},
					Default: cfg.Provider,
				},
			},
			{
				Name:   "databaseurl",
				Prompt: &survey.Input{Message: "Database URL (blank to read DATABASE_URL at run time):"},
			},
		}
		answers := struct {
			SchemaPath  string `survey:"schemapath"`
			Provider    string `survey:"provider"`
			DatabaseURL string `survey:"databaseurl"`
		}{}
		if err := survey.Ask(questions, &answers); err != nil {
			return err
		}
		cfg.SchemaPath = answers.SchemaPath
		cfg.Provider = answers.Provider
		cfg.DatabaseURL = answers.DatabaseURL
	}

	if err := config.Save(cfg, config.DefaultFile); err != nil {
		return fmt.Errorf("write %s: %w", config.DefaultFile, err)
	}
	ui.PrintSuccess("wrote %s", config.DefaultFile)

	if ok, _ := afero.Exists(config.AppFs, cfg.SchemaPath); ok {
		ui.PrintWarning("%s already exists, keeping it", cfg.SchemaPath)
	} else {
		if err := afero.WriteFile(config.AppFs, cfg.SchemaPath, []byte(starterSchema), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", cfg.SchemaPath, err)
		}
		ui.PrintSuccess("wrote %s", cfg.SchemaPath)
	}

	fmt.Println()
	ui.PrintInfo("next steps")
	ui.PrintList([]string{
		"edit " + cfg.SchemaPath,
		"rowfold validate",
		"rowfold ddl --apply",
	})
	return nil
}
