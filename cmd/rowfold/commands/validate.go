package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rowfold/rowfold/internal/config"
	"github.com/rowfold/rowfold/internal/ui"
)

func newValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [schema]",
		Short: "Parse and check a schema file",
		Long:  "Parse the schema, bind every declaration and report what it defines.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return runValidate(schemaSource(args, cfg))
		},
	}
	return cmd
}

func runValidate(path string) error {
	reg, err := parseSchema(path)
	if err != nil {
		ui.PrintError("%v", err)
		return fmt.Errorf("%s is not valid", path)
	}

	ui.PrintSuccess("%s is valid", path)
	fmt.Println()

	rows := make([][]string, 0, len(reg.Tables()))
	for _, t := range reg.Tables() {
		rows = append(rows, []string{
			t.Name(),
			strconv.Itoa(len(t.Fields())),
			t.PrimaryKey().Column(),
			strconv.Itoa(len(t.Relations())),
		})
	}
	ui.PrintTable([]string{"table", "columns", "primary key", "relations"}, rows)

	fingerprint, err := reg.Fingerprint()
	if err != nil {
		return err
	}
	fmt.Println()
	ui.PrintInfo("fingerprint %s", fingerprint)
	return nil
}
