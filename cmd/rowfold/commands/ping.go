package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/rowfold/rowfold/client"
	"github.com/rowfold/rowfold/db"
	"github.com/rowfold/rowfold/internal/config"
	"github.com/rowfold/rowfold/internal/ui"
)

func newPingCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Connect to the database and report the server version",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return runPing(cfg)
		},
	}
	return cmd
}

func runPing(cfg *config.Config) error {
	cl, err := newClient(cfg, client.WithQueryTimeout(10*time.Second))
	if err != nil {
		return err
	}

	spinner := ui.Spinner("connecting")
	if err := cl.Connect(context.Background()); err != nil {
		spinner.Fail("connect failed")
		return err
	}
	defer cl.Close()
	spinner.Success("server reachable")

	ui.PrintInfo("%s", cl.ServerVersion())
	ui.PrintSuccess("version accepted (minimum %s)", db.MinServerVersion)
	return nil
}
