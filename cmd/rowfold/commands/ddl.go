package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rowfold/rowfold/internal/config"
	"github.com/rowfold/rowfold/internal/ui"
	"github.com/rowfold/rowfold/internal/watch"
	"github.com/rowfold/rowfold/schema"
)

func newDDLCommand() *cobra.Command {
	var (
		apply           bool
		watchFlag       bool
		fingerprintOnly bool
	)

	cmd := &cobra.Command{
		Use:   "ddl [schema]",
		Short: "Print or apply the schema's DDL",
		Long: "Compile the schema to its CREATE EXTENSION and CREATE TABLE statements.\n" +
			"By default the statements are printed; --apply executes them against the\n" +
			"configured database and records the run in " + schema.HistoryTable + ".",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			path := schemaSource(args, cfg)
			switch {
			case apply:
				return runDDLApply(cfg, path)
			case watchFlag:
				return runDDLWatch(path)
			default:
				return runDDLPrint(path, fingerprintOnly)
			}
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "execute the statements against the configured database")
	cmd.Flags().BoolVar(&watchFlag, "watch", false, "re-render whenever the schema file changes")
	cmd.Flags().BoolVar(&fingerprintOnly, "fingerprint", false, "print only the schema fingerprint")

	return cmd
}

func runDDLPrint(path string, fingerprintOnly bool) error {
	reg, err := parseSchema(path)
	if err != nil {
		return err
	}
	statements, err := reg.Statements()
	if err != nil {
		return err
	}
	if fingerprintOnly {
		fmt.Println(schema.Fingerprint(statements))
		return nil
	}

	requirements := reg.Requirements()
	if len(requirements) > 0 {
		ui.PrintSection("Requirements")
		ui.PrintCodeBlock(strings.Join(requirements, "\n"), "sql")
	}
	ui.PrintSection("Tables")
	ui.PrintCodeBlock(strings.Join(statements[len(requirements):], "\n"), "sql")

	ui.Muted.Print("fingerprint ")
	ui.Accent.Println(schema.Fingerprint(statements))
	return nil
}

func runDDLWatch(path string) error {
	render := func() error {
		ui.Muted.Printf("[%s] %s\n", time.Now().Format("15:04:05"), path)
		// A broken intermediate save must not end the watch.
		if err := runDDLPrint(path, false); err != nil {
			ui.PrintError("%v", err)
		}
		return nil
	}

	w, err := watch.NewWatcher(path, render)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	ui.PrintInfo("watching %s, ctrl-c to stop", path)
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	return nil
}

func runDDLApply(cfg *config.Config, path string) error {
	reg, err := parseSchema(path)
	if err != nil {
		return err
	}
	statements, err := reg.Statements()
	if err != nil {
		return err
	}
	checksum := schema.Fingerprint(statements)
	name := "ddl@" + checksum

	cl, err := newClient(cfg)
	if err != nil {
		return err
	}
	ctx := context.Background()

	spinner := ui.Spinner("connecting")
	if err := cl.Connect(ctx); err != nil {
		spinner.Fail("connect failed")
		return err
	}
	defer cl.Close()
	spinner.Success(cl.ServerVersion())

	conn, err := cl.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	history := schema.NewHistory(conn)
	if err := history.Ensure(ctx); err != nil {
		return fmt.Errorf("history: %w", err)
	}
	pending, err := history.Pending(ctx, []string{name})
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}
	if len(pending) == 0 {
		ui.PrintInfo("schema %s already applied, nothing to do", checksum)
		return nil
	}

	start := time.Now()
	if err := cl.Apply(ctx, statements); err != nil {
		return err
	}
	took := time.Since(start)
	if err := history.Record(ctx, name, checksum, took); err != nil {
		return fmt.Errorf("history: %w", err)
	}
	ui.PrintSuccess("applied %d statements in %s", len(statements), took.Round(time.Millisecond))
	return nil
}
