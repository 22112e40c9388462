package command

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/luwae/permanent/internal/cli/output"
	"github.com/luwae/permanent/internal/core/domain"
	"github.com/luwae/permanent/internal/storage"
)

// HistoryCommand returns the history subcommand group.
func HistoryCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Browse reports saved by earlier runs",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List saved reports, newest first",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of reports (0 = all)",
						Value:   20,
					},
				},
				Action: historyList,
			},
			{
				Name:      "show",
				Usage:     "Show a saved report",
				ArgsUsage: "RUN_ID|latest",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "detail",
						Aliases: []string{"d"},
						Usage:   "List the states behind each violation",
					},
				},
				Action: historyShow,
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete a saved report",
				ArgsUsage: "RUN_ID",
				Action:    historyDelete,
			},
			{
				Name:   "gc",
				Usage:  "Reclaim space in the history database",
				Action: historyGC,
			},
		},
	}
}

// withHistory opens the configured history for the duration of fn. Reading
// commands require the database to exist already.
func withHistory(c *cli.Context, fn func(*storage.HistoryStore, *storage.BadgerEngine) error) error {
	rt, err := GetRuntime(c)
	if err != nil {
		return err
	}

	dir := rt.Config.History.Dir
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return domain.ErrHistoryDisabled.WithDetailsf("no history at %s; set history.enabled or use analyze --save", dir)
	}

	engine, err := openHistory(dir, rt.Logger)
	if err != nil {
		return err
	}
	defer engine.Close()

	return fn(storage.NewHistoryStore(engine), engine)
}

func historyList(c *cli.Context) error {
	return withHistory(c, func(store *storage.HistoryStore, _ *storage.BadgerEngine) error {
		reports, err := store.List(c.Context, c.Int("limit"))
		if err != nil {
			return err
		}
		rt, _ := GetRuntime(c)
		return rt.formatter(c, false).Format(writer(c), output.HistoryEntries(reports))
	})
}

func historyShow(c *cli.Context) error {
	runID := c.Args().First()
	if runID == "" {
		return fmt.Errorf("run ID required")
	}

	return withHistory(c, func(store *storage.HistoryStore, _ *storage.BadgerEngine) error {
		var (
			report *domain.Report
			err    error
		)
		if runID == "latest" {
			var reports []*domain.Report
			reports, err = store.List(c.Context, 1)
			if err == nil && len(reports) == 0 {
				err = domain.ErrReportNotFound.WithDetails("history is empty")
			}
			if err == nil {
				report = reports[0]
			}
		} else {
			report, err = store.Get(c.Context, runID)
		}
		if err != nil {
			return err
		}

		rt, _ := GetRuntime(c)
		return rt.formatter(c, c.Bool("detail")).Format(writer(c), report)
	})
}

func historyDelete(c *cli.Context) error {
	runID := c.Args().First()
	if runID == "" {
		return fmt.Errorf("run ID required")
	}

	return withHistory(c, func(store *storage.HistoryStore, _ *storage.BadgerEngine) error {
		if err := store.Delete(c.Context, runID); err != nil {
			return err
		}
		fmt.Fprintf(writer(c), "Deleted report %s\n", runID)
		return nil
	})
}

func historyGC(c *cli.Context) error {
	return withHistory(c, func(_ *storage.HistoryStore, engine *storage.BadgerEngine) error {
		cycles, err := engine.GC(c.Context)
		if err != nil {
			return err
		}
		stats, err := engine.Stats(c.Context)
		if err != nil {
			return err
		}
		fmt.Fprintf(writer(c), "GC cycles: %d, history size: %d bytes\n", cycles, stats.TotalSize)
		return nil
	})
}
