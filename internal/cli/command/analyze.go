package command

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/luwae/permanent/internal/core/domain"
	"github.com/luwae/permanent/internal/core/service"
	"github.com/luwae/permanent/internal/storage"
	"github.com/luwae/permanent/internal/storage/indexfile"
	"github.com/luwae/permanent/internal/telemetry/logger"
	"github.com/luwae/permanent/internal/telemetry/metric"
)

// ExitViolation is the exit code of analyze --fail-on-violation when the
// report has a non-atomic interval or a non-SFS checkpoint.
const ExitViolation = 2

// AnalyzeCommand returns the analyze command.
func AnalyzeCommand() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Aliases:   []string{"a"},
		Usage:     "Analyze the index files of a test run",
		ArgsUsage: "[DIR]",
		Description: "Reads pmem.index, nvme.index, states.index and checkpoint.index from DIR\n" +
			"(default: index_dir from the config) and reports, per checkpoint interval,\n" +
			"whether the logical operation is atomic and, per checkpoint, whether it has\n" +
			"a single final state.",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "atomic-limit",
				Usage: "Largest state count an atomic interval may reach",
			},
			&cli.BoolFlag{
				Name:    "detail",
				Aliases: []string{"d"},
				Usage:   "List the states behind each violation",
			},
			&cli.BoolFlag{
				Name:  "fail-on-violation",
				Usage: fmt.Sprintf("Exit with code %d when any verdict fails", ExitViolation),
			},
			&cli.StringFlag{
				Name:  "metrics-textfile",
				Usage: "Write Prometheus metrics to this file",
			},
			&cli.BoolFlag{
				Name:  "save",
				Usage: "Save the report to the history even if history is disabled",
			},
		},
		Action: analyzeRun,
	}
}

// analyzeOptions are the analyze flags merged over the configuration.
type analyzeOptions struct {
	Dir             string
	AtomicLimit     int
	Detail          bool
	FailOnViolation bool
	MetricsTextfile string
	Save            bool
	HistoryDir      string
}

func parseAnalyzeOptions(c *cli.Context, rt *Runtime) analyzeOptions {
	cfg := rt.Config
	opts := analyzeOptions{
		Dir:             cfg.IndexDir,
		AtomicLimit:     cfg.AtomicLimit,
		Detail:          c.Bool("detail"),
		FailOnViolation: c.Bool("fail-on-violation"),
		MetricsTextfile: cfg.Metrics.Textfile,
		Save:            cfg.History.Enabled || c.Bool("save"),
		HistoryDir:      cfg.History.Dir,
	}
	if c.Args().Present() {
		opts.Dir = c.Args().First()
	}
	if c.IsSet("atomic-limit") {
		opts.AtomicLimit = c.Int("atomic-limit")
	}
	if c.IsSet("metrics-textfile") {
		opts.MetricsTextfile = c.String("metrics-textfile")
	}
	return opts
}

func analyzeRun(c *cli.Context) error {
	rt, err := GetRuntime(c)
	if err != nil {
		return err
	}
	opts := parseAnalyzeOptions(c, rt)
	if opts.AtomicLimit < 1 {
		return fmt.Errorf("atomic limit must be at least 1, got %d", opts.AtomicLimit)
	}

	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}

	report, err := runAnalysis(logger.WithLogger(ctx, rt.Logger), opts)
	if err != nil {
		return err
	}

	if err := rt.formatter(c, opts.Detail).Format(writer(c), report); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if opts.FailOnViolation && !report.Passed() {
		return cli.Exit("", ExitViolation)
	}
	return nil
}

// runAnalysis loads the run directory, analyzes it, and saves and exports
// the report as configured. It logs through the context logger.
func runAnalysis(ctx context.Context, opts analyzeOptions) (*domain.Report, error) {
	start := time.Now()

	runID, err := storage.NewRunID(start)
	if err != nil {
		return nil, err
	}
	ctx = logger.WithRunID(ctx, runID)
	log := logger.L(ctx)

	dir, err := filepath.Abs(opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("resolve index dir: %w", err)
	}

	loaded, err := indexfile.NewLoader(dir, indexfile.WithLogger(log)).Load(ctx)
	if err != nil {
		return nil, err
	}

	svc := service.NewAnalysisService(service.AnalysisConfig{AtomicLimit: opts.AtomicLimit}, log)
	report, err := svc.Analyze(ctx, loaded.Indices)
	if err != nil {
		return nil, err
	}
	report.RunID = runID
	report.IndexDir = dir
	report.Fingerprint = loaded.Fingerprint
	elapsed := time.Since(start)

	var registry *metric.Registry
	if opts.MetricsTextfile != "" {
		registry = metric.NewRegistry()
		registry.Observe(report, elapsed)
	}

	if opts.Save {
		if err := saveReport(ctx, log, opts.HistoryDir, report, registry); err != nil {
			return nil, err
		}
	}

	if registry != nil {
		if err := registry.WriteTextfile(opts.MetricsTextfile); err != nil {
			return nil, err
		}
		log.Debug("metrics written", "path", opts.MetricsTextfile)
	}

	return report, nil
}

// saveReport stores report in the history. When registry is set, the
// history size gauge is exported with the other metrics.
func saveReport(ctx context.Context, log logger.Logger, dir string, report *domain.Report, registry *metric.Registry) error {
	engine, err := openHistory(dir, log)
	if err != nil {
		return err
	}
	defer engine.Close()

	store := storage.NewHistoryStore(engine)
	if prev, err := store.Latest(ctx, report.Fingerprint); err == nil {
		log.Info("same input analyzed before",
			"previous_run", prev.RunID,
			"previous_passed", prev.Passed())
	}
	if err := store.Save(ctx, report); err != nil {
		return err
	}

	if registry != nil {
		engine.RegisterMetrics(registry.Registerer())
	}
	if _, err := engine.Stats(ctx); err != nil {
		log.Warn("history stats unavailable", "error", err)
	}
	log.Debug("report saved", "dir", dir)
	return nil
}

// openHistory opens the badger database backing the report history.
func openHistory(dir string, log logger.Logger) (*storage.BadgerEngine, error) {
	if dir == "" {
		return nil, domain.ErrHistoryDisabled.WithDetails("history.dir is empty")
	}
	engine, err := storage.NewBadgerEngine(storage.DefaultKVConfig(dir), logger.Slog(log))
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	return engine, nil
}
