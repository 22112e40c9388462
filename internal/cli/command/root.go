package command

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/luwae/permanent/internal/cli/config"
	"github.com/luwae/permanent/internal/cli/output"
	"github.com/luwae/permanent/internal/core/domain"
	"github.com/luwae/permanent/internal/infra/buildinfo"
	"github.com/luwae/permanent/internal/telemetry/logger"
)

const runtimeKey = "runtime"

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:                 "permanent-report",
		Usage:                "Atomicity and single-final-state report for crash-consistency test runs",
		Version:              buildinfo.String(),
		Flags:                globalFlags(),
		EnableBashCompletion: true,
		DefaultCommand:       "analyze",
		Commands: []*cli.Command{
			AnalyzeCommand(),
			HistoryCommand(),
			ConfigCommand(),
			VersionCommand(),
		},
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Config file (default ~/.permanent/report.yaml)",
			EnvVars: []string{config.EnvPrefix + "CONFIG"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: text, table, json, yaml",
		},
		&cli.StringFlag{
			Name:  "color",
			Usage: "Color verdicts: auto, always, never",
		},
		&cli.BoolFlag{
			Name:    "wide",
			Aliases: []string{"w"},
			Usage:   "Show wide output (more columns)",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "Log format: text, json",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Enable debug logging (same as --log-level debug)",
		},
	}
}

// GlobalFlags holds the parsed global flags.
type GlobalFlags struct {
	ConfigFile string
	Output     string
	Color      string
	Wide       bool
	LogLevel   string
	LogFormat  string
	Verbose    bool
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	return &GlobalFlags{
		ConfigFile: c.String("config"),
		Output:     c.String("output"),
		Color:      c.String("color"),
		Wide:       c.Bool("wide"),
		LogLevel:   c.String("log-level"),
		LogFormat:  c.String("log-format"),
		Verbose:    c.Bool("verbose"),
	}
}

// overrides turns explicitly set global flags into config keys.
func (f *GlobalFlags) overrides() map[string]any {
	m := make(map[string]any)
	if f.Output != "" {
		m["output"] = f.Output
	}
	if f.Color != "" {
		m["color"] = f.Color
	}
	if f.LogLevel != "" {
		m["log.level"] = f.LogLevel
	}
	if f.Verbose {
		m["log.level"] = "debug"
	}
	if f.LogFormat != "" {
		m["log.format"] = f.LogFormat
	}
	return m
}

// Runtime is the state shared by all commands of one invocation.
type Runtime struct {
	Config *config.CLIConfig
	Logger logger.Logger
	Flags  *GlobalFlags
}

// setupRuntime loads the configuration, builds the logger and stores both
// in the app metadata. Commands that do not need either, such as config
// init, never call it, so a missing --config file does not stop them.
func setupRuntime(c *cli.Context) (*Runtime, error) {
	flags := ParseGlobalFlags(c)

	cfg, err := config.Load(flags.ConfigFile, flags.overrides())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: errWriter(c),
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(log)

	rt := &Runtime{Config: cfg, Logger: log, Flags: flags}
	if c.App.Metadata == nil {
		c.App.Metadata = make(map[string]any)
	}
	c.App.Metadata[runtimeKey] = rt
	return rt, nil
}

// GetRuntime returns the runtime of this invocation, setting it up on
// first use.
func GetRuntime(c *cli.Context) (*Runtime, error) {
	if rt, ok := c.App.Metadata[runtimeKey].(*Runtime); ok {
		return rt, nil
	}
	return setupRuntime(c)
}

// formatter builds the output formatter for the configured format.
func (rt *Runtime) formatter(c *cli.Context, detail bool) output.Formatter {
	format, err := output.ParseFormat(rt.Config.Output)
	if err != nil {
		format = output.FormatText
	}
	return output.NewFormatter(format, output.Options{
		Wide:   rt.Flags.Wide,
		Color:  output.ColorEnabled(rt.Config.Color, terminal(writer(c))),
		Detail: detail,
	})
}

func writer(c *cli.Context) io.Writer {
	if c.App.Writer != nil {
		return c.App.Writer
	}
	return os.Stdout
}

func errWriter(c *cli.Context) io.Writer {
	if c.App.ErrWriter != nil {
		return c.App.ErrWriter
	}
	return os.Stderr
}

// terminal returns w as a file when it may be a terminal.
func terminal(w io.Writer) *os.File {
	f, _ := w.(*os.File)
	return f
}

// PrintError writes err to w, followed by a hint for errors the user can
// fix from the command line.
func PrintError(w io.Writer, err error) {
	fmt.Fprintf(w, "error: %v\n", err)
	switch domain.GetErrorCode(err) {
	case domain.ErrIndexNotFound.Code:
		fmt.Fprintln(w, "hint: run 'permanent-report analyze DIR' or set index_dir")
	case domain.ErrHistoryDisabled.Code:
		fmt.Fprintln(w, "hint: set history.enabled in the config or run analyze with --save")
	}
}
