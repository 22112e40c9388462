package command

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/luwae/permanent/internal/cli/config"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration management",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective configuration (defaults, file, env and flags merged)",
				Action: configShow,
			},
			{
				Name:   "path",
				Usage:  "Print the config file path",
				Action: configPath,
			},
			{
				Name:  "init",
				Usage: "Write a config file with default settings",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "force",
						Aliases: []string{"f"},
						Usage:   "Overwrite an existing file",
					},
				},
				Action: configInit,
			},
		},
	}
}

func configShow(c *cli.Context) error {
	rt, err := GetRuntime(c)
	if err != nil {
		return err
	}

	// YAML is the file format, so it is also the text rendering.
	if rt.Config.Output == "text" {
		data, err := config.Marshal(rt.Config)
		if err != nil {
			return err
		}
		_, err = writer(c).Write(data)
		return err
	}
	if rt.Config.Output == "table" {
		return rt.formatter(c, false).Format(writer(c), rt.Config.Flatten())
	}
	return rt.formatter(c, false).Format(writer(c), rt.Config)
}

func configFile(c *cli.Context) string {
	if path := ParseGlobalFlags(c).ConfigFile; path != "" {
		return path
	}
	return config.DefaultConfigPath()
}

func configPath(c *cli.Context) error {
	fmt.Fprintln(writer(c), configFile(c))
	return nil
}

func configInit(c *cli.Context) error {
	path := configFile(c)

	if _, err := os.Stat(path); err == nil && !c.Bool("force") {
		return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("check config file: %w", err)
	}

	if err := config.Save(config.Default(), path); err != nil {
		return err
	}
	fmt.Fprintf(writer(c), "Wrote default configuration to %s\n", path)
	return nil
}
