package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/luwae/permanent/internal/infra/buildinfo"
)

// VersionCommand returns the version command.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:   "version",
		Usage:  "Show build information",
		Action: versionRun,
	}
}

func versionRun(c *cli.Context) error {
	rt, err := GetRuntime(c)
	if err != nil {
		return err
	}
	if rt.Config.Output == "text" {
		fmt.Fprintf(writer(c), "permanent-report %s\n", buildinfo.String())
		return nil
	}
	return rt.formatter(c, false).Format(writer(c), buildinfo.Get())
}
