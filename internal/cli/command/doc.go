// Package command defines the permanent-report CLI using urfave/cli/v2.
//
//   - root.go: App, global flags, config and logger setup
//   - analyze.go: analyze a run directory (default command)
//   - history.go: browse and prune stored reports
//   - config.go: show, locate and initialize the config file
//   - version.go: build information
package command
