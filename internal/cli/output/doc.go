// Package output renders analysis reports and history listings.
//
//   - formatter.go: Formatter interface and factory
//   - text.go: the plain report layout printed by default
//   - color.go: verdict coloring and terminal detection
//   - table.go: tabular rendering, wide mode for extra columns
//   - json.go, yaml.go: machine-readable output
//   - history.go: rows for the report history listing
package output
