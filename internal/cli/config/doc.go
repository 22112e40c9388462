// Package config defines the permanent-report configuration.
//
//   - spec.go: CLIConfig struct (~/.permanent/report.yaml)
//   - loader.go: layered loading (defaults, file, env, flags) and saving
package config
