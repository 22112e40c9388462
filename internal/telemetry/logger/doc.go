// Package logger provides structured logging for permanent-report.
//
//   - logger.go: Logger interface over log/slog, level and format selection
//   - context.go: context propagation of the logger and the run ID
//   - abbrev.go: shortening of long image/state hashes in log attributes
//
// Logs are written to stderr so stdout carries only the report.
package logger
