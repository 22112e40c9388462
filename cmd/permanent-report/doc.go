// Package main provides the entry point for permanent-report.
//
// permanent-report reads the index files of a crash-consistency test run on
// a hybrid pmem/nvme storage stack and reports, per logical operation,
// whether it is atomic and, per checkpoint, whether it has a single final
// state.
//
// Usage:
//
//	permanent-report analyze ./run
//	permanent-report -o json analyze --fail-on-violation ./run
//	permanent-report history list
package main
