// Package service provides the crash-state analysis pipeline.
//
// Stages, leaf-first:
//
//   - hashtime.go: invert a tier index into hash -> trace IDs
//   - correlate.go: resolve a hybrid hash to the trace IDs where both parts were seen
//   - statetime.go: union resolved trace IDs per semantic state
//   - checkpoint.go: map a trace ID to its preceding checkpoint interval
//   - atomicity.go: count reachable states per interval
//   - sfs.go: count reachable states exactly at each checkpoint
//   - analyzer.go: AnalysisService gluing the stages into a Report
//
// Correlation across tiers is by trace ID only. Tier hashes observed at the
// same trace point are assumed to combine, which is an approximation of the
// states that actually occurred together.
//
// Everything here is pure, single-threaded computation over loaded indices.
package service
