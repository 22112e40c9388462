// Package domain defines the core data model for crash-state analysis.
//
// Domain types are pure values without IO dependencies. This package contains:
//
//   - TraceID: ordinal crash snapshot points along workload execution
//   - TierIndex, StatesIndex, CheckpointIndex: the loaded index files
//   - HybridHash: composite "<pmem>_<nvme>" state keys
//   - TraceSet: set algebra over trace IDs
//   - Report: the analysis result (summary, interval and checkpoint verdicts)
//   - Errors: domain-specific error definitions
package domain
