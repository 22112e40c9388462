// Package indexfile loads the index files written by a crash-consistency
// test run.
//
// A run directory holds up to four JSON files:
//
//   - pmem.index: trace ID -> array of pmem image hashes
//   - nvme.index: trace ID -> array of nvme image hashes
//   - states.index: semantic state hash -> array of hybrid (or tier) hashes
//   - checkpoint.index: object whose values are checkpoint trace IDs
//
// At least one of pmem.index and nvme.index must exist; which ones do decides
// the capture mode. Trace IDs are normalized to decimal form, and checkpoint
// values may be JSON numbers or numeric strings.
package indexfile
