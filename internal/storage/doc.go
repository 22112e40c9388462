// Package storage provides local persistence for analysis reports.
//
//   - kv.go: KVEngine interface and configuration
//   - badger.go: Badger v3 implementation
//   - history.go: HistoryStore, finished reports keyed by ULID run ID
//
// The index files themselves are read by the indexfile subpackage; nothing
// here is needed for a plain analysis run.
package storage
