// Package benchmark provides performance benchmarks for the analysis
// pipeline on synthetic test runs.
//
// Run benchmarks with:
//
//	go test -bench=. -benchmem ./internal/tests/benchmark/...
//
// Run with a specific run size:
//
//	go test -bench='BenchmarkAnalyze/traces=100000' -benchmem -benchtime=10s ./internal/tests/benchmark/...
//
// Compare results:
//
//	benchstat old.txt new.txt
package benchmark
