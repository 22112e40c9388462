// Package metric exports analysis results as Prometheus metrics.
//
//   - prometheus.go: Registry with the verdict gauges and textfile export
//   - collector.go: build info collector
//
// The tool is a one-shot batch job, so metrics are not served over HTTP.
// WriteTextfile produces a file for the node_exporter textfile collector.
package metric
