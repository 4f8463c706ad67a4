// Package metrics records per-run measurements: Prometheus counters and
// histograms for strategy runs, exported as a node_exporter textfile, and
// runtime memory snapshots for --details output.
package metrics
