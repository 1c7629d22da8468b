// Package metrics exposes Prometheus counters for form rendering.
package metrics
