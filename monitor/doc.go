// Package monitor provides search.SearchMonitor implementations.
//
// Logging writes each search stage to a slog.Logger. Metrics records search
// counts, failures, result sizes and latency as Prometheus collectors; call
// Metrics.Monitor once per search. Multi fans hooks out to several monitors.
package monitor
