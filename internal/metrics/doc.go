// Package metrics records build metrics.
//
// Components receive a Recorder; NoopRecorder is the default so call sites never
// check for nil. When build.metrics_file is configured the CLI injects a
// PrometheusRecorder on a private registry and exports it after the build in
// the Prometheus text exposition format, ready for node_exporter's textfile
// collector.
package metrics
