// Package metrics records sync outcomes.
//
// Components receive a Recorder through options and default to NoopRecorder,
// so no nil checks are needed at call sites. PrometheusRecorder keeps its
// collectors on a private registry and can dump them in the node_exporter
// textfile format after a run.
package metrics
