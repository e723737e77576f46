package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "fragsync"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg          *prom.Registry
	fileResults  *prom.CounterVec
	runDuration  *prom.HistogramVec
	fragmentSize *prom.GaugeVec
	lastRun      prom.Gauge
}

// NewPrometheusRecorder constructs and registers the sync collectors on reg.
// A nil reg gets a fresh private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		fileResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "file_results_total",
			Help:      "Target file outcomes by fragment and status",
		}, []string{"fragment", "status"}),
		runDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of one fragment run across all targets",
			Buckets:   prom.DefBuckets,
		}, []string{"fragment"}),
		fragmentSize: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "fragment_size_chars",
			Help:      "Length in characters of the canonical fragment",
		}, []string{"fragment"}),
		lastRun: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last completed run",
		}),
	}
	reg.MustRegister(pr.fileResults, pr.runDuration, pr.fragmentSize, pr.lastRun)
	return pr
}

func (p *PrometheusRecorder) IncFileResult(fragment, status string) {
	if p == nil {
		return
	}
	p.fileResults.WithLabelValues(fragment, status).Inc()
}

func (p *PrometheusRecorder) ObserveRunDuration(fragment string, d time.Duration) {
	if p == nil {
		return
	}
	p.runDuration.WithLabelValues(fragment).Observe(d.Seconds())
}

func (p *PrometheusRecorder) SetFragmentSize(fragment string, chars int) {
	if p == nil {
		return
	}
	p.fragmentSize.WithLabelValues(fragment).Set(float64(chars))
}

func (p *PrometheusRecorder) SetLastRun(t time.Time) {
	if p == nil {
		return
	}
	p.lastRun.Set(float64(t.Unix()))
}

// WriteTextfile writes all collected metrics to path in the text exposition
// format, for pickup by the node_exporter textfile collector.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	return prom.WriteToTextfile(path, p.reg)
}
