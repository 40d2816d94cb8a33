package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "mdhtml"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg              *prom.Registry
	documentDuration *prom.HistogramVec
	documentResults  *prom.CounterVec
	linkDecisions    *prom.CounterVec
	runDuration      prom.Histogram
	runOutcomes      *prom.CounterVec
}

// NewPrometheusRecorder constructs metrics and registers them with reg, or
// with a fresh registry when reg is nil.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		documentDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "document_duration_seconds",
			Help:      "Time to read, render, format and write one document",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"mode"}),
		documentResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "documents_total",
			Help:      "Documents converted by mode and result",
		}, []string{"mode", "result"}),
		linkDecisions: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "link_decisions_total",
			Help:      "Link rewrite decisions by reason",
		}, []string{"decision"}),
		runDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Total conversion run duration",
			Buckets:   prom.DefBuckets,
		}),
		runOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "run_outcomes_total",
			Help:      "Conversion runs by final status",
		}, []string{"result"}),
	}
	reg.MustRegister(pr.documentDuration, pr.documentResults, pr.linkDecisions, pr.runDuration, pr.runOutcomes)
	return pr
}

// Registry returns the registry the metrics are registered with.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.reg }

func (p *PrometheusRecorder) ObserveDocumentDuration(mode string, d time.Duration) {
	if p == nil {
		return
	}
	p.documentDuration.WithLabelValues(mode).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncDocumentResult(mode string, result ResultLabel) {
	if p == nil {
		return
	}
	p.documentResults.WithLabelValues(mode, string(result)).Inc()
}

func (p *PrometheusRecorder) IncLinkDecision(decision string) {
	if p == nil {
		return
	}
	p.linkDecisions.WithLabelValues(decision).Inc()
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRunOutcome(result ResultLabel) {
	if p == nil {
		return
	}
	p.runOutcomes.WithLabelValues(string(result)).Inc()
}

// WriteTextfile writes every gathered metric to path in the Prometheus text
// format. The file is replaced atomically.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	return prom.WriteToTextfile(path, p.reg)
}
