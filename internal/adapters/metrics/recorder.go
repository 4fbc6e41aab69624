// Package metrics records pipeline and reload activity in a Prometheus registry.
package metrics

import (
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.trai.ch/kiln/internal/core/domain"
)

const namespace = "kiln"

// Recorder implements ports.Metrics.
type Recorder struct {
	reg *prom.Registry

	pipelineDuration *prom.HistogramVec
	pipelineRuns     *prom.CounterVec
	reloads          *prom.CounterVec
	reloadClients    prom.Gauge
}

// NewRecorder constructs the collectors and registers them on reg. A nil reg
// creates a private registry.
func NewRecorder(reg *prom.Registry) *Recorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}

	r := &Recorder{
		reg: reg,
		pipelineDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_duration_seconds",
			Help:      "Duration of pipeline runs",
			Buckets:   prom.DefBuckets,
		}, []string{"pipeline", "mode"}),
		pipelineRuns: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_runs_total",
			Help:      "Pipeline runs by outcome",
		}, []string{"pipeline", "mode", "result"}),
		reloads: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "reloads_total",
			Help:      "Reload signals sent to browsers",
		}, []string{"pipeline"}),
		reloadClients: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "reload_clients",
			Help:      "Browsers connected to the reload socket",
		}),
	}
	reg.MustRegister(r.pipelineDuration, r.pipelineRuns, r.reloads, r.reloadClients)

	return r
}

// ObservePipeline records one pipeline run.
func (r *Recorder) ObservePipeline(class domain.AssetClass, mode domain.Mode, seconds float64, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	r.pipelineDuration.WithLabelValues(class.String(), mode.String()).Observe(seconds)
	r.pipelineRuns.WithLabelValues(class.String(), mode.String(), result).Inc()
}

// ObserveReload counts a reload broadcast caused by class.
func (r *Recorder) ObserveReload(class domain.AssetClass) {
	r.reloads.WithLabelValues(class.String()).Inc()
}

// SetReloadClients sets the number of connected reload clients.
func (r *Recorder) SetReloadClients(n int) {
	r.reloadClients.Set(float64(n))
}

// Handler exposes the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
