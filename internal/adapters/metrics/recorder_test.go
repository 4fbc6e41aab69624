package metrics_test

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/metrics"
	"go.trai.ch/kiln/internal/core/domain"
)

func TestRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	r := metrics.NewRecorder(reg)

	r.ObservePipeline(domain.ClassStyles, domain.ModeDevelopment, 0.12, nil)
	r.ObservePipeline(domain.ClassStyles, domain.ModeDevelopment, 0.3, errors.New("boom"))
	r.ObserveReload(domain.ClassStyles)
	r.SetReloadClients(2)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, mfs, 4)

	for _, mf := range mfs {
		if mf.GetName() == "kiln_pipeline_runs_total" {
			assert.Len(t, mf.GetMetric(), 2)
		}
	}
}

func TestRecorder_Handler(t *testing.T) {
	r := metrics.NewRecorder(nil)
	r.ObserveReload(domain.ClassPages)
	r.SetReloadClients(1)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `kiln_reloads_total{pipeline="pages"} 1`)
	assert.Contains(t, string(body), "kiln_reload_clients 1")
}
