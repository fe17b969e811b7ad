package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewManager(WithRegistry(reg), WithNamespace("test"))

	m.RecordPrediction("SI")
	m.RecordPrediction("SI")
	m.RecordPrediction("NO")
	m.RecordScoringError()
	m.RecordImportRecords(OutcomeInserted, 3)
	m.RecordImportRecords(OutcomeSkipped, 0)
	m.RecordImportRun("ok")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.predictions.WithLabelValues("SI")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.predictions.WithLabelValues("NO")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.scoringErrors))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.importRecords.WithLabelValues(OutcomeInserted)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.importRecords.WithLabelValues(OutcomeSkipped)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.importRuns.WithLabelValues("ok")))
	assert.Same(t, reg, m.Registry())
}

func TestManagerHandler(t *testing.T) {
	m := NewManager()
	m.ObserveQuery("list", time.Now().Add(-10*time.Millisecond))
	m.RecordPrediction("NO")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "loan_scorer_scoring_predictions_total")
	assert.Contains(t, string(body), "loan_scorer_query_duration_seconds")
}
