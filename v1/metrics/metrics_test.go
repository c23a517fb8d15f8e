package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.EnableDefaultCollectors = false
	return cfg
}

func TestMetrics_Recording(t *testing.T) {
	m := NewMetrics(testConfig())

	m.CollectionFinished("migrated")
	m.CollectionFinished("migrated")
	m.CollectionFinished("skipped")
	m.PointsCopied("docs", 100)
	m.PointsCopied("docs", 50)
	m.ObserveBatch("docs", time.Now().Add(-20*time.Millisecond))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.collectionsTotal.WithLabelValues("migrated")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.collectionsTotal.WithLabelValues("skipped")))
	assert.Equal(t, 150.0, testutil.ToFloat64(m.pointsTotal.WithLabelValues("docs")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.batchDuration))
}

func TestMetrics_ExpositionHasNamespaceAndServiceLabel(t *testing.T) {
	m := NewMetrics(testConfig())
	m.CollectionFinished("failed")

	expected := `
# HELP qdrant_migrate_collections_total Collections processed, by outcome
# TYPE qdrant_migrate_collections_total counter
qdrant_migrate_collections_total{service="qdrant-migrate",status="failed"} 1
`
	err := testutil.GatherAndCompare(m.Registry, strings.NewReader(expected), "qdrant_migrate_collections_total")
	require.NoError(t, err)
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics(testConfig())
	m.PointsCopied("docs", 3)

	rec := httptest.NewRecorder()
	m.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `qdrant_migrate_points_total{collection="docs",service="qdrant-migrate"} 3`)
}

func TestMetrics_CreateCounter(t *testing.T) {
	m := NewMetrics(testConfig())
	c := m.CreateCounter("retries_total", "Retried requests", []string{"collection"})
	c.WithLabelValues("docs").Inc()

	count, err := testutil.GatherAndCount(m.Registry, "qdrant_migrate_retries_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
