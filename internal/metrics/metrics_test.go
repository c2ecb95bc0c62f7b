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

func TestObserveRequest(t *testing.T) {
	m := New()

	m.ObserveRequest("/api/produtos", http.MethodGet, 200, 10*time.Millisecond)
	m.ObserveRequest("/api/produtos", http.MethodGet, 200, 20*time.Millisecond)
	m.ObserveRequest("", http.MethodPut, 404, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("/api/produtos", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("unmatched", "PUT", "404")))
}

func TestProductCounters(t *testing.T) {
	m := New()

	m.ProductCreated()
	m.ProductCreated()
	m.ProductDeleted()
	m.StoreFailed("list")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.productsCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.productsDeleted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.storeFailures.WithLabelValues("list")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.ProductCreated()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "padaria_produtos_created_total 1"))
}
