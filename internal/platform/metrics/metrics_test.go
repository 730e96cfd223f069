package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	m := New()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/reports/{reportID}/file", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"1", "2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/"+id+"/file", nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	}

	got := testutil.ToFloat64(m.httpRequests.WithLabelValues(http.MethodGet, "/reports/{reportID}/file", "404"))
	assert.Equal(t, 2.0, got)
}

func TestHandler_ExposesDomainCounters(t *testing.T) {
	m := New()
	m.QueryClassified("doctor", "search")
	m.FallbackCompleted("error")
	m.AuditPublished("access.granted", true)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `chatbot_queries_total{intent="search",role="doctor"} 1`)
	assert.Contains(t, string(body), `llm_fallback_calls_total{outcome="error"} 1`)
	assert.Contains(t, string(body), `audit_events_total{event_type="access.granted",success="true"} 1`)
}
