package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestIncAccessEvent(t *testing.T) {
	before := testutil.ToFloat64(accessEventsTotal.WithLabelValues(OutcomeDuplicate))
	IncAccessEvent(OutcomeDuplicate)
	IncAccessEvent(OutcomeDuplicate)
	assert.Equal(t, before+2, testutil.ToFloat64(accessEventsTotal.WithLabelValues(OutcomeDuplicate)))
}

func TestAddPruned_IgnoresZero(t *testing.T) {
	before := testutil.ToFloat64(accessLogPrunedTotal)
	AddPruned(0)
	AddPruned(-3)
	AddPruned(4)
	assert.Equal(t, before+4, testutil.ToFloat64(accessLogPrunedTotal))
}

func TestHTTPMiddleware_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(HTTPMiddleware)
	r.Get("/api/person/{personID}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, id := range []string{"1", "2", "3"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/person/"+id, nil))
		assert.Equal(t, http.StatusTeapot, rec.Code)
	}

	n := testutil.CollectAndCount(httpRequestDuration, "makerspace_http_request_duration_seconds")
	assert.Equal(t, 1, n, "all three requests should share one route series")
	assert.Zero(t, testutil.ToFloat64(httpRequestsInFlight))
}
