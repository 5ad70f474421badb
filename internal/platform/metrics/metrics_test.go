package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Post("/loan/decision", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodPost, "/loan/decision", nil),
		httptest.NewRequest(http.MethodPost, "/loan/decision", nil),
		httptest.NewRequest(http.MethodGet, "/healthz", nil),
		httptest.NewRequest(http.MethodGet, "/nowhere", nil),
	} {
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.InDelta(t, 2, promtest.ToFloat64(m.Requests.WithLabelValues("POST", "/loan/decision", "400")), 0)
	assert.InDelta(t, 1, promtest.ToFloat64(m.Requests.WithLabelValues("GET", "/healthz", "200")), 0)
	assert.InDelta(t, 1, promtest.ToFloat64(m.Requests.WithLabelValues("GET", "unmatched", "404")), 0)
	assert.Equal(t, 3, promtest.CollectAndCount(m.RequestDuration))
}
