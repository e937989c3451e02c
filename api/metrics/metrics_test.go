package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestWEO_APIMetrics_MiddlewareUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/api/indicators/{code}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	counter := HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/indicators/{code}", "404")
	before := testutil.ToFloat64(counter)

	for _, code := range []string{"A", "B"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/indicators/"+code, nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	}
	require.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestWEO_APIMetrics_RecordAnswer(t *testing.T) {
	before := testutil.ToFloat64(AnswersTotal.WithLabelValues("fallback"))
	RecordAnswer("fallback")
	require.Equal(t, before+1, testutil.ToFloat64(AnswersTotal.WithLabelValues("fallback")))
}
