package middleware

import (
	"net/http"
	"time"

	"github.com/atabekdeveloper/mini-course-api/internal/metrics"

	"github.com/gorilla/mux"
)

// Metrics records request golden signals labelled with the matched route
// template, so /courses/{id} is one series regardless of id.
func Metrics(m *metrics.HTTPMetrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := "unmatched"
			if current := mux.CurrentRoute(r); current != nil {
				if tpl, err := current.GetPathTemplate(); err == nil {
					route = tpl
				}
			}

			ctx := r.Context()
			m.StartRequest(ctx, r.Method, route)
			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()

			next.ServeHTTP(rec, r)

			status := rec.status
			if status == 0 {
				status = http.StatusOK
			}
			m.EndRequest(ctx, r.Method, route, status, time.Since(start))
		})
	}
}
