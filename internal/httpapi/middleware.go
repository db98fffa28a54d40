package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/merchly/order-lookup/internal/observability"
)

// RequestLogger measures total request processing time, logs one line per
// request and reports it to Metrics.ObserveHTTP.
func RequestLogger(logger *zap.Logger, m observability.Metrics) func(http.Handler) http.Handler {
	if m == nil {
		m = observability.NewNoop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			durMs := float64(time.Since(start).Microseconds()) / 1000.0
			m.ObserveHTTP(r.Method, r.URL.Path, ww.Status(), durMs)
			logger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Float64("dur_ms", durMs),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
