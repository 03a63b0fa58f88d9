package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/spigell/careerlens/internal/logger"
)

// accessLog logs method, path, status, elapsed time and bytes written.
// Requests slower than slow are logged at warn level; zero disables it.
func accessLog(log *zap.Logger, slow time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			elapsed := time.Since(start)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Duration("elapsed", elapsed),
				zap.Int("bytes", ww.BytesWritten()),
			}
			fields = append(fields, logger.Strings(logger.FieldRequestID, middleware.GetReqID(r.Context()))...)

			if slow > 0 && elapsed >= slow {
				log.Warn("slow request", fields...)
				return
			}
			log.Info("request done", fields...)
		})
	}
}
