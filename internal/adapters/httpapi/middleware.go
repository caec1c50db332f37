package httpapi

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

type wrappedResponseWriter struct {
	http.ResponseWriter
	code int
}

func (wrw *wrappedResponseWriter) Flush() {
	if flusher, ok := wrw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func (wrw *wrappedResponseWriter) WriteHeader(code int) {
	wrw.code = code
	wrw.ResponseWriter.WriteHeader(code)
}

// logRequest logs every request at a level chosen by its status code.
// The change stream is long-lived and logged by its handler instead.
func logRequest(logger *zap.Logger, next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == streamPath {
			next.ServeHTTP(w, r)
			return
		}

		wrw := &wrappedResponseWriter{ResponseWriter: w, code: http.StatusOK}
		t0 := time.Now()
		next.ServeHTTP(wrw, r)

		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("uri", r.RequestURI),
			zap.String("remote_addr", r.RemoteAddr),
			zap.Int("code", wrw.code),
			zap.Duration("took", time.Since(t0)),
		}
		switch {
		case wrw.code < 400:
			logger.Info("request", fields...)
		case wrw.code < 500:
			logger.Warn("request", fields...)
		default:
			logger.Error("request", fields...)
		}
	}
}
