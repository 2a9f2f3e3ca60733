package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/m-mizutani/octobak/pkg/utils/logging"
)

const requestIDHeader = "X-Request-ID"

// quietPaths are polled by probes and scrapers and logged at debug level
var quietPaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID, ctx := logging.CtxRequestID(r.Context())
		logger := logging.Default().With(slog.String("request_id", string(reqID)))
		ctx = logging.With(ctx, logger)
		w.Header().Set(requestIDHeader, string(reqID))

		rec := &accessRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		requestedAt := time.Now()
		next.ServeHTTP(rec, r.WithContext(ctx))

		level := slog.LevelInfo
		if quietPaths[r.URL.Path] {
			level = slog.LevelDebug
		}

		logger.Log(ctx, level, "http access",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr),
			slog.Int("status_code", rec.statusCode),
			slog.Int("response_bytes", rec.written),
			slog.String("user_agent", r.UserAgent()),
			slog.Duration("elapsed", time.Since(requestedAt)),
		)
	})
}

type accessRecorder struct {
	http.ResponseWriter
	statusCode int
	written    int
}

func (x *accessRecorder) WriteHeader(code int) {
	x.statusCode = code
	x.ResponseWriter.WriteHeader(code)
}

func (x *accessRecorder) Write(b []byte) (int, error) {
	n, err := x.ResponseWriter.Write(b)
	x.written += n
	return n, err
}
