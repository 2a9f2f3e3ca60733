package server

import (
	"encoding/json"
	"net/http"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/octobak/pkg/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	mux *chi.Mux
}

func safeWrite(w http.ResponseWriter, code int, body []byte) {
	w.WriteHeader(code)

	// nosemgrep: go.lang.security.audit.xss.no-direct-write-to-responsewriter.no-direct-write-to-responsewriter
	// Why: The response data is not from user input
	if _, err := w.Write(body); err != nil {
		logging.Default().Error("fail to write response", slog.Any("error", err))
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		logging.Default().Error("fail to marshal response", slog.Any("error", err))
		safeWrite(w, http.StatusInternalServerError, []byte(`{"status":"error"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	safeWrite(w, code, body)
}

type config struct {
	gatherer prometheus.Gatherer
}

type Option func(*config)

// WithMetrics serves the gatherer at /metrics
func WithMetrics(gatherer prometheus.Gatherer) Option {
	return func(cfg *config) {
		cfg.gatherer = gatherer
	}
}

func New(job *Job, options ...Option) *Server {
	cfg := &config{}
	for _, opt := range options {
		opt(cfg)
	}

	r := chi.NewRouter()
	r.Use(accessLog)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		safeWrite(w, http.StatusOK, []byte("ok"))
	})
	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, job.Status())
	})
	r.Post("/backup", func(w http.ResponseWriter, r *http.Request) {
		// The request context is cancelled when the response is sent
		if !job.Start(WithTrigger(DetachContext(r.Context()), TriggerHTTP)) {
			writeJSON(w, http.StatusConflict, map[string]string{
				"status":  "conflict",
				"message": "backup is already running",
			})
			return
		}

		writeJSON(w, http.StatusAccepted, map[string]string{
			"status":  "accepted",
			"message": "backup started",
		})
	})

	if cfg.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.gatherer, promhttp.HandlerOpts{}))
	}

	return &Server{
		mux: r,
	}
}

func (x *Server) Mux() *chi.Mux {
	return x.mux
}
