package reporter

import (
	"context"

	"github.com/m-mizutani/octobak/pkg/domain/interfaces"
	"github.com/m-mizutani/octobak/pkg/domain/model"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes run results as Prometheus metrics on its own registry.
type Metrics struct {
	registry *prometheus.Registry

	archives      *prometheus.CounterVec
	bytes         prometheus.Counter
	duration      prometheus.Histogram
	runs          prometheus.Counter
	lastRun       prometheus.Gauge
	lastRunFailed prometheus.Gauge
	repositories  prometheus.Gauge
}

var _ interfaces.Reporter = (*Metrics)(nil)

func NewMetrics() *Metrics {
	x := &Metrics{
		registry: prometheus.NewRegistry(),
		archives: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "octobak",
			Name:      "archives_total",
			Help:      "Number of archive backup attempts by result",
		}, []string{"result"}),
		bytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "octobak",
			Name:      "archive_bytes_total",
			Help:      "Bytes of downloaded archives",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "octobak",
			Name:      "archive_download_seconds",
			Help:      "Time to download one archive",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
		}),
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "octobak",
			Name:      "runs_total",
			Help:      "Number of completed backup runs",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "octobak",
			Name:      "last_run_timestamp_seconds",
			Help:      "Finish time of the last completed run",
		}),
		lastRunFailed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "octobak",
			Name:      "last_run_failed_repositories",
			Help:      "Number of failed repositories in the last completed run",
		}),
		repositories: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "octobak",
			Name:      "repositories",
			Help:      "Number of repositories listed by the last run",
		}),
	}

	x.registry.MustRegister(
		x.archives,
		x.bytes,
		x.duration,
		x.runs,
		x.lastRun,
		x.lastRunFailed,
		x.repositories,
	)
	return x
}

func (x *Metrics) Registry() *prometheus.Registry {
	return x.registry
}

func (x *Metrics) Record(ctx context.Context, ev *model.Event) {
	switch ev.Type {
	case model.EventRepositoriesListed:
		x.repositories.Set(float64(ev.Total))

	case model.EventArchiveDownloaded:
		x.archives.WithLabelValues(string(model.DownloadStatusDownloaded)).Inc()
		x.bytes.Add(float64(ev.Outcome.Bytes))
		x.duration.Observe(ev.Outcome.Elapsed.Seconds())

	case model.EventArchiveSkipped:
		x.archives.WithLabelValues(string(model.DownloadStatusSkipped)).Inc()

	case model.EventArchiveMirrored:
		x.archives.WithLabelValues("mirrored").Inc()

	case model.EventArchiveFailed:
		x.archives.WithLabelValues("failed").Inc()

	case model.EventRunCompleted:
		x.runs.Inc()
		x.lastRun.Set(float64(ev.Summary.FinishedAt.Unix()))
		x.lastRunFailed.Set(float64(ev.Summary.Failed))
	}
}
