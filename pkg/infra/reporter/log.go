package reporter

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/m-mizutani/octobak/pkg/domain/interfaces"
	"github.com/m-mizutani/octobak/pkg/domain/model"
	"github.com/m-mizutani/octobak/pkg/utils/logging"
)

const defaultProgressInterval = 5 * time.Second

// Log writes events to the context logger. Transfer progress goes to debug level and is throttled
// per repository.
type Log struct {
	mu               sync.Mutex
	progressInterval time.Duration
	lastProgress     map[string]time.Time
}

var _ interfaces.Reporter = (*Log)(nil)

type LogOption func(*Log)

func WithProgressInterval(d time.Duration) LogOption {
	return func(x *Log) {
		x.progressInterval = d
	}
}

func NewLog(options ...LogOption) *Log {
	x := &Log{
		progressInterval: defaultProgressInterval,
		lastProgress:     make(map[string]time.Time),
	}
	for _, opt := range options {
		opt(x)
	}
	return x
}

func (x *Log) Record(ctx context.Context, ev *model.Event) {
	logger := logging.From(ctx)

	switch ev.Type {
	case model.EventRunStarted:
		logger.Info("Starting backup", slog.Any("target", ev.Target))

	case model.EventRepositoriesListed:
		logger.Info("Found repositories", slog.Int("count", ev.Total))

	case model.EventArchiveProgress:
		if !x.shouldLogProgress(ev.RepoName(), logging.CtxTime(ctx)) {
			return
		}
		logger.Debug("Downloading archive", slog.String("repo", ev.RepoName()), slog.Int64("bytes", ev.Bytes))

	case model.EventArchiveDownloaded:
		x.resetProgress(ev.RepoName())
		logger.Info("Downloaded archive",
			slog.String("repo", ev.RepoName()),
			slog.String("path", ev.Outcome.Path),
			slog.Int64("bytes", ev.Outcome.Bytes),
			slog.Duration("elapsed", ev.Outcome.Elapsed),
			slog.Float64("mb_per_sec", ev.Outcome.Throughput()/(1024*1024)),
		)

	case model.EventArchiveSkipped:
		logger.Info("Skipped archive, already exists",
			slog.String("repo", ev.RepoName()),
			slog.String("path", ev.Outcome.Path),
		)

	case model.EventArchiveMirrored:
		logger.Info("Mirrored archive",
			slog.String("repo", ev.RepoName()),
			slog.String("location", ev.Location),
		)

	case model.EventArchiveFailed:
		x.resetProgress(ev.RepoName())
		logger.Warn("Failed to back up repository",
			slog.String("repo", ev.RepoName()),
			slog.Any("error", ev.Error),
		)

	case model.EventRunCompleted:
		logger.Info("Backup completed", slog.Any("summary", ev.Summary))
	}
}

func (x *Log) shouldLogProgress(name string, now time.Time) bool {
	x.mu.Lock()
	defer x.mu.Unlock()

	if last, ok := x.lastProgress[name]; ok && now.Sub(last) < x.progressInterval {
		return false
	}
	x.lastProgress[name] = now
	return true
}

func (x *Log) resetProgress(name string) {
	x.mu.Lock()
	defer x.mu.Unlock()
	delete(x.lastProgress, name)
}
