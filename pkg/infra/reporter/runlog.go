package reporter

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/m-mizutani/octobak/pkg/domain/interfaces"
	"github.com/m-mizutani/octobak/pkg/domain/model"
	"github.com/m-mizutani/octobak/pkg/utils/logging"
	"gopkg.in/natefinch/lumberjack.v2"
)

// RunLog appends one human readable line per significant event. Progress events are not written.
type RunLog struct {
	mu sync.Mutex
	w  io.Writer
}

var _ interfaces.Reporter = (*RunLog)(nil)

func NewRunLog(w io.Writer) *RunLog {
	return &RunLog{w: w}
}

// NewRunLogFile returns a RunLog appending to path, rotated by size.
func NewRunLogFile(path string, maxSizeMB, maxBackups int) *RunLog {
	return NewRunLog(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		Compress:   true,
	})
}

// Close closes the underlying writer if it is closable
func (x *RunLog) Close() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if c, ok := x.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (x *RunLog) Record(ctx context.Context, ev *model.Event) {
	line := formatLine(ev)
	if line == "" {
		return
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	ts := logging.CtxTime(ctx).Format(time.RFC3339)
	if _, err := fmt.Fprintf(x.w, "%s %s\n", ts, line); err != nil {
		logging.From(ctx).Warn("Failed to write run log", "error", err)
	}
}

func formatLine(ev *model.Event) string {
	switch ev.Type {
	case model.EventRunStarted:
		return fmt.Sprintf("Backing up repositories of %s (%s) into %s",
			ev.Target.Owner, ev.Target.OwnerType, ev.Target.OutputDir)

	case model.EventRepositoriesListed:
		return fmt.Sprintf("Found %d repositories", ev.Total)

	case model.EventArchiveDownloaded:
		return fmt.Sprintf("Downloaded %s to %s (%d bytes, %.2f MB/s)",
			ev.RepoName(), ev.Outcome.Path, ev.Outcome.Bytes, ev.Outcome.Throughput()/(1024*1024))

	case model.EventArchiveSkipped:
		return fmt.Sprintf("Skipped %s, %s already exists", ev.RepoName(), ev.Outcome.Path)

	case model.EventArchiveMirrored:
		return fmt.Sprintf("Mirrored %s to %s", ev.RepoName(), ev.Location)

	case model.EventArchiveFailed:
		return fmt.Sprintf("Failed to back up %s: %v", ev.RepoName(), ev.Error)

	case model.EventRunCompleted:
		s := ev.Summary
		return fmt.Sprintf("Completed: %d repositories, %d downloaded, %d skipped, %d failed",
			s.Total, s.Downloaded, s.Skipped, s.Failed)
	}

	return ""
}
