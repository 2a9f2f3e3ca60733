package server

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/octobak/pkg/domain/interfaces"
	"github.com/m-mizutani/octobak/pkg/domain/model"
	"github.com/m-mizutani/octobak/pkg/domain/types"
	"github.com/m-mizutani/octobak/pkg/utils/errutil"
	"github.com/m-mizutani/octobak/pkg/utils/logging"
)

// Job runs backups of one fixed target. At most one run is in progress at any time; it is shared by
// the scheduler and the HTTP trigger.
type Job struct {
	uc     interfaces.UseCase
	target *model.BackupTarget

	runMu sync.Mutex

	stateMu    sync.RWMutex
	running    bool
	cancel     context.CancelFunc
	startedAt  time.Time
	finishedAt time.Time
	lastErr    error
	summary    *model.BackupSummary
}

func NewJob(uc interfaces.UseCase, target *model.BackupTarget) *Job {
	return &Job{
		uc:     uc,
		target: target,
	}
}

// Run executes a backup and blocks until it finishes. It returns types.ErrAlreadyRunning without
// waiting when another run holds the job.
func (x *Job) Run(ctx context.Context) error {
	if !x.runMu.TryLock() {
		return goerr.Wrap(types.ErrAlreadyRunning, "skip backup", goerr.V("owner", x.target.Owner))
	}
	defer x.runMu.Unlock()

	ctx, cancel := x.begin(ctx)
	defer cancel()
	return x.run(ctx)
}

// Start launches a backup in background. It returns false when another run is in progress. The run
// is cancelable by Cancel as soon as Start returns.
func (x *Job) Start(ctx context.Context) bool {
	if !x.runMu.TryLock() {
		return false
	}

	ctx, cancel := x.begin(ctx)
	go func() {
		defer x.runMu.Unlock()
		defer cancel()
		if err := x.run(ctx); err != nil {
			errutil.HandleError(ctx, "backup failed", err)
		}
	}()
	return true
}

// Cancel stops the run in progress, if any, before its next repository.
func (x *Job) Cancel() {
	x.stateMu.RLock()
	defer x.stateMu.RUnlock()
	if x.cancel != nil {
		x.cancel()
	}
}

// Wait blocks until no run is in progress
func (x *Job) Wait() {
	x.runMu.Lock()
	defer x.runMu.Unlock()
}

// begin marks the job running and registers the cancel function. runMu must be held.
func (x *Job) begin(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)

	x.stateMu.Lock()
	defer x.stateMu.Unlock()
	x.running = true
	x.cancel = cancel
	x.startedAt = logging.CtxTime(ctx)
	return ctx, cancel
}

func (x *Job) run(ctx context.Context) error {
	summary, err := x.uc.Backup(ctx, x.target)

	x.stateMu.Lock()
	x.running = false
	x.cancel = nil
	x.finishedAt = logging.CtxTime(ctx)
	x.lastErr = err
	if summary != nil {
		x.summary = summary
	}
	x.stateMu.Unlock()

	return err
}

type JobStatus struct {
	Owner      string         `json:"owner"`
	Running    bool           `json:"running"`
	StartedAt  *time.Time     `json:"started_at,omitempty"`
	FinishedAt *time.Time     `json:"finished_at,omitempty"`
	Error      string         `json:"error,omitempty"`
	LastRun    *SummaryStatus `json:"last_run,omitempty"`
}

type SummaryStatus struct {
	Total      int                 `json:"total"`
	Downloaded int                 `json:"downloaded"`
	Skipped    int                 `json:"skipped"`
	Failed     int                 `json:"failed"`
	Bytes      int64               `json:"bytes"`
	Failures   []model.RepoFailure `json:"failures,omitempty"`
}

func (x *Job) Status() *JobStatus {
	x.stateMu.RLock()
	defer x.stateMu.RUnlock()

	status := &JobStatus{
		Owner:   x.target.Owner,
		Running: x.running,
	}
	if !x.startedAt.IsZero() {
		t := x.startedAt
		status.StartedAt = &t
	}
	if !x.finishedAt.IsZero() {
		t := x.finishedAt
		status.FinishedAt = &t
	}
	if x.lastErr != nil {
		status.Error = x.lastErr.Error()
	}
	if x.summary != nil {
		status.LastRun = &SummaryStatus{
			Total:      x.summary.Total,
			Downloaded: x.summary.Downloaded,
			Skipped:    x.summary.Skipped,
			Failed:     x.summary.Failed,
			Bytes:      x.summary.Bytes,
			Failures:   x.summary.Failures,
		}
	}
	return status
}
