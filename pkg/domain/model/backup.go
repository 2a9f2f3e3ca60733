package model

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/octobak/pkg/domain/types"
)

// BackupTarget is the scope of a run. It is fixed for the whole invocation.
type BackupTarget struct {
	Owner     string
	OwnerType types.OwnerType
	OutputDir string
}

func (x *BackupTarget) Validate() error {
	if x.Owner == "" {
		return goerr.Wrap(types.ErrInvalidOption, "owner is empty")
	}
	if x.OutputDir == "" {
		return goerr.Wrap(types.ErrInvalidOption, "output directory is empty")
	}
	return nil
}

func (x *BackupTarget) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("owner", x.Owner),
		slog.String("owner_type", x.OwnerType.String()),
		slog.String("output_dir", x.OutputDir),
	)
}

type DownloadStatus string

const (
	DownloadStatusDownloaded DownloadStatus = "downloaded"
	DownloadStatusSkipped    DownloadStatus = "skipped"
)

// DownloadOutcome is the result of one successful archive download attempt
type DownloadOutcome struct {
	Status  DownloadStatus
	Path    string
	Bytes   int64
	Elapsed time.Duration
}

// Throughput returns bytes per second. It is informational only.
func (x *DownloadOutcome) Throughput() float64 {
	if x.Elapsed <= 0 {
		return 0
	}
	return float64(x.Bytes) / x.Elapsed.Seconds()
}

type RepoFailure struct {
	Repo  string `json:"repo"`
	Error string `json:"error"`
}

// BackupSummary aggregates the outcome of a whole run
type BackupSummary struct {
	Target     BackupTarget
	Total      int
	Downloaded int
	Skipped    int
	Failed     int
	Bytes      int64
	Failures   []RepoFailure
	StartedAt  time.Time
	FinishedAt time.Time
}

// Succeeded is the number of repositories whose archive is present locally after the run
func (x *BackupSummary) Succeeded() int {
	return x.Downloaded + x.Skipped
}

func (x *BackupSummary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("owner", x.Target.Owner),
		slog.Int("total", x.Total),
		slog.Int("downloaded", x.Downloaded),
		slog.Int("skipped", x.Skipped),
		slog.Int("failed", x.Failed),
		slog.Int64("bytes", x.Bytes),
		slog.Duration("elapsed", x.FinishedAt.Sub(x.StartedAt)),
	)
}
