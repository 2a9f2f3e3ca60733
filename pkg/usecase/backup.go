package usecase

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/octobak/pkg/domain/model"
	"github.com/m-mizutani/octobak/pkg/domain/types"
	"github.com/m-mizutani/octobak/pkg/utils/logging"
)

// Backup downloads the archive of every repository of the target owner into the output directory.
// Listing and directory creation failures abort the run. A failure of one repository is recorded in
// the summary and the run moves on, so the returned error is nil even when repositories failed.
// Cancellation of ctx stops the run before the next repository.
func (x *UseCase) Backup(ctx context.Context, target *model.BackupTarget) (*model.BackupSummary, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}
	if x.clients.GitHub() == nil {
		return nil, goerr.Wrap(types.ErrConfiguration, "GitHub client is not configured")
	}

	_, ctx = logging.CtxRunID(ctx)

	summary := &model.BackupSummary{
		Target:    *target,
		StartedAt: logging.CtxTime(ctx),
	}
	x.report(ctx, &model.Event{Type: model.EventRunStarted, Target: target})

	if err := os.MkdirAll(target.OutputDir, 0755); err != nil {
		return nil, ioError(err, "failed to create output directory", target.OutputDir)
	}

	repos, err := x.clients.GitHub().ListRepositories(ctx, target.Owner, target.OwnerType)
	if err != nil {
		return nil, err
	}
	summary.Total = len(repos)
	x.report(ctx, &model.Event{Type: model.EventRepositoriesListed, Target: target, Total: len(repos)})

	for i, repo := range repos {
		if err := ctx.Err(); err != nil {
			x.complete(ctx, summary)
			return summary, goerr.Wrap(err, "backup interrupted",
				goerr.V("done", i),
				goerr.V("total", len(repos)),
			)
		}

		logging.From(ctx).Debug("Backing up repository",
			slog.Int("progress", i+1),
			slog.Int("total", len(repos)),
			slog.String("repo", repo.FullName),
		)
		x.backupRepository(ctx, target, repo, summary)
	}

	x.complete(ctx, summary)
	return summary, nil
}

func (x *UseCase) backupRepository(ctx context.Context, target *model.BackupTarget, repo *model.Repository, summary *model.BackupSummary) {
	outcome, err := x.DownloadArchive(ctx, target.Owner, repo, target.OutputDir)
	if err != nil {
		x.fail(ctx, summary, repo, err)
		return
	}

	// The mirror runs before the outcome is reported, so an attempt yields one outcome event
	var location string
	var mirrored bool
	if mirror := x.clients.Mirror(); mirror != nil {
		location, mirrored, err = mirror.Sync(ctx, outcome.Path, filepath.Base(outcome.Path))
		if err != nil {
			x.fail(ctx, summary, repo, goerr.Wrap(err, "failed to mirror archive", goerr.V("path", outcome.Path)))
			return
		}
	}

	switch outcome.Status {
	case model.DownloadStatusDownloaded:
		summary.Downloaded++
		summary.Bytes += outcome.Bytes
		x.report(ctx, &model.Event{Type: model.EventArchiveDownloaded, Repo: repo, Outcome: outcome})
	case model.DownloadStatusSkipped:
		summary.Skipped++
		x.report(ctx, &model.Event{Type: model.EventArchiveSkipped, Repo: repo, Outcome: outcome})
	}

	if mirrored {
		x.report(ctx, &model.Event{Type: model.EventArchiveMirrored, Repo: repo, Outcome: outcome, Location: location})
	}
}

func (x *UseCase) fail(ctx context.Context, summary *model.BackupSummary, repo *model.Repository, err error) {
	name := repo.FullName
	if name == "" {
		name = repo.Name
	}

	summary.Failed++
	summary.Failures = append(summary.Failures, model.RepoFailure{
		Repo:  name,
		Error: err.Error(),
	})
	x.report(ctx, &model.Event{Type: model.EventArchiveFailed, Repo: repo, Error: err})
}

func (x *UseCase) complete(ctx context.Context, summary *model.BackupSummary) {
	summary.FinishedAt = logging.CtxTime(ctx)
	x.report(ctx, &model.Event{Type: model.EventRunCompleted, Target: &summary.Target, Summary: summary})
}
