package usecase

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/octobak/pkg/domain/interfaces"
	"github.com/m-mizutani/octobak/pkg/domain/model"
	"github.com/m-mizutani/octobak/pkg/domain/types"
	"github.com/m-mizutani/octobak/pkg/utils/logging"
	"github.com/m-mizutani/octobak/pkg/utils/safe"
	"github.com/m-mizutani/octobak/pkg/utils/stream"
)

const archiveFileMode = 0644

// DownloadArchive saves the zipball of the repository's default branch into outputDir. When the
// archive file already exists, nothing is requested and the outcome is Skipped. The body is written
// to a hidden temporary file that is renamed to the final name only after the whole body arrived,
// so a failed transfer never leaves a file that a later run would mistake for a complete archive.
func (x *UseCase) DownloadArchive(ctx context.Context, owner string, repo *model.Repository, outputDir string) (*model.DownloadOutcome, error) {
	filename := repo.ArchiveName(owner)
	path := filepath.Join(outputDir, filename)

	exists, err := fileExists(path)
	if err != nil {
		return nil, err
	}
	if exists {
		return &model.DownloadOutcome{
			Status: model.DownloadStatusSkipped,
			Path:   path,
		}, nil
	}

	startedAt := logging.CtxTime(ctx)

	body, err := x.clients.GitHub().OpenArchive(ctx, &interfaces.OpenArchiveInput{
		Owner: owner,
		Repo:  repo.Name,
		Ref:   repo.DefaultBranch,
	})
	if err != nil {
		return nil, err
	}
	defer safe.Close(body)

	tmp, err := os.CreateTemp(outputDir, "."+filename+".*.part")
	if err != nil {
		return nil, ioError(err, "failed to create temporary archive file", path)
	}

	written, err := x.writeArchive(ctx, repo, body, tmp)
	if err == nil {
		err = finalize(tmp, path)
	}
	if err != nil {
		safe.Close(tmp)
		safe.Remove(tmp.Name())
		return nil, err
	}

	return &model.DownloadOutcome{
		Status:  model.DownloadStatusDownloaded,
		Path:    path,
		Bytes:   written,
		Elapsed: logging.CtxTime(ctx).Sub(startedAt),
	}, nil
}

// writeArchive copies body into w chunk by chunk and reports the running byte count.
func (x *UseCase) writeArchive(ctx context.Context, repo *model.Repository, body io.Reader, w io.Writer) (int64, error) {
	var written int64

	for chunk, err := range stream.Chunks(body, x.chunkSize) {
		if err != nil {
			return written, goerr.Wrap(err, "failed to read archive body",
				goerr.V("repo", repo.FullName),
				goerr.V("bytes", chunk.Total),
			)
		}

		if _, err := w.Write(chunk.Data); err != nil {
			return written, goerr.Wrap(types.ErrIO, "failed to write archive",
				goerr.V("repo", repo.FullName),
				goerr.V("error", err.Error()),
			)
		}
		written = chunk.Total

		x.report(ctx, &model.Event{
			Type:  model.EventArchiveProgress,
			Repo:  repo,
			Bytes: written,
		})
	}

	return written, nil
}

func finalize(tmp *os.File, path string) error {
	if err := tmp.Chmod(archiveFileMode); err != nil {
		return ioError(err, "failed to set archive permission", path)
	}
	if err := tmp.Close(); err != nil {
		return ioError(err, "failed to close archive", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return ioError(err, "failed to move archive into place", path)
	}
	return nil
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, ioError(err, "failed to check archive file", path)
}

func ioError(err error, msg, path string) error {
	return goerr.Wrap(types.ErrIO, msg,
		goerr.V("path", path),
		goerr.V("error", err.Error()),
	)
}
