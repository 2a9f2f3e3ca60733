package interfaces

//go:generate moq -out ../mock/infra.go -pkg mock . GitHub Mirror Reporter

import (
	"context"
	"io"

	"github.com/m-mizutani/octobak/pkg/domain/model"
	"github.com/m-mizutani/octobak/pkg/domain/types"
)

type GitHub interface {
	// ListRepositories returns all repositories of the owner, most recently updated first
	ListRepositories(ctx context.Context, owner string, ownerType types.OwnerType) ([]*model.Repository, error)

	// OpenArchive starts the zipball download of ref. The caller must close the returned body.
	OpenArchive(ctx context.Context, input *OpenArchiveInput) (io.ReadCloser, error)
}

type OpenArchiveInput struct {
	Owner string
	Repo  string
	Ref   types.BranchName
}

// Mirror copies local archives to secondary storage
type Mirror interface {
	// Sync uploads the file at localPath as key unless the key already exists. It returns the
	// location of the object and whether an upload happened.
	Sync(ctx context.Context, localPath, key string) (location string, uploaded bool, err error)
}

// Reporter receives status events of a backup run. It owns no decision logic; implementations
// decide where events end up (console, run log, metrics).
type Reporter interface {
	Record(ctx context.Context, ev *model.Event)
}
