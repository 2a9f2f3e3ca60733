package interfaces

//go:generate moq -out ../mock/usecase.go -pkg mock . UseCase

import (
	"context"

	"github.com/m-mizutani/octobak/pkg/domain/model"
)

type UseCase interface {
	Backup(ctx context.Context, target *model.BackupTarget) (*model.BackupSummary, error)
}
