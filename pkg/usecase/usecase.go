package usecase

import (
	"context"

	"github.com/m-mizutani/octobak/pkg/domain/interfaces"
	"github.com/m-mizutani/octobak/pkg/domain/model"
	"github.com/m-mizutani/octobak/pkg/infra"
	"github.com/m-mizutani/octobak/pkg/utils/stream"
)

type UseCase struct {
	clients   *infra.Clients
	chunkSize int
}

var _ interfaces.UseCase = (*UseCase)(nil)

type Option func(*UseCase)

// WithChunkSize sets the read size used while streaming archives
func WithChunkSize(size int) Option {
	return func(x *UseCase) {
		x.chunkSize = size
	}
}

func New(clients *infra.Clients, options ...Option) *UseCase {
	x := &UseCase{
		clients:   clients,
		chunkSize: stream.DefaultChunkSize,
	}
	for _, opt := range options {
		opt(x)
	}
	return x
}

func (x *UseCase) report(ctx context.Context, ev *model.Event) {
	x.clients.Reporter().Record(ctx, ev)
}
