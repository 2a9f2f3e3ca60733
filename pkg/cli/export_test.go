package cli

import (
	"context"

	"github.com/m-mizutani/octobak/pkg/domain/interfaces"
)

// ReplaceUseCaseForTest makes the backup command run uc. The returned function restores the factory.
func ReplaceUseCaseForTest(uc interfaces.UseCase) func() {
	orig := newUseCase
	newUseCase = func(ctx context.Context, cfg *backupConfig) (interfaces.UseCase, func(), error) {
		if _, err := cfg.github.New(); err != nil {
			return nil, nil, err
		}
		return uc, func() {}, nil
	}
	return func() { newUseCase = orig }
}
