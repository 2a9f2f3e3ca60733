package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/m-mizutani/gots/slice"
	"github.com/m-mizutani/octobak/pkg/domain/interfaces"
	"github.com/m-mizutani/octobak/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// newUseCase is replaced in tests
var newUseCase = func(ctx context.Context, cfg *backupConfig) (interfaces.UseCase, func(), error) {
	return cfg.buildUseCase(ctx)
}

func backupCommand() *cli.Command {
	var cfg backupConfig

	return &cli.Command{
		Name:    "backup",
		Aliases: []string{"b"},
		Usage:   "Download archives of all repositories of an owner",
		Flags: slice.Flatten(
			cfg.target.Flags(),
			cfg.github.Flags(),
			cfg.runLog.Flags(),
			cfg.s3.Flags(),
			cfg.sentry.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			logging.Default().Debug("starting backup",
				slog.Any("Target", cfg.target),
				slog.Any("GitHub", cfg.github),
				slog.Any("RunLog", cfg.runLog),
				slog.Any("S3", cfg.s3),
				slog.Any("Sentry", &cfg.sentry),
			)

			flush, err := cfg.sentry.Configure(ctx)
			if err != nil {
				return err
			}
			defer flush()

			target, err := cfg.target.Build()
			if err != nil {
				return err
			}

			uc, cleanup, err := newUseCase(ctx, &cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			// Failed repositories are reported in the summary and do not change the exit code
			if _, err := uc.Backup(ctx, target); err != nil {
				return err
			}

			return nil
		},
	}
}
