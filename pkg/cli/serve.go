package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/m-mizutani/octobak/pkg/controller/server"
	"github.com/m-mizutani/octobak/pkg/domain/types"
	"github.com/m-mizutani/octobak/pkg/infra/reporter"
	"github.com/m-mizutani/octobak/pkg/utils/errutil"
	"github.com/m-mizutani/octobak/pkg/utils/logging"
	"github.com/robfig/cron/v3"
	"github.com/urfave/cli/v3"
)

func serveCommand() *cli.Command {
	var (
		addr       string
		schedule   string
		runOnStart bool

		cfg backupConfig
	)
	serveFlags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Binding address",
			Value:       "127.0.0.1:8000",
			Sources:     cli.EnvVars("OCTOBAK_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "schedule",
			Usage:       "Cron spec of backup runs, e.g. '0 3 * * *' or '@daily'",
			Value:       "@daily",
			Sources:     cli.EnvVars("OCTOBAK_SCHEDULE"),
			Destination: &schedule,
		},
		&cli.BoolFlag{
			Name:        "run-on-start",
			Usage:       "Run a backup immediately after start",
			Sources:     cli.EnvVars("OCTOBAK_RUN_ON_START"),
			Destination: &runOnStart,
		},
	}

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Run backups on a schedule and serve status and metrics over HTTP",
		Flags: slice.Flatten(
			serveFlags,
			cfg.target.Flags(),
			cfg.github.Flags(),
			cfg.runLog.Flags(),
			cfg.s3.Flags(),
			cfg.sentry.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			logging.Default().Info("starting serve",
				slog.String("Addr", addr),
				slog.String("Schedule", schedule),
				slog.Bool("RunOnStart", runOnStart),
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

			metrics := reporter.NewMetrics()
			uc, cleanup, err := cfg.buildUseCase(ctx, metrics)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			job := server.NewJob(uc, target)

			scheduler := cron.New(cron.WithChain(cron.SkipIfStillRunning(newCronLogger())))
			if _, err := scheduler.AddFunc(schedule, func() {
				runScheduled(server.WithTrigger(ctx, server.TriggerSchedule), job)
			}); err != nil {
				return goerr.Wrap(types.ErrInvalidOption, "invalid schedule",
					goerr.V("schedule", schedule),
					goerr.V("error", err.Error()),
				)
			}
			scheduler.Start()
			defer func() {
				<-scheduler.Stop().Done()
			}()

			if runOnStart {
				job.Start(server.WithTrigger(ctx, server.TriggerStartup))
			}

			s := server.New(job, server.WithMetrics(metrics.Registry()))
			serverErr := make(chan error, 1)
			httpServer := &http.Server{
				Addr:    addr,
				Handler: s.Mux(),

				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       30 * time.Second,
				WriteTimeout:      30 * time.Second,
			}

			go func() {
				logging.Default().Info("starting http server", "addr", addr)
				if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
					serverErr <- goerr.Wrap(err, "failed to listen and serve")
				}
			}()

			select {
			case err := <-serverErr:
				job.Cancel()
				job.Wait()
				return err

			case <-ctx.Done():
				logging.Default().Info("shutting down server")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server")
			}

			// Runs started by HTTP requests do not watch ctx
			job.Cancel()
			job.Wait()
			return nil
		},
	}
}

func runScheduled(ctx context.Context, job *server.Job) {
	if ctx.Err() != nil {
		return
	}

	err := job.Run(ctx)
	switch {
	case err == nil:
	case errors.Is(err, types.ErrAlreadyRunning):
		logging.From(ctx).Warn("skip scheduled backup, previous run is still in progress")
	default:
		errutil.HandleError(ctx, "scheduled backup failed", err)
	}
}

// cronLogger routes cron's own messages to the default logger
type cronLogger struct {
	logger *slog.Logger
}

func newCronLogger() cron.Logger {
	return &cronLogger{logger: logging.Default().With(slog.String("component", "cron"))}
}

func (x *cronLogger) Info(msg string, keysAndValues ...any) {
	x.logger.Debug(msg, keysAndValues...)
}

func (x *cronLogger) Error(err error, msg string, keysAndValues ...any) {
	x.logger.Error(msg, append([]any{"error", err}, keysAndValues...)...)
}
