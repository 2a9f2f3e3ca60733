package config

import (
	"log/slog"

	"github.com/m-mizutani/octobak/pkg/infra/reporter"
	"github.com/urfave/cli/v3"
)

type RunLog struct {
	path       string
	maxSizeMB  int
	maxBackups int
}

func (x *RunLog) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "run-log",
			Usage:       "File to append backup status lines to. Disabled if empty",
			Category:    "Run log",
			Destination: &x.path,
			Sources:     cli.EnvVars("OCTOBAK_RUN_LOG"),
			Value:       "transition.log",
		},
		&cli.IntFlag{
			Name:        "run-log-max-size",
			Usage:       "Size in megabytes at which the run log is rotated",
			Category:    "Run log",
			Destination: &x.maxSizeMB,
			Sources:     cli.EnvVars("OCTOBAK_RUN_LOG_MAX_SIZE"),
			Value:       100,
		},
		&cli.IntFlag{
			Name:        "run-log-max-backups",
			Usage:       "Number of rotated run logs to keep, 0 keeps all",
			Category:    "Run log",
			Destination: &x.maxBackups,
			Sources:     cli.EnvVars("OCTOBAK_RUN_LOG_MAX_BACKUPS"),
			Value:       0,
		},
	}
}

// New returns nil when the run log is disabled
func (x RunLog) New() *reporter.RunLog {
	if x.path == "" {
		return nil
	}
	return reporter.NewRunLogFile(x.path, x.maxSizeMB, x.maxBackups)
}

func (x RunLog) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("Path", x.path),
		slog.Int("MaxSizeMB", x.maxSizeMB),
		slog.Int("MaxBackups", x.maxBackups),
	)
}
