package cli

import (
	"context"
	"io"

	"github.com/m-mizutani/octobak/pkg/cli/config"
	"github.com/m-mizutani/octobak/pkg/domain/interfaces"
	"github.com/m-mizutani/octobak/pkg/infra"
	"github.com/m-mizutani/octobak/pkg/infra/reporter"
	"github.com/m-mizutani/octobak/pkg/usecase"
	"github.com/m-mizutani/octobak/pkg/utils/safe"
)

// backupConfig is the set of flags shared by the backup and serve commands
type backupConfig struct {
	github config.GitHub
	target config.Target
	s3     config.S3
	runLog config.RunLog
	sentry config.Sentry
}

// buildUseCase wires the clients of a backup run. extra reporters receive events in addition to
// the console log and the run log. The returned function releases opened files.
func (x *backupConfig) buildUseCase(ctx context.Context, extra ...interfaces.Reporter) (*usecase.UseCase, func(), error) {
	gh, err := x.github.New()
	if err != nil {
		return nil, nil, err
	}

	reporters := []interfaces.Reporter{reporter.NewLog()}
	var closers []io.Closer
	if rl := x.runLog.New(); rl != nil {
		reporters = append(reporters, rl)
		closers = append(closers, rl)
	}
	reporters = append(reporters, extra...)

	options := []infra.Option{
		infra.WithGitHub(gh),
		infra.WithReporter(reporter.NewMulti(reporters...)),
	}

	mirror, err := x.s3.NewMirror(ctx)
	if err != nil {
		return nil, nil, err
	}
	if mirror != nil {
		options = append(options, infra.WithMirror(mirror))
	}

	cleanup := func() {
		for _, c := range closers {
			safe.Close(c)
		}
	}

	return usecase.New(infra.New(options...)), cleanup, nil
}
