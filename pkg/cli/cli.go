package cli

import (
	"context"

	"github.com/m-mizutani/octobak/pkg/cli/config"
	"github.com/m-mizutani/octobak/pkg/domain/types"
	"github.com/m-mizutani/octobak/pkg/utils/errutil"
	"github.com/urfave/cli/v3"
)

type CLI struct {
	logging config.Logging
}

func New() *CLI {
	return &CLI{}
}

// Run parses argv and executes the selected command. The returned error is already logged and
// reported.
func (x *CLI) Run(argv []string) error {
	app := &cli.Command{
		Name:    types.AppName,
		Usage:   "Back up archives of all GitHub repositories of a user or organization",
		Version: types.AppVersion,
		Flags:   x.logging.Flags(),
		Commands: []*cli.Command{
			backupCommand(),
			serveCommand(),
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, x.logging.Configure()
		},
	}

	if err := app.Run(context.Background(), argv); err != nil {
		errutil.HandleError(context.Background(), "fatal error", err)
		return err
	}

	return nil
}
