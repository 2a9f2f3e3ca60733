package config

import (
	"log/slog"

	"github.com/m-mizutani/octobak/pkg/domain/model"
	"github.com/m-mizutani/octobak/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

type Target struct {
	owner     string
	ownerType string
	outputDir string
}

func (x *Target) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "owner",
			Usage:       "GitHub user or organization whose repositories are backed up",
			Category:    "Target",
			Destination: &x.owner,
			Sources:     cli.EnvVars("OCTOBAK_OWNER"),
			Required:    true,
		},
		&cli.StringFlag{
			Name:        "owner-type",
			Usage:       "Type of the owner [user|org]",
			Category:    "Target",
			Destination: &x.ownerType,
			Sources:     cli.EnvVars("OCTOBAK_OWNER_TYPE"),
			Value:       "user",
		},
		&cli.StringFlag{
			Name:        "output",
			Usage:       "Directory to store archives",
			Category:    "Target",
			Destination: &x.outputDir,
			Sources:     cli.EnvVars("OCTOBAK_OUTPUT"),
			Value:       "data",
		},
	}
}

// Build validates the flags and returns the backup target
func (x Target) Build() (*model.BackupTarget, error) {
	ownerType, err := types.ParseOwnerType(x.ownerType)
	if err != nil {
		return nil, err
	}

	target := &model.BackupTarget{
		Owner:     x.owner,
		OwnerType: ownerType,
		OutputDir: x.outputDir,
	}
	if err := target.Validate(); err != nil {
		return nil, err
	}
	return target, nil
}

func (x Target) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("Owner", x.owner),
		slog.String("OwnerType", x.ownerType),
		slog.String("OutputDir", x.outputDir),
	)
}
