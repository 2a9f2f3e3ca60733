package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/octobak/pkg/domain/types"
	"github.com/m-mizutani/octobak/pkg/infra/s3"
	"github.com/urfave/cli/v3"
)

type S3 struct {
	bucket          string
	prefix          string
	region          string
	endpoint        string
	accessKeyID     string
	secretAccessKey types.AWSSecretKey `masq:"secret"`
	pathStyle       bool
}

func (x *S3) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "s3-bucket",
			Usage:       "S3 bucket to mirror archives into. Mirroring is disabled if empty",
			Category:    "S3",
			Destination: &x.bucket,
			Sources:     cli.EnvVars("OCTOBAK_S3_BUCKET"),
		},
		&cli.StringFlag{
			Name:        "s3-prefix",
			Usage:       "Key prefix of mirrored archives",
			Category:    "S3",
			Destination: &x.prefix,
			Sources:     cli.EnvVars("OCTOBAK_S3_PREFIX"),
		},
		&cli.StringFlag{
			Name:        "s3-region",
			Usage:       "AWS region of the bucket",
			Category:    "S3",
			Destination: &x.region,
			Sources:     cli.EnvVars("OCTOBAK_S3_REGION", "AWS_REGION"),
		},
		&cli.StringFlag{
			Name:        "s3-endpoint",
			Usage:       "Endpoint of an S3 compatible storage",
			Category:    "S3",
			Destination: &x.endpoint,
			Sources:     cli.EnvVars("OCTOBAK_S3_ENDPOINT"),
		},
		&cli.StringFlag{
			Name:        "s3-access-key-id",
			Usage:       "Access key ID. The default credential chain is used if empty",
			Category:    "S3",
			Destination: &x.accessKeyID,
			Sources:     cli.EnvVars("OCTOBAK_S3_ACCESS_KEY_ID"),
		},
		&cli.StringFlag{
			Name:        "s3-secret-access-key",
			Usage:       "Secret access key",
			Category:    "S3",
			Destination: (*string)(&x.secretAccessKey),
			Sources:     cli.EnvVars("OCTOBAK_S3_SECRET_ACCESS_KEY"),
		},
		&cli.BoolFlag{
			Name:        "s3-path-style",
			Usage:       "Use path style addressing",
			Category:    "S3",
			Destination: &x.pathStyle,
			Sources:     cli.EnvVars("OCTOBAK_S3_PATH_STYLE"),
		},
	}
}

// NewMirror returns nil without error when no bucket is configured
func (x S3) NewMirror(ctx context.Context) (*s3.Mirror, error) {
	if x.bucket == "" {
		return nil, nil
	}

	options := []s3.Option{
		s3.WithPathStyle(x.pathStyle),
	}
	if x.region != "" {
		options = append(options, s3.WithRegion(x.region))
	}
	if x.endpoint != "" {
		options = append(options, s3.WithEndpoint(x.endpoint))
	}
	if x.accessKeyID != "" {
		options = append(options, s3.WithStaticCredentials(x.accessKeyID, x.secretAccessKey))
	}

	return s3.New(ctx, x.bucket, x.prefix, options...)
}

func (x S3) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("Bucket", x.bucket),
		slog.String("Prefix", x.prefix),
		slog.String("Region", x.region),
		slog.String("Endpoint", x.endpoint),
		slog.String("AccessKeyID", x.accessKeyID),
		slog.Int("SecretAccessKey.len", len(x.secretAccessKey)),
	)
}
