package s3

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/octobak/pkg/domain/interfaces"
	"github.com/m-mizutani/octobak/pkg/domain/types"
	"github.com/m-mizutani/octobak/pkg/utils/logging"
	"github.com/m-mizutani/octobak/pkg/utils/safe"
)

// Mirror copies archives into an S3 bucket. Objects are write-once like local archives: an
// existing key is never overwritten.
type Mirror struct {
	client   *awss3.Client
	uploader *manager.Uploader
	bucket   string
	prefix   string
}

var _ interfaces.Mirror = (*Mirror)(nil)

type config struct {
	region       string
	endpoint     string
	accessKeyID  string
	secretKey    types.AWSSecretKey
	usePathStyle bool
}

type Option func(*config)

func WithRegion(region string) Option {
	return func(c *config) {
		c.region = region
	}
}

// WithEndpoint points the client to an S3 compatible service (MinIO, localstack)
func WithEndpoint(endpoint string) Option {
	return func(c *config) {
		c.endpoint = endpoint
	}
}

// WithStaticCredentials uses the given key pair instead of the default credential chain
func WithStaticCredentials(accessKeyID string, secretKey types.AWSSecretKey) Option {
	return func(c *config) {
		c.accessKeyID = accessKeyID
		c.secretKey = secretKey
	}
}

func WithPathStyle(enabled bool) Option {
	return func(c *config) {
		c.usePathStyle = enabled
	}
}

func New(ctx context.Context, bucket, prefix string, options ...Option) (*Mirror, error) {
	if bucket == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "S3 bucket is empty")
	}

	cfg := &config{}
	for _, opt := range options {
		opt(cfg)
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.region))
	}
	if cfg.accessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.accessKeyID, string(cfg.secretKey), ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load AWS config")
	}

	client := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		if cfg.endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.endpoint)
		}
		o.UsePathStyle = cfg.usePathStyle
	})

	return &Mirror{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   bucket,
		prefix:   prefix,
	}, nil
}

func (x *Mirror) objectKey(key string) string {
	if x.prefix == "" {
		return key
	}
	return path.Join(x.prefix, key)
}

func (x *Mirror) location(objKey string) string {
	return "s3://" + x.bucket + "/" + objKey
}

// Sync uploads localPath as key unless the object already exists.
func (x *Mirror) Sync(ctx context.Context, localPath, key string) (string, bool, error) {
	objKey := x.objectKey(key)
	loc := x.location(objKey)

	exists, err := x.exists(ctx, objKey)
	if err != nil {
		return "", false, err
	}
	if exists {
		logging.From(ctx).Debug("Object already mirrored", slog.String("location", loc))
		return loc, false, nil
	}

	fd, err := os.Open(localPath)
	if err != nil {
		return "", false, goerr.Wrap(types.ErrIO, "failed to open archive for mirroring",
			goerr.V("path", localPath),
			goerr.V("error", err.Error()),
		)
	}
	defer safe.Close(fd)

	if _, err := x.uploader.Upload(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(x.bucket),
		Key:         aws.String(objKey),
		Body:        fd,
		ContentType: aws.String("application/zip"),
	}); err != nil {
		return "", false, goerr.Wrap(err, "failed to upload archive", goerr.V("location", loc))
	}

	return loc, true, nil
}

func (x *Mirror) exists(ctx context.Context, objKey string) (bool, error) {
	_, err := x.client.HeadObject(ctx, &awss3.HeadObjectInput{
		Bucket: aws.String(x.bucket),
		Key:    aws.String(objKey),
	})
	if err == nil {
		return true, nil
	}

	var notFound *s3types.NotFound
	if errors.As(err, &notFound) {
		return false, nil
	}
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() == http.StatusNotFound {
		return false, nil
	}

	return false, goerr.Wrap(err, "failed to check mirrored object",
		goerr.V("bucket", x.bucket),
		goerr.V("key", objKey),
	)
}
