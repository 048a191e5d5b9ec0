package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Content types for uploaded artifacts.
const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePNG  = "image/png"
)

// ErrNoBucket is returned when an upload is attempted without a bucket.
var ErrNoBucket = errors.New("export: no S3 bucket configured")

// ObjectPutter is the part of the S3 client the uploader needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Uploader writes exported files under a bucket prefix.
type Uploader struct {
	client ObjectPutter
	bucket string
	prefix string
	logger *slog.Logger
}

// NewUploader wraps an existing client.
func NewUploader(client ObjectPutter, bucket, prefix string, logger *slog.Logger) (*Uploader, error) {
	if bucket == "" {
		return nil, ErrNoBucket
	}
	return &Uploader{client: client, bucket: bucket, prefix: prefix, logger: logger}, nil
}

// NewS3Uploader builds an uploader from the default AWS credential chain.
func NewS3Uploader(ctx context.Context, bucket, prefix string, logger *slog.Logger) (*Uploader, error) {
	if bucket == "" {
		return nil, ErrNoBucket
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("export: load AWS config: %w", err)
	}
	return NewUploader(s3.NewFromConfig(cfg), bucket, prefix, logger)
}

// Key returns the object key for name, stamped with the export time so
// repeated exports never overwrite each other.
func (u *Uploader) Key(name string, at time.Time) string {
	return path.Join(u.prefix, at.UTC().Format("20060102T150405Z"), name)
}

// Upload stores data and returns its object key.
func (u *Uploader) Upload(ctx context.Context, name, contentType string, data []byte, at time.Time) (string, error) {
	key := u.Key(name, at)
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		u.logger.ErrorContext(ctx, "Failed to upload export",
			attr.String("bucket", u.bucket),
			attr.String("key", key),
			attr.Error(err),
		)
		return "", fmt.Errorf("export: put s3://%s/%s: %w", u.bucket, key, err)
	}
	u.logger.InfoContext(ctx, "Uploaded export",
		attr.String("bucket", u.bucket),
		attr.String("key", key),
		attr.Int("bytes", len(data)),
	)
	return key, nil
}
