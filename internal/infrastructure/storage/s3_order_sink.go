package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/BonMercato/wunder/internal/domain/integration"
	infraconfig "github.com/BonMercato/wunder/internal/infrastructure/config"
)

var _ integration.OrderSink = (*S3OrderSink)(nil)

// objectPutter is the subset of the S3 client used by the sink
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3OrderSink uploads each order document to an S3-compatible bucket
// (AWS S3, MinIO, RustFS, ...) under <prefix>/<order file name>.
type S3OrderSink struct {
	client objectPutter
	bucket string
	prefix string
	sinkOptions
}

// NewS3OrderSink creates an S3OrderSink from the archive configuration.
// Without static keys the default AWS credential chain is used.
func NewS3OrderSink(ctx context.Context, cfg *infraconfig.ArchiveConfig, opts ...Option) (*S3OrderSink, error) {
	if cfg == nil {
		return nil, errors.New("archive configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("archive bucket is required")
	}
	if (cfg.AccessKey == "") != (cfg.SecretKey == "") {
		return nil, errors.New("archive access key and secret key must be set together")
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if cfg.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	endpoint := cfg.Endpoint
	if endpoint != "" {
		if _, err := url.ParseRequestURI(endpoint); err != nil {
			return nil, fmt.Errorf("invalid archive endpoint: %w", err)
		}
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return newS3OrderSink(client, cfg.Bucket, cfg.Prefix, opts...), nil
}

func newS3OrderSink(client objectPutter, bucket, prefix string, opts ...Option) *S3OrderSink {
	return &S3OrderSink{
		client:      client,
		bucket:      bucket,
		prefix:      strings.Trim(prefix, "/"),
		sinkOptions: newSinkOptions(opts),
	}
}

// objectKey joins the prefix and the file name
func (s *S3OrderSink) objectKey(name string) string {
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

// Save uploads the order document under a freshly timestamped name and returns its s3:// location
func (s *S3OrderSink) Save(ctx context.Context, order *integration.Order) (string, error) {
	if err := validateOrderID(order.OrderID); err != nil {
		return "", err
	}
	return s.SaveAs(ctx, order, OrderFileName(s.now(), order.OrderID))
}

// SaveAs uploads the order document as <prefix>/<name>, reusing a name chosen by another sink
func (s *S3OrderSink) SaveAs(ctx context.Context, order *integration.Order, name string) (string, error) {
	if err := validateOrderID(order.OrderID); err != nil {
		return "", err
	}
	if err := validateFileName(name); err != nil {
		return "", err
	}

	content, err := EncodeOrder(order)
	if err != nil {
		return "", err
	}

	key := s.objectKey(name)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(content),
		ContentType:   aws.String("application/xml"),
		ContentLength: aws.Int64(int64(len(content))),
	})
	if err != nil {
		return "", fmt.Errorf("storage: failed to upload order %s to s3://%s/%s: %w", order.OrderID, s.bucket, key, err)
	}

	location := "s3://" + s.bucket + "/" + key
	s.logger.Debug("Order archived",
		zap.String("order_id", order.OrderID),
		zap.String("location", location),
	)
	return location, nil
}
