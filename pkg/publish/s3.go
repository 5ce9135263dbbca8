package publish

import (
	"bytes"
	"context"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/markup/internal/errors"
)

// PutObjectAPI is the subset of *s3.Client used by S3Sink.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink uploads each blob as an object under bucket/prefix.
//
// Example usage:
//
//	client, err := publish.NewS3Client(ctx, "eu-west-1", "")
//	sink := publish.NewS3Sink(client, "my-bucket", "site/")
type S3Sink struct {
	client PutObjectAPI
	bucket string
	prefix string
}

// NewS3Sink creates a new S3 sink.
//
// Parameters:
//   - client: an *s3.Client or any PutObjectAPI
//   - bucket: S3 bucket name
//   - prefix: key prefix (e.g., "docs/")
func NewS3Sink(client PutObjectAPI, bucket, prefix string) *S3Sink {
	return &S3Sink{client: client, bucket: bucket, prefix: prefix}
}

// Key returns the object key a blob named name is stored under.
func (s *S3Sink) Key(name string) string {
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

// Put uploads data with the given content type.
func (s *S3Sink) Put(ctx context.Context, name string, data []byte, contentType string) error {
	key := s.Key(name)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return errors.New("P001").
			WithDetailf("s3://%s/%s", s.bucket, key).
			Wrap(err)
	}
	return nil
}

func (s *S3Sink) String() string { return "s3://" + s.bucket + "/" + s.prefix }

// NewS3Client builds an S3 client for region from the SDK's default
// configuration chain: environment variables, shared config and credentials
// files (AWS_PROFILE), SSO, web identity and instance roles. A non-empty
// endpoint selects an S3-compatible service (MinIO, LocalStack) with
// path-style addressing.
func NewS3Client(ctx context.Context, region, endpoint string) (*s3.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, errors.New("P001").
			WithDetail("loading AWS configuration").
			WithSuggestion("Check AWS_PROFILE and ~/.aws/config").
			Wrap(err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	}), nil
}
