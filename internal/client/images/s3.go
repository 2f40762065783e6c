package images

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// putObjectAPI is the slice of *s3.Client the uploader needs.
type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var loadDefaultAWSConfig = config.LoadDefaultConfig

// S3Options configures an S3Uploader.
type S3Options struct {
	Bucket    string
	Region    string
	Endpoint  string // S3-compatible endpoint, e.g. MinIO; empty for AWS
	BaseURL   string // public prefix of uploaded objects; derived when empty
	AccessKey string
	SecretKey string
	Prefix    string
}

// S3Uploader stores images in a bucket and returns their public URL.
type S3Uploader struct {
	api     putObjectAPI
	bucket  string
	prefix  string
	baseURL string
	maxSize int64
	newKey  func() string
}

// NewS3Uploader builds an uploader from opts. Static credentials are used when
// both keys are set, otherwise the default AWS credential chain.
func NewS3Uploader(ctx context.Context, opts S3Options) (*S3Uploader, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("s3 uploader: bucket is required")
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(opts.Region)}
	if opts.AccessKey != "" && opts.SecretKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	cfg, err := loadDefaultAWSConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return newS3Uploader(client, opts), nil
}

func newS3Uploader(api putObjectAPI, opts S3Options) *S3Uploader {
	prefix := strings.Trim(opts.Prefix, "/")
	if prefix == "" {
		prefix = "services"
	}
	return &S3Uploader{
		api:     api,
		bucket:  opts.Bucket,
		prefix:  prefix,
		baseURL: publicBaseURL(opts),
		maxSize: MaxFileSize,
		newKey:  uuid.NewString,
	}
}

func publicBaseURL(opts S3Options) string {
	switch {
	case opts.BaseURL != "":
		return strings.TrimRight(opts.BaseURL, "/")
	case opts.Endpoint != "":
		return strings.TrimRight(opts.Endpoint, "/") + "/" + opts.Bucket
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", opts.Bucket, opts.Region)
	}
}

// Encode uploads the file at path and returns the object's public URL.
func (u *S3Uploader) Encode(ctx context.Context, path string) (string, error) {
	data, mime, err := readImage(path, u.maxSize)
	if err != nil {
		return "", err
	}

	key := u.prefix + "/" + u.newKey() + strings.ToLower(filepath.Ext(path))

	_, err = u.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(mime),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return u.baseURL + "/" + key, nil
}
