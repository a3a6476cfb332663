package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"go-storefront-backend/pkg/retry"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Config holds connection settings for the S3-compatible storage
// backend. Supabase Storage exposes one at
// https://<project>.supabase.co/storage/v1/s3.
type Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	SupabaseURL     string // base project URL, used to build public object URLs
}

// Uploader writes objects to the product-images and advertisements
// buckets.
type Uploader struct {
	client      *s3.Client
	supabaseURL string
	retryPolicy retry.Policy
}

func NewUploader(ctx context.Context, cfg Config) (*Uploader, error) {
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, fmt.Errorf("storage: missing S3 credentials")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			// Supabase Storage requires path-style addressing
			o.UsePathStyle = true
		}
	})

	policy := retry.DefaultPolicy()
	policy.BaseDelay = 500 * time.Millisecond

	return &Uploader{
		client:      client,
		supabaseURL: strings.TrimRight(cfg.SupabaseURL, "/"),
		retryPolicy: policy,
	}, nil
}

// Put uploads an object and returns its public URL. Transient network
// failures are retried; anything the backend rejects outright is not.
func (u *Uploader) Put(ctx context.Context, bucket, key, contentType string, data []byte) (string, error) {
	err := retry.Do(ctx, u.retryPolicy, func(ctx context.Context) error {
		_, putErr := u.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(data),
			ContentType: aws.String(contentType),
		})
		return putErr
	})
	if err != nil {
		return "", fmt.Errorf("storage: upload %s/%s: %w", bucket, key, err)
	}

	return u.PublicURL(bucket, key), nil
}

// Delete removes an object. Missing objects are not an error.
func (u *Uploader) Delete(ctx context.Context, bucket, key string) error {
	_, err := u.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("storage: delete %s/%s: %w", bucket, key, err)
	}
	return nil
}

// PublicURL builds the Supabase public object URL for a key.
func (u *Uploader) PublicURL(bucket, key string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", u.supabaseURL, bucket, key)
}

// HealthCheck lists one object to confirm bucket access.
func (u *Uploader) HealthCheck(ctx context.Context, bucket string) error {
	_, err := u.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(bucket),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return fmt.Errorf("storage: failed to access bucket %s: %w", bucket, err)
	}
	return nil
}
