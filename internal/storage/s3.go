package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	cfg "github.com/O-Gamal/FIlePlace/internal/config"
)

// Storage is the object store boundary. File bytes never pass through the
// service tier: callers write straight to a presigned upload target and read
// through presigned download URLs. The storage ID is treated as opaque above
// this package.
type Storage interface {
	// PresignUpload returns a one-time writable target for the given storage ID.
	PresignUpload(storageID string) (string, error)

	// PresignDownload returns a temporary read URL for the given storage ID.
	PresignDownload(storageID string) (string, error)

	// Delete removes the byte payload. Deleting an already-gone payload is
	// not an error.
	Delete(storageID string) error
}

// S3Storage implements Storage for S3-compatible stores.
// Works with AWS S3, MinIO, DigitalOcean Spaces, Cloudflare R2, etc.
type S3Storage struct {
	client         *s3.Client
	presignClient  *s3.PresignClient
	bucket         string
	expiryUpload   time.Duration
	expiryDownload time.Duration
}

// S3Config holds configuration for S3 storage
type S3Config struct {
	Region         string
	Bucket         string
	AccessKey      string
	SecretKey      string
	Endpoint       string // Optional: for S3-compatible services
	ExpiryUpload   time.Duration
	ExpiryDownload time.Duration
}

// New creates an S3-compatible storage instance from app config
func New(c *cfg.Config) (Storage, error) {
	slog.Info("initializing S3 storage",
		"bucket", c.S3Bucket,
		"region", c.S3Region,
		"endpoint", c.S3Endpoint,
	)
	return NewS3Storage(S3Config{
		Region:         c.S3Region,
		Bucket:         c.S3Bucket,
		AccessKey:      c.S3AccessKey,
		SecretKey:      c.S3SecretKey,
		Endpoint:       c.S3Endpoint,
		ExpiryUpload:   c.S3PresignExpiryUpload,
		ExpiryDownload: c.S3PresignExpiryDownload,
	})
}

// NewS3Storage creates a new S3 storage instance
func NewS3Storage(cfg S3Config) (*S3Storage, error) {
	ctx := context.Background()

	var opts []func(*config.LoadOptions) error
	opts = append(opts, config.WithRegion(cfg.Region))

	// Add static credentials if provided
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	// Create S3 client with optional custom endpoint
	var client *s3.Client
	if cfg.Endpoint != "" {
		client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true // Required for MinIO and some S3-compatible services
		})
	} else {
		client = s3.NewFromConfig(awsCfg)
	}

	storage := &S3Storage{
		client:         client,
		presignClient:  s3.NewPresignClient(client),
		bucket:         cfg.Bucket,
		expiryUpload:   cfg.ExpiryUpload,
		expiryDownload: cfg.ExpiryDownload,
	}

	// Auto-create bucket if it doesn't exist
	if err := storage.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	return storage, nil
}

// ensureBucket checks if bucket exists, creates it if not
func (s *S3Storage) ensureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return nil // Bucket exists
	}

	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		return fmt.Errorf("bucket %q does not exist and could not be created: %w", s.bucket, err)
	}

	slog.Info("created S3 bucket", "bucket", s.bucket)
	return nil
}

// PresignUpload returns a presigned PUT URL the caller writes bytes to
func (s *S3Storage) PresignUpload(storageID string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := s.presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(storageID),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = s.expiryUpload
	})
	if err != nil {
		return "", fmt.Errorf("failed to presign upload: %w", err)
	}

	return req.URL, nil
}

// PresignDownload returns a presigned GET URL for temporary read access
func (s *S3Storage) PresignDownload(storageID string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(storageID),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = s.expiryDownload
	})
	if err != nil {
		return "", fmt.Errorf("failed to presign download: %w", err)
	}

	return req.URL, nil
}

// Delete removes a byte payload from S3. S3 DeleteObject is idempotent, so a
// payload that is already gone does not surface an error.
func (s *S3Storage) Delete(storageID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(storageID),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}

	return nil
}
