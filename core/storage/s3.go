package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"metra-api/core/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Storage uploads objects to an S3 (or S3-compatible) bucket.
type Storage struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

type StorageConfig struct {
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	// Endpoint overrides the AWS endpoint for S3-compatible stores.
	Endpoint string
	// PublicURL is the base URL objects are served from; defaults to the
	// bucket's virtual-hosted AWS URL.
	PublicURL string
}

// InitStorage builds the S3 client. A nil Storage with nil error means object
// storage is not configured and uploads are unavailable.
func InitStorage(config StorageConfig) (*Storage, error) {
	if config.Bucket == "" {
		logger.Info("Object storage not configured, uploads disabled")
		return nil, nil
	}

	options := s3.Options{
		Region:      config.Region,
		Credentials: credentials.NewStaticCredentialsProvider(config.AccessKey, config.SecretKey, ""),
	}
	if config.Endpoint != "" {
		options.BaseEndpoint = aws.String(config.Endpoint)
		options.UsePathStyle = true
	}

	publicURL := config.PublicURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", config.Bucket, config.Region)
	}

	logger.Info("Object storage initialized", "bucket", config.Bucket, "region", config.Region)
	return &Storage{
		client:    s3.New(options),
		bucket:    config.Bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

// Upload stores the object and returns its public URL.
func (s *Storage) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		logger.Error("Storage:Upload:Error:", err, "key", key)
		return "", err
	}
	return s.publicURL + "/" + key, nil
}
