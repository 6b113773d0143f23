package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	appconfig "github.com/ayush-kumar-github/backendcodeecom/internal/config"
)

// Asset identifies an externally stored file and its retrieval URL.
type Asset struct {
	ID  string
	URL string
}

// AssetStorage is the asset-host contract: upload a file, destroy it by id.
type AssetStorage interface {
	Upload(ctx context.Context, body io.Reader, contentType string) (*Asset, error)
	Destroy(ctx context.Context, assetID string) error
}

// S3AssetStorage stores avatars in an S3 bucket. The asset id is the
// object key, so Destroy maps directly to DeleteObject.
type S3AssetStorage struct {
	client    *s3.Client
	bucket    string
	keyPrefix string
	urlBase   string
	region    string
	logger    *slog.Logger
}

// NewS3AssetStorage creates an S3-backed asset store.
func NewS3AssetStorage(cfg *appconfig.StorageConfig, logger *slog.Logger) (*S3AssetStorage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3AssetStorage{
		client:    s3.NewFromConfig(awsCfg),
		bucket:    cfg.Bucket,
		keyPrefix: strings.Trim(cfg.KeyPrefix, "/"),
		urlBase:   strings.TrimRight(cfg.PublicURLBase, "/"),
		region:    cfg.AWSRegion,
		logger:    logger,
	}, nil
}

// Upload stores the file under a fresh key and returns its asset reference.
func (s *S3AssetStorage) Upload(ctx context.Context, body io.Reader, contentType string) (*Asset, error) {
	key := fmt.Sprintf("%s/%s", s.keyPrefix, uuid.New().String())

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		s.logger.Error("failed to upload asset", slog.String("key", key), slog.Any("error", err))
		return nil, fmt.Errorf("failed to upload asset: %w", err)
	}

	s.logger.Info("asset uploaded", slog.String("key", key))

	return &Asset{ID: key, URL: s.objectURL(key)}, nil
}

// Destroy removes a stored asset by id.
func (s *S3AssetStorage) Destroy(ctx context.Context, assetID string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(assetID),
	})
	if err != nil {
		s.logger.Error("failed to destroy asset", slog.String("key", assetID), slog.Any("error", err))
		return fmt.Errorf("failed to destroy asset: %w", err)
	}

	s.logger.Info("asset destroyed", slog.String("key", assetID))
	return nil
}

func (s *S3AssetStorage) objectURL(key string) string {
	if s.urlBase != "" {
		return s.urlBase + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
