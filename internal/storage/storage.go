// Package storage holds uploaded product and scribble images in object
// storage.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/giftgrug/giftgrug/internal/config"
)

// MaxImageSize caps uploaded images at 5MB
const MaxImageSize = 5 << 20

// presignExpiry is how long presigned object URLs stay valid
const presignExpiry = time.Hour

// Storage provides object storage operations for images
type Storage struct {
	client        *minio.Client
	bucketName    string
	publicBaseURL string
}

// New creates a new storage client and ensures the bucket exists
func New(cfg config.StorageConfig) (*Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{
			Region: cfg.Region,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &Storage{
		client:        client,
		bucketName:    cfg.BucketName,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
	}, nil
}

// UploadImage stores an image under the given prefix and returns its object
// name. The content type must be an image type and the size must fit under
// MaxImageSize.
func (s *Storage) UploadImage(ctx context.Context, prefix string, reader io.Reader, size int64, contentType string) (string, error) {
	if !ValidImageType(contentType) {
		return "", fmt.Errorf("unsupported image type: %s", contentType)
	}
	if size <= 0 || size > MaxImageSize {
		return "", fmt.Errorf("image size %d out of range", size)
	}

	objectName := path.Join(prefix, uuid.New().String()+extensionFor(contentType))

	_, err := s.client.PutObject(ctx, s.bucketName, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return objectName, nil
}

// Download retrieves an object from storage
func (s *Storage) Download(ctx context.Context, objectName string) (io.ReadCloser, error) {
	object, err := s.client.GetObject(ctx, s.bucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to download object: %w", err)
	}

	return object, nil
}

// Delete deletes an object from storage
func (s *Storage) Delete(ctx context.Context, objectName string) error {
	err := s.client.RemoveObject(ctx, s.bucketName, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}

	return nil
}

// PublicURL returns the browser-facing URL for an object. Without a
// configured base URL a presigned URL is generated instead.
func (s *Storage) PublicURL(ctx context.Context, objectName string) (string, error) {
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + objectName, nil
	}

	url, err := s.client.PresignedGetObject(ctx, s.bucketName, objectName, presignExpiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate URL: %w", err)
	}

	return url.String(), nil
}

// List lists objects with a prefix
func (s *Storage) List(ctx context.Context, prefix string) ([]string, error) {
	var objects []string

	for object := range s.client.ListObjects(ctx, s.bucketName, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if object.Err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", object.Err)
		}
		objects = append(objects, object.Key)
	}

	return objects, nil
}

// ValidImageType reports whether the content type is an accepted image type
func ValidImageType(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/png", "image/webp", "image/gif":
		return true
	default:
		return false
	}
}

// extensionFor returns the file extension for an image content type
func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ""
	}
}
