package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStorage implements Storage using a MinIO (or any S3-compatible)
// backend. Locally this points at LocalStack or MinIO; in the cloud, at the
// real S3 endpoint — only STORAGE_ENDPOINT and credentials change.
type MinioStorage struct {
	client *minio.Client
	bucket string
}

var _ Storage = (*MinioStorage)(nil)

// NewMinioStorage creates a MinIO client, ensures the bucket exists, and
// returns a ready-to-use MinioStorage. The client is safe for concurrent use.
func NewMinioStorage(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MinioStorage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ctx := context.Background()

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %q: %w", bucket, err)
		}
		log.Printf("storage: created bucket %q", bucket)
	}

	return &MinioStorage{client: client, bucket: bucket}, nil
}

// Upload streams reader to the bucket under key. size must be the exact byte
// count (pass -1 only if the size is genuinely unknown — MinIO will buffer it).
// A put to an existing key replaces the object in place.
func (s *MinioStorage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("put object %q: %w", key, err)
	}
	return nil
}

// Fetch returns the object body at key. Missing objects surface as
// ErrObjectNotFound so callers can distinguish absence from storage failure.
func (s *MinioStorage) Fetch(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %q: %w", key, err)
	}
	// GetObject is lazy; Stat forces the request so a missing key is
	// reported here rather than on first read.
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" {
			return nil, fmt.Errorf("object %q: %w", key, ErrObjectNotFound)
		}
		return nil, fmt.Errorf("stat object %q: %w", key, err)
	}
	return obj, nil
}

// Delete removes the object at key from the bucket.
func (s *MinioStorage) Delete(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

// IsNotFound reports whether err indicates a missing object.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrObjectNotFound)
}
