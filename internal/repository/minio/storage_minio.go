package minio

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/roamly/vacations-api/internal/repository/ports"
)

func NewClient(endpoint, key, secret string, useSSL bool) (*minio.Client, error) {
	return minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(key, secret, ""),
		Secure: useSSL,
	})
}

// Storage stores objects in MinIO and hands back URLs built from the
// public base, which may differ from the internal endpoint.
type Storage struct {
	client    *minio.Client
	publicURL string
}

func NewStorage(client *minio.Client, publicURL string) *Storage {
	return &Storage{
		client:    client,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

// EnsureBucket creates the bucket when missing. Safe to call at startup.
func (s *Storage) EnsureBucket(ctx context.Context, bucket string) error {
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("check bucket %q: %w", bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %q: %w", bucket, err)
	}
	return nil
}

func (s *Storage) Upload(ctx context.Context, bucket, objectName, contentType string, reader io.Reader, size int64) (string, error) {
	_, err := s.client.PutObject(ctx, bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("put object %q: %w", objectName, err)
	}
	return s.objectURL(bucket, objectName), nil
}

// objectURL joins the public base with bucket and object name. The base
// must not already contain the bucket segment.
func (s *Storage) objectURL(bucket, objectName string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicURL, bucket, objectName)
}

var _ ports.ObjectStorage = (*Storage)(nil)
