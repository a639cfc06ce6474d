package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gatherly/event-manager/pkg/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStore holds uploaded event images and hands out durable URLs for
// them.
type ObjectStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

func NewObjectStore(c config.ObjectStore) (*ObjectStore, error) {
	if strings.TrimSpace(c.Endpoint) == "" {
		return nil, errors.New("object store endpoint is required")
	}
	if strings.TrimSpace(c.AccessKey) == "" || strings.TrimSpace(c.SecretKey) == "" {
		return nil, errors.New("object store access key and secret key are required")
	}
	if strings.TrimSpace(c.Bucket) == "" {
		return nil, errors.New("object store bucket is required")
	}

	client, err := minio.New(c.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(c.AccessKey, c.SecretKey, ""),
		Secure: c.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	return &ObjectStore{
		client:    client,
		bucket:    c.Bucket,
		publicURL: strings.TrimSuffix(c.PublicURL, "/"),
	}, nil
}

// EnsureBucket ensures the configured bucket exists.
func (s *ObjectStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
}

// Put uploads an object and returns its durable URL.
func (s *ObjectStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, key), nil
}

// Delete removes an object from the configured bucket.
func (s *ObjectStore) Delete(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}
