package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"photoshare/api/internal/config"
)

// ObjectStore keeps the original upload bytes in an S3-compatible bucket.
// Transformed variants are never stored here; they live behind the media
// host's URLs.
type ObjectStore struct {
	client *minio.Client
	cfg    config.StorageConfig
}

func NewObjectStore(cfg config.StorageConfig) (*ObjectStore, error) {
	endpoint := cfg.Endpoint
	useSSL := cfg.UseSSL

	if strings.HasPrefix(endpoint, "http") {
		u, err := url.Parse(endpoint)
		if err != nil {
			return nil, fmt.Errorf("parse endpoint: %w", err)
		}
		endpoint = u.Host
		useSSL = u.Scheme == "https"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: useSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio: %w", err)
	}

	return &ObjectStore{
		client: client,
		cfg:    cfg,
	}, nil
}

func (s *ObjectStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.cfg.BucketOriginals)
	if err != nil {
		return fmt.Errorf("bucket exists %s: %w", s.cfg.BucketOriginals, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.cfg.BucketOriginals, minio.MakeBucketOptions{Region: s.cfg.Region}); err != nil {
			return fmt.Errorf("create bucket %s: %w", s.cfg.BucketOriginals, err)
		}
	}
	return nil
}

// PutOriginal stores an upload and returns its public URL.
func (s *ObjectStore) PutOriginal(ctx context.Context, objectKey string, data []byte, contentType string) (string, error) {
	reader := bytes.NewReader(data)
	options := minio.PutObjectOptions{ContentType: contentType}

	if _, err := s.client.PutObject(ctx, s.cfg.BucketOriginals, objectKey, reader, int64(len(data)), options); err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return s.PublicURL(objectKey), nil
}

func (s *ObjectStore) PublicURL(objectKey string) string {
	base := strings.TrimSuffix(s.cfg.Endpoint, "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}
	return fmt.Sprintf("%s/%s/%s", base, s.cfg.BucketOriginals, objectKey)
}
