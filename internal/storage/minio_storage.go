package storage

import (
	"context"
	"io"
	"log"
	"strings"

	"github.com/fellrun/content-pipeline/internal/port"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStorage is the remote asset store gateway. One instance per build
// invocation, always injected, never global.
type MinioStorage struct {
	client        minioClient
	bucketName    string
	publicBaseURL string
}

// compile-time check: *MinioStorage must satisfy port.Storage
var _ port.Storage = (*MinioStorage)(nil)

// NewStorage initialises the minio client and makes sure the bucket exists,
// creating it when absent.
func NewStorage(endpoint, accessKey, secretKey string, useSSL bool, bucket, publicBaseURL string) (*MinioStorage, error) {
	log.Println("initialising minio client...")
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, mapMinioErr(err)
	}

	s := &MinioStorage{
		client:        client,
		bucketName:    bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
	if err := s.initBucket(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *MinioStorage) initBucket(ctx context.Context) error {
	ok, err := s.client.BucketExists(ctx, s.bucketName)
	if err != nil {
		return mapMinioErr(err)
	}
	if !ok {
		log.Printf("bucket %q does not exist, creating it...", s.bucketName)
		if err := s.client.MakeBucket(ctx, s.bucketName, minio.MakeBucketOptions{}); err != nil {
			return mapMinioErr(err)
		}
	}
	return nil
}

// StatObject probes for an object by key. A clean miss surfaces as
// content.ErrObjectNotFound; user metadata keys are lowercased because the
// store canonicalises header casing on the way back.
func (s *MinioStorage) StatObject(ctx context.Context, objectKey string) (port.ObjectInfo, error) {
	info, err := s.client.StatObject(ctx, s.bucketName, objectKey, minio.StatObjectOptions{})
	if err != nil {
		return port.ObjectInfo{}, mapMinioErr(err)
	}

	meta := make(map[string]string, len(info.UserMetadata))
	for k, v := range info.UserMetadata {
		meta[strings.ToLower(k)] = v
	}
	return port.ObjectInfo{
		SizeBytes:    info.Size,
		ContentType:  info.ContentType,
		UserMetadata: meta,
	}, nil
}

// SaveObject uploads the asset bytes with its metadata side-record. Callers
// stat first and never overwrite an existing key.
func (s *MinioStorage) SaveObject(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string, userMetadata map[string]string) error {
	log.Printf("saving object %q into bucket %q...", objectKey, s.bucketName)

	_, err := s.client.PutObject(ctx, s.bucketName, objectKey, reader, size, minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: userMetadata,
	})
	if err != nil {
		return mapMinioErr(err)
	}
	return nil
}

// PublicURL derives the delivery URL for a key. Always derived, never stored.
func (s *MinioStorage) PublicURL(objectKey string) string {
	return s.publicBaseURL + "/" + objectKey
}
