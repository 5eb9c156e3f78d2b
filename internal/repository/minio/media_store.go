package minio

import (
	"bytes"
	"context"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/tripnest/vacation-api/internal/media"
)

func NewClient(endpoint, key, secret string, useSSL bool) (*minio.Client, error) {
	return minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(key, secret, ""),
		Secure: useSSL,
	})
}

// stagingPrefix separates not-yet-committed uploads from published objects
// within the same bucket.
const stagingPrefix = "staging/"

// MediaStore implements the staged media protocol on top of a MinIO bucket.
// Promote is a server-side copy followed by a delete of the staged object.
type MediaStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
	maxBytes  int64
}

func NewMediaStore(client *minio.Client, bucket, publicURL string, maxBytes int64) *MediaStore {
	return &MediaStore{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
		maxBytes:  maxBytes,
	}
}

func (s *MediaStore) Stage(ctx context.Context, upload media.Upload) (string, error) {
	data, err := media.ReadImage(upload, s.maxBytes)
	if err != nil {
		return "", err
	}
	name := media.ObjectName(upload.FileName)
	_, err = s.client.PutObject(ctx, s.bucket, stagingPrefix+name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: upload.ContentType,
	})
	if err != nil {
		return "", err
	}
	return name, nil
}

func (s *MediaStore) Promote(ctx context.Context, name string) error {
	_, err := s.client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: s.bucket, Object: name},
		minio.CopySrcOptions{Bucket: s.bucket, Object: stagingPrefix + name})
	if err != nil {
		return err
	}
	return s.client.RemoveObject(ctx, s.bucket, stagingPrefix+name, minio.RemoveObjectOptions{})
}

func (s *MediaStore) Discard(ctx context.Context, name string) error {
	return s.client.RemoveObject(ctx, s.bucket, stagingPrefix+name, minio.RemoveObjectOptions{})
}

func (s *MediaStore) Remove(ctx context.Context, name string) error {
	return s.client.RemoveObject(ctx, s.bucket, name, minio.RemoveObjectOptions{})
}

func (s *MediaStore) URL(name string) string {
	return s.publicURL + "/" + s.bucket + "/" + name
}

var _ media.Store = (*MediaStore)(nil)
