package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"time"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"

	"github.com/teranga-immo/teranga/pkg/domain/interfaces"
	"github.com/teranga-immo/teranga/pkg/domain/types"
	"github.com/teranga-immo/teranga/pkg/utils/safe"
)

// GCS stores uploaded files in a Google Cloud Storage bucket
type GCS struct {
	client *storage.Client
	bucket string
}

var _ interfaces.FileStorage = &GCS{}

func NewGCS(ctx context.Context, bucket string) (*GCS, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client", goerr.V("bucket", bucket))
	}
	return &GCS{
		client: client,
		bucket: bucket,
	}, nil
}

func (s *GCS) Store(ctx context.Context, prefix, name string, content io.Reader) (string, error) {
	objectPath := path.Join(prefix, time.Now().UTC().Format("20060102"), string(types.NewPublicID())+"_"+name)

	w := s.client.Bucket(s.bucket).Object(objectPath).NewWriter(ctx)
	if _, err := io.Copy(w, content); err != nil {
		safe.Close(ctx, w)
		return "", goerr.Wrap(err, "failed to write object", goerr.V("path", objectPath))
	}
	if err := w.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to finalize object", goerr.V("path", objectPath))
	}

	return objectPath, nil
}

func (s *GCS) Delete(ctx context.Context, objectPath string) error {
	err := s.client.Bucket(s.bucket).Object(objectPath).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return goerr.Wrap(err, "failed to delete object", goerr.V("path", objectPath))
	}
	return nil
}

func (s *GCS) Open(ctx context.Context, objectPath string) (io.ReadCloser, error) {
	r, err := s.client.Bucket(s.bucket).Object(objectPath).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, goerr.Wrap(types.ErrNotFound, "object not found", goerr.V("path", objectPath))
		}
		return nil, goerr.Wrap(err, "failed to open object", goerr.V("path", objectPath))
	}
	return r, nil
}

func (s *GCS) Close() error {
	return s.client.Close()
}
