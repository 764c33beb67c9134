package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/teranga-immo/teranga/pkg/domain/interfaces"
	"github.com/teranga-immo/teranga/pkg/domain/types"
)

// Local stores uploaded files under a base directory. Intended for local
// development and tests.
type Local struct {
	baseDir string
}

var _ interfaces.FileStorage = &Local{}

func NewLocal(baseDir string) (*Local, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, goerr.Wrap(err, "failed to create storage directory", goerr.V("dir", baseDir))
	}
	return &Local{baseDir: baseDir}, nil
}

func (s *Local) Store(ctx context.Context, prefix, name string, content io.Reader) (string, error) {
	relPath := filepath.Join(prefix, time.Now().UTC().Format("20060102"), string(types.NewPublicID())+"_"+name)
	fullPath := filepath.Join(s.baseDir, relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", goerr.Wrap(err, "failed to create directory", goerr.V("path", fullPath))
	}

	f, err := os.Create(fullPath)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create file", goerr.V("path", fullPath))
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		return "", goerr.Wrap(err, "failed to write file", goerr.V("path", fullPath))
	}

	return relPath, nil
}

func (s *Local) Delete(ctx context.Context, relPath string) error {
	err := os.Remove(filepath.Join(s.baseDir, relPath))
	if err != nil && !os.IsNotExist(err) {
		return goerr.Wrap(err, "failed to delete file", goerr.V("path", relPath))
	}
	return nil
}

func (s *Local) Open(ctx context.Context, relPath string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.baseDir, relPath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(types.ErrNotFound, "file not found", goerr.V("path", relPath))
		}
		return nil, goerr.Wrap(err, "failed to open file", goerr.V("path", relPath))
	}
	return f, nil
}
