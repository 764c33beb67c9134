package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/teranga-immo/teranga/pkg/domain/interfaces"
	"github.com/teranga-immo/teranga/pkg/service/storage"
	"github.com/teranga-immo/teranga/pkg/utils/logging"
)

// Storage holds CLI flags for file storage configuration
type Storage struct {
	backend string
	bucket  string
	baseDir string
}

// Flags returns CLI flags for storage configuration
func (s *Storage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "storage-backend",
			Usage:       "File storage backend (gcs or local)",
			Value:       "local",
			Sources:     cli.EnvVars("TERANGA_STORAGE_BACKEND"),
			Destination: &s.backend,
		},
		&cli.StringFlag{
			Name:        "storage-bucket",
			Usage:       "GCS bucket name (required when using gcs backend)",
			Sources:     cli.EnvVars("TERANGA_STORAGE_BUCKET"),
			Destination: &s.bucket,
		},
		&cli.StringFlag{
			Name:        "storage-dir",
			Usage:       "Base directory for local file storage",
			Value:       "./data/uploads",
			Sources:     cli.EnvVars("TERANGA_STORAGE_DIR"),
			Destination: &s.baseDir,
		},
	}
}

// Configure initializes the configured file storage backend
func (s *Storage) Configure(ctx context.Context) (interfaces.FileStorage, error) {
	switch s.backend {
	case "gcs":
		if s.bucket == "" {
			return nil, goerr.New("storage-bucket is required when using gcs backend")
		}
		store, err := storage.NewGCS(ctx, s.bucket)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize GCS storage")
		}
		logging.Default().Info("Using GCS file storage", "bucket", s.bucket)
		return store, nil

	case "local":
		store, err := storage.NewLocal(s.baseDir)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize local storage")
		}
		logging.Default().Info("Using local file storage", "dir", s.baseDir)
		return store, nil

	default:
		return nil, goerr.New("invalid storage backend", goerr.V("backend", s.backend))
	}
}
