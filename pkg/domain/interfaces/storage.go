package interfaces

import (
	"context"
	"io"
)

// FileStorage is the external collaborator holding uploaded files (property
// media, partnership documents, quote attachments). The workflow core only
// tracks the returned paths.
type FileStorage interface {
	// Store writes the content under prefix and returns the storage path
	Store(ctx context.Context, prefix, name string, content io.Reader) (string, error)

	// Delete removes a stored file. Deleting a missing file is not an error.
	Delete(ctx context.Context, path string) error

	// Open reads a stored file back
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}
