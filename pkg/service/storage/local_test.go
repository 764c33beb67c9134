package storage_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/teranga-immo/teranga/pkg/domain/types"
	"github.com/teranga-immo/teranga/pkg/service/storage"
)

func TestLocalStorage(t *testing.T) {
	ctx := context.Background()
	s, err := storage.NewLocal(t.TempDir())
	gt.NoError(t, err).Required()

	path, err := s.Store(ctx, "properties/42", "plan.pdf", strings.NewReader("pdf-bytes"))
	gt.NoError(t, err).Required()
	gt.String(t, path).Contains("properties/42")
	gt.String(t, path).Contains("plan.pdf")

	r, err := s.Open(ctx, path)
	gt.NoError(t, err).Required()
	data, err := io.ReadAll(r)
	gt.NoError(t, err)
	gt.NoError(t, r.Close())
	gt.String(t, string(data)).Equal("pdf-bytes")

	gt.NoError(t, s.Delete(ctx, path))

	_, err = s.Open(ctx, path)
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()

	// deleting a missing file is not an error
	gt.NoError(t, s.Delete(ctx, path))
}
