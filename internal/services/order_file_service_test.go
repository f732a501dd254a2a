package services

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yukikurage/apm-api/internal/models"
	"github.com/yukikurage/apm-api/internal/repository"
	"github.com/yukikurage/apm-api/internal/storage"
	"github.com/yukikurage/apm-api/internal/testutil"
)

func setupOrderFiles(t *testing.T) (*OrderFileService, storage.BlobStore, *models.Order) {
	t.Helper()
	store := repository.NewStore(testutil.NewDB(t))
	blobs := storage.NewFsStore(afero.NewMemMapFs())

	order := &models.Order{Name: "A"}
	require.NoError(t, store.Orders.Create(context.Background(), order))

	return NewOrderFileService(store, blobs), blobs, order
}

func readAll(t *testing.T, r io.ReadCloser) string {
	t.Helper()
	defer r.Close()
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(b)
}

func TestOrderFileCreateAndOpen(t *testing.T) {
	ctx := context.Background()
	service, _, order := setupOrderFiles(t)

	file, err := service.Create(ctx, order.ID, Upload{Filename: "../plan.pdf", Content: strings.NewReader("v1")})
	require.NoError(t, err)
	assert.Equal(t, "plan.pdf", file.Filename)
	assert.True(t, strings.HasSuffix(file.Filepath, "/plan.pdf"))

	got, r, err := service.Open(ctx, file.ID)
	require.NoError(t, err)
	assert.Equal(t, file.ID, got.ID)
	assert.Equal(t, "v1", readAll(t, r))
}

func TestOrderFileSameNameDoesNotOverwrite(t *testing.T) {
	ctx := context.Background()
	service, _, order := setupOrderFiles(t)

	a, err := service.Create(ctx, order.ID, Upload{Filename: "plan.pdf", Content: strings.NewReader("a")})
	require.NoError(t, err)
	b, err := service.Create(ctx, order.ID, Upload{Filename: "plan.pdf", Content: strings.NewReader("b")})
	require.NoError(t, err)

	assert.NotEqual(t, a.Filepath, b.Filepath)

	_, r, err := service.Open(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "a", readAll(t, r))

	files, err := service.ListByOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestOrderFileCreateForMissingOrder(t *testing.T) {
	service, _, _ := setupOrderFiles(t)

	_, err := service.Create(context.Background(), 999, Upload{Filename: "plan.pdf", Content: strings.NewReader("a")})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "order_id", validationErr.Field)
}

func TestOrderFileReplaceSwapsBlob(t *testing.T) {
	ctx := context.Background()
	service, blobs, order := setupOrderFiles(t)

	file, err := service.Create(ctx, order.ID, Upload{Filename: "plan.pdf", Content: strings.NewReader("v1")})
	require.NoError(t, err)
	oldKey := file.Filepath

	replaced, err := service.Replace(ctx, file.ID, Upload{Filename: "plan-v2.pdf", Content: strings.NewReader("v2")})
	require.NoError(t, err)
	assert.Equal(t, "plan-v2.pdf", replaced.Filename)
	assert.NotEqual(t, oldKey, replaced.Filepath)

	exists, err := blobs.Exists(ctx, oldKey)
	require.NoError(t, err)
	assert.False(t, exists)

	_, r, err := service.Open(ctx, file.ID)
	require.NoError(t, err)
	assert.Equal(t, "v2", readAll(t, r))
}

func TestOrderFileMissingBlobIsNotFound(t *testing.T) {
	ctx := context.Background()
	service, blobs, order := setupOrderFiles(t)

	file, err := service.Create(ctx, order.ID, Upload{Filename: "plan.pdf", Content: strings.NewReader("v1")})
	require.NoError(t, err)
	require.NoError(t, blobs.Delete(ctx, file.Filepath))

	_, _, err = service.Open(ctx, file.ID)
	assert.ErrorIs(t, err, ErrFileMissing)
}

func TestOrderFileDelete(t *testing.T) {
	ctx := context.Background()
	service, blobs, order := setupOrderFiles(t)

	file, err := service.Create(ctx, order.ID, Upload{Filename: "plan.pdf", Content: strings.NewReader("v1")})
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, file.ID))

	exists, err := blobs.Exists(ctx, file.Filepath)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.ErrorIs(t, service.Delete(ctx, file.ID), ErrOrderFileNotFound)
}
