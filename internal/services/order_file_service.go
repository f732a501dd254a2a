package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gorm.io/gorm"

	"github.com/yukikurage/apm-api/internal/logger"
	"github.com/yukikurage/apm-api/internal/models"
	"github.com/yukikurage/apm-api/internal/repository"
	"github.com/yukikurage/apm-api/internal/storage"
)

// OrderFileService attaches uploaded files to orders. Rows hold the blob
// key; content lives in the BlobStore.
type OrderFileService struct {
	store *repository.Store
	blobs storage.BlobStore
}

func NewOrderFileService(store *repository.Store, blobs storage.BlobStore) *OrderFileService {
	return &OrderFileService{store: store, blobs: blobs}
}

// Upload is a file received from a client.
type Upload struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

func (s *OrderFileService) ListByOrder(ctx context.Context, orderID uint64) ([]models.OrderFile, error) {
	files, err := s.store.OrderFiles.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, storeError(err, ErrOrderFileNotFound, "list order files")
	}
	return files, nil
}

// Open returns the file row and a reader for its content. The caller
// closes the reader.
func (s *OrderFileService) Open(ctx context.Context, id uint64) (*models.OrderFile, io.ReadCloser, error) {
	file, err := s.get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	r, err := s.blobs.Open(ctx, file.Filepath)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, ErrFileMissing
		}
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, r, nil
}

// Create stores upload and attaches it to the order. The blob is removed
// again if the row cannot be written.
func (s *OrderFileService) Create(ctx context.Context, orderID uint64, upload Upload) (*models.OrderFile, error) {
	if _, err := s.store.Orders.FindByID(ctx, orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalidReference("order_id", ErrOrderNotFound)
		}
		return nil, storeError(err, ErrOrderNotFound, "check order_id")
	}

	key, err := s.put(ctx, upload)
	if err != nil {
		return nil, err
	}

	file := &models.OrderFile{
		OrderID:  orderID,
		Filename: storage.SanitizeFilename(upload.Filename),
		Filepath: key,
	}
	if err := s.store.OrderFiles.Create(ctx, file); err != nil {
		s.discard(ctx, key)
		return nil, storeError(err, ErrOrderFileNotFound, "create order file")
	}
	return file, nil
}

// Replace writes the new content under a fresh key, points the row at it
// and only then removes the old blob.
func (s *OrderFileService) Replace(ctx context.Context, id uint64, upload Upload) (*models.OrderFile, error) {
	file, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	key, err := s.put(ctx, upload)
	if err != nil {
		return nil, err
	}

	oldKey := file.Filepath
	file.Filename = storage.SanitizeFilename(upload.Filename)
	file.Filepath = key
	if err := s.store.OrderFiles.Update(ctx, file); err != nil {
		s.discard(ctx, key)
		return nil, storeError(err, ErrOrderFileNotFound, "update order file")
	}

	s.discard(ctx, oldKey)
	return file, nil
}

// Delete removes the row and then the blob
func (s *OrderFileService) Delete(ctx context.Context, id uint64) error {
	file, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.OrderFiles.Delete(ctx, id); err != nil {
		return storeError(err, ErrOrderFileNotFound, "delete order file")
	}

	s.discard(ctx, file.Filepath)
	return nil
}

func (s *OrderFileService) get(ctx context.Context, id uint64) (*models.OrderFile, error) {
	file, err := s.store.OrderFiles.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, ErrOrderFileNotFound, "get order file")
	}
	return file, nil
}

func (s *OrderFileService) put(ctx context.Context, upload Upload) (string, error) {
	key := storage.NewKey(upload.Filename)
	if err := s.blobs.Put(ctx, key, upload.Content, upload.ContentType); err != nil {
		return "", fmt.Errorf("failed to store file: %w", err)
	}
	return key, nil
}

// discard deletes a blob that is no longer referenced. Failures are logged.
func (s *OrderFileService) discard(ctx context.Context, key string) {
	if err := s.blobs.Delete(ctx, key); err != nil {
		logger.Log.WithError(err).WithField("key", key).Warn("Failed to delete order file blob")
	}
}
