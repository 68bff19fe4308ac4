// Package storage exports recipes to an object store behind a narrow
// interface, so the backing engine is swappable.
package storage

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var ErrUnavailable = errors.New("object store unavailable")

// ObjectStore is the minimal contract an export backend must satisfy.
type ObjectStore interface {
	// Init prepares the backing bucket/namespace; a no-op when it exists.
	Init(ctx context.Context) error
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error
	// Available reports whether the store can currently be reached.
	Available(ctx context.Context) bool
}

type Service struct {
	logger *zap.Logger
	store  ObjectStore
}

func NewService(logger *zap.Logger, store ObjectStore) *Service {
	return &Service{logger: logger, store: store}
}

func (s *Service) Initialize(ctx context.Context) error {
	if err := s.store.Init(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// UploadRecipeExport stores an export and returns its key, shaped as
// exports/{userID}/{recipeID}.json (or .pdf for application/pdf).
func (s *Service) UploadRecipeExport(ctx context.Context, userID, recipeID string, data []byte, contentType string) (string, error) {
	key := ExportKey(userID, recipeID, contentType)
	if err := s.store.Put(ctx, key, data, contentType); err != nil {
		if !s.store.Available(ctx) {
			return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return "", fmt.Errorf("upload export: %w", err)
	}
	s.logger.Info("recipe export uploaded",
		zap.String("key", key), zap.Int("bytes", len(data)))
	return key, nil
}

func (s *Service) DeleteExport(ctx context.Context, key string) error {
	if err := s.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete export: %w", err)
	}
	return nil
}

func (s *Service) IsAvailable(ctx context.Context) bool {
	return s.store.Available(ctx)
}

// ExportKey builds the object key for a recipe export.
func ExportKey(userID, recipeID, contentType string) string {
	ext := "json"
	if contentType == "application/pdf" {
		ext = "pdf"
	}
	return fmt.Sprintf("exports/%s/%s.%s", userID, recipeID, ext)
}
