package store

import (
	"context"
	"errors"
	"time"

	"github.com/forkful/saucier/internal/store/model"
)

// ErrNotFound is returned by point lookups when no row matches.
var ErrNotFound = errors.New("store: not found")

type contextKey string

// ContextKeyUserID carries the authenticated user's ID through a request.
const ContextKeyUserID contextKey = "user_id"

// Repository is the main contract for the data layer.
type Repository interface {
	Users() UserRepository
	Recipes() RecipeRepository
	Generations() GenerationRepository
	Cache() CacheRepository

	// transaction support
	WithTx(ctx context.Context, fn func(repo Repository) error) error

	Close() error
}

type UserRepository interface {
	Get(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *model.User) error
}

type RecipeRepository interface {
	Create(ctx context.Context, recipe *model.Recipe) error
	Get(ctx context.Context, id string) (*model.Recipe, error)
	// ListByUser returns one page of the user's recipes, newest first.
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]model.Recipe, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, id string) error
}

type GenerationRepository interface {
	// Create records one generation attempt, success or failure.
	Create(ctx context.Context, gen *model.RecipeGeneration) error
	ListByUser(ctx context.Context, userID string, limit int) ([]model.RecipeGeneration, error)
}

// CacheRepository is the persistent store beneath the generation cache.
//
// GetByHash intentionally returns expired entries; validity filtering is the
// cache service's responsibility on that path. ExistsValid filters expiry
// internally. The asymmetry is part of the contract.
type CacheRepository interface {
	GetByHash(ctx context.Context, hash string) (*model.CacheEntry, error)
	ExistsValid(ctx context.Context, hash string, now time.Time) (bool, error)
	Insert(ctx context.Context, entry *model.CacheEntry) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	CountValid(ctx context.Context, now time.Time) (int64, error)
	CountTotal(ctx context.Context) (int64, error)
}
