// Package memory provides an in-memory store.Repository used by tests and
// by dev mode when no database is configured.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/forkful/saucier/internal/store"
	"github.com/forkful/saucier/internal/store/model"
)

type Repository struct {
	mu          sync.RWMutex
	users       map[string]model.User
	recipes     map[string]model.Recipe
	generations map[string]model.RecipeGeneration
	cache       map[string]model.CacheEntry // keyed by input hash
}

func New() *Repository {
	return &Repository{
		users:       make(map[string]model.User),
		recipes:     make(map[string]model.Recipe),
		generations: make(map[string]model.RecipeGeneration),
		cache:       make(map[string]model.CacheEntry),
	}
}

func (r *Repository) Users() store.UserRepository             { return &userRepo{r} }
func (r *Repository) Recipes() store.RecipeRepository         { return &recipeRepo{r} }
func (r *Repository) Generations() store.GenerationRepository { return &generationRepo{r} }
func (r *Repository) Cache() store.CacheRepository            { return &cacheRepo{r} }

// WithTx runs fn against the same repository. The in-memory store has no
// transactional isolation; individual operations are still atomic.
func (r *Repository) WithTx(ctx context.Context, fn func(repo store.Repository) error) error {
	return fn(r)
}

func (r *Repository) Close() error { return nil }

type userRepo struct{ r *Repository }

func (u *userRepo) Get(ctx context.Context, id string) (*model.User, error) {
	u.r.mu.RLock()
	defer u.r.mu.RUnlock()
	if usr, ok := u.r.users[id]; ok {
		return &usr, nil
	}
	return nil, store.ErrNotFound
}

func (u *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u.r.mu.RLock()
	defer u.r.mu.RUnlock()
	for _, usr := range u.r.users {
		if usr.Email == email {
			return &usr, nil
		}
	}
	return nil, store.ErrNotFound
}

func (u *userRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := u.GetByEmail(ctx, email)
	if err == store.ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

func (u *userRepo) Create(ctx context.Context, user *model.User) error {
	u.r.mu.Lock()
	defer u.r.mu.Unlock()
	u.r.users[user.ID] = *user
	return nil
}

type recipeRepo struct{ r *Repository }

func (rr *recipeRepo) Create(ctx context.Context, recipe *model.Recipe) error {
	rr.r.mu.Lock()
	defer rr.r.mu.Unlock()
	rr.r.recipes[recipe.ID] = *recipe
	return nil
}

func (rr *recipeRepo) Get(ctx context.Context, id string) (*model.Recipe, error) {
	rr.r.mu.RLock()
	defer rr.r.mu.RUnlock()
	if rec, ok := rr.r.recipes[id]; ok {
		return &rec, nil
	}
	return nil, store.ErrNotFound
}

func (rr *recipeRepo) ListByUser(ctx context.Context, userID string, offset, limit int) ([]model.Recipe, error) {
	rr.r.mu.RLock()
	defer rr.r.mu.RUnlock()

	var all []model.Recipe
	for _, rec := range rr.r.recipes {
		if rec.UserID == userID {
			all = append(all, rec)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (rr *recipeRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	rr.r.mu.RLock()
	defer rr.r.mu.RUnlock()
	var count int64
	for _, rec := range rr.r.recipes {
		if rec.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (rr *recipeRepo) Delete(ctx context.Context, id string) error {
	rr.r.mu.Lock()
	defer rr.r.mu.Unlock()
	if _, ok := rr.r.recipes[id]; !ok {
		return store.ErrNotFound
	}
	delete(rr.r.recipes, id)
	return nil
}

type generationRepo struct{ r *Repository }

func (g *generationRepo) Create(ctx context.Context, gen *model.RecipeGeneration) error {
	g.r.mu.Lock()
	defer g.r.mu.Unlock()
	g.r.generations[gen.ID] = *gen
	return nil
}

func (g *generationRepo) ListByUser(ctx context.Context, userID string, limit int) ([]model.RecipeGeneration, error) {
	g.r.mu.RLock()
	defer g.r.mu.RUnlock()

	var all []model.RecipeGeneration
	for _, gen := range g.r.generations {
		if gen.UserID == userID {
			all = append(all, gen)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

type cacheRepo struct{ r *Repository }

func (c *cacheRepo) GetByHash(ctx context.Context, hash string) (*model.CacheEntry, error) {
	c.r.mu.RLock()
	defer c.r.mu.RUnlock()
	if entry, ok := c.r.cache[hash]; ok {
		return &entry, nil
	}
	return nil, store.ErrNotFound
}

func (c *cacheRepo) ExistsValid(ctx context.Context, hash string, now time.Time) (bool, error) {
	c.r.mu.RLock()
	defer c.r.mu.RUnlock()
	entry, ok := c.r.cache[hash]
	return ok && entry.ExpiresAt.After(now), nil
}

// Insert is insert-if-absent: a later writer for the same hash is a no-op.
func (c *cacheRepo) Insert(ctx context.Context, entry *model.CacheEntry) error {
	c.r.mu.Lock()
	defer c.r.mu.Unlock()
	if _, ok := c.r.cache[entry.InputHash]; ok {
		return nil
	}
	c.r.cache[entry.InputHash] = *entry
	return nil
}

func (c *cacheRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	c.r.mu.Lock()
	defer c.r.mu.Unlock()
	var deleted int64
	for hash, entry := range c.r.cache {
		if !entry.ExpiresAt.After(now) {
			delete(c.r.cache, hash)
			deleted++
		}
	}
	return deleted, nil
}

func (c *cacheRepo) CountValid(ctx context.Context, now time.Time) (int64, error) {
	c.r.mu.RLock()
	defer c.r.mu.RUnlock()
	var count int64
	for _, entry := range c.r.cache {
		if entry.ExpiresAt.After(now) {
			count++
		}
	}
	return count, nil
}

func (c *cacheRepo) CountTotal(ctx context.Context) (int64, error) {
	c.r.mu.RLock()
	defer c.r.mu.RUnlock()
	return int64(len(c.r.cache)), nil
}
