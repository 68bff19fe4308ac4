package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/forkful/saucier/internal/store"
	"github.com/forkful/saucier/internal/store/model"
)

// DB is satisfied by both *sqlx.DB and *sqlx.Tx so every sub-repository can
// run inside or outside a transaction.
type DB interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// Repository implements store.Repository on sqlite.
type Repository struct {
	db       *sqlx.DB
	executor DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db, executor: db}
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) WithTx(ctx context.Context, fn func(repo store.Repository) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	txRepo := &Repository{db: r.db, executor: tx}
	if err := fn(txRepo); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (r *Repository) Users() store.UserRepository {
	return &userRepo{db: r.executor}
}

func (r *Repository) Recipes() store.RecipeRepository {
	return &recipeRepo{db: r.executor}
}

func (r *Repository) Generations() store.GenerationRepository {
	return &generationRepo{db: r.executor}
}

func (r *Repository) Cache() store.CacheRepository {
	return &cacheRepo{db: r.executor}
}

func wrapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

type userRepo struct {
	db DB
}

func (r *userRepo) Get(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	if err := r.db.GetContext(ctx, &u, `SELECT * FROM users WHERE id = ?`, id); err != nil {
		return nil, wrapNotFound(err)
	}
	return &u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	if err := r.db.GetContext(ctx, &u, `SELECT * FROM users WHERE email = ?`, email); err != nil {
		return nil, wrapNotFound(err)
	}
	return &u, nil
}

func (r *userRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(1) FROM users WHERE email = ?`, email); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	query := `
	INSERT INTO users (id, name, email, password_hash, created_at, updated_at)
	VALUES (:id, :name, :email, :password_hash, :created_at, :updated_at)`
	_, err := r.db.NamedExecContext(ctx, query, user)
	return err
}

type recipeRepo struct {
	db DB
}

func (r *recipeRepo) Create(ctx context.Context, recipe *model.Recipe) error {
	query := `
	INSERT INTO recipes (
		id, user_id, title, description, prep_time, cook_time, total_time,
		servings, difficulty, cuisine, ingredients_used, ingredients,
		instructions, nutrition_info, tags, is_saved, created_at, updated_at
	) VALUES (
		:id, :user_id, :title, :description, :prep_time, :cook_time, :total_time,
		:servings, :difficulty, :cuisine, :ingredients_used, :ingredients,
		:instructions, :nutrition_info, :tags, :is_saved, :created_at, :updated_at
	)`
	_, err := r.db.NamedExecContext(ctx, query, recipe)
	return err
}

func (r *recipeRepo) Get(ctx context.Context, id string) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := r.db.GetContext(ctx, &recipe, `SELECT * FROM recipes WHERE id = ?`, id); err != nil {
		return nil, wrapNotFound(err)
	}
	return &recipe, nil
}

func (r *recipeRepo) ListByUser(ctx context.Context, userID string, offset, limit int) ([]model.Recipe, error) {
	var recipes []model.Recipe
	query := `SELECT * FROM recipes WHERE user_id = ? ORDER BY created_at DESC LIMIT ? OFFSET ?`
	err := r.db.SelectContext(ctx, &recipes, query, userID, limit, offset)
	return recipes, err
}

func (r *recipeRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(1) FROM recipes WHERE user_id = ?`, userID)
	return count, err
}

func (r *recipeRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return store.ErrNotFound
	}
	return nil
}

type generationRepo struct {
	db DB
}

func (r *generationRepo) Create(ctx context.Context, gen *model.RecipeGeneration) error {
	query := `
	INSERT INTO recipe_generations (
		id, user_id, recipe_id, model, status, error_message,
		cached, tokens_used, latency_ms, created_at
	) VALUES (
		:id, :user_id, :recipe_id, :model, :status, :error_message,
		:cached, :tokens_used, :latency_ms, :created_at
	)`
	_, err := r.db.NamedExecContext(ctx, query, gen)
	return err
}

func (r *generationRepo) ListByUser(ctx context.Context, userID string, limit int) ([]model.RecipeGeneration, error) {
	var gens []model.RecipeGeneration
	query := `SELECT * FROM recipe_generations WHERE user_id = ? ORDER BY created_at DESC LIMIT ?`
	err := r.db.SelectContext(ctx, &gens, query, userID, limit)
	return gens, err
}

type cacheRepo struct {
	db DB
}

// GetByHash returns the matching entry even when it is expired; validity is
// checked by the caller on this path.
func (r *cacheRepo) GetByHash(ctx context.Context, hash string) (*model.CacheEntry, error) {
	var entry model.CacheEntry
	if err := r.db.GetContext(ctx, &entry, `SELECT * FROM llm_cache WHERE input_hash = ?`, hash); err != nil {
		return nil, wrapNotFound(err)
	}
	return &entry, nil
}

func (r *cacheRepo) ExistsValid(ctx context.Context, hash string, now time.Time) (bool, error) {
	var count int
	query := `SELECT COUNT(1) FROM llm_cache WHERE input_hash = ? AND expires_at > ?`
	if err := r.db.GetContext(ctx, &count, query, hash, now); err != nil {
		return false, err
	}
	return count > 0, nil
}

// Insert is insert-if-absent: the UNIQUE constraint on input_hash makes the
// first writer win under concurrent inserts for the same fingerprint.
func (r *cacheRepo) Insert(ctx context.Context, entry *model.CacheEntry) error {
	query := `
	INSERT OR IGNORE INTO llm_cache (
		id, input_hash, response, model, tokens_used, created_at, expires_at
	) VALUES (
		:id, :input_hash, :response, :model, :tokens_used, :created_at, :expires_at
	)`
	_, err := r.db.NamedExecContext(ctx, query, entry)
	return err
}

func (r *cacheRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM llm_cache WHERE expires_at <= ?`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *cacheRepo) CountValid(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(1) FROM llm_cache WHERE expires_at > ?`, now)
	return count, err
}

func (r *cacheRepo) CountTotal(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(1) FROM llm_cache`)
	return count, err
}
