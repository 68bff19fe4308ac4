package model

import (
	"database/sql"
	"time"
)

// User is a registered account.
type User struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Recipe is a persisted, structured recipe.
// Instructions, Ingredients and Nutrition are stored as JSON columns; the
// recipe service owns their (de)serialization.
type Recipe struct {
	ID              string         `db:"id" json:"id"`
	UserID          string         `db:"user_id" json:"user_id"`
	Title           string         `db:"title" json:"title"`
	Description     string         `db:"description" json:"description"`
	PrepTime        int            `db:"prep_time" json:"prep_time"`
	CookTime        int            `db:"cook_time" json:"cook_time"`
	TotalTime       int            `db:"total_time" json:"total_time"`
	Servings        int            `db:"servings" json:"servings"`
	Difficulty      string         `db:"difficulty" json:"difficulty"`
	Cuisine         string         `db:"cuisine" json:"cuisine"`
	IngredientsUsed string         `db:"ingredients_used" json:"-"` // JSON array
	Ingredients     string         `db:"ingredients" json:"-"`      // JSON array of {name,amount,unit}
	Instructions    string         `db:"instructions" json:"-"`     // JSON array
	NutritionInfo   sql.NullString `db:"nutrition_info" json:"-"`   // JSON object
	Tags            string         `db:"tags" json:"-"`             // JSON array
	IsSaved         bool           `db:"is_saved" json:"is_saved"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updated_at"`
}

// RecipeGeneration is the audit record written once per generation attempt,
// success or failure.
type RecipeGeneration struct {
	ID           string         `db:"id" json:"id"`
	UserID       string         `db:"user_id" json:"user_id"`
	RecipeID     sql.NullString `db:"recipe_id" json:"recipe_id,omitempty"`
	Model        string         `db:"model" json:"model"`
	Status       string         `db:"status" json:"status"`
	ErrorMessage sql.NullString `db:"error_message" json:"error_message,omitempty"`
	Cached       bool           `db:"cached" json:"cached"`
	TokensUsed   int            `db:"tokens_used" json:"tokens_used"`
	LatencyMS    int64          `db:"latency_ms" json:"latency_ms"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
}

// CacheEntry maps one request fingerprint to a cached backend response.
// Immutable after insert; expiry is a delete, never an update.
type CacheEntry struct {
	ID         string    `db:"id" json:"id"`
	InputHash  string    `db:"input_hash" json:"input_hash"`
	Response   string    `db:"response" json:"response"`
	Model      string    `db:"model" json:"model"`
	TokensUsed int       `db:"tokens_used" json:"tokens_used"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	ExpiresAt  time.Time `db:"expires_at" json:"expires_at"`
}

// Expired reports whether the entry is past its lifetime at now.
func (e *CacheEntry) Expired(now time.Time) bool {
	return !e.ExpiresAt.After(now)
}
