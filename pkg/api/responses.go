package api

import "time"

// RecipeResponse is the structured recipe returned to clients.
type RecipeResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PrepTime    int       `json:"prep_time"`
	CookTime    int       `json:"cook_time"`
	TotalTime   int       `json:"total_time"`
	Servings    int       `json:"servings"`
	Difficulty  string    `json:"difficulty,omitempty"`
	Cuisine     string    `json:"cuisine,omitempty"`

	IngredientsUsed []string           `json:"ingredients_used"`
	Ingredients     []RecipeIngredient `json:"ingredients,omitempty"`
	Instructions    []string           `json:"instructions,omitempty"`
	Nutrition       *NutritionInfo     `json:"nutrition,omitempty"`
	Tags            []string           `json:"tags,omitempty"`

	CreatedAt time.Time           `json:"created_at"`
	Metadata  *GenerationMetadata `json:"metadata,omitempty"`
}

type RecipeIngredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Unit   string `json:"unit,omitempty"`
}

type NutritionInfo struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

// GenerationMetadata describes how the recipe was produced.
type GenerationMetadata struct {
	Model      string `json:"model"`
	Cached     bool   `json:"cached"`
	TokensUsed int    `json:"tokens_used"`
	LatencyMS  int64  `json:"latency_ms"`
}

// Page is a generic offset-paginated list envelope.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"` // seconds
	UserID       string `json:"user_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
}

type TokenRefreshResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// CacheStatsResponse mirrors the orchestrator's cache statistics.
type CacheStatsResponse struct {
	ValidEntries int64   `json:"valid_entries"`
	TotalEntries int64   `json:"total_entries"`
	HitRate      float64 `json:"hit_rate"`
}

type CleanupResponse struct {
	Deleted int64 `json:"deleted"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Model   string `json:"model,omitempty"`
	Backend bool   `json:"backend_available"`
	Version string `json:"version,omitempty"`
}
