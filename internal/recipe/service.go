// Package recipe owns the business flow around recipe generation: input
// normalization, prompt construction, delegation to the orchestrator,
// auditing, parsing and persistence.
package recipe

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/forkful/saucier/internal/audit"
	"github.com/forkful/saucier/internal/llm"
	"github.com/forkful/saucier/internal/llmcache"
	"github.com/forkful/saucier/internal/orchestrator"
	"github.com/forkful/saucier/internal/store"
	"github.com/forkful/saucier/internal/store/model"
	"github.com/forkful/saucier/pkg/api"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrGenerationFailed = errors.New("llm generation failed")
	ErrRecipeNotFound   = errors.New("recipe not found")
	ErrNotOwner         = errors.New("recipe belongs to another user")
)

type Config struct {
	Model       string
	Temperature float64
}

type Service struct {
	logger       *zap.Logger
	repo         store.Repository
	orchestrator *orchestrator.Orchestrator
	recorder     audit.Recorder
	cfg          Config
}

func NewService(logger *zap.Logger, repo store.Repository, orch *orchestrator.Orchestrator, recorder audit.Recorder, cfg Config) *Service {
	return &Service{
		logger:       logger,
		repo:         repo,
		orchestrator: orch,
		recorder:     recorder,
		cfg:          cfg,
	}
}

// Generate produces a recipe from the given ingredients. Every attempt is
// audited, success or failure; only successful generations persist a recipe.
func (s *Service) Generate(ctx context.Context, req *api.RecipeRequest, userID string) (*api.RecipeResponse, error) {
	user, err := s.repo.Users().Get(ctx, userID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("user lookup: %w", err)
	}

	ingredients := llmcache.NormalizeIngredients(req.Ingredients)

	llmReq := &llm.Request{
		Prompt:      buildPrompt(ingredients, req),
		Ingredients: ingredients,
		Model:       s.cfg.Model,
		Temperature: s.cfg.Temperature,
		UserID:      user.ID,
	}

	resp := s.orchestrator.Generate(ctx, llmReq)

	gen := &model.RecipeGeneration{
		ID:         uuid.NewString(),
		UserID:     user.ID,
		Model:      resp.Model,
		Status:     resp.Status,
		Cached:     resp.Cached,
		TokensUsed: resp.TokensUsed,
		LatencyMS:  resp.LatencyMS,
		CreatedAt:  time.Now(),
	}
	if resp.ErrorMessage != "" {
		gen.ErrorMessage = sql.NullString{String: resp.ErrorMessage, Valid: true}
	}
	defer s.recorder.Record(gen)

	if resp.Status == llm.StatusError || resp.Content == "" {
		s.logger.Warn("generation attempt failed",
			zap.String("user_id", user.ID),
			zap.String("error", resp.ErrorMessage))
		return nil, fmt.Errorf("%w: %s", ErrGenerationFailed, resp.ErrorMessage)
	}

	parsed := ParseRecipe(resp.Content)
	if parsed.Fallback {
		s.logger.Warn("model output was not structured, using fallback recipe",
			zap.String("user_id", user.ID))
	}

	recipe, err := s.saveRecipe(ctx, user.ID, ingredients, req, parsed)
	if err != nil {
		return nil, fmt.Errorf("persist recipe: %w", err)
	}

	gen.RecipeID = sql.NullString{String: recipe.ID, Valid: true}

	out := toResponse(recipe)
	out.Metadata = &api.GenerationMetadata{
		Model:      resp.Model,
		Cached:     resp.Cached,
		TokensUsed: resp.TokensUsed,
		LatencyMS:  resp.LatencyMS,
	}
	return out, nil
}

func (s *Service) saveRecipe(ctx context.Context, userID string, ingredients []string, req *api.RecipeRequest, parsed ParsedRecipe) (*model.Recipe, error) {
	now := time.Now()

	difficulty := parsed.Difficulty
	if req.Difficulty != "" {
		difficulty = req.Difficulty
	}

	recipe := &model.Recipe{
		ID:              uuid.NewString(),
		UserID:          userID,
		Title:           parsed.Title,
		Description:     parsed.Description,
		PrepTime:        parsed.PrepTime,
		CookTime:        parsed.CookTime,
		TotalTime:       parsed.PrepTime + parsed.CookTime,
		Servings:        req.Servings,
		Difficulty:      difficulty,
		Cuisine:         parsed.Cuisine,
		IngredientsUsed: mustJSON(ingredients),
		Ingredients:     mustJSON(parsed.Ingredients),
		Instructions:    mustJSON(parsed.Instructions),
		Tags:            mustJSON(parsed.Tags),
		IsSaved:         true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if parsed.Nutrition != nil {
		recipe.NutritionInfo = sql.NullString{String: mustJSON(parsed.Nutrition), Valid: true}
	}

	if err := s.repo.Recipes().Create(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// ListByUser returns one page of the user's recipes, newest first. Page is
// 1-based; pageSize is clamped to [1, 100].
func (s *Service) ListByUser(ctx context.Context, userID string, page, pageSize int) (*api.Page[api.RecipeResponse], error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	total, err := s.repo.Recipes().CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	recipes, err := s.repo.Recipes().ListByUser(ctx, userID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	items := make([]api.RecipeResponse, 0, len(recipes))
	for i := range recipes {
		items = append(items, *toResponse(&recipes[i]))
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &api.Page[api.RecipeResponse]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *Service) GetByID(ctx context.Context, id, userID string) (*api.RecipeResponse, error) {
	recipe, err := s.repo.Recipes().Get(ctx, id)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	if recipe.UserID != userID {
		return nil, ErrNotOwner
	}
	return toResponse(recipe), nil
}

func (s *Service) Delete(ctx context.Context, id, userID string) error {
	recipe, err := s.repo.Recipes().Get(ctx, id)
	if err != nil {
		if err == store.ErrNotFound {
			return ErrRecipeNotFound
		}
		return err
	}
	if recipe.UserID != userID {
		return ErrNotOwner
	}
	return s.repo.Recipes().Delete(ctx, id)
}

// ExportJSON serializes a stored recipe for object-storage export.
func (s *Service) ExportJSON(recipe *model.Recipe) ([]byte, error) {
	return json.MarshalIndent(toResponse(recipe), "", "  ")
}

func (s *Service) GetModel(ctx context.Context, id string) (*model.Recipe, error) {
	recipe, err := s.repo.Recipes().Get(ctx, id)
	if err == store.ErrNotFound {
		return nil, ErrRecipeNotFound
	}
	return recipe, err
}

func toResponse(r *model.Recipe) *api.RecipeResponse {
	resp := &api.RecipeResponse{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		PrepTime:    r.PrepTime,
		CookTime:    r.CookTime,
		TotalTime:   r.TotalTime,
		Servings:    r.Servings,
		Difficulty:  r.Difficulty,
		Cuisine:     r.Cuisine,
		CreatedAt:   r.CreatedAt,
	}

	// stored JSON columns; decode errors leave the field empty
	_ = json.Unmarshal([]byte(r.IngredientsUsed), &resp.IngredientsUsed)
	_ = json.Unmarshal([]byte(r.Ingredients), &resp.Ingredients)
	_ = json.Unmarshal([]byte(r.Instructions), &resp.Instructions)
	_ = json.Unmarshal([]byte(r.Tags), &resp.Tags)
	if r.NutritionInfo.Valid {
		_ = json.Unmarshal([]byte(r.NutritionInfo.String), &resp.Nutrition)
	}
	return resp
}

func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(data)
}

func buildPrompt(ingredients []string, req *api.RecipeRequest) string {
	var b strings.Builder
	b.WriteString("Create a recipe using these ingredients: ")
	b.WriteString(strings.Join(ingredients, ", "))
	b.WriteString(".")

	if req.Servings > 0 {
		fmt.Fprintf(&b, " It should serve %d people.", req.Servings)
	}
	if req.Difficulty != "" {
		fmt.Fprintf(&b, " Difficulty: %s.", req.Difficulty)
	}
	if req.Cuisine != "" {
		fmt.Fprintf(&b, " Cuisine: %s.", req.Cuisine)
	}
	if req.Preferences != "" {
		fmt.Fprintf(&b, " Preferences: %s.", req.Preferences)
	}

	b.WriteString(` Respond with only a JSON object of the shape: {"title": string, "description": string, "prepTime": minutes, "cookTime": minutes, "difficulty": string, "cuisine": string, "instructions": [string], "ingredients": [{"name": string, "amount": string, "unit": string}], "nutritionInfo": {"calories": int, "protein": int, "carbs": int, "fat": int}, "tags": [string]}.`)
	return b.String()
}
