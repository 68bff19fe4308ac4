package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/forkful/saucier/internal/recipe"
	"github.com/forkful/saucier/internal/server/middleware"
	"github.com/forkful/saucier/internal/server/validator"
	"github.com/forkful/saucier/internal/storage"
	"github.com/forkful/saucier/pkg/api"
)

type RecipeHandler struct {
	recipes *recipe.Service
	exports *storage.Service
}

func NewRecipeHandler(recipes *recipe.Service, exports *storage.Service) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, exports: exports}
}

// Generate produces a recipe from the supplied ingredients.
//
// POST /v1/recipes/generate
func (h *RecipeHandler) Generate(c *gin.Context) {
	var req api.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(api.ValidationError(validator.ParseError(err)))
		return
	}

	resp, err := h.recipes.Generate(c.Request.Context(), &req, middleware.UserID(c))
	if err != nil {
		switch {
		case errors.Is(err, recipe.ErrUserNotFound):
			_ = c.Error(api.NotFoundError("User not found."))
		case errors.Is(err, recipe.ErrGenerationFailed):
			_ = c.Error(api.UpstreamError("Recipe generation failed.", err))
		default:
			_ = c.Error(api.InternalError(err))
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// List returns the caller's recipes, newest first.
//
// GET /v1/recipes?page=1&page_size=20
func (h *RecipeHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	resp, err := h.recipes.ListByUser(c.Request.Context(), middleware.UserID(c), page, pageSize)
	if err != nil {
		_ = c.Error(api.InternalError(err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Get returns a single recipe owned by the caller.
//
// GET /v1/recipes/:id
func (h *RecipeHandler) Get(c *gin.Context) {
	resp, err := h.recipes.GetByID(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		h.recipeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Delete removes a recipe owned by the caller.
//
// DELETE /v1/recipes/:id
func (h *RecipeHandler) Delete(c *gin.Context) {
	if err := h.recipes.Delete(c.Request.Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		h.recipeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Export serializes a recipe and writes it to the object store.
//
// POST /v1/recipes/:id/export
func (h *RecipeHandler) Export(c *gin.Context) {
	userID := middleware.UserID(c)

	rec, err := h.recipes.GetModel(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.recipeError(c, err)
		return
	}
	if rec.UserID != userID {
		// Hide other users' recipes entirely.
		h.recipeError(c, recipe.ErrRecipeNotFound)
		return
	}

	data, err := h.recipes.ExportJSON(rec)
	if err != nil {
		_ = c.Error(api.InternalError(err))
		return
	}

	key, err := h.exports.UploadRecipeExport(c.Request.Context(), userID, rec.ID, data, "application/json")
	if err != nil {
		if errors.Is(err, storage.ErrUnavailable) {
			_ = c.Error(api.NewError(http.StatusServiceUnavailable,
				"Storage Unavailable", "Export storage is not available."))
			return
		}
		_ = c.Error(api.InternalError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": key})
}

func (h *RecipeHandler) recipeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, recipe.ErrRecipeNotFound), errors.Is(err, recipe.ErrNotOwner):
		_ = c.Error(api.NotFoundError("Recipe not found."))
	default:
		_ = c.Error(api.InternalError(err))
	}
}
