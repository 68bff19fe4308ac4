package recipe

import (
	"encoding/json"
	"strings"

	"github.com/forkful/saucier/pkg/api"
)

// Fallback values used when the model output cannot be decoded.
const (
	FallbackTitle       = "Recipe from Ingredients"
	FallbackDescription = "Generated recipe (parsing failed)"
)

// ParsedRecipe is the structured form of one model answer.
type ParsedRecipe struct {
	Title        string                 `json:"title"`
	Description  string                 `json:"description"`
	PrepTime     int                    `json:"prepTime"`
	CookTime     int                    `json:"cookTime"`
	Difficulty   string                 `json:"difficulty"`
	Cuisine      string                 `json:"cuisine"`
	Instructions []string               `json:"instructions"`
	Ingredients  []api.RecipeIngredient `json:"ingredients"`
	Nutrition    *api.NutritionInfo     `json:"nutritionInfo"`
	Tags         []string               `json:"tags"`

	// Fallback marks output built from unparseable content.
	Fallback bool `json:"-"`
}

// ParseRecipe turns raw model text into a ParsedRecipe. Models routinely
// wrap JSON in markdown fences or pad it with prose; both are tolerated.
// Unparseable content yields a deterministic fallback rather than an error,
// so this never fails. Stateless and safe for concurrent use.
func ParseRecipe(raw string) ParsedRecipe {
	cleaned := stripCodeFences(raw)

	var parsed ParsedRecipe
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil || parsed.Title == "" {
		return ParsedRecipe{
			Title:       FallbackTitle,
			Description: FallbackDescription,
			Fallback:    true,
		}
	}
	return parsed
}

// stripCodeFences removes one enclosing markdown fence pair, tolerating a
// language hint on the opening fence ("```json").
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	// drop the language tag up to the first newline
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[idx+1:]
	} else {
		return strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}

	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
