package api

// RecipeRequest is the payload for POST /v1/recipes/generate.
type RecipeRequest struct {
	// at least three ingredients keeps the model from producing one-line junk
	Ingredients []string `json:"ingredients" binding:"required,min=3,dive,min=1"`

	Servings   int    `json:"servings,omitempty" binding:"omitempty,min=1,max=24"`
	Difficulty string `json:"difficulty,omitempty" binding:"omitempty,oneof=easy medium hard"`
	Cuisine    string `json:"cuisine,omitempty"`

	// Extra free-text constraints appended to the prompt ("no dairy", etc.)
	Preferences string `json:"preferences,omitempty"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=1"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
