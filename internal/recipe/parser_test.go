package recipe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/forkful/saucier/internal/recipe"
)

const validJSON = `{
	"title": "Garlic Butter Pasta",
	"description": "Simple and fast.",
	"prepTime": 10,
	"cookTime": 15,
	"difficulty": "easy",
	"cuisine": "italian",
	"instructions": ["Boil pasta.", "Melt butter with garlic.", "Combine."],
	"ingredients": [{"name": "pasta", "amount": "250", "unit": "g"}],
	"tags": ["pasta", "quick"]
}`

func TestParseRecipePlainJSON(t *testing.T) {
	parsed := recipe.ParseRecipe(validJSON)

	assert.False(t, parsed.Fallback)
	assert.Equal(t, "Garlic Butter Pasta", parsed.Title)
	assert.Equal(t, 10, parsed.PrepTime)
	assert.Equal(t, 15, parsed.CookTime)
	assert.Len(t, parsed.Instructions, 3)
	assert.Equal(t, "pasta", parsed.Ingredients[0].Name)
}

func TestParseRecipeFencedJSON(t *testing.T) {
	fenced := "```json\n" + validJSON + "\n```"
	bare := "```\n" + validJSON + "\n```"

	plain := recipe.ParseRecipe(validJSON)
	assert.Equal(t, plain, recipe.ParseRecipe(fenced))
	assert.Equal(t, plain, recipe.ParseRecipe(bare))
}

func TestParseRecipeFallbackOnProse(t *testing.T) {
	parsed := recipe.ParseRecipe("Sure! Here is a lovely recipe for you: boil pasta and add sauce.")

	assert.True(t, parsed.Fallback)
	assert.Equal(t, recipe.FallbackTitle, parsed.Title)
	assert.Equal(t, recipe.FallbackDescription, parsed.Description)
}

func TestParseRecipeFallbackOnMissingTitle(t *testing.T) {
	parsed := recipe.ParseRecipe(`{"description": "no title here"}`)

	assert.True(t, parsed.Fallback)
	assert.Equal(t, recipe.FallbackTitle, parsed.Title)
}

func TestParseRecipeFallbackDeterministic(t *testing.T) {
	a := recipe.ParseRecipe("not json at all")
	b := recipe.ParseRecipe("not json at all")
	assert.Equal(t, a, b)
}

func TestParseRecipeWhitespacePadding(t *testing.T) {
	parsed := recipe.ParseRecipe("\n\n  " + validJSON + "  \n")
	assert.False(t, parsed.Fallback)
	assert.Equal(t, "Garlic Butter Pasta", parsed.Title)
}
