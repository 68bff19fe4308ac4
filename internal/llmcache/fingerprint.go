package llmcache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/forkful/saucier/internal/llm"
)

// NormalizeIngredients canonicalizes an ingredient list: trim, lowercase,
// drop empties and exact duplicates, sort. Any permutation of the same
// ingredient multiset yields the same slice.
func NormalizeIngredients(ingredients []string) []string {
	seen := make(map[string]struct{}, len(ingredients))
	out := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		norm := strings.ToLower(strings.TrimSpace(ing))
		if norm == "" {
			continue
		}
		if _, dup := seen[norm]; dup {
			continue
		}
		seen[norm] = struct{}{}
		out = append(out, norm)
	}
	sort.Strings(out)
	return out
}

// canonicalRequest is the exact form that gets hashed. JSON keeps the
// serialization unambiguous: ingredient values containing separators or
// quotes cannot collide with field boundaries.
type canonicalRequest struct {
	Ingredients []string `json:"ingredients"`
	Prompt      string   `json:"prompt"`
	Model       string   `json:"model"`
	Temperature string   `json:"temperature"`
}

// Fingerprint derives the cache key for a request: a sha256 digest over the
// canonical JSON of {normalized ingredients, prompt, model, temperature}.
// Temperature is rendered at fixed precision so equal values cannot drift
// through float formatting. Always returns 64 lowercase hex characters.
func Fingerprint(req *llm.Request) string {
	canonical := canonicalRequest{
		Ingredients: NormalizeIngredients(req.Ingredients),
		Prompt:      req.Prompt,
		Model:       req.Model,
		Temperature: strconv.FormatFloat(req.Temperature, 'f', 2, 64),
	}

	// struct fields marshal in declaration order, so the output is stable
	data, _ := json.Marshal(canonical)

	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
