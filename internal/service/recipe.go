package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kivly/backend/internal/types"
)

// RecipeGenerator is the upstream seam: anything that turns a generation
// request into raw completion text.
type RecipeGenerator interface {
	GenerateRecipe(ctx context.Context, req types.GenerationRequest) (string, error)
}

// RecipeService is the relay: it delegates creative content to the
// generator, then normalizes and validates the payload into exactly one
// Recipe. It never returns a partially-populated recipe.
type RecipeService struct {
	generator RecipeGenerator
	logger    *zap.Logger
}

// Ensure RecipeService implements IRecipeService.
var _ IRecipeService = (*RecipeService)(nil)

// NewRecipeService creates a relay around the given generator.
func NewRecipeService(generator RecipeGenerator, logger *zap.Logger) *RecipeService {
	return &RecipeService{
		generator: generator,
		logger:    logger,
	}
}

// Generate produces one validated Recipe for the request. Every call goes
// upstream, even for an identical request: repeated generations are meant
// to surprise, so results are never replayed.
func (s *RecipeService) Generate(ctx context.Context, req types.GenerationRequest) (*types.Recipe, error) {
	raw, err := s.generator.GenerateRecipe(ctx, req)
	if err != nil {
		return nil, err
	}

	recipe, err := NormalizeRecipePayload(raw)
	if err != nil {
		s.logger.Error("failed to normalize generation output",
			zap.Error(err),
			zap.String("payload", truncate(raw, 512)),
		)
		return nil, err
	}

	if err := validateRecipe(recipe, req); err != nil {
		s.logger.Error("generated recipe failed validation", zap.Error(err))
		return nil, err
	}

	// The time field must echo the requested filter; normalize drift
	// instead of rejecting over it.
	recipe.Time = req.Filters.Time
	recipe.ID = recipe.ContentID()

	return recipe, nil
}

// NormalizeRecipePayload turns whatever the generator returned into one
// recipe: code fences are stripped, a {recipes: ...} wrapper is unwrapped
// whether it holds an array or a single object, a lone object is treated
// as a one-element sequence, and the first element wins. Missing required
// fields mean the whole payload is rejected.
func NormalizeRecipePayload(raw string) (*types.Recipe, error) {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	data := []byte(cleaned)

	var first json.RawMessage
	var arr []json.RawMessage
	if err := json.Unmarshal(data, &arr); err == nil {
		if len(arr) == 0 {
			return nil, fmt.Errorf("%w: empty recipe array", types.ErrMalformedOutput)
		}
		first = arr[0]
	} else {
		var wrapper struct {
			Recipes json.RawMessage `json:"recipes"`
		}
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return nil, fmt.Errorf("%w: %v", types.ErrMalformedOutput, err)
		}
		switch {
		case len(wrapper.Recipes) == 0:
			first = data
		default:
			// The recipes field itself may be an array or a lone object.
			var inner []json.RawMessage
			if err := json.Unmarshal(wrapper.Recipes, &inner); err == nil {
				if len(inner) == 0 {
					return nil, fmt.Errorf("%w: empty recipe array", types.ErrMalformedOutput)
				}
				first = inner[0]
			} else {
				first = wrapper.Recipes
			}
		}
	}

	var recipe types.Recipe
	if err := json.Unmarshal(first, &recipe); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrMalformedOutput, err)
	}

	if recipe.Title == "" {
		return nil, fmt.Errorf("%w: missing title", types.ErrMalformedOutput)
	}
	if len(recipe.Ingredients) == 0 {
		return nil, fmt.Errorf("%w: missing ingredients_list", types.ErrMalformedOutput)
	}
	if len(recipe.Steps) == 0 {
		return nil, fmt.Errorf("%w: missing steps", types.ErrMalformedOutput)
	}

	return &recipe, nil
}

// validateRecipe enforces the constraints the prompt alone cannot
// guarantee. An allergy violation is a correctness defect: the recipe is
// rejected, never served.
func validateRecipe(recipe *types.Recipe, req types.GenerationRequest) error {
	if allergen, found := recipe.ContainsAllergen(req.Profile.Allergies); found {
		return fmt.Errorf("%w: ingredient matches allergy %q", types.ErrAllergenViolation, allergen)
	}
	if recipe.Calories < 0 {
		return fmt.Errorf("%w: negative calories", types.ErrMalformedOutput)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
