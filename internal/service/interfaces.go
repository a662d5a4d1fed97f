package service

import (
	"context"

	"github.com/kivly/backend/internal/models"
	"github.com/kivly/backend/internal/types"
)

// IRecipeService defines the relay contract: exactly one validated recipe
// or a typed error from the failure taxonomy in internal/types.
type IRecipeService interface {
	Generate(ctx context.Context, req types.GenerationRequest) (*types.Recipe, error)
}

// IProfileService defines the client-side profile operations.
type IProfileService interface {
	Load(ctx context.Context) models.UserProfile
	Update(ctx context.Context, patch models.ProfilePatch) (models.UserProfile, error)
	ToggleSavedRecipe(ctx context.Context, recipe types.Recipe) (models.UserProfile, error)
	IsSaved(ctx context.Context, recipe types.Recipe) bool
	BuildRequest(ctx context.Context, filters types.Filters) types.GenerationRequest
}
