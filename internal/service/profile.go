package service

import (
	"context"

	"github.com/kivly/backend/internal/models"
	"github.com/kivly/backend/internal/store"
	"github.com/kivly/backend/internal/types"
)

// ProfileService handles user profile operations on top of the store.
type ProfileService struct {
	store *store.ProfileStore
}

// Ensure ProfileService implements IProfileService.
var _ IProfileService = (*ProfileService)(nil)

// NewProfileService creates a new ProfileService instance.
func NewProfileService(st *store.ProfileStore) *ProfileService {
	return &ProfileService{store: st}
}

// Load returns the persisted profile, or the default one when nothing
// readable is stored.
func (s *ProfileService) Load(ctx context.Context) models.UserProfile {
	return s.store.Load(ctx)
}

// Update merges the patch into the profile and persists it.
func (s *ProfileService) Update(ctx context.Context, patch models.ProfilePatch) (models.UserProfile, error) {
	return s.store.Update(ctx, patch)
}

// ToggleSavedRecipe flips the recipe's saved state and persists it.
func (s *ProfileService) ToggleSavedRecipe(ctx context.Context, recipe types.Recipe) (models.UserProfile, error) {
	return s.store.ToggleSavedRecipe(ctx, recipe)
}

// IsSaved reports whether a recipe with the same title is saved.
func (s *ProfileService) IsSaved(ctx context.Context, recipe types.Recipe) bool {
	return s.store.IsSaved(ctx, recipe)
}

// BuildRequest assembles a generation request from the current profile and
// the transient filter selections.
func (s *ProfileService) BuildRequest(ctx context.Context, filters types.Filters) types.GenerationRequest {
	return s.store.Load(ctx).GenerationRequest(filters)
}
