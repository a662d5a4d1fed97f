package client

import (
	"context"

	"go.uber.org/zap"

	"github.com/kivly/backend/internal/database"
	"github.com/kivly/backend/internal/models"
	"github.com/kivly/backend/internal/service"
	"github.com/kivly/backend/internal/store"
	"github.com/kivly/backend/internal/types"
)

// Session is the client-side composition: the locally persisted profile
// plus the relay caller. One session per device; the profile record is
// exclusively owned by it.
type Session struct {
	profiles *service.ProfileService
	relay    *Client
}

// NewSession opens (or creates) the local profile database and validates
// the relay origin. The origin check happens here, before any generation
// is attempted.
func NewSession(origin, dbPath string, logger *zap.Logger) (*Session, error) {
	relay, err := New(origin)
	if err != nil {
		return nil, err
	}

	db, err := database.Open(dbPath)
	if err != nil {
		return nil, err
	}

	profileStore, err := store.NewProfileStore(db, logger)
	if err != nil {
		return nil, err
	}

	return &Session{
		profiles: service.NewProfileService(profileStore),
		relay:    relay,
	}, nil
}

// Profile returns the current profile, loading defaults on first use.
func (s *Session) Profile(ctx context.Context) models.UserProfile {
	return s.profiles.Load(ctx)
}

// UpdateProfile merges the patch and persists it.
func (s *Session) UpdateProfile(ctx context.Context, patch models.ProfilePatch) (models.UserProfile, error) {
	return s.profiles.Update(ctx, patch)
}

// GenerateRecipe builds the request from the stored profile and the given
// filters and asks the relay for one recipe. Cancelling the context stops
// waiting for the result; the in-flight upstream call is simply abandoned.
func (s *Session) GenerateRecipe(ctx context.Context, filters types.Filters) (*types.Recipe, error) {
	req := s.profiles.BuildRequest(ctx, filters)
	return s.relay.GenerateRecipe(ctx, req)
}

// ToggleSave flips the recipe's saved state and persists the collection.
func (s *Session) ToggleSave(ctx context.Context, recipe types.Recipe) (models.UserProfile, error) {
	return s.profiles.ToggleSavedRecipe(ctx, recipe)
}

// IsSaved reports whether the recipe is in the saved collection.
func (s *Session) IsSaved(ctx context.Context, recipe types.Recipe) bool {
	return s.profiles.IsSaved(ctx, recipe)
}

// SavedRecipes returns the saved collection in insertion order.
func (s *Session) SavedRecipes(ctx context.Context) models.SavedRecipeCollection {
	return s.profiles.Load(ctx).SavedRecipes
}
