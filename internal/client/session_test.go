package client

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kivly/backend/internal/models"
	"github.com/kivly/backend/internal/types"
)

func TestNewSession(t *testing.T) {
	t.Run("refuses to start without a configured origin", func(t *testing.T) {
		_, err := NewSession(PlaceholderOrigin, filepath.Join(t.TempDir(), "kivly.db"), zap.NewNop())
		assert.ErrorIs(t, err, ErrOriginNotConfigured)
	})
}

func TestSession_Flow(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{
			"title": "Lentil Stew",
			"description": "A rustic, hearty stew.",
			"time": "30 min",
			"calories": 600,
			"nutrition": {"protein": "25g", "carbs": "60g", "fat": "10g", "sugar": "5g"},
			"ingredients_list": ["200g lentils", "1 onion"],
			"steps": ["Sweat the onion.", "Simmer the lentils until **tender**."]
		}]`)
	}))
	defer backend.Close()

	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "kivly.db")

	session, err := NewSession(backend.URL, dbPath, zap.NewNop())
	require.NoError(t, err)

	// First launch starts from the documented defaults.
	profile := session.Profile(ctx)
	assert.False(t, profile.IsOnboarded)
	assert.Equal(t, types.DietOmnivore, profile.DietType)

	// Onboarding.
	onboarded := true
	diet := types.DietVegan
	pantry := []string{"rice", "lentils"}
	profile, err = session.UpdateProfile(ctx, models.ProfilePatch{
		IsOnboarded:      &onboarded,
		DietType:         &diet,
		PantryEssentials: &pantry,
	})
	require.NoError(t, err)
	assert.True(t, profile.IsOnboarded)

	// Generate and save.
	recipe, err := session.GenerateRecipe(ctx, types.Filters{
		Time:     types.Time30,
		Calories: types.CaloriesMedium,
		Balance:  types.BalanceBalanced,
	})
	require.NoError(t, err)
	assert.Equal(t, "Lentil Stew", recipe.Title)
	assert.False(t, session.IsSaved(ctx, *recipe))

	_, err = session.ToggleSave(ctx, *recipe)
	require.NoError(t, err)
	assert.True(t, session.IsSaved(ctx, *recipe))
	assert.Len(t, session.SavedRecipes(ctx), 1)

	// A fresh session over the same database sees the durable state.
	reopened, err := NewSession(backend.URL, dbPath, zap.NewNop())
	require.NoError(t, err)
	assert.True(t, reopened.Profile(ctx).IsOnboarded)
	assert.True(t, reopened.IsSaved(ctx, *recipe))

	// Toggling again returns the collection to its prior state.
	_, err = reopened.ToggleSave(ctx, *recipe)
	require.NoError(t, err)
	assert.Empty(t, reopened.SavedRecipes(ctx))
}
