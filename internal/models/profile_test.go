package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kivly/backend/internal/types"
)

func TestDefaultProfile(t *testing.T) {
	profile := DefaultProfile()

	assert.False(t, profile.IsOnboarded)
	assert.Equal(t, types.DietOmnivore, profile.DietType)
	assert.Equal(t, types.SkillIntermediate, profile.SkillLevel)
	assert.Equal(t, []string{"Stove"}, profile.KitchenTools)
	assert.Empty(t, profile.Allergies)
	assert.Empty(t, profile.PantryEssentials)
	assert.NotNil(t, profile.SavedRecipes)
	assert.Empty(t, profile.SavedRecipes)
}

func TestUserProfile_Merge(t *testing.T) {
	t.Run("nil fields leave the profile untouched", func(t *testing.T) {
		base := DefaultProfile()
		merged := base.Merge(ProfilePatch{})
		assert.Equal(t, base, merged)
	})

	t.Run("set fields replace their counterparts", func(t *testing.T) {
		diet := types.DietVegan
		onboarded := true
		pantry := []string{"rice", "lentils"}

		merged := DefaultProfile().Merge(ProfilePatch{
			DietType:         &diet,
			IsOnboarded:      &onboarded,
			PantryEssentials: &pantry,
		})

		assert.Equal(t, types.DietVegan, merged.DietType)
		assert.True(t, merged.IsOnboarded)
		assert.Equal(t, []string{"rice", "lentils"}, merged.PantryEssentials)
		// Untouched fields keep defaults.
		assert.Equal(t, []string{"Stove"}, merged.KitchenTools)
	})

	t.Run("string sets are de-duplicated preserving order", func(t *testing.T) {
		tools := []string{"Stove", "Oven", "Stove", "Blender", "Oven"}
		merged := DefaultProfile().Merge(ProfilePatch{KitchenTools: &tools})
		assert.Equal(t, []string{"Stove", "Oven", "Blender"}, merged.KitchenTools)
	})

	t.Run("merge does not mutate the receiver", func(t *testing.T) {
		base := DefaultProfile()
		diet := types.DietKeto
		_ = base.Merge(ProfilePatch{DietType: &diet})
		assert.Equal(t, types.DietOmnivore, base.DietType)
	})
}

func TestUserProfile_GenerationRequest(t *testing.T) {
	profile := UserProfile{
		DietType:         types.DietVegan,
		Allergies:        []string{"peanut"},
		KitchenTools:     []string{"Stove"},
		PantryEssentials: []string{"rice", "lentils"},
		SkillLevel:       types.SkillBasic,
	}
	filters := types.Filters{
		Time:     types.Time30,
		Calories: types.CaloriesMedium,
		Balance:  types.BalanceBalanced,
	}

	t.Run("is pure and deterministic", func(t *testing.T) {
		first := profile.GenerationRequest(filters)
		second := profile.GenerationRequest(filters)
		assert.Equal(t, first, second)
	})

	t.Run("copies slices instead of aliasing them", func(t *testing.T) {
		req := profile.GenerationRequest(filters)
		req.Profile.PantryEssentials[0] = "mutated"
		assert.Equal(t, "rice", profile.PantryEssentials[0])
	})

	t.Run("empty lists stay representable", func(t *testing.T) {
		req := DefaultProfile().GenerationRequest(filters)
		assert.Empty(t, req.Profile.PantryEssentials)
		assert.Empty(t, req.Profile.Allergies)
	})
}
