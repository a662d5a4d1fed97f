package models

import "github.com/kivly/backend/internal/types"

// UserProfile is the persisted description of a user's dietary constraints,
// tools and pantry, plus the recipes they chose to keep. It is serialized
// as a single record under a fixed storage key; readers must tolerate older
// records that predate the savedRecipes field.
type UserProfile struct {
	IsOnboarded      bool                  `json:"isOnboarded"`
	DietType         string                `json:"dietType"`
	Allergies        []string              `json:"allergies"`
	KitchenTools     []string              `json:"kitchenTools"`
	PantryEssentials []string              `json:"pantryEssentials"`
	SkillLevel       string                `json:"skillLevel"`
	SavedRecipes     SavedRecipeCollection `json:"savedRecipes"`
}

// DefaultProfile is what a fresh install (or an unreadable record) loads.
func DefaultProfile() UserProfile {
	return UserProfile{
		IsOnboarded:      false,
		DietType:         types.DietOmnivore,
		Allergies:        []string{},
		KitchenTools:     []string{"Stove"},
		PantryEssentials: []string{},
		SkillLevel:       types.SkillIntermediate,
		SavedRecipes:     SavedRecipeCollection{},
	}
}

// ProfilePatch is a partial profile for shallow merges. Nil fields are left
// untouched.
type ProfilePatch struct {
	IsOnboarded      *bool                  `json:"isOnboarded,omitempty"`
	DietType         *string                `json:"dietType,omitempty"`
	Allergies        *[]string              `json:"allergies,omitempty"`
	KitchenTools     *[]string              `json:"kitchenTools,omitempty"`
	PantryEssentials *[]string              `json:"pantryEssentials,omitempty"`
	SkillLevel       *string                `json:"skillLevel,omitempty"`
	SavedRecipes     *SavedRecipeCollection `json:"savedRecipes,omitempty"`
}

// Merge applies the patch on top of the profile and returns the result.
// String-set fields are de-duplicated, preserving first occurrence order.
func (p UserProfile) Merge(patch ProfilePatch) UserProfile {
	if patch.IsOnboarded != nil {
		p.IsOnboarded = *patch.IsOnboarded
	}
	if patch.DietType != nil {
		p.DietType = *patch.DietType
	}
	if patch.Allergies != nil {
		p.Allergies = dedupe(*patch.Allergies)
	}
	if patch.KitchenTools != nil {
		p.KitchenTools = dedupe(*patch.KitchenTools)
	}
	if patch.PantryEssentials != nil {
		p.PantryEssentials = dedupe(*patch.PantryEssentials)
	}
	if patch.SkillLevel != nil {
		p.SkillLevel = *patch.SkillLevel
	}
	if patch.SavedRecipes != nil {
		p.SavedRecipes = *patch.SavedRecipes
	}
	return p
}

// GenerationRequest assembles the relay request from the profile and the
// transient filter selections. It is pure: no I/O, no mutation.
func (p UserProfile) GenerationRequest(filters types.Filters) types.GenerationRequest {
	return types.GenerationRequest{
		Profile: types.ProfilePayload{
			DietType:         p.DietType,
			KitchenTools:     append([]string(nil), p.KitchenTools...),
			PantryEssentials: append([]string(nil), p.PantryEssentials...),
			Allergies:        append([]string(nil), p.Allergies...),
			SkillLevel:       p.SkillLevel,
		},
		Filters: filters,
	}
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
