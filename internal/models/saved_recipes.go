package models

import "github.com/kivly/backend/internal/types"

// SavedRecipeCollection keeps set semantics layered on an ordered sequence:
// insertion order is preserved for display while titles stay unique. Title
// is the de-dup convenience key; the content-hash ID travels with each
// recipe for callers that need a stronger identity.
type SavedRecipeCollection []types.Recipe

// Contains reports whether a recipe with the given title is present.
func (c SavedRecipeCollection) Contains(title string) bool {
	for _, r := range c {
		if r.Title == title {
			return true
		}
	}
	return false
}

// Add appends the recipe unless one with the same title is already present.
func (c SavedRecipeCollection) Add(recipe types.Recipe) SavedRecipeCollection {
	if c.Contains(recipe.Title) {
		return c
	}
	return append(c, recipe)
}

// Remove drops the recipe with the given title, preserving the order of the
// remaining entries.
func (c SavedRecipeCollection) Remove(title string) SavedRecipeCollection {
	out := make(SavedRecipeCollection, 0, len(c))
	for _, r := range c {
		if r.Title != title {
			out = append(out, r)
		}
	}
	return out
}

// Toggle removes the recipe if present, appends it otherwise. Applying it
// twice with the same recipe restores the collection to its prior state.
func (c SavedRecipeCollection) Toggle(recipe types.Recipe) SavedRecipeCollection {
	if c.Contains(recipe.Title) {
		return c.Remove(recipe.Title)
	}
	return c.Add(recipe)
}
