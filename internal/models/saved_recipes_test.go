package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kivly/backend/internal/types"
)

func recipeWithTitle(title string) types.Recipe {
	return types.Recipe{
		Title:       title,
		Ingredients: []string{"1 cup of something"},
		Steps:       []string{"Cook it."},
	}
}

func TestSavedRecipeCollection_Toggle(t *testing.T) {
	t.Run("toggling twice restores the prior state", func(t *testing.T) {
		stew := recipeWithTitle("Lentil Stew")

		var collection SavedRecipeCollection
		collection = collection.Toggle(stew)
		assert.True(t, collection.Contains("Lentil Stew"))

		collection = collection.Toggle(stew)
		assert.Empty(t, collection)
	})

	t.Run("toggle keeps unrelated entries in order", func(t *testing.T) {
		collection := SavedRecipeCollection{}.
			Add(recipeWithTitle("First")).
			Add(recipeWithTitle("Second")).
			Add(recipeWithTitle("Third"))

		collection = collection.Toggle(recipeWithTitle("Second"))

		assert.Len(t, collection, 2)
		assert.Equal(t, "First", collection[0].Title)
		assert.Equal(t, "Third", collection[1].Title)
	})
}

func TestSavedRecipeCollection_Add(t *testing.T) {
	t.Run("duplicate titles are a no-op", func(t *testing.T) {
		collection := SavedRecipeCollection{}.
			Add(recipeWithTitle("Pasta")).
			Add(recipeWithTitle("Pasta"))

		assert.Len(t, collection, 1)
	})

	t.Run("insertion order is preserved", func(t *testing.T) {
		collection := SavedRecipeCollection{}.
			Add(recipeWithTitle("Zucchini Boats")).
			Add(recipeWithTitle("Arepas")).
			Add(recipeWithTitle("Miso Soup"))

		titles := make([]string, 0, len(collection))
		for _, r := range collection {
			titles = append(titles, r.Title)
		}
		assert.Equal(t, []string{"Zucchini Boats", "Arepas", "Miso Soup"}, titles)
	})
}

func TestSavedRecipeCollection_Remove(t *testing.T) {
	collection := SavedRecipeCollection{}.
		Add(recipeWithTitle("Keep Me")).
		Add(recipeWithTitle("Drop Me"))

	collection = collection.Remove("Drop Me")
	assert.Len(t, collection, 1)
	assert.True(t, collection.Contains("Keep Me"))

	// Removing an absent title is harmless.
	collection = collection.Remove("Never Existed")
	assert.Len(t, collection, 1)
}
