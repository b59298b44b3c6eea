package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"recipe-discovery/internal/pkg/common"
)

func makeRecipe(title, sourceURL string, ingredients ...string) common.Recipe {
	recipe := common.Recipe{
		Title:     title,
		SourceURL: sourceURL,
	}
	for _, item := range ingredients {
		recipe.Ingredients = append(recipe.Ingredients, common.Ingredient{Item: item})
	}
	return recipe
}

func TestFilterRecipesNoExclusions(t *testing.T) {
	recipes := []common.Recipe{
		makeRecipe("A", "https://a.com/recipe/1", "rice"),
		makeRecipe("B", "https://b.com/recipe/2", "beef"),
	}

	got := FilterRecipes(recipes, common.ExclusionContext{})
	assert.Equal(t, recipes, got)
}

func TestFilterRecipesExcludedURL(t *testing.T) {
	recipes := []common.Recipe{
		makeRecipe("A", "https://a.com/recipe/1", "rice"),
		makeRecipe("B", "https://b.com/recipe/2", "beef"),
	}
	exclusions := common.ExclusionContext{
		ExcludedURLs: []string{"https://b.com/recipe/2"},
	}

	got := FilterRecipes(recipes, exclusions)
	assert.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Title)
}

func TestFilterRecipesDislikedIngredient(t *testing.T) {
	recipes := []common.Recipe{
		makeRecipe("A", "https://a.com/recipe/1", "chicken", "Roasted Peanuts"),
		makeRecipe("B", "https://b.com/recipe/2", "beef"),
		makeRecipe("C", "https://c.com/recipe/3", "shrimp"),
	}
	exclusions := common.ExclusionContext{
		ExcludeIngredients: []string{"peanut", "SHRIMP"},
	}

	got := FilterRecipes(recipes, exclusions)
	assert.Len(t, got, 1)
	assert.Equal(t, "B", got[0].Title)
}

func TestFilterRecipesKeepsOrder(t *testing.T) {
	recipes := []common.Recipe{
		makeRecipe("C", "https://c.com/recipe/3", "corn"),
		makeRecipe("A", "https://a.com/recipe/1", "rice"),
		makeRecipe("B", "https://b.com/recipe/2", "beef"),
	}
	exclusions := common.ExclusionContext{ExcludeIngredients: []string{"rice"}}

	got := FilterRecipes(recipes, exclusions)
	assert.Equal(t, []string{"C", "B"}, []string{got[0].Title, got[1].Title})
}

func TestFilterRecipesEmptyInput(t *testing.T) {
	assert.Empty(t, FilterRecipes(nil, common.ExclusionContext{ExcludeIngredients: []string{"x"}}))
}
