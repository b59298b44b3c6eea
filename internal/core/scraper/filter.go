package scraper

import (
	"recipe-discovery/internal/pkg/common"
)

// FilterRecipes 依使用者的排除條件過濾已標準化的食譜。
// 純函數、保持輸入順序、永遠不失敗：排除條件是空的就原樣回傳。
// 一筆食譜被剔除的條件：來源 URL 在拒絕名單內，或任一食材品項
// 包含任一討厭字串（不分大小寫）
func FilterRecipes(recipes []common.Recipe, exclusions common.ExclusionContext) []common.Recipe {
	if len(recipes) == 0 {
		return recipes
	}
	if len(exclusions.ExcludedURLs) == 0 && len(exclusions.ExcludeIngredients) == 0 {
		return recipes
	}

	rejectedURLs := make(map[string]struct{}, len(exclusions.ExcludedURLs))
	for _, u := range exclusions.ExcludedURLs {
		rejectedURLs[u] = struct{}{}
	}

	filtered := make([]common.Recipe, 0, len(recipes))
	for _, recipe := range recipes {
		if _, ok := rejectedURLs[recipe.SourceURL]; ok {
			continue
		}
		if containsDisliked(&recipe, exclusions.ExcludeIngredients) {
			continue
		}
		filtered = append(filtered, recipe)
	}
	return filtered
}
