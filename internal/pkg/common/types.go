package common

import (
	"net/url"
	"strings"
)

// Ingredient 單一食材，由 Quantity Parser 從自由文字解析而來
// Quantity 為 nil 表示原始文字開頭沒有數字；Unit 為 nil 表示連同數量一併缺失
type Ingredient struct {
	Item     string   `json:"item"`
	Quantity *float64 `json:"quantity"`
	Unit     *string  `json:"unit"`
}

// Macros 營養成分（皆為選填，來源頁面有給才會填，不做任何換算）
type Macros struct {
	Calories *int `json:"calories,omitempty"`
	Protein  *int `json:"protein,omitempty"`
	Fat      *int `json:"fat,omitempty"`
	Carbs    *int `json:"carbs,omitempty"`
	Fiber    *int `json:"fiber,omitempty"`
	Sugar    *int `json:"sugar,omitempty"`
}

// Recipe 標準化後的食譜，由 Normalizer 產生後即不再修改
type Recipe struct {
	RecipeID     string       `json:"recipe_id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	ImageURL     string       `json:"image_url"`
	Ingredients  []Ingredient `json:"ingredients"`
	Instructions []string     `json:"instructions"`
	Macros       *Macros      `json:"macros,omitempty"`
	Servings     *int         `json:"servings"`
	SourceURL    string       `json:"source_url"`
	SiteName     string       `json:"site_name"`
}

// RecipeSource 食譜來源設定，URLTemplate 內含 {query} 佔位符
type RecipeSource struct {
	SiteName    string `json:"site_name"`
	URLTemplate string `json:"url_template"`
	Active      bool   `json:"active"`
}

// BuildSearchURL 將查詢字串代入 {query} 佔位符
func (s RecipeSource) BuildSearchURL(query string) string {
	return strings.ReplaceAll(s.URLTemplate, "{query}", url.QueryEscape(strings.TrimSpace(query)))
}

// ExclusionContext 使用者的排除條件（唯讀，查詢失敗時退回零值）
type ExclusionContext struct {
	DietType           string   `json:"diet_type"`
	ExcludeIngredients []string `json:"exclude_ingredients"`
	ExcludedURLs       []string `json:"excluded_urls"`
}
