package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"recipe-discovery/internal/pkg/common"
)

// 每個欄位各自一份選擇器清單，由最專用排到最通用，第一個命中即停。
// 清單順序是行為的一部分，調整前先想清楚
var (
	titleSelectors = []string{
		"h1.recipe-title",
		"h1.recipe-name",
		`h1[itemprop="name"]`,
		`h1[class*="title"]`,
		`h1[class*="recipe"]`,
		".recipe-header h1",
		".entry-title",
		"h1",
		"title",
	}
	descriptionSelectors = []string{
		".recipe-description",
		`[itemprop="description"]`,
		".recipe-summary",
		".recipe-intro",
		".entry-summary p",
		`meta[name="description"]`,
	}
	imageSelectors = []string{
		".recipe-image img",
		`[itemprop="image"]`,
		".recipe-photo img",
		`img[class*="recipe"]`,
		".wp-post-image",
		".hero-image img",
		`img[src*="recipe"]`,
	}
	ingredientSelectors = []string{
		`[itemprop="recipeIngredient"]`,
		".recipe-ingredient",
		".ingredient",
		".recipe-ingredients li",
		".ingredients li",
		`li[class*="ingredient"]`,
	}
	instructionSelectors = []string{
		`[itemprop="recipeInstructions"]`,
		".recipe-instruction",
		".instruction",
		".recipe-instructions li",
		".instructions li",
		".recipe-directions li",
		".directions li",
		".recipe-method li",
	}
	servingsSelectors = []string{
		".recipe-servings",
		".servings",
		`[itemprop="recipeYield"]`,
		".recipe-yield",
		`[class*="serving"]`,
	}
)

// 過短的片段通常是標號或雜訊
const (
	minIngredientLen  = 3
	minInstructionLen = 6
)

// ExtractHeuristic 在沒有結構化資料時，用選擇器規則逐欄位萃取。
// 欄位之間互不影響，單一欄位失敗只會讓該欄位留空；
// 全部欄位都拿不到內容才回報失敗
func ExtractHeuristic(doc *goquery.Document) (*RawRecipe, bool) {
	raw := &RawRecipe{Source: SourceHeuristic}

	raw.Name = findTextBySelectors(doc, titleSelectors)
	raw.Description = findTextBySelectors(doc, descriptionSelectors)

	if img := findImageBySelectors(doc, imageSelectors); img != "" {
		raw.Image = img
	}

	for _, line := range findListBySelectors(doc, ingredientSelectors, minIngredientLen) {
		raw.Ingredients = append(raw.Ingredients, line)
	}
	for _, step := range findListBySelectors(doc, instructionSelectors, minInstructionLen) {
		raw.Instructions = append(raw.Instructions, step)
	}

	if servings := findTextBySelectors(doc, servingsSelectors); servings != "" {
		raw.Yield = servings
	}

	if raw.isEmpty() {
		return nil, false
	}
	return raw, true
}

// findTextBySelectors 依序嘗試選擇器，回傳第一個非空的文字內容
func findTextBySelectors(doc *goquery.Document, selectors []string) string {
	for _, selector := range selectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		if strings.HasPrefix(selector, "meta") {
			if content, ok := sel.Attr("content"); ok {
				if text := common.NormalizeSpace(content); text != "" {
					return text
				}
			}
			continue
		}
		if text := common.NormalizeSpace(sel.Text()); text != "" {
			return text
		}
	}
	return ""
}

// findImageBySelectors 依序嘗試選擇器，回傳第一個有 src（或 data-src）的圖片位址
func findImageBySelectors(doc *goquery.Document, selectors []string) string {
	for _, selector := range selectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		src := sel.AttrOr("src", "")
		if src == "" {
			src = sel.AttrOr("data-src", "")
		}
		if src = strings.TrimSpace(src); src != "" {
			return src
		}
	}
	return ""
}

// findListBySelectors 依序嘗試選擇器，回傳第一個產出非空清單的結果
func findListBySelectors(doc *goquery.Document, selectors []string, minLen int) []string {
	for _, selector := range selectors {
		var items []string
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			if text := common.NormalizeSpace(s.Text()); len(text) >= minLen {
				items = append(items, text)
			}
		})
		if len(items) > 0 {
			return items
		}
	}
	return nil
}
