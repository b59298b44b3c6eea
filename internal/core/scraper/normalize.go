package scraper

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"recipe-discovery/internal/pkg/common"
)

var firstIntPattern = regexp.MustCompile(`(\d+)`)

// 來源欄位名稱的常見變體 → 固定的六個營養鍵。
// 順序就是優先序：第一個找到的欄位勝出
var nutritionFieldMap = []struct {
	key    string
	fields []string
}{
	{"calories", []string{"calories", "energyValue"}},
	{"protein", []string{"proteinContent", "protein"}},
	{"fat", []string{"fatContent", "fat"}},
	{"carbs", []string{"carbohydrateContent", "carbohydrates"}},
	{"fiber", []string{"fiberContent", "fiber"}},
	{"sugar", []string{"sugarContent", "sugar"}},
}

// Normalize 把任一萃取器的 RawRecipe 收斂成標準 Recipe。
// 單一欄位整理失敗只會讓該欄位退回空值；只有標題或來源 URL
// 缺失、或食材與步驟同時為空，才會整筆丟棄。
// 同樣的輸入永遠產生一模一樣的輸出
func Normalize(raw *RawRecipe, sourceURL string) (*common.Recipe, bool) {
	if raw == nil || sourceURL == "" {
		return nil, false
	}

	title := common.NormalizeSpace(raw.Name)
	if title == "" {
		return nil, false
	}

	base, err := url.Parse(sourceURL)
	if err != nil {
		return nil, false
	}

	recipe := &common.Recipe{
		RecipeID:     recipeID(sourceURL),
		Title:        title,
		Description:  common.NormalizeSpace(raw.Description),
		ImageURL:     resolveImage(raw.Image, base),
		Ingredients:  normalizeIngredients(raw.Ingredients),
		Instructions: normalizeInstructions(raw.Instructions),
		Macros:       mapNutrition(raw.Nutrition),
		Servings:     parseServings(raw.Yield),
		SourceURL:    sourceURL,
		SiteName:     siteNameFromHost(base.Host),
	}

	if len(recipe.Ingredients) == 0 && len(recipe.Instructions) == 0 {
		return nil, false
	}
	return recipe, true
}

// recipeID 由來源 URL 導出的固定識別碼
func recipeID(sourceURL string) string {
	sum := sha256.Sum256([]byte(sourceURL))
	return hex.EncodeToString(sum[:])[:12]
}

// resolveImage 處理圖片欄位的三種形態：字串、{url: ...} 物件、或列表取第一項。
// 相對路徑一律以來源頁面為基準補全
func resolveImage(v interface{}, base *url.URL) string {
	switch img := v.(type) {
	case string:
		return resolveURL(img, base)
	case map[string]interface{}:
		if u, ok := img["url"].(string); ok {
			return resolveURL(u, base)
		}
	case []interface{}:
		if len(img) > 0 {
			return resolveImage(img[0], base)
		}
	}
	return ""
}

func resolveURL(raw string, base *url.URL) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// normalizeIngredients 自由文字交給 Quantity Parser，
// 已結構化的物件原樣帶過
func normalizeIngredients(items []interface{}) []common.Ingredient {
	var out []common.Ingredient
	for _, item := range items {
		switch ing := item.(type) {
		case string:
			if strings.TrimSpace(ing) == "" {
				continue
			}
			out = append(out, ParseIngredient(ing))
		case map[string]interface{}:
			if parsed, ok := structuredIngredient(ing); ok {
				out = append(out, parsed)
			}
		}
	}
	return out
}

// structuredIngredient 還原已結構化的食材物件
func structuredIngredient(m map[string]interface{}) (common.Ingredient, bool) {
	item, _ := m["item"].(string)
	if item == "" {
		item, _ = m["name"].(string)
	}
	item = common.NormalizeSpace(item)
	if item == "" {
		return common.Ingredient{}, false
	}

	ing := common.Ingredient{Item: item}
	if q, ok := m["quantity"].(float64); ok {
		ing.Quantity = &q
	}
	if u, ok := m["unit"].(string); ok {
		ing.Unit = &u
	}
	return ing, true
}

// normalizeInstructions 步驟物件取 text（退而求其次取 name），
// 壓平成非空字串清單
func normalizeInstructions(steps []interface{}) []string {
	var out []string
	for _, step := range steps {
		switch s := step.(type) {
		case string:
			if text := common.NormalizeSpace(s); text != "" {
				out = append(out, text)
			}
		case map[string]interface{}:
			text, _ := s["text"].(string)
			if text == "" {
				text, _ = s["name"].(string)
			}
			if text = common.NormalizeSpace(text); text != "" {
				out = append(out, text)
			}
		}
	}
	return out
}

// mapNutrition 將來源欄位變體映射到六個固定鍵；
// 文字值取第一段數字（"400 calories" → 400）。
// 一個鍵都對不上就回 nil，整個 macros 欄位省略
func mapNutrition(nutrition map[string]interface{}) *common.Macros {
	if len(nutrition) == 0 {
		return nil
	}

	values := make(map[string]int)
	for _, mapping := range nutritionFieldMap {
		for _, field := range mapping.fields {
			v, ok := nutrition[field]
			if !ok {
				continue
			}
			if n, ok := extractInt(v); ok {
				values[mapping.key] = n
			}
			break // 第一個存在的欄位勝出，就算取不出數字也不再往後找
		}
	}
	if len(values) == 0 {
		return nil
	}

	macros := &common.Macros{}
	if v, ok := values["calories"]; ok {
		macros.Calories = &v
	}
	if v, ok := values["protein"]; ok {
		macros.Protein = &v
	}
	if v, ok := values["fat"]; ok {
		macros.Fat = &v
	}
	if v, ok := values["carbs"]; ok {
		macros.Carbs = &v
	}
	if v, ok := values["fiber"]; ok {
		macros.Fiber = &v
	}
	if v, ok := values["sugar"]; ok {
		macros.Sugar = &v
	}
	return macros
}

// parseServings 從字串、列表或數字取出第一個整數
func parseServings(v interface{}) *int {
	switch y := v.(type) {
	case nil:
		return nil
	case []interface{}:
		if len(y) == 0 {
			return nil
		}
		return parseServings(y[0])
	default:
		if n, ok := extractInt(v); ok {
			return &n
		}
	}
	return nil
}

// extractInt 從數字或文字（取第一段連續數字）讀出整數
func extractInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case string:
		if m := firstIntPattern.FindString(n); m != "" {
			if value, err := strconv.Atoi(m); err == nil {
				return value, true
			}
		}
	}
	return 0, false
}

// siteNameFromHost 去掉 www. 前綴後取第一段網域標籤，字首大寫
func siteNameFromHost(host string) string {
	host = strings.TrimPrefix(strings.ToLower(host), "www.")
	if host == "" {
		return ""
	}
	label, _, _ := strings.Cut(host, ".")
	if label == "" {
		return ""
	}
	runes := []rune(label)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
