package scraper

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractStructured 從頁面內嵌的 JSON-LD 區塊找出第一筆食譜資料
// 依序掃描每個 script[type="application/ld+json"]：頂層物件、頂層列表、
// @graph 列表、以及物件值的第一層巢狀（物件或列表）都會檢查。
// 單一區塊解析失敗只會跳過該區塊，不影響其他區塊
func ExtractStructured(doc *goquery.Document) (*RawRecipe, bool) {
	var found map[string]interface{}

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var data interface{}
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			return true // 格式不合的區塊直接跳過
		}
		if m := findRecipeObject(data); m != nil {
			found = m
			return false
		}
		return true
	})

	if found == nil {
		return nil, false
	}
	return fromStructured(found), true
}

// findRecipeObject 在解析後的 JSON-LD 裡找食譜物件，巢狀只往下看一層
func findRecipeObject(data interface{}) map[string]interface{} {
	switch v := data.(type) {
	case []interface{}:
		for _, item := range v {
			if m, ok := item.(map[string]interface{}); ok && isRecipeObject(m) {
				return m
			}
		}
	case map[string]interface{}:
		if isRecipeObject(v) {
			return v
		}
		if graph, ok := v["@graph"].([]interface{}); ok {
			for _, item := range graph {
				if m, ok := item.(map[string]interface{}); ok && isRecipeObject(m) {
					return m
				}
			}
		}
		// 巢狀鍵依字典序走訪：map 的走訪順序是隨機的，
		// 同一份輸入必須永遠選到同一筆
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			switch nested := v[key].(type) {
			case map[string]interface{}:
				if isRecipeObject(nested) {
					return nested
				}
			case []interface{}:
				for _, item := range nested {
					if m, ok := item.(map[string]interface{}); ok && isRecipeObject(m) {
						return m
					}
				}
			}
		}
	}
	return nil
}

// isRecipeObject 判斷物件是否為食譜：@type 含 "recipe"（不分大小寫），
// 或帶有食譜特徵鍵
func isRecipeObject(m map[string]interface{}) bool {
	switch t := m["@type"].(type) {
	case string:
		if strings.Contains(strings.ToLower(t), "recipe") {
			return true
		}
	case []interface{}:
		for _, item := range t {
			if s, ok := item.(string); ok && strings.Contains(strings.ToLower(s), "recipe") {
				return true
			}
		}
	}

	for _, key := range []string{"name", "recipeIngredient", "recipeInstructions"} {
		if _, ok := m[key]; ok {
			return true
		}
	}
	return false
}

// fromStructured 將 JSON-LD 物件整理成 RawRecipe，欄位保留原始型別
func fromStructured(m map[string]interface{}) *RawRecipe {
	raw := &RawRecipe{Source: SourceStructured}

	if name, ok := m["name"].(string); ok {
		raw.Name = name
	}
	if desc, ok := m["description"].(string); ok {
		raw.Description = desc
	}
	raw.Image = m["image"]

	if items, ok := m["recipeIngredient"].([]interface{}); ok {
		raw.Ingredients = items
	}
	if steps, ok := m["recipeInstructions"].([]interface{}); ok {
		raw.Instructions = steps
	}
	if nutrition, ok := m["nutrition"].(map[string]interface{}); ok {
		raw.Nutrition = nutrition
	}

	if y, ok := m["recipeYield"]; ok {
		raw.Yield = y
	} else if y, ok := m["yield"]; ok {
		raw.Yield = y
	}

	return raw
}
