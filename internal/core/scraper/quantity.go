package scraper

import (
	"regexp"
	"strconv"
	"strings"

	"recipe-discovery/internal/pkg/common"
)

// 開頭的數字（小數或 a/b 簡分數）、可選的純字母單位、其餘為品項
var quantityPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?(?:/\d+)?)\s*([a-zA-Z]+)?\s+(.+)$`)

// ParseIngredient 將單行食材文字解析為 (品項, 數量, 單位)
// 只取開頭的數字，後面夾帶的數字（例如 "2 cans (14.5 oz)" 的 14.5）一律留在品項裡。
// 永遠不會失敗：解析不出來就把整行當品項、數量與單位為 nil
func ParseIngredient(line string) common.Ingredient {
	text := strings.TrimSpace(line)

	m := quantityPattern.FindStringSubmatch(text)
	if m == nil {
		return common.Ingredient{Item: text}
	}

	qty, ok := parseQuantity(m[1])
	if !ok {
		return common.Ingredient{Item: text}
	}

	unit := strings.TrimSpace(m[2])
	return common.Ingredient{
		Item:     strings.TrimSpace(m[3]),
		Quantity: &qty,
		Unit:     &unit,
	}
}

// parseQuantity 解析 "2"、"1.5"、"1/2" 這幾種形式
func parseQuantity(s string) (float64, bool) {
	if num, denom, found := strings.Cut(s, "/"); found {
		n, err1 := strconv.ParseFloat(num, 64)
		d, err2 := strconv.ParseFloat(denom, 64)
		if err1 != nil || err2 != nil || d == 0 {
			return 0, false
		}
		return n / d, true
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
