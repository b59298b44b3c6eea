package scraper

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"recipe-discovery/internal/pkg/common"
)

// 路徑長得像食譜頁的特徵
var recipePathHints = []string{
	"/recipe/",
	"/recipes/",
	"recipe-",
	"-recipe",
	"/dish/",
	"/cooking/",
	"/meal/",
	"/food/",
}

// 明顯不是單篇食譜的區段
var excludedPathHints = []string{
	"/category/",
	"/categories/",
	"/tag/",
	"/tags/",
	"/about/",
	"/author/",
	"/collection/",
	"/search",
}

// ExtractRecipeURLs 從搜尋結果頁收集候選的食譜頁 URL。
// 所有連結先以頁面 URL 補全成絕對路徑，再用路徑特徵過濾，
// 去重時保留首次出現的順序，最多回傳 maxURLs 筆
func ExtractRecipeURLs(html []byte, pageURL string, maxURLs int) []string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil
	}

	var candidates []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		abs := base.ResolveReference(ref)
		if abs.Scheme != "http" && abs.Scheme != "https" {
			return
		}
		if IsRecipeURL(abs.String()) {
			candidates = append(candidates, abs.String())
		}
	})

	unique := common.UniqueStrings(candidates)
	if maxURLs > 0 && len(unique) > maxURLs {
		unique = unique[:maxURLs]
	}
	return unique
}

// IsRecipeURL 判斷 URL 是否像單篇食譜頁
func IsRecipeURL(rawURL string) bool {
	lower := strings.ToLower(rawURL)

	for _, hint := range excludedPathHints {
		if strings.Contains(lower, hint) {
			return false
		}
	}
	for _, hint := range recipePathHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}
