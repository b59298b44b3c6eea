package common

import (
	"regexp"
	"strings"
)

var spacePattern = regexp.MustCompile(`\s+`)

// NormalizeSpace 去除前後空白並把連續空白合併為一格
func NormalizeSpace(s string) string {
	return spacePattern.ReplaceAllString(strings.TrimSpace(s), " ")
}

// UniqueStrings 去除重複字串，保留首次出現的順序，空字串一併丟棄
func UniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// ContainsFold 不分大小寫的子字串比對
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Truncate 截斷過長的字串，避免日誌塞進整頁 HTML
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
