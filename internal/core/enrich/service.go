package enrich

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"recipe-discovery/internal/infrastructure/config"
	"recipe-discovery/internal/pkg/common"
)

// CompletionClient 單輪文字補全的抽象，方便測試替換
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Service 查詢強化服務。把使用者的原始描述加上飲食限制與排除條件，
// 組成適合丟給搜尋來源的查詢字串。LLM 只是加分項：
// 沒設定或呼叫失敗時一律退回本地的關鍵字抽取
type Service struct {
	config *config.Config
	llm    CompletionClient
}

// NewService 創建查詢強化服務。llm 可為 nil（功能未啟用時）
func NewService(cfg *config.Config, llm CompletionClient) *Service {
	return &Service{config: cfg, llm: llm}
}

// EnrichPrompt 把原始描述與使用者的排除條件組成強化查詢。
// 格式固定，下游管線把整串當成不透明字串使用
func (s *Service) EnrichPrompt(prompt string, exclusions common.ExclusionContext) string {
	enriched := strings.TrimSpace(prompt)

	if exclusions.DietType != "" {
		enriched = fmt.Sprintf("%s, filtered for a %s diet", enriched, exclusions.DietType)
	}
	if len(exclusions.ExcludeIngredients) > 0 {
		enriched = fmt.Sprintf("%s, EXCLUDE: %s", enriched, strings.Join(exclusions.ExcludeIngredients, ", "))
	}
	return enriched
}

// ExtractKeywords 從強化查詢抽出搜尋關鍵字。
// 優先走 LLM（要求回傳 JSON 字串陣列），失敗就退回本地斷詞
func (s *Service) ExtractKeywords(ctx context.Context, enrichedQuery string) []string {
	if s.config.OpenRouter.Enabled && s.llm != nil {
		keywords, err := s.extractWithLLM(ctx, enrichedQuery)
		if err == nil && len(keywords) > 0 {
			return keywords
		}
		common.LogWarn("LLM 關鍵字抽取失敗，改用本地斷詞", zap.Error(err))
	}
	return naiveKeywords(enrichedQuery)
}

const keywordPromptTemplate = `Extract up to 5 food search keywords from the following recipe request.
Ignore any exclusion list. Respond with a JSON array of strings only, no other text.

Request: %s`

func (s *Service) extractWithLLM(ctx context.Context, enrichedQuery string) ([]string, error) {
	content, err := s.llm.Complete(ctx, fmt.Sprintf(keywordPromptTemplate, enrichedQuery))
	if err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var keywords []string
	if err := common.ParseJSON(content, &keywords); err != nil {
		// 模型偶爾會漏掉引號，修補後再試一次
		if retryErr := common.ParseJSON(common.QuoteJSONKeys(content), &keywords); retryErr != nil {
			return nil, fmt.Errorf("failed to parse keywords: %w", err)
		}
	}
	return common.UniqueStrings(keywords), nil
}

// 本地斷詞會略過的常見虛詞
var keywordStopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "and": {}, "or": {}, "for": {},
	"with": {}, "some": {}, "diet": {}, "filtered": {}, "recipe": {},
	"recipes": {}, "i": {}, "want": {}, "something": {}, "make": {},
}

// naiveKeywords 不依賴外部服務的關鍵字抽取：
// 先截掉排除清單，再切詞、去虛詞、去重，最多取 5 個
func naiveKeywords(enrichedQuery string) []string {
	query := enrichedQuery
	if idx := strings.Index(query, "EXCLUDE:"); idx >= 0 {
		query = query[:idx]
	}

	words := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})

	keywords := make([]string, 0, len(words))
	for _, word := range words {
		if _, skip := keywordStopwords[word]; skip {
			continue
		}
		keywords = append(keywords, word)
	}

	keywords = common.UniqueStrings(keywords)
	if len(keywords) > 5 {
		keywords = keywords[:5]
	}
	return keywords
}
