package enrich

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"recipe-discovery/internal/infrastructure/config"
	"recipe-discovery/internal/pkg/common"
)

type stubLLM struct {
	reply string
	err   error
}

func (s stubLLM) Complete(ctx context.Context, prompt string) (string, error) {
	return s.reply, s.err
}

func disabledConfig() *config.Config {
	return &config.Config{}
}

func enabledConfig() *config.Config {
	cfg := &config.Config{}
	cfg.OpenRouter.Enabled = true
	return cfg
}

func TestEnrichPromptFull(t *testing.T) {
	service := NewService(disabledConfig(), nil)

	got := service.EnrichPrompt("chicken dinner", common.ExclusionContext{
		DietType:           "keto",
		ExcludeIngredients: []string{"peanuts", "shellfish"},
	})
	assert.Equal(t, "chicken dinner, filtered for a keto diet, EXCLUDE: peanuts, shellfish", got)
}

func TestEnrichPromptNoExclusions(t *testing.T) {
	service := NewService(disabledConfig(), nil)
	assert.Equal(t, "chicken dinner", service.EnrichPrompt("  chicken dinner ", common.ExclusionContext{}))
}

func TestEnrichPromptDietOnly(t *testing.T) {
	service := NewService(disabledConfig(), nil)
	got := service.EnrichPrompt("pasta", common.ExclusionContext{DietType: "vegan"})
	assert.Equal(t, "pasta, filtered for a vegan diet", got)
}

func TestExtractKeywordsLLMDisabled(t *testing.T) {
	service := NewService(disabledConfig(), nil)

	got := service.ExtractKeywords(context.Background(),
		"spicy chicken tacos, filtered for a keto diet, EXCLUDE: peanuts")

	// 排除清單不能混進關鍵字
	assert.Equal(t, []string{"spicy", "chicken", "tacos", "keto"}, got)
}

func TestExtractKeywordsLLM(t *testing.T) {
	service := NewService(enabledConfig(), stubLLM{reply: `["chicken", "tacos"]`})

	got := service.ExtractKeywords(context.Background(), "spicy chicken tacos")
	assert.Equal(t, []string{"chicken", "tacos"}, got)
}

func TestExtractKeywordsLLMCodeFence(t *testing.T) {
	service := NewService(enabledConfig(), stubLLM{reply: "```json\n[\"pasta\"]\n```"})

	got := service.ExtractKeywords(context.Background(), "creamy pasta")
	assert.Equal(t, []string{"pasta"}, got)
}

func TestExtractKeywordsLLMFailureFallsBack(t *testing.T) {
	service := NewService(enabledConfig(), stubLLM{err: errors.New("timeout")})

	got := service.ExtractKeywords(context.Background(), "beef stew")
	assert.Equal(t, []string{"beef", "stew"}, got)
}

func TestExtractKeywordsLLMGarbageFallsBack(t *testing.T) {
	service := NewService(enabledConfig(), stubLLM{reply: "sure! here are the keywords"})

	got := service.ExtractKeywords(context.Background(), "beef stew")
	assert.Equal(t, []string{"beef", "stew"}, got)
}

func TestNaiveKeywordsCap(t *testing.T) {
	got := naiveKeywords("one two three four five six seven")
	assert.Len(t, got, 5)
}
