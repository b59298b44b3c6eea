package enrich

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"recipe-discovery/internal/infrastructure/config"
	"recipe-discovery/internal/pkg/common"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterClient OpenRouter API 客戶端（查詢強化專用）
type OpenRouterClient struct {
	config *config.Config
	client *resty.Client
}

// chatRequest 聊天補全請求
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse 聊天補全響應
type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// NewOpenRouterClient 創建 OpenRouter 客戶端
func NewOpenRouterClient(cfg *config.Config) *OpenRouterClient {
	client := resty.New().
		SetBaseURL(openRouterBaseURL).
		SetTimeout(cfg.OpenRouter.Timeout).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.OpenRouter.APIKey)).
		SetHeader("HTTP-Referer", "https://recipe-discovery.app").
		SetHeader("X-Title", "Recipe Discovery")

	return &OpenRouterClient{
		config: cfg,
		client: client,
	}
}

// Complete 送出單輪提示並回傳模型的文字回覆
func (c *OpenRouterClient) Complete(ctx context.Context, prompt string) (string, error) {
	req := &chatRequest{
		Model: c.config.OpenRouter.Model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		MaxTokens:   c.config.OpenRouter.MaxTokens,
		Temperature: 0.3,
	}

	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&chatResponse{}).
		Post("/chat/completions")
	common.LogLLMCall(c.config.OpenRouter.Model, time.Since(start), err)

	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("LLM service error (status %d): %s",
			resp.StatusCode(), common.Truncate(resp.String(), 512))
	}

	result, ok := resp.Result().(*chatResponse)
	if !ok || len(result.Choices) == 0 {
		return "", fmt.Errorf("empty choices in response")
	}

	content := result.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("empty content in response")
	}
	return content, nil
}
