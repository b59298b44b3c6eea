package scraper

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"recipe-discovery/internal/infrastructure/config"
	"recipe-discovery/internal/pkg/common"
)

// Fetcher 頁面抓取器。單一 resty 客戶端由整個爬取流程共用，
// 逾時與 User-Agent 都來自設定檔
type Fetcher struct {
	client *resty.Client
}

// NewFetcher 創建頁面抓取器
func NewFetcher(cfg *config.Config) *Fetcher {
	client := resty.New().
		SetTimeout(cfg.Crawler.FetchTimeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5)).
		SetHeader("User-Agent", cfg.Crawler.UserAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8").
		SetHeader("Accept-Language", "en-US,en;q=0.5")

	return &Fetcher{client: client}
}

// GetPage 抓取單一頁面，非 200 一律視為抓取失敗。
// 不做重試：一個 URL 最多打一次
func (f *Fetcher) GetPage(ctx context.Context, pageURL string) ([]byte, error) {
	resp, err := f.client.R().SetContext(ctx).Get(pageURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrFetch, pageURL, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: %s: HTTP %d", common.ErrFetch, pageURL, resp.StatusCode())
	}
	return resp.Body(), nil
}
