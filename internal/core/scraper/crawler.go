package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"recipe-discovery/internal/infrastructure/config"
	"recipe-discovery/internal/pkg/common"
)

// SourceProvider 提供啟用中的食譜來源（外部協作者，唯讀）
type SourceProvider interface {
	ActiveSources(ctx context.Context) ([]common.RecipeSource, error)
}

// crawlStats 單次爬取的統計
type crawlStats struct {
	searchPages atomic.Int64
	candidates  atomic.Int64
	fetched     atomic.Int64
	fetchErrors atomic.Int64
	extracted   atomic.Int64
}

// Crawler 驅動整條食譜擷取管線：
// 來源 → 搜尋 URL → 候選頁 → 抓取 + 萃取 + 標準化 → 驗收。
// 每次 DiscoverRecipes 是一個獨立的爬取工作階段，彼此不共享狀態
type Crawler struct {
	cfg     *config.Config
	fetcher *Fetcher
	sources SourceProvider
}

// NewCrawler 創建爬蟲
func NewCrawler(cfg *config.Config, fetcher *Fetcher, sources SourceProvider) *Crawler {
	return &Crawler{
		cfg:     cfg,
		fetcher: fetcher,
		sources: sources,
	}
}

// DiscoverRecipes 執行一次完整的爬取工作階段。
// 單一頁面的任何失敗只會被記錄然後跳過，永遠不會讓整個階段失敗；
// 找不到東西就回傳空清單（部分成功也照樣回傳已驗收的部分）
func (c *Crawler) DiscoverRecipes(ctx context.Context, enrichedQuery string, dislikedIngredients []string, maxRecipes int) []common.Recipe {
	// 呼叫端給的目標數只能往下調，不能超過設定的上限：
	// 候選預算是目標數的倍數，放任它會把整條管線撐爆
	if maxRecipes <= 0 || maxRecipes > c.cfg.Crawler.MaxRecipes {
		maxRecipes = c.cfg.Crawler.MaxRecipes
	}

	sources, err := c.sources.ActiveSources(ctx)
	if err == nil && len(sources) == 0 {
		err = common.ErrNoActiveSources
	}
	if err != nil {
		common.LogWarn("沒有啟用中的食譜來源，回傳空結果", zap.Error(err))
		return nil
	}

	var stats crawlStats

	candidates := c.collectCandidates(ctx, enrichedQuery, sources, maxRecipes, &stats)
	if len(candidates) == 0 {
		common.LogWarn("沒有任何候選食譜 URL",
			zap.String("query", enrichedQuery),
			zap.Int("sources", len(sources)),
		)
		return nil
	}

	results := c.scrapeAll(ctx, candidates, &stats)
	accepted := c.accept(results, dislikedIngredients, maxRecipes)

	common.LogInfo("爬取工作階段結束",
		zap.Int64("search_pages", stats.searchPages.Load()),
		zap.Int64("candidates", stats.candidates.Load()),
		zap.Int64("fetched", stats.fetched.Load()),
		zap.Int64("fetch_errors", stats.fetchErrors.Load()),
		zap.Int64("extracted", stats.extracted.Load()),
		zap.Int("accepted", len(accepted)),
	)
	return accepted
}

// collectCandidates 對每個來源代入查詢字串、抓搜尋頁、收集候選 URL。
// 來源在探索階段出錯就跳過，不重試；候選數達到目標的倍數即提前停止
func (c *Crawler) collectCandidates(ctx context.Context, query string, sources []common.RecipeSource, maxRecipes int, stats *crawlStats) []string {
	target := maxRecipes * c.cfg.Crawler.CandidateMultiplier

	var candidates []string
	for i, source := range sources {
		if i >= c.cfg.Crawler.MaxSearchURLs {
			break
		}

		searchURL := source.BuildSearchURL(query)
		stats.searchPages.Add(1)

		body, err := c.fetcher.GetPage(ctx, searchURL)
		if err != nil {
			common.LogWarn("搜尋頁抓取失敗，跳過該來源",
				zap.String("site", source.SiteName),
				zap.Error(err),
			)
			continue
		}

		urls := ExtractRecipeURLs(body, searchURL, c.cfg.Crawler.MaxURLsPerPage)
		common.LogDebug("搜尋頁探索完成",
			zap.String("site", source.SiteName),
			zap.Int("urls", len(urls)),
		)
		candidates = append(candidates, urls...)

		if len(candidates) >= target {
			break
		}
	}

	candidates = common.UniqueStrings(candidates)
	if len(candidates) > target {
		candidates = candidates[:target]
	}
	stats.candidates.Store(int64(len(candidates)))
	return candidates
}

// scrapeAll 在固定的並行上限內抓取所有候選頁。
// 回傳的切片與候選順序一一對應，失敗的位置為 nil，
// 讓後續驗收有確定性的順序可依
func (c *Crawler) scrapeAll(ctx context.Context, candidates []string, stats *crawlStats) []*common.Recipe {
	results := make([]*common.Recipe, len(candidates))

	sem := make(chan struct{}, c.cfg.Crawler.MaxConcurrent)
	var wg sync.WaitGroup

	for i, pageURL := range candidates {
		wg.Add(1)
		go func(i int, pageURL string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-sem }()

			recipe, err := c.scrapeOne(ctx, pageURL, stats)
			if err != nil {
				logScrapeFailure(pageURL, err, stats)
				return
			}
			stats.extracted.Add(1)
			results[i] = recipe
		}(i, pageURL)
	}
	wg.Wait()

	return results
}

// scrapeOne 抓取單一頁面並走完萃取鏈：
// 結構化資料優先，拿不到才用啟發式規則，最後統一標準化。
// 失敗以 sentinel 分類後回傳，由呼叫端記錄並跳過該頁
func (c *Crawler) scrapeOne(ctx context.Context, pageURL string, stats *crawlStats) (*common.Recipe, error) {
	body, err := c.fetcher.GetPage(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	stats.fetched.Add(1)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrParse, pageURL, err)
	}

	raw, ok := ExtractStructured(doc)
	if !ok {
		raw, ok = ExtractHeuristic(doc)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", common.ErrNoRecipeData, pageURL)
	}

	recipe, ok := Normalize(raw, pageURL)
	if !ok {
		return nil, fmt.Errorf("%w: %s: extractor %s", common.ErrNoRecipeData, pageURL, raw.Source)
	}

	common.LogInfo("成功萃取食譜",
		zap.String("title", recipe.Title),
		zap.String("site", recipe.SiteName),
		zap.String("extractor", string(raw.Source)),
	)
	return recipe, nil
}

// logScrapeFailure 失敗分類：抓取與解析錯誤值得注意，
// 單純沒有食譜資料的頁面只留 debug
func logScrapeFailure(pageURL string, err error, stats *crawlStats) {
	switch {
	case errors.Is(err, common.ErrFetch):
		stats.fetchErrors.Add(1)
		common.LogWarn("頁面抓取失敗", zap.String("url", pageURL), zap.Error(err))
	case errors.Is(err, common.ErrParse):
		common.LogWarn("頁面解析失敗", zap.String("url", pageURL), zap.Error(err))
	default:
		common.LogDebug("頁面沒有可用的食譜資料", zap.String("url", pageURL), zap.Error(err))
	}
}

// accept 驗收規則：食材與步驟都要有內容、不含使用者討厭的食材、
// 同一個站台在同一個工作階段只收第一筆，收滿目標數就停
func (c *Crawler) accept(results []*common.Recipe, dislikedIngredients []string, maxRecipes int) []common.Recipe {
	seenSites := make(map[string]struct{})

	var accepted []common.Recipe
	for _, recipe := range results {
		if recipe == nil {
			continue
		}
		if len(recipe.Ingredients) == 0 || len(recipe.Instructions) == 0 {
			continue
		}
		if containsDisliked(recipe, dislikedIngredients) {
			continue
		}

		siteKey := strings.ToLower(recipe.SiteName)
		if _, ok := seenSites[siteKey]; ok {
			continue
		}
		seenSites[siteKey] = struct{}{}

		accepted = append(accepted, *recipe)
		if len(accepted) >= maxRecipes {
			break
		}
	}
	return accepted
}

// containsDisliked 任一食材品項包含任一討厭字串（不分大小寫）即成立
func containsDisliked(recipe *common.Recipe, disliked []string) bool {
	for _, ingredient := range recipe.Ingredients {
		for _, bad := range disliked {
			if bad == "" {
				continue
			}
			if common.ContainsFold(ingredient.Item, bad) {
				return true
			}
		}
	}
	return false
}
