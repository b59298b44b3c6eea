package sources

import (
	"context"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"recipe-discovery/internal/pkg/common"
)

const sourcesKey = "recipe:sources"

// 查不到資料時退回的預設來源（模板內含 {query} 佔位符）
var defaultSources = []common.RecipeSource{
	{SiteName: "AllRecipes", URLTemplate: "https://www.allrecipes.com/search/results/?search={query}", Active: true},
	{SiteName: "EatingWell", URLTemplate: "https://www.eatingwell.com/search?q={query}", Active: true},
	{SiteName: "FoodNetwork", URLTemplate: "https://www.foodnetwork.com/search/{query}", Active: true},
	{SiteName: "TasteOfHome", URLTemplate: "https://www.tasteofhome.com/search/?q={query}", Active: true},
	{SiteName: "RecipeTinEats", URLTemplate: "https://www.recipetineats.com/?s={query}", Active: true},
	{SiteName: "SimplyRecipes", URLTemplate: "https://www.simplyrecipes.com/search?q={query}", Active: true},
}

// Registry 食譜來源註冊表。來源存在 redis 的單一清單鍵底下，
// 讀取失敗或清單為空時退回內建的預設來源，所以查詢永遠有結果
type Registry struct {
	client *redis.Client
}

// NewRegistry 創建來源註冊表
func NewRegistry(client *redis.Client) *Registry {
	return &Registry{client: client}
}

// ActiveSources 回傳啟用中的來源。任何讀取失敗都只記錄並退回預設值
func (r *Registry) ActiveSources(ctx context.Context) ([]common.RecipeSource, error) {
	if r.client == nil {
		return activeOnly(defaultSources), nil
	}

	rows, err := r.client.LRange(ctx, sourcesKey, 0, -1).Result()
	if err != nil {
		common.LogWarn("讀取食譜來源失敗，退回預設來源", zap.Error(err))
		return activeOnly(defaultSources), nil
	}
	if len(rows) == 0 {
		return activeOnly(defaultSources), nil
	}

	var sources []common.RecipeSource
	for _, row := range rows {
		var source common.RecipeSource
		if err := common.ParseJSON(row, &source); err != nil {
			common.LogWarn("來源資料格式不合，跳過", zap.Error(err))
			continue
		}
		sources = append(sources, source)
	}
	if len(sources) == 0 {
		return activeOnly(defaultSources), nil
	}
	return activeOnly(sources), nil
}

// ReplaceSources 覆寫整份來源清單（種子資料與後台維護用）
func (r *Registry) ReplaceSources(ctx context.Context, sources []common.RecipeSource) error {
	if r.client == nil {
		return redis.ErrClosed
	}

	rows := make([]interface{}, 0, len(sources))
	for _, source := range sources {
		data, err := common.ToJSON(source)
		if err != nil {
			return err
		}
		rows = append(rows, data)
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, sourcesKey)
	if len(rows) > 0 {
		pipe.RPush(ctx, sourcesKey, rows...)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// activeOnly 過濾掉停用的來源
func activeOnly(sources []common.RecipeSource) []common.RecipeSource {
	out := make([]common.RecipeSource, 0, len(sources))
	for _, source := range sources {
		if source.Active {
			out = append(out, source)
		}
	}
	return out
}
