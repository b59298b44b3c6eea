package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"recipe-discovery/internal/pkg/common"
)

const resultKeyPrefix = "recipe:search:"

// Store 搜尋結果儲存。每位使用者只保留最近一次搜尋：
// 寫入前先刪掉舊結果，再整批塞入新結果（等冪操作）。
// 寫入失敗只影響持久化，呼叫端手上已經有結果了
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore 創建結果儲存
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// ReplaceResults 先刪除使用者的舊結果再批次寫入新結果，
// 回傳實際寫入的筆數
func (s *Store) ReplaceResults(ctx context.Context, userID string, recipes []common.Recipe) (int, error) {
	if s.client == nil {
		return 0, fmt.Errorf("%w: redis client not configured", common.ErrStorage)
	}
	if userID == "" {
		return 0, fmt.Errorf("%w: empty user id", common.ErrStorage)
	}

	key := resultKeyPrefix + userID

	rows := make([]interface{}, 0, len(recipes))
	for _, recipe := range recipes {
		data, err := common.ToJSON(recipe)
		if err != nil {
			common.LogWarn("食譜序列化失敗，跳過這筆",
				zap.String("recipe_id", recipe.RecipeID),
				zap.Error(err),
			)
			continue
		}
		rows = append(rows, data)
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	if len(rows) > 0 {
		pipe.RPush(ctx, key, rows...)
		if s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
		}
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrStorage, err)
	}

	common.LogInfo("搜尋結果已覆寫",
		zap.String("user_id", userID),
		zap.Int("stored", len(rows)),
	)
	return len(rows), nil
}

// GetResults 讀回使用者最近一次的搜尋結果
func (s *Store) GetResults(ctx context.Context, userID string) ([]common.Recipe, error) {
	if s.client == nil {
		return nil, fmt.Errorf("%w: redis client not configured", common.ErrStorage)
	}

	rows, err := s.client.LRange(ctx, resultKeyPrefix+userID, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStorage, err)
	}

	recipes := make([]common.Recipe, 0, len(rows))
	for _, row := range rows {
		var recipe common.Recipe
		if err := common.ParseJSON(row, &recipe); err != nil {
			common.LogWarn("結果資料格式不合，跳過", zap.Error(err))
			continue
		}
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}
