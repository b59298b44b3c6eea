package user

import (
	"context"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"recipe-discovery/internal/pkg/common"
)

const contextKeyPrefix = "user:context:"

// Loader 讀取使用者的排除條件。唯讀；任何失敗都退回空集合，
// 絕不因為使用者資料讀不到而擋住整條管線
type Loader struct {
	client *redis.Client
}

// NewLoader 創建排除條件讀取器
func NewLoader(client *redis.Client) *Loader {
	return &Loader{client: client}
}

// GetExclusions 取得使用者的飲食類型與排除清單
func (l *Loader) GetExclusions(ctx context.Context, userID string) common.ExclusionContext {
	if l.client == nil || userID == "" {
		return common.ExclusionContext{}
	}

	data, err := l.client.Get(ctx, contextKeyPrefix+userID).Bytes()
	if err != nil {
		if err != redis.Nil {
			common.LogWarn("讀取使用者排除條件失敗，退回空集合",
				zap.String("user_id", userID),
				zap.Error(err),
			)
		}
		return common.ExclusionContext{}
	}

	var exclusions common.ExclusionContext
	if err := common.ParseJSONBytes(data, &exclusions); err != nil {
		common.LogWarn("使用者排除條件格式不合，退回空集合",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return common.ExclusionContext{}
	}
	return exclusions
}

// SaveExclusions 寫入使用者排除條件（測試與後台維護用）
func (l *Loader) SaveExclusions(ctx context.Context, userID string, exclusions common.ExclusionContext) error {
	if l.client == nil {
		return redis.ErrClosed
	}
	data, err := common.ToJSON(exclusions)
	if err != nil {
		return err
	}
	return l.client.Set(ctx, contextKeyPrefix+userID, data, 0).Err()
}
