package discover

import (
	"net/http"

	"recipe-discovery/internal/core/enrich"
	"recipe-discovery/internal/core/scraper"
	"recipe-discovery/internal/core/storage"
	"recipe-discovery/internal/core/user"
	"recipe-discovery/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DiscoverRequest 食譜探索請求
type DiscoverRequest struct {
	Prompt     string `json:"prompt" binding:"required"` // 使用者描述想吃的東西
	UserID     string `json:"user_id,omitempty"`         // 有帶才讀取排除條件並保存結果
	MaxRecipes int    `json:"max_recipes,omitempty"`     // 0 表示用預設值
}

// DiscoverResponse 食譜探索響應
type DiscoverResponse struct {
	Recipes  []common.Recipe `json:"recipes"`
	Query    string          `json:"query"`             // 實際送去搜尋的強化查詢
	Keywords []string        `json:"keywords"`          // 從強化查詢抽出的關鍵字
	Message  string          `json:"message,omitempty"` // 空結果時的提示
}

// Handler 食譜探索處理程序
type Handler struct {
	enrichService *enrich.Service
	userLoader    *user.Loader
	crawler       *scraper.Crawler
	resultStore   *storage.Store
}

// NewHandler 創建新的食譜探索處理程序
func NewHandler(enrichService *enrich.Service, userLoader *user.Loader, crawler *scraper.Crawler, resultStore *storage.Store) *Handler {
	return &Handler{
		enrichService: enrichService,
		userLoader:    userLoader,
		crawler:       crawler,
		resultStore:   resultStore,
	}
}

// HandleDiscover 執行一次完整的食譜探索：
// 讀取排除條件 → 強化查詢 → 爬取 → 過濾 → 覆寫保存結果。
// 保存失敗只記錄，結果照樣回給使用者
func (h *Handler) HandleDiscover(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}

	var req DiscoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		apiErr := common.ErrInvalidRequest
		c.JSON(apiErr.Status, common.ErrorResponse{
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Details: err.Error(),
		})
		return
	}

	ctx := c.Request.Context()

	exclusions := h.userLoader.GetExclusions(ctx, req.UserID)
	enrichedQuery := h.enrichService.EnrichPrompt(req.Prompt, exclusions)
	keywords := h.enrichService.ExtractKeywords(ctx, enrichedQuery)

	common.LogInfo("開始食譜探索",
		zap.String("request_id", requestID),
		zap.String("query", enrichedQuery),
		zap.Strings("keywords", keywords),
		zap.Int("max_recipes", req.MaxRecipes),
		zap.String("user_id", req.UserID),
	)

	recipes := h.crawler.DiscoverRecipes(ctx, enrichedQuery, exclusions.ExcludeIngredients, req.MaxRecipes)
	recipes = scraper.FilterRecipes(recipes, exclusions)

	if req.UserID != "" && len(recipes) > 0 {
		if _, err := h.resultStore.ReplaceResults(ctx, req.UserID, recipes); err != nil {
			common.LogWarn("結果保存失敗，結果照常回傳",
				zap.String("request_id", requestID),
				zap.String("user_id", req.UserID),
				zap.Error(err),
			)
		}
	}

	resp := DiscoverResponse{
		Recipes:  recipes,
		Query:    enrichedQuery,
		Keywords: keywords,
	}
	if len(recipes) == 0 {
		resp.Recipes = []common.Recipe{}
		resp.Message = "no recipes found"
	}

	c.JSON(http.StatusOK, resp)
}

// HandleResults 讀回使用者最近一次的探索結果
func (h *Handler) HandleResults(c *gin.Context) {
	userID := c.Param("user_id")
	if userID == "" {
		apiErr := common.ErrInvalidRequest
		c.JSON(apiErr.Status, common.ErrorResponse{
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Details: "user_id is required",
		})
		return
	}

	recipes, err := h.resultStore.GetResults(c.Request.Context(), userID)
	if err != nil {
		common.LogError("讀取結果失敗",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		apiErr := common.ErrInternalError
		c.JSON(apiErr.Status, common.ErrorResponse{
			Code:    apiErr.Code,
			Message: apiErr.Message,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}
