package common

import (
	"errors"
	"net/http"
)

// ErrorResponse 定義 API 錯誤響應結構
type ErrorResponse struct {
	Code    string `json:"code"`              // 錯誤代碼
	Message string `json:"message"`           // 錯誤信息
	Details string `json:"details,omitempty"` // 詳細信息（僅在開發模式顯示）
}

// CustomError 定義自定義錯誤類型
type CustomError struct {
	Code    string // 錯誤代碼
	Message string // 錯誤信息
	Err     error  // 原始錯誤
	Status  int    // HTTP 狀態碼
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// NewError 創建新的自定義錯誤
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// 預定義錯誤代碼
const (
	ErrCodeInvalidRequest  = "INVALID_REQUEST"   // 400
	ErrCodeNotFound        = "NOT_FOUND"         // 404
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS" // 429
	ErrCodeInternalError   = "INTERNAL_ERROR"    // 500
)

// 預定義 API 錯誤
var (
	ErrInvalidRequest  = NewError(ErrCodeInvalidRequest, "無效的請求", http.StatusBadRequest, nil)
	ErrNotFound        = NewError(ErrCodeNotFound, "資源不存在", http.StatusNotFound, nil)
	ErrTooManyRequests = NewError(ErrCodeTooManyRequests, "請求過於頻繁", http.StatusTooManyRequests, nil)
	ErrInternalError   = NewError(ErrCodeInternalError, "服務器內部錯誤", http.StatusInternalServerError, nil)
)

// 管線錯誤分類。單一 URL 的失敗一律就地記錄後跳過，不會沿呼叫鏈往上傳，
// 這些 sentinel 只用來標記日誌事件的類別與測試判斷
var (
	// ErrFetch 暫時性抓取失敗（逾時、非 200、連線錯誤）
	ErrFetch = errors.New("page fetch failed")
	// ErrParse 頁面或結構化資料區塊解析失敗
	ErrParse = errors.New("page parse failed")
	// ErrNoRecipeData 兩種萃取器都拿不到可用資料
	ErrNoRecipeData = errors.New("no recipe data extracted")
	// ErrNoActiveSources 沒有任何啟用中的食譜來源
	ErrNoActiveSources = errors.New("no active recipe sources")
	// ErrStorage 結果寫入失敗（只記錄，不影響已取得的結果）
	ErrStorage = errors.New("result storage failed")
)
