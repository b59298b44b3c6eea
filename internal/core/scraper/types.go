package scraper

// ExtractionSource 標記原始資料來自哪一種萃取器
type ExtractionSource string

const (
	// SourceStructured JSON-LD 結構化資料
	SourceStructured ExtractionSource = "structured"
	// SourceHeuristic CSS 選擇器啟發式萃取
	SourceHeuristic ExtractionSource = "heuristic"
)

// RawRecipe 單一頁面萃取出的原始資料
// 生命週期：抓取後立刻交給 Normalize 消化，不會往下游傳遞。
// 結構化資料的欄位保留 JSON-LD 的原始型別（字串、列表、物件都有可能），
// 啟發式萃取只會填入字串
type RawRecipe struct {
	Source       ExtractionSource
	Name         string
	Description  string
	Image        interface{}
	Ingredients  []interface{}
	Instructions []interface{}
	Nutrition    map[string]interface{}
	Yield        interface{}
}

// isEmpty 回報是否沒有任何欄位有內容
func (r *RawRecipe) isEmpty() bool {
	return r.Name == "" &&
		r.Description == "" &&
		r.Image == nil &&
		len(r.Ingredients) == 0 &&
		len(r.Instructions) == 0 &&
		len(r.Nutrition) == 0 &&
		r.Yield == nil
}
