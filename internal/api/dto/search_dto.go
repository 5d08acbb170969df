package dto

// SearchShowRequest 搜索请求参数
type SearchShowRequest struct {
	Q        string `form:"q" binding:"max=200"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// SearchShowData 搜索结果
type SearchShowData struct {
	Shows      []ShowInfo `json:"shows"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int64      `json:"total_pages"`
	Source     string     `json:"source"` // elasticsearch / database
}
