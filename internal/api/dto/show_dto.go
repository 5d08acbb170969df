package dto

import "time"

// ShowIDUri 短剧ID路径参数
type ShowIDUri struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// EpisodeListQuery 剧集列表查询参数
type EpisodeListQuery struct {
	FilterBy string `form:"filterBy" binding:"omitempty,oneof=all watched unwatched"`
	SortBy   string `form:"sortBy" binding:"omitempty,oneof=title order created_at"`
	OrderBy  string `form:"orderBy" binding:"omitempty,oneof=asc desc"`
}

// ShowInfo 短剧信息（含评分汇总）
type ShowInfo struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	CoverURL    *string   `json:"cover_url"`
	Likes       int64     `json:"likes"`
	Dislikes    int64     `json:"dislikes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ShowDetail 短剧详情：元数据、评分汇总与剧集列表
type ShowDetail struct {
	ShowInfo
	Episodes []EpisodeInfo `json:"episodes"`
}

// ShowListData 短剧列表响应数据
type ShowListData struct {
	Shows []ShowInfo `json:"shows"`
	Total int        `json:"total"`
}
