package model

import "strings"

// WatchFilter 按观看状态筛选
type WatchFilter string

const (
	FilterAll       WatchFilter = "all"
	FilterWatched   WatchFilter = "watched"
	FilterUnwatched WatchFilter = "unwatched"
)

// SortField 剧集排序字段
type SortField string

const (
	SortByTitle     SortField = "title"
	SortByOrder     SortField = "order"
	SortByCreatedAt SortField = "created_at"
)

// SortDirection 排序方向
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// EpisodeQuery 剧集列表查询条件，零值即默认（全部、按序号升序）
type EpisodeQuery struct {
	Filter    WatchFilter
	SortBy    SortField
	Direction SortDirection
}

// Normalize 填充默认值；无法识别的取值静默回退为默认值而不是报错
func (q EpisodeQuery) Normalize() EpisodeQuery {
	out := EpisodeQuery{
		Filter:    WatchFilter(strings.ToLower(string(q.Filter))),
		SortBy:    SortField(strings.ToLower(string(q.SortBy))),
		Direction: SortDirection(strings.ToLower(string(q.Direction))),
	}
	switch out.Filter {
	case FilterWatched, FilterUnwatched:
	default:
		out.Filter = FilterAll
	}
	switch out.SortBy {
	case SortByTitle, SortByCreatedAt, SortByOrder:
	default:
		out.SortBy = SortByOrder
	}
	if out.Direction != SortDesc {
		out.Direction = SortAsc
	}
	return out
}
