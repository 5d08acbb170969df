package dto

import "time"

// EpisodeIDUri 剧集ID路径参数
type EpisodeIDUri struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// EpisodeInfo 剧集信息，playback_url 为可直接播放的地址（可能带签名 token）
type EpisodeInfo struct {
	ID            string    `json:"id"`
	ShowID        string    `json:"show_id"`
	Title         string    `json:"title"`
	Order         int       `json:"order"`
	MuxPlaybackID string    `json:"mux_playback_id"`
	PlaybackURL   string    `json:"playback_url"`
	DurationSec   int       `json:"duration_sec"`
	ThumbnailURL  *string   `json:"thumbnail_url"`
	Watched       bool      `json:"watched"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// EpisodeListData 剧集列表响应数据
type EpisodeListData struct {
	Episodes []EpisodeInfo `json:"episodes"`
	Total    int           `json:"total"`
}

// WatchStatus 剧集观看状态
type WatchStatus struct {
	EpisodeID string     `json:"episode_id"`
	Watched   bool       `json:"watched"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
