package model

import (
	"time"

	"gorm.io/gorm"
)

// Episode 剧集模型
type Episode struct {
	ID            string    `gorm:"type:uuid;primaryKey;comment:剧集标识" json:"id"`
	ShowID        string    `gorm:"type:uuid;not null;index:idx_episodes_show_order,priority:1;comment:所属短剧ID" json:"show_id"`
	Title         string    `gorm:"size:255;not null;comment:剧集标题" json:"title"`
	Order         int       `gorm:"column:order;not null;default:0;index:idx_episodes_show_order,priority:2;comment:剧集序号" json:"order"`
	MuxPlaybackID string    `gorm:"size:255;not null;comment:Mux 播放ID" json:"mux_playback_id"`
	DurationSec   int       `gorm:"not null;default:0;comment:时长（秒）" json:"duration_sec"`
	ThumbnailURL  *string   `gorm:"size:500;comment:缩略图地址或对象键" json:"thumbnail_url"`
	CreatedAt     time.Time `gorm:"autoCreateTime;comment:创建时间" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`

	WatchHistory *WatchHistory `gorm:"foreignKey:EpisodeID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Episode) TableName() string {
	return "episodes"
}

func (e *Episode) BeforeCreate(tx *gorm.DB) error {
	newID(&e.ID)
	return nil
}

// EpisodeWithWatchStatus 剧集及观看状态（无观看记录时为 false）
type EpisodeWithWatchStatus struct {
	Episode
	Watched bool `json:"watched"`
}
