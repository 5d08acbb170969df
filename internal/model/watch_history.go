package model

import (
	"time"

	"gorm.io/gorm"
)

// WatchHistory 观看记录，每个剧集至多一条
type WatchHistory struct {
	ID        string    `gorm:"type:uuid;primaryKey;comment:记录标识" json:"id"`
	EpisodeID string    `gorm:"type:uuid;not null;uniqueIndex:uq_watch_history_episode;comment:剧集ID" json:"episode_id"`
	Watched   bool      `gorm:"not null;comment:是否已看" json:"watched"`
	CreatedAt time.Time `gorm:"autoCreateTime;comment:创建时间" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`
}

func (WatchHistory) TableName() string {
	return "watch_history"
}

func (w *WatchHistory) BeforeCreate(tx *gorm.DB) error {
	newID(&w.ID)
	return nil
}
