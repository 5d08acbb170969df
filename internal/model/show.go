package model

import (
	"time"

	"gorm.io/gorm"
)

// Show 短剧模型
type Show struct {
	ID          string    `gorm:"type:uuid;primaryKey;comment:短剧标识" json:"id"`
	Title       string    `gorm:"size:255;not null;comment:短剧标题" json:"title"`
	Description *string   `gorm:"type:text;comment:短剧简介" json:"description"`
	CoverURL    *string   `gorm:"size:500;comment:封面地址或对象键" json:"cover_url"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index:idx_shows_created_at;comment:创建时间" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`

	// 关联关系（删除短剧级联删除剧集与评分）
	Episodes []Episode `gorm:"foreignKey:ShowID;constraint:OnDelete:CASCADE" json:"episodes,omitempty"`
	Ratings  []Rating  `gorm:"foreignKey:ShowID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Show) TableName() string {
	return "shows"
}

func (s *Show) BeforeCreate(tx *gorm.DB) error {
	newID(&s.ID)
	return nil
}

// RatingTotals 点赞/点踩汇总，始终由评分事件实时计算
type RatingTotals struct {
	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`
}

// Total 评分事件总数
func (r RatingTotals) Total() int64 {
	return r.Likes + r.Dislikes
}

// ShowWithRatings 短剧及其评分汇总
type ShowWithRatings struct {
	Show
	RatingTotals
}
