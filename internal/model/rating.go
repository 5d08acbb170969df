package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	RatingDislike = 0
	RatingLike    = 1
)

// Rating 评分事件，只追加不修改
type Rating struct {
	ID          string    `gorm:"type:uuid;primaryKey;comment:评分标识" json:"id"`
	ShowID      string    `gorm:"type:uuid;not null;index:idx_ratings_show_id;comment:短剧ID" json:"show_id"`
	RatingValue int       `gorm:"type:smallint;not null;check:chk_ratings_value,rating_value IN (0, 1);comment:1 点赞 0 点踩" json:"rating_value"`
	CreatedAt   time.Time `gorm:"autoCreateTime;comment:创建时间" json:"created_at"`
}

func (Rating) TableName() string {
	return "ratings"
}

func (r *Rating) BeforeCreate(tx *gorm.DB) error {
	newID(&r.ID)
	return nil
}

// ValidRatingValue 评分值只能为 0 或 1
func ValidRatingValue(v int) bool {
	return v == RatingDislike || v == RatingLike
}

// All 返回需要迁移的全部模型（按外键依赖顺序）
func All() []interface{} {
	return []interface{}{&Show{}, &Episode{}, &WatchHistory{}, &Rating{}}
}
