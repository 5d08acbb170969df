package dto

import "time"

// RatingCreateRequest 评分请求，1 点赞 0 点踩
type RatingCreateRequest struct {
	RatingValue *int `json:"ratingValue" binding:"required,oneof=0 1"`
}

// RatingInfo 评分事件
type RatingInfo struct {
	ID          string    `json:"id"`
	ShowID      string    `json:"show_id"`
	RatingValue int       `json:"rating_value"`
	CreatedAt   time.Time `json:"created_at"`
}

// RatingCounts 点赞/点踩汇总
type RatingCounts struct {
	ShowID   string `json:"show_id"`
	Likes    int64  `json:"likes"`
	Dislikes int64  `json:"dislikes"`
}
