package repository

import (
	"context"

	"microdrama-go/internal/model"

	"gorm.io/gorm"
)

type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Create 追加一条评分事件，不与已有事件合并
func (r *RatingRepository) Create(ctx context.Context, showID string, value int) (*model.Rating, error) {
	rating := &model.Rating{ShowID: showID, RatingValue: value}
	if err := r.db.WithContext(ctx).Create(rating).Error; err != nil {
		return nil, err
	}
	return rating, nil
}

// CountByShow 由全部评分事件计算点赞/点踩数，没有事件时返回 0
func (r *RatingRepository) CountByShow(ctx context.Context, showID string) (model.RatingTotals, error) {
	var totals model.RatingTotals
	err := r.db.WithContext(ctx).
		Model(&model.Rating{}).
		Select(`COUNT(CASE WHEN rating_value = 1 THEN 1 END) AS likes,
			COUNT(CASE WHEN rating_value = 0 THEN 1 END) AS dislikes`).
		Where("show_id = ?", showID).
		Scan(&totals).Error
	if err != nil {
		return model.RatingTotals{}, err
	}
	return totals, nil
}

// CreateBatch 批量写入评分事件（种子数据用）
func (r *RatingRepository) CreateBatch(ctx context.Context, ratings []model.Rating) error {
	if len(ratings) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(ratings, 100).Error
}
