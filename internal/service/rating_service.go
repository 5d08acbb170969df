package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"microdrama-go/internal/api/dto"
	infraKafka "microdrama-go/internal/infra/kafka"
	"microdrama-go/internal/metrics"
	"microdrama-go/internal/model"
	"microdrama-go/internal/repository"
	"microdrama-go/pkg/logger"

	"go.uber.org/zap"
)

var ErrInvalidRating = errors.New("评分只能为 0 或 1")

type RatingService struct {
	showRepo   *repository.ShowRepository
	ratingRepo *repository.RatingRepository
	publisher  EventPublisher
}

// NewRatingService publisher 为 nil 时不发布事件
func NewRatingService(showRepo *repository.ShowRepository, ratingRepo *repository.RatingRepository, publisher EventPublisher) *RatingService {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	return &RatingService{showRepo: showRepo, ratingRepo: ratingRepo, publisher: publisher}
}

// Record 追加一条评分事件
func (s *RatingService) Record(ctx context.Context, showID string, value int) (*dto.RatingInfo, error) {
	if !model.ValidRatingValue(value) {
		return nil, ErrInvalidRating
	}

	exists, err := s.showRepo.Exists(ctx, showID)
	if err != nil {
		return nil, fmt.Errorf("check show: %w", err)
	}
	if !exists {
		return nil, ErrShowNotFound
	}

	rating, err := s.ratingRepo.Create(ctx, showID, value)
	if err != nil {
		return nil, fmt.Errorf("create rating: %w", err)
	}
	metrics.RatingsRecorded.WithLabelValues(strconv.Itoa(value)).Inc()

	evt := infraKafka.RatingRecorded{
		RatingID:    rating.ID,
		ShowID:      rating.ShowID,
		RatingValue: rating.RatingValue,
		CreatedAt:   rating.CreatedAt,
	}
	if err := s.publisher.RatingRecorded(ctx, evt); err != nil {
		logger.Warn("Publish rating event failed", zap.String("show_id", showID), zap.Error(err))
	}

	return &dto.RatingInfo{
		ID:          rating.ID,
		ShowID:      rating.ShowID,
		RatingValue: rating.RatingValue,
		CreatedAt:   rating.CreatedAt,
	}, nil
}

// Count 点赞/点踩汇总
func (s *RatingService) Count(ctx context.Context, showID string) (*dto.RatingCounts, error) {
	exists, err := s.showRepo.Exists(ctx, showID)
	if err != nil {
		return nil, fmt.Errorf("check show: %w", err)
	}
	if !exists {
		return nil, ErrShowNotFound
	}

	totals, err := s.ratingRepo.CountByShow(ctx, showID)
	if err != nil {
		return nil, fmt.Errorf("count ratings: %w", err)
	}
	return &dto.RatingCounts{ShowID: showID, Likes: totals.Likes, Dislikes: totals.Dislikes}, nil
}
