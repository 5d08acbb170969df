package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"microdrama-go/internal/api/dto"
	infraKafka "microdrama-go/internal/infra/kafka"
	"microdrama-go/internal/model"
	"microdrama-go/internal/repository"
	"microdrama-go/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type WatchService struct {
	episodeRepo *repository.EpisodeRepository
	historyRepo *repository.WatchHistoryRepository
	publisher   EventPublisher
}

func NewWatchService(episodeRepo *repository.EpisodeRepository, historyRepo *repository.WatchHistoryRepository, publisher EventPublisher) *WatchService {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	return &WatchService{episodeRepo: episodeRepo, historyRepo: historyRepo, publisher: publisher}
}

// MarkWatched 标记已看，重复调用结果相同
func (s *WatchService) MarkWatched(ctx context.Context, episodeID string) (*dto.WatchStatus, error) {
	return s.setWatched(ctx, episodeID, true)
}

// MarkUnwatched 标记未看
func (s *WatchService) MarkUnwatched(ctx context.Context, episodeID string) (*dto.WatchStatus, error) {
	return s.setWatched(ctx, episodeID, false)
}

func (s *WatchService) setWatched(ctx context.Context, episodeID string, watched bool) (*dto.WatchStatus, error) {
	episode, err := s.getEpisode(ctx, episodeID)
	if err != nil {
		return nil, err
	}

	var record *model.WatchHistory
	if watched {
		record, err = s.historyRepo.MarkWatched(ctx, episodeID)
	} else {
		record, err = s.historyRepo.MarkUnwatched(ctx, episodeID)
	}
	if err != nil {
		return nil, fmt.Errorf("update watch history: %w", err)
	}

	evt := infraKafka.EpisodeWatched{
		EpisodeID: episodeID,
		ShowID:    episode.ShowID,
		Watched:   record.Watched,
		At:        time.Now(),
	}
	if err := s.publisher.EpisodeWatched(ctx, evt); err != nil {
		logger.Warn("Publish watch event failed", zap.String("episode_id", episodeID), zap.Error(err))
	}

	updatedAt := record.UpdatedAt
	return &dto.WatchStatus{EpisodeID: episodeID, Watched: record.Watched, UpdatedAt: &updatedAt}, nil
}

// Status 观看状态，没有记录视为未看
func (s *WatchService) Status(ctx context.Context, episodeID string) (*dto.WatchStatus, error) {
	if _, err := s.getEpisode(ctx, episodeID); err != nil {
		return nil, err
	}

	watched, updatedAt, err := s.historyRepo.GetStatus(ctx, episodeID)
	if err != nil {
		return nil, fmt.Errorf("get watch history: %w", err)
	}
	return &dto.WatchStatus{EpisodeID: episodeID, Watched: watched, UpdatedAt: updatedAt}, nil
}

func (s *WatchService) getEpisode(ctx context.Context, episodeID string) (*model.Episode, error) {
	episode, err := s.episodeRepo.GetByID(ctx, episodeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEpisodeNotFound
		}
		return nil, fmt.Errorf("get episode: %w", err)
	}
	return episode, nil
}
