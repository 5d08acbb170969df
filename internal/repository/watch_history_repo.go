package repository

import (
	"context"
	"errors"
	"time"

	"microdrama-go/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WatchHistoryRepository struct {
	db *gorm.DB
}

func NewWatchHistoryRepository(db *gorm.DB) *WatchHistoryRepository {
	return &WatchHistoryRepository{db: db}
}

// MarkWatched 标记剧集为已看（幂等）
func (r *WatchHistoryRepository) MarkWatched(ctx context.Context, episodeID string) (*model.WatchHistory, error) {
	return r.upsert(ctx, episodeID, true)
}

// MarkUnwatched 标记剧集为未看
func (r *WatchHistoryRepository) MarkUnwatched(ctx context.Context, episodeID string) (*model.WatchHistory, error) {
	return r.upsert(ctx, episodeID, false)
}

// upsert INSERT ... ON CONFLICT (episode_id) DO UPDATE，每个剧集始终只有一条记录
func (r *WatchHistoryRepository) upsert(ctx context.Context, episodeID string, watched bool) (*model.WatchHistory, error) {
	now := time.Now()
	record := &model.WatchHistory{
		EpisodeID: episodeID,
		Watched:   watched,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "episode_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"watched":    watched,
			"updated_at": now,
		}),
	}).Create(record).Error
	if err != nil {
		return nil, err
	}

	return r.GetByEpisode(ctx, episodeID)
}

// GetByEpisode 获取剧集的观看记录
func (r *WatchHistoryRepository) GetByEpisode(ctx context.Context, episodeID string) (*model.WatchHistory, error) {
	var record model.WatchHistory
	if err := r.db.WithContext(ctx).Where("episode_id = ?", episodeID).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// GetStatus 剧集是否已看及最近更新时间；没有记录视为未看，updatedAt 为 nil
func (r *WatchHistoryRepository) GetStatus(ctx context.Context, episodeID string) (watched bool, updatedAt *time.Time, err error) {
	record, err := r.GetByEpisode(ctx, episodeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil, nil
		}
		return false, nil, err
	}
	return record.Watched, &record.UpdatedAt, nil
}
