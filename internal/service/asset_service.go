package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	infraKafka "microdrama-go/internal/infra/kafka"
	"microdrama-go/internal/repository"
	"microdrama-go/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ThumbnailSource 生成可落库的（不带 token 的）缩略图地址
type ThumbnailSource interface {
	StaticThumbnailURL(assetID string) string
}

// AssetService 回写 Mux 资源信息
type AssetService struct {
	episodeRepo *repository.EpisodeRepository
	thumbnails  ThumbnailSource
}

func NewAssetService(episodeRepo *repository.EpisodeRepository, thumbnails ThumbnailSource) *AssetService {
	return &AssetService{episodeRepo: episodeRepo, thumbnails: thumbnails}
}

// HandleAssetReady 处理 asset.ready 事件：更新播放ID，缩略图为空时补上 Mux 截图
func (s *AssetService) HandleAssetReady(ctx context.Context, evt *infraKafka.AssetReady) error {
	thumbnail := evt.ThumbnailURL
	if thumbnail == nil || *thumbnail == "" {
		url := s.thumbnails.StaticThumbnailURL(evt.PlaybackID)
		thumbnail = &url
	}

	err := s.episodeRepo.UpdateAsset(ctx, evt.EpisodeID, repository.AssetUpdate{
		PlaybackID:   evt.PlaybackID,
		DurationSec:  evt.DurationSec,
		ThumbnailURL: thumbnail,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEpisodeNotFound
		}
		return fmt.Errorf("update episode asset: %w", err)
	}

	logger.Info("Episode asset updated",
		zap.String("episode_id", evt.EpisodeID),
		zap.String("playback_id", evt.PlaybackID),
	)
	return nil
}

// BackfillPlaybackIDs 为全部剧集随机分配给定的播放ID之一，返回每个ID的分配次数
func (s *AssetService) BackfillPlaybackIDs(ctx context.Context, playbackIDs []string, rng *rand.Rand) (map[string]int, error) {
	if len(playbackIDs) == 0 {
		return nil, errors.New("no playback ids given")
	}

	episodes, err := s.episodeRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list episodes: %w", err)
	}

	counts := make(map[string]int, len(playbackIDs))
	for _, id := range playbackIDs {
		counts[id] = 0
	}

	for _, e := range episodes {
		playbackID := playbackIDs[rng.Intn(len(playbackIDs))]
		if err := s.HandleAssetReady(ctx, &infraKafka.AssetReady{EpisodeID: e.ID, PlaybackID: playbackID}); err != nil {
			return counts, err
		}
		counts[playbackID]++
	}
	return counts, nil
}
