package service

import (
	"context"
	"fmt"

	"microdrama-go/internal/model"
	"microdrama-go/internal/repository"
	"microdrama-go/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedOptions 种子数据规模
type SeedOptions struct {
	Shows           int
	EpisodesPerShow int
}

// SeedResult 写入的数据量
type SeedResult struct {
	Shows    int
	Episodes int
	Ratings  int
}

// SeedService 清空并写入演示数据
type SeedService struct {
	db *gorm.DB
}

func NewSeedService(db *gorm.DB) *SeedService {
	return &SeedService{db: db}
}

// Seed 在一个事务中清空四张表并写入短剧、剧集、评分，第一部短剧的第一集标记为已看
func (s *SeedService) Seed(ctx context.Context, opts SeedOptions) (*SeedResult, error) {
	if opts.Shows <= 0 {
		opts.Shows = 20
	}
	if opts.EpisodesPerShow <= 0 {
		opts.EpisodesPerShow = 50
	}

	result := &SeedResult{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wipe := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, m := range []interface{}{&model.WatchHistory{}, &model.Rating{}, &model.Episode{}, &model.Show{}} {
			if err := wipe.Delete(m).Error; err != nil {
				return fmt.Errorf("clear table: %w", err)
			}
		}

		showRepo := repository.NewShowRepository(tx)
		episodeRepo := repository.NewEpisodeRepository(tx)
		ratingRepo := repository.NewRatingRepository(tx)
		historyRepo := repository.NewWatchHistoryRepository(tx)

		var firstEpisodeID string
		for i := 1; i <= opts.Shows; i++ {
			title := fmt.Sprintf("Show %02d", i)
			desc := fmt.Sprintf("Auto-generated description for %s.", title)
			show := &model.Show{Title: title, Description: &desc}
			if i%3 != 0 {
				cover := fmt.Sprintf("https://picsum.photos/seed/show_%d/300/450", i)
				show.CoverURL = &cover
			}
			if err := showRepo.Create(ctx, show); err != nil {
				return fmt.Errorf("create show: %w", err)
			}
			result.Shows++

			episodes := make([]model.Episode, 0, opts.EpisodesPerShow)
			for e := 1; e <= opts.EpisodesPerShow; e++ {
				ep := model.Episode{
					ShowID:        show.ID,
					Title:         fmt.Sprintf("Episode %02d", e),
					Order:         e,
					MuxPlaybackID: fmt.Sprintf("mux-playback-%d-%d", i, e),
					DurationSec:   60 + (i-1+e)%60,
				}
				if e%4 != 0 {
					thumb := fmt.Sprintf("https://picsum.photos/seed/ep_%d_%d/200/300", i, e)
					ep.ThumbnailURL = &thumb
				}
				episodes = append(episodes, ep)
			}
			if err := episodeRepo.Create(ctx, episodes); err != nil {
				return fmt.Errorf("create episodes: %w", err)
			}
			result.Episodes += len(episodes)
			if i == 1 && len(episodes) > 0 {
				firstEpisodeID = episodes[0].ID
			}

			likes, dislikes := 5+(i-1)%10, (i-1)%3
			ratings := make([]model.Rating, 0, likes+dislikes)
			for l := 0; l < likes; l++ {
				ratings = append(ratings, model.Rating{ShowID: show.ID, RatingValue: model.RatingLike})
			}
			for d := 0; d < dislikes; d++ {
				ratings = append(ratings, model.Rating{ShowID: show.ID, RatingValue: model.RatingDislike})
			}
			if err := ratingRepo.CreateBatch(ctx, ratings); err != nil {
				return fmt.Errorf("create ratings: %w", err)
			}
			result.Ratings += len(ratings)
		}

		if firstEpisodeID != "" {
			if _, err := historyRepo.MarkWatched(ctx, firstEpisodeID); err != nil {
				return fmt.Errorf("mark first episode watched: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Database seeded",
		zap.Int("shows", result.Shows),
		zap.Int("episodes", result.Episodes),
		zap.Int("ratings", result.Ratings),
	)
	return result, nil
}
