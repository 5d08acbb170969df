package service

import (
	"context"
	"errors"
	"fmt"

	"microdrama-go/internal/api/dto"
	"microdrama-go/internal/model"
	"microdrama-go/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrShowNotFound    = errors.New("短剧不存在")
	ErrEpisodeNotFound = errors.New("剧集不存在")
)

type ShowService struct {
	showRepo    *repository.ShowRepository
	episodeRepo *repository.EpisodeRepository
	signer      PlaybackSigner
	artwork     ArtworkResolver
}

// NewShowService artwork 为 nil 时封面、缩略图原样返回
func NewShowService(showRepo *repository.ShowRepository, episodeRepo *repository.EpisodeRepository, signer PlaybackSigner, artwork ArtworkResolver) *ShowService {
	if artwork == nil {
		artwork = identityResolver{}
	}
	return &ShowService{
		showRepo:    showRepo,
		episodeRepo: episodeRepo,
		signer:      signer,
		artwork:     artwork,
	}
}

// List 全部短剧及评分汇总，最新的在前
func (s *ShowService) List(ctx context.Context) (*dto.ShowListData, error) {
	shows, err := s.showRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shows: %w", err)
	}

	items := make([]dto.ShowInfo, 0, len(shows))
	for i := range shows {
		items = append(items, s.toShowInfo(ctx, &shows[i]))
	}
	return &dto.ShowListData{Shows: items, Total: len(items)}, nil
}

// GetByID 短剧详情：评分汇总 + 默认排序的剧集列表（含播放地址）
func (s *ShowService) GetByID(ctx context.Context, id string) (*dto.ShowDetail, error) {
	show, err := s.showRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShowNotFound
		}
		return nil, fmt.Errorf("get show: %w", err)
	}

	episodes, err := s.episodeRepo.ListByShow(ctx, id, model.EpisodeQuery{})
	if err != nil {
		return nil, fmt.Errorf("list episodes: %w", err)
	}

	return &dto.ShowDetail{
		ShowInfo: s.toShowInfo(ctx, show),
		Episodes: s.toEpisodeInfos(ctx, episodes),
	}, nil
}

// ListEpisodes 按筛选/排序条件获取剧集；短剧不存在时返回空列表
func (s *ShowService) ListEpisodes(ctx context.Context, showID string, q model.EpisodeQuery) (*dto.EpisodeListData, error) {
	episodes, err := s.episodeRepo.ListByShow(ctx, showID, q)
	if err != nil {
		return nil, fmt.Errorf("list episodes: %w", err)
	}
	items := s.toEpisodeInfos(ctx, episodes)
	return &dto.EpisodeListData{Episodes: items, Total: len(items)}, nil
}

func (s *ShowService) toShowInfo(ctx context.Context, show *model.ShowWithRatings) dto.ShowInfo {
	return toShowInfo(ctx, show, s.artwork)
}

func toShowInfo(ctx context.Context, show *model.ShowWithRatings, artwork ArtworkResolver) dto.ShowInfo {
	return dto.ShowInfo{
		ID:          show.ID,
		Title:       show.Title,
		Description: show.Description,
		CoverURL:    artwork.Resolve(ctx, show.CoverURL),
		Likes:       show.Likes,
		Dislikes:    show.Dislikes,
		CreatedAt:   show.CreatedAt,
		UpdatedAt:   show.UpdatedAt,
	}
}

func (s *ShowService) toEpisodeInfos(ctx context.Context, episodes []model.EpisodeWithWatchStatus) []dto.EpisodeInfo {
	items := make([]dto.EpisodeInfo, 0, len(episodes))
	for i := range episodes {
		e := &episodes[i]

		// 没有缩略图时使用 Mux 自动生成的截图
		thumbnail := s.artwork.Resolve(ctx, e.ThumbnailURL)
		if thumbnail == nil || *thumbnail == "" {
			url := s.signer.ThumbnailURL(e.MuxPlaybackID)
			thumbnail = &url
		}

		items = append(items, dto.EpisodeInfo{
			ID:            e.ID,
			ShowID:        e.ShowID,
			Title:         e.Title,
			Order:         e.Order,
			MuxPlaybackID: e.MuxPlaybackID,
			PlaybackURL:   s.signer.PlaybackURL(e.MuxPlaybackID),
			DurationSec:   e.DurationSec,
			ThumbnailURL:  thumbnail,
			Watched:       e.Watched,
			CreatedAt:     e.CreatedAt,
			UpdatedAt:     e.UpdatedAt,
		})
	}
	return items
}
