package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"microdrama-go/internal/api/dto"
	"microdrama-go/internal/metrics"
	"microdrama-go/internal/model"
	"microdrama-go/internal/repository"
	"microdrama-go/pkg/logger"

	"go.uber.org/zap"
)

var errIndexDisabled = errors.New("search index not configured")

type SearchService struct {
	showRepo *repository.ShowRepository
	index    ShowIndexer
	artwork  ArtworkResolver
}

// NewSearchService index 为 nil 时只走数据库
func NewSearchService(showRepo *repository.ShowRepository, index ShowIndexer, artwork ArtworkResolver) *SearchService {
	if artwork == nil {
		artwork = identityResolver{}
	}
	return &SearchService{showRepo: showRepo, index: index, artwork: artwork}
}

// SearchShows 搜索短剧（ES 优先，失败则降级到 DB）
func (s *SearchService) SearchShows(ctx context.Context, req *dto.SearchShowRequest) (*dto.SearchShowData, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 20
	}

	data, err := s.searchFromES(ctx, req)
	if err != nil {
		if !errors.Is(err, errIndexDisabled) {
			logger.Warn("ES search failed, fallback to DB", zap.Error(err))
		}
		return s.searchFromDB(ctx, req)
	}
	return data, nil
}

func (s *SearchService) searchFromES(ctx context.Context, req *dto.SearchShowRequest) (*dto.SearchShowData, error) {
	if s.index == nil {
		return nil, errIndexDisabled
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := s.index.Search(ctx, req.Q, (req.Page-1)*req.PageSize, req.PageSize)
	if err != nil {
		return nil, err
	}

	// 评分以数据库为准，ES 只负责召回与排序
	shows, err := s.showRepo.GetByIDs(ctx, result.IDs)
	if err != nil {
		return nil, err
	}

	metrics.SearchRequests.WithLabelValues("elasticsearch").Inc()
	return s.buildSearchData(ctx, shows, result.Total, req, "elasticsearch"), nil
}

func (s *SearchService) searchFromDB(ctx context.Context, req *dto.SearchShowRequest) (*dto.SearchShowData, error) {
	skip := (req.Page - 1) * req.PageSize
	shows, total, err := s.showRepo.Search(ctx, strings.TrimSpace(req.Q), skip, req.PageSize)
	if err != nil {
		return nil, fmt.Errorf("search shows: %w", err)
	}

	metrics.SearchRequests.WithLabelValues("database").Inc()
	return s.buildSearchData(ctx, shows, total, req, "database"), nil
}

func (s *SearchService) buildSearchData(ctx context.Context, shows []model.ShowWithRatings, total int64, req *dto.SearchShowRequest, source string) *dto.SearchShowData {
	items := make([]dto.ShowInfo, 0, len(shows))
	for i := range shows {
		items = append(items, toShowInfo(ctx, &shows[i], s.artwork))
	}

	totalPages := (total + int64(req.PageSize) - 1) / int64(req.PageSize)
	return &dto.SearchShowData{
		Shows:      items,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
		Source:     source,
	}
}

// SyncShowToES 用最新评分汇总重建单个短剧文档（评分事件消费者调用）
func (s *SearchService) SyncShowToES(ctx context.Context, showID string) error {
	if s.index == nil {
		return errIndexDisabled
	}

	show, err := s.showRepo.GetByID(ctx, showID)
	if err != nil {
		return fmt.Errorf("get show %s: %w", showID, err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.index.SyncShow(ctx, show)
}

// SyncShowsToES 全量同步短剧到 ES
func (s *SearchService) SyncShowsToES(ctx context.Context) (success, failed int, err error) {
	if s.index == nil {
		return 0, 0, errIndexDisabled
	}

	shows, err := s.showRepo.List(ctx)
	if err != nil {
		return 0, 0, err
	}
	if len(shows) == 0 {
		return 0, 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	return s.index.BulkSync(ctx, shows)
}
