package service

import (
	"context"

	infraES "microdrama-go/internal/infra/elasticsearch"
	infraKafka "microdrama-go/internal/infra/kafka"
	"microdrama-go/internal/model"
)

// PlaybackSigner 播放地址生成（playback.Signer）
type PlaybackSigner interface {
	PlaybackURL(assetID string) string
	ThumbnailURL(assetID string) string
}

// ArtworkResolver 封面/缩略图引用解析（MinIO 预签名）
type ArtworkResolver interface {
	Resolve(ctx context.Context, ref *string) *string
}

// EventPublisher 领域事件发布，失败不影响主流程
type EventPublisher interface {
	RatingRecorded(ctx context.Context, evt infraKafka.RatingRecorded) error
	EpisodeWatched(ctx context.Context, evt infraKafka.EpisodeWatched) error
}

// ShowIndexer 短剧搜索索引
type ShowIndexer interface {
	SyncShow(ctx context.Context, s *model.ShowWithRatings) error
	BulkSync(ctx context.Context, shows []model.ShowWithRatings) (success, failed int, err error)
	Search(ctx context.Context, keyword string, from, size int) (*infraES.SearchResult, error)
}

type identityResolver struct{}

func (identityResolver) Resolve(_ context.Context, ref *string) *string { return ref }

type nopPublisher struct{}

func (nopPublisher) RatingRecorded(context.Context, infraKafka.RatingRecorded) error { return nil }
func (nopPublisher) EpisodeWatched(context.Context, infraKafka.EpisodeWatched) error { return nil }
