package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	infraES "microdrama-go/internal/infra/elasticsearch"
	infraKafka "microdrama-go/internal/infra/kafka"
	"microdrama-go/internal/model"
	"microdrama-go/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}

func seedShowWithEpisodes(t *testing.T, db *gorm.DB, title string, episodes int) (*model.Show, []model.Episode) {
	t.Helper()
	ctx := context.Background()
	show := &model.Show{Title: title}
	require.NoError(t, repository.NewShowRepository(db).Create(ctx, show))

	eps := make([]model.Episode, 0, episodes)
	for i := 1; i <= episodes; i++ {
		eps = append(eps, model.Episode{
			ShowID:        show.ID,
			Title:         fmt.Sprintf("Episode %d", i),
			Order:         i,
			MuxPlaybackID: fmt.Sprintf("asset-%d", i),
			DurationSec:   60,
		})
	}
	require.NoError(t, repository.NewEpisodeRepository(db).Create(ctx, eps))
	return show, eps
}

// fakeSigner 生成可预测的地址
type fakeSigner struct{}

func (fakeSigner) PlaybackURL(id string) string  { return "https://stream.test/" + id + ".m3u8?token=t" }
func (fakeSigner) ThumbnailURL(id string) string { return "https://image.test/" + id + "/thumbnail.jpg?token=t" }
func (fakeSigner) StaticThumbnailURL(id string) string {
	return "https://image.test/" + id + "/thumbnail.jpg"
}

type prefixResolver struct{ prefix string }

func (r prefixResolver) Resolve(_ context.Context, ref *string) *string {
	if ref == nil {
		return nil
	}
	out := r.prefix + *ref
	return &out
}

type recordingPublisher struct {
	mu      sync.Mutex
	ratings []infraKafka.RatingRecorded
	watches []infraKafka.EpisodeWatched
	err     error
}

func (p *recordingPublisher) RatingRecorded(_ context.Context, evt infraKafka.RatingRecorded) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ratings = append(p.ratings, evt)
	return p.err
}

func (p *recordingPublisher) EpisodeWatched(_ context.Context, evt infraKafka.EpisodeWatched) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.watches = append(p.watches, evt)
	return p.err
}

type fakeIndexer struct {
	synced    []string
	bulk      int
	searchIDs []string
	total     int64
	searchErr error
}

func (f *fakeIndexer) SyncShow(_ context.Context, s *model.ShowWithRatings) error {
	f.synced = append(f.synced, fmt.Sprintf("%s:%d/%d", s.ID, s.Likes, s.Dislikes))
	return nil
}

func (f *fakeIndexer) BulkSync(_ context.Context, shows []model.ShowWithRatings) (int, int, error) {
	f.bulk += len(shows)
	return len(shows), 0, nil
}

func (f *fakeIndexer) Search(_ context.Context, _ string, _, _ int) (*infraES.SearchResult, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return &infraES.SearchResult{IDs: f.searchIDs, Total: f.total}, nil
}

var errBroker = errors.New("broker unavailable")

